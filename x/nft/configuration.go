package nft

import (
	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
	"github.com/easynft/easynft/orm"
)

// configKey is the fixed key of the single configuration record.
var configKey = []byte("config")

// Configuration holds the values injected at initialization. Owner is
// the registry administrator: only it may create catalog entries and
// toggle purchases, and it receives every purchase payment.
type Configuration struct {
	Metadata *easynft.Metadata
	Owner    easynft.Address
}

var _ orm.CloneableData = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, c)
}

func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

func (c *Configuration) Copy() orm.CloneableData {
	return &Configuration{
		Metadata: c.Metadata.Copy(),
		Owner:    append(easynft.Address(nil), c.Owner...),
	}
}

func newConfigBucket() orm.Bucket {
	return orm.NewBucket("nftconf", orm.NewSimpleObj(nil, &Configuration{}))
}

// loadConf returns the stored configuration, failing if initialization
// never ran.
func loadConf(db easynft.ReadOnlyKVStore) (*Configuration, error) {
	obj, err := newConfigBucket().Get(db, configKey)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrap(errors.ErrState, "not configured")
	}
	return obj.Value().(*Configuration), nil
}

// saveConf persists the configuration.
func saveConf(db easynft.KVStore, c *Configuration) error {
	return newConfigBucket().Save(db, orm.NewSimpleObj(configKey, c))
}

// Initializer loads the registry configuration from genesis.
type Initializer struct{}

var _ easynft.Initializer = Initializer{}

// FromGenesis reads the "nft" section of genesis options, which must
// name the registry owner.
func (Initializer) FromGenesis(opts easynft.Options, db easynft.KVStore) error {
	var conf struct {
		Owner easynft.Address `json:"owner"`
	}
	if err := opts.ReadOptions("nft", &conf); err != nil {
		return errors.Wrap(err, "cannot read nft genesis")
	}
	if conf.Owner == nil {
		return errors.Wrap(errors.ErrEmpty, "nft genesis owner")
	}
	return saveConf(db, &Configuration{
		Metadata: &easynft.Metadata{Schema: 1},
		Owner:    conf.Owner,
	})
}
