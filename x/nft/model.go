/*
Package nft implements the issuance registry and the ownership ledger.

A TokenInfo describes one issuable asset class with a bounded supply. A
purchase mints an instance, a globally unique int64 derived from the
token, its class tag and the mint sequence. Ownership is tracked as one
TokenSet per account. All ownership mutations go through the Controller,
which is the only writer of TokenSet records.
*/
package nft

import (
	"encoding/binary"
	"sort"

	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
	"github.com/easynft/easynft/orm"
)

const (
	// Instance IDs encode their origin: tokenID*10^10 + classTag*10^9 +
	// sequence. Sequences stay below 10^9, class tags below 10, so IDs
	// from different tokens can never collide.
	idTokenBase = 1e10
	idClassBase = 1e9

	// MaxClassTag is the largest class tag an instance ID can encode.
	MaxClassTag = 9

	// MaxTokenID keeps every derivable instance ID within int64 range.
	MaxTokenID = 900_000_000
)

// NewInstanceID computes the unique ID of the seq-th instance minted
// against a token.
func NewInstanceID(tokenID, classTag, seq int64) int64 {
	return tokenID*idTokenBase + classTag*idClassBase + seq
}

// TokenInfo is the catalog entry for one issuable asset class.
type TokenInfo struct {
	Metadata *easynft.Metadata
	// TokenID identifies this entry. It is also the bucket key.
	TokenID int64
	// ClassTag is folded into every minted instance ID.
	ClassTag int64
	// TotalAmount is how many instances may ever be minted.
	TotalAmount int64
	// Price is charged per purchase.
	Price int64
	// TotalSupply counts instances minted so far. Monotonic.
	TotalSupply int64
	// CanBuy gates purchases. Toggled by the registry owner.
	CanBuy bool
}

var _ orm.CloneableData = (*TokenInfo)(nil)

func (t *TokenInfo) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

func (t *TokenInfo) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, t)
}

// Validate ensures the catalog entry is internally consistent.
func (t *TokenInfo) Validate() error {
	if err := t.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if t.TokenID < 1 || t.TokenID > MaxTokenID {
		return errors.Wrapf(errors.ErrInput, "token id %d out of range", t.TokenID)
	}
	if t.ClassTag < 0 || t.ClassTag > MaxClassTag {
		return errors.Wrapf(errors.ErrInput, "class tag %d out of range", t.ClassTag)
	}
	if t.TotalAmount < 1 || t.TotalAmount >= idClassBase {
		return errors.Wrapf(errors.ErrInput, "total amount %d out of range", t.TotalAmount)
	}
	if t.Price < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative price %d", t.Price)
	}
	if t.TotalSupply < 0 || t.TotalSupply > t.TotalAmount {
		return errors.Wrapf(errors.ErrState, "supply %d of %d", t.TotalSupply, t.TotalAmount)
	}
	return nil
}

func (t *TokenInfo) Copy() orm.CloneableData {
	cpy := *t
	cpy.Metadata = t.Metadata.Copy()
	return &cpy
}

// TokenSet is the ownership record of one account: the instance IDs it
// holds, kept sorted so serialization is deterministic.
type TokenSet struct {
	Metadata *easynft.Metadata
	IDs      []int64
}

var _ orm.CloneableData = (*TokenSet)(nil)

func (s *TokenSet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *TokenSet) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, s)
}

// Validate ensures IDs are strictly ascending, which doubles as a
// duplicate check.
func (s *TokenSet) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	for i := 1; i < len(s.IDs); i++ {
		if s.IDs[i-1] >= s.IDs[i] {
			return errors.Wrapf(errors.ErrState, "ids not sorted at %d", i)
		}
	}
	return nil
}

func (s *TokenSet) Copy() orm.CloneableData {
	return &TokenSet{
		Metadata: s.Metadata.Copy(),
		IDs:      append([]int64(nil), s.IDs...),
	}
}

// Has reports membership of an instance ID.
func (s *TokenSet) Has(id int64) bool {
	i := sort.Search(len(s.IDs), func(i int) bool { return s.IDs[i] >= id })
	return i < len(s.IDs) && s.IDs[i] == id
}

// Add inserts an instance ID, keeping order. Fails on duplicates.
func (s *TokenSet) Add(id int64) error {
	i := sort.Search(len(s.IDs), func(i int) bool { return s.IDs[i] >= id })
	if i < len(s.IDs) && s.IDs[i] == id {
		return errors.Wrapf(errors.ErrDuplicate, "instance %d", id)
	}
	s.IDs = append(s.IDs, 0)
	copy(s.IDs[i+1:], s.IDs[i:])
	s.IDs[i] = id
	return nil
}

// Remove drops an instance ID. Fails if absent.
func (s *TokenSet) Remove(id int64) error {
	i := sort.Search(len(s.IDs), func(i int) bool { return s.IDs[i] >= id })
	if i == len(s.IDs) || s.IDs[i] != id {
		return errors.Wrapf(ErrNotOwned, "instance %d", id)
	}
	s.IDs = append(s.IDs[:i], s.IDs[i+1:]...)
	return nil
}

// tokenKey is the big-endian bucket key of a token id, so iteration
// order matches numeric order.
func tokenKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

// TokenInfoBucket stores the issuance catalog keyed by token id.
type TokenInfoBucket struct {
	orm.Bucket
}

func NewTokenInfoBucket() TokenInfoBucket {
	// the proto must be zero valued, a seeded field would survive
	// parsing records where the codec omitted it
	proto := orm.NewSimpleObj(nil, &TokenInfo{})
	return TokenInfoBucket{Bucket: orm.NewBucket("nftinfo", proto)}
}

// Get loads a catalog entry by token id, nil if none.
func (b TokenInfoBucket) Get(db easynft.ReadOnlyKVStore, tokenID int64) (*TokenInfo, error) {
	obj, err := b.Bucket.Get(db, tokenKey(tokenID))
	if err != nil || obj == nil {
		return nil, err
	}
	return obj.Value().(*TokenInfo), nil
}

// Save writes a catalog entry under its token id.
func (b TokenInfoBucket) Save(db easynft.KVStore, t *TokenInfo) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(tokenKey(t.TokenID), t))
}

// TokenSetBucket stores ownership records keyed by account address.
type TokenSetBucket struct {
	orm.Bucket
}

func NewTokenSetBucket() TokenSetBucket {
	proto := orm.NewSimpleObj(nil, &TokenSet{})
	return TokenSetBucket{Bucket: orm.NewBucket("nftowner", proto)}
}

// Get loads the ownership record, an empty set if the account never held
// anything. An empty set is a valid state, records are never removed.
func (b TokenSetBucket) Get(db easynft.ReadOnlyKVStore, addr easynft.Address) (*TokenSet, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	obj, err := b.Bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return &TokenSet{Metadata: &easynft.Metadata{Schema: 1}}, nil
	}
	return obj.Value().(*TokenSet), nil
}

// Save writes the ownership record of this account.
func (b TokenSetBucket) Save(db easynft.KVStore, addr easynft.Address, set *TokenSet) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(addr, set))
}
