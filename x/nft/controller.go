package nft

import (
	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
)

// Controller is the only writer of ownership records. It performs no
// authentication, callers must authorize the source account before
// calling in. The marketplace settles escrow through this controller
// rather than touching ownership records itself.
type Controller struct {
	owners TokenSetBucket
}

// NewController returns a controller over the standard ownership bucket.
func NewController() Controller {
	return Controller{owners: NewTokenSetBucket()}
}

// MoveTokens moves a batch of instances from src to dst. The batch is
// all-or-nothing: if any instance is not held by src, nothing moves and
// ErrNotOwned names the first missing one.
func (c Controller) MoveTokens(db easynft.KVStore, src, dst easynft.Address, ids []int64) error {
	from, err := c.owners.Get(db, src)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if !from.Has(id) {
			return errors.Wrapf(ErrNotOwned, "instance %d not held by %s", id, src)
		}
	}

	to, err := c.owners.Get(db, dst)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := from.Remove(id); err != nil {
			return err
		}
		if err := to.Add(id); err != nil {
			return err
		}
	}
	if err := c.owners.Save(db, src, from); err != nil {
		return err
	}
	return c.owners.Save(db, dst, to)
}

// BurnToken removes one instance from its owner's set. The instance ID
// is never reissued, mint sequences only grow.
func (c Controller) BurnToken(db easynft.KVStore, owner easynft.Address, id int64) error {
	set, err := c.owners.Get(db, owner)
	if err != nil {
		return err
	}
	if err := set.Remove(id); err != nil {
		return err
	}
	return c.owners.Save(db, owner, set)
}

// IssueToken credits a freshly minted instance to an account.
func (c Controller) IssueToken(db easynft.KVStore, dest easynft.Address, id int64) error {
	set, err := c.owners.Get(db, dest)
	if err != nil {
		return err
	}
	if err := set.Add(id); err != nil {
		return err
	}
	return c.owners.Save(db, dest, set)
}

// Tokens returns all instance IDs held by this account, in ascending
// order. An account that never held anything yields an empty slice.
func (c Controller) Tokens(db easynft.ReadOnlyKVStore, addr easynft.Address) ([]int64, error) {
	set, err := c.owners.Get(db, addr)
	if err != nil {
		return nil, err
	}
	return set.IDs, nil
}
