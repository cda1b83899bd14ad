/*
Package market implements bundle sales of ledger instances.

A seller groups up to nine instances into a Sale at one price. Creation
moves the bundle into the market's own escrow account, so a listed
instance cannot be spent twice. A sale ends exactly once, cancelled
(bundle returned) or fulfilled (payment to seller, bundle to buyer).

The market never writes ownership records itself. Every escrow movement
goes through the ledger controller, keeping ownership invariants in one
place.
*/
package market

import (
	"sort"

	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
	"github.com/easynft/easynft/orm"
)

const (
	// MaxBundleSize caps how many instances one sale may carry.
	MaxBundleSize = 9

	// saleIDBase offsets all sale ids, so they cannot be mistaken for
	// instance ids in logs and notifications.
	saleIDBase = 2_000_000_400
)

// EscrowAddress is the account holding every listed bundle while its
// sale is open. Derived from a fixed condition, no key exists for it, so
// only this extension can move assets out.
func EscrowAddress() easynft.Address {
	return easynft.NewCondition("market", "escrow", []byte("bundles")).Address()
}

// Sale is one open listing: a bundle of instances at a single price.
type Sale struct {
	ID    int64
	Price int64
	IDs   []int64
}

// Validate ensures the bundle is well formed.
func (s *Sale) Validate() error {
	if s.ID < saleIDBase {
		return errors.Wrapf(errors.ErrInput, "sale id %d out of range", s.ID)
	}
	if s.Price < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative price %d", s.Price)
	}
	if n := len(s.IDs); n < 1 || n > MaxBundleSize {
		return errors.Wrapf(errors.ErrInput, "bundle size %d outside 1..%d", n, MaxBundleSize)
	}
	return nil
}

// Copy returns an independent copy of the sale.
func (s *Sale) Copy() *Sale {
	return &Sale{
		ID:    s.ID,
		Price: s.Price,
		IDs:   append([]int64(nil), s.IDs...),
	}
}

// SaleBook is the record of one seller: all its open sales, sorted by id
// so serialization is deterministic.
type SaleBook struct {
	Metadata *easynft.Metadata
	Sales    []*Sale
}

var _ orm.CloneableData = (*SaleBook)(nil)

func (b *SaleBook) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(b)
}

func (b *SaleBook) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, b)
}

func (b *SaleBook) Validate() error {
	if err := b.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	for i, s := range b.Sales {
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, "sale #%d", i)
		}
		if i > 0 && b.Sales[i-1].ID >= s.ID {
			return errors.Wrapf(errors.ErrState, "sales not sorted at %d", i)
		}
	}
	return nil
}

func (b *SaleBook) Copy() orm.CloneableData {
	sales := make([]*Sale, len(b.Sales))
	for i, s := range b.Sales {
		sales[i] = s.Copy()
	}
	return &SaleBook{
		Metadata: b.Metadata.Copy(),
		Sales:    sales,
	}
}

// Get returns the sale with this id, nil if absent.
func (b *SaleBook) Get(id int64) *Sale {
	i := sort.Search(len(b.Sales), func(i int) bool { return b.Sales[i].ID >= id })
	if i < len(b.Sales) && b.Sales[i].ID == id {
		return b.Sales[i]
	}
	return nil
}

// Add inserts a sale, keeping order.
func (b *SaleBook) Add(s *Sale) error {
	i := sort.Search(len(b.Sales), func(i int) bool { return b.Sales[i].ID >= s.ID })
	if i < len(b.Sales) && b.Sales[i].ID == s.ID {
		return errors.Wrapf(errors.ErrDuplicate, "sale %d", s.ID)
	}
	b.Sales = append(b.Sales, nil)
	copy(b.Sales[i+1:], b.Sales[i:])
	b.Sales[i] = s
	return nil
}

// Remove drops the sale with this id.
func (b *SaleBook) Remove(id int64) error {
	i := sort.Search(len(b.Sales), func(i int) bool { return b.Sales[i].ID >= id })
	if i == len(b.Sales) || b.Sales[i].ID != id {
		return errors.Wrapf(ErrNoSale, "sale %d", id)
	}
	b.Sales = append(b.Sales[:i], b.Sales[i+1:]...)
	return nil
}

// SaleBookBucket stores sale books keyed by seller address.
type SaleBookBucket struct {
	orm.Bucket
}

func NewSaleBookBucket() SaleBookBucket {
	proto := orm.NewSimpleObj(nil, &SaleBook{})
	return SaleBookBucket{Bucket: orm.NewBucket("sales", proto)}
}

// Get loads the seller's book, an empty one if it never listed anything.
func (b SaleBookBucket) Get(db easynft.ReadOnlyKVStore, seller easynft.Address) (*SaleBook, error) {
	if err := seller.Validate(); err != nil {
		return nil, err
	}
	obj, err := b.Bucket.Get(db, seller)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return &SaleBook{Metadata: &easynft.Metadata{Schema: 1}}, nil
	}
	return obj.Value().(*SaleBook), nil
}

// Save writes the seller's book.
func (b SaleBookBucket) Save(db easynft.KVStore, seller easynft.Address, book *SaleBook) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(seller, book))
}

// Sales returns all open sales of this seller.
func (b SaleBookBucket) Sales(db easynft.ReadOnlyKVStore, seller easynft.Address) ([]*Sale, error) {
	book, err := b.Get(db, seller)
	if err != nil {
		return nil, err
	}
	return book.Sales, nil
}

// saleSequence allocates sale ids from one global counter shared across
// all sellers.
func saleSequence() orm.Sequence {
	return orm.NewSequence("sales", orm.SeqID)
}
