package store

import (
	"bytes"

	"github.com/google/btree"
)

// Items stored in our btrees. We enforce all data implements keyer so we
// can compare nicely.

type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item and may be used for queries or
// embedded in data to store.
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first.
//
// Panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

// deletedItem marks a key that was removed in this layer, shadowing any
// value a backing store may hold.
type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}

// bkeyLess is used to change how ranges are matched: use as a key, so an
// exact match is just above this, anything below is below.
type bkeyLess struct {
	key []byte
}

var _ keyer = bkeyLess{}
var _ btree.Item = bkeyLess{}

func (k bkeyLess) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater or equal to first.
func (k bkeyLess) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) <= 0
}

// ascendRange collects all items within [start, end) in ascending order.
// The range is loaded eagerly, which is fine for the record sizes we deal
// with and keeps iteration free of goroutines.
func ascendRange(bt *btree.BTree, start, end []byte) []btree.Item {
	var out []btree.Item
	insert := func(item btree.Item) bool {
		out = append(out, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return out
}

// descendRange collects all items within [start, end) in descending
// order. The bkeyLess pivots sit just below their key, which turns the
// btree's (greaterThan, lessOrEqual] range into ours.
func descendRange(bt *btree.BTree, start, end []byte) []btree.Item {
	var out []btree.Item
	insert := func(item btree.Item) bool {
		out = append(out, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Descend(insert)
	case start == nil:
		bt.DescendLessOrEqual(bkeyLess{end}, insert)
	case end == nil:
		bt.DescendGreaterThan(bkeyLess{start}, insert)
	default:
		bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
	}
	return out
}
