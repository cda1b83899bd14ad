/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets. Each bucket
contains only one type of object, has a primary key and supports queries
for one element as well as iteration over a prefix.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
)

const (
	// SeqID is a constant to use to get a default ID sequence.
	SeqID = "id"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data as well as references to
// sequences.
//
// This is a generic building block that should generally be embedded in a
// type-safe wrapper to ensure all data is the same type. Bucket is a
// prefixed subspace of the DB, and proto defines the default Model that
// all elements of this bucket share.
type Bucket struct {
	name   string
	prefix []byte
	proto  Object
}

var _ easynft.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data.
func NewBucket(name string, proto Object) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this Bucket and all indexes. You can define a name
// here for queries, which is different than the bucket name used to
// prefix the data.
func (b Bucket) Register(name string, r easynft.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter.
func (b Bucket) Query(db easynft.ReadOnlyKVStore, mod string, data []byte) ([]easynft.Model, error) {
	switch mod {
	case easynft.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []easynft.Model{{Key: key, Value: value}}, nil
	case easynft.PrefixQueryMod:
		prefix := b.DBKey(data)
		return queryPrefix(db, prefix)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %q", mod)
	}
}

// DBKey is the full key we store in the db, including prefix. We copy
// into a new array rather than use append, as we don't want consecutive
// calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element.
func (b Bucket) Get(db easynft.ReadOnlyKVStore, key []byte) (Object, error) {
	dbkey := b.DBKey(key)
	bz, err := db.Get(dbkey)
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Parse takes a key and value data and reconstructs the data this Bucket
// would return. Used internally as part of Get. It is exposed mainly as a
// test helper, but can work for any code that wants to parse.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "parsing %s: %v", b.name, err)
	}
	obj.SetKey(key)
	if err := obj.Value().Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid stored %s", b.name)
	}
	return obj, nil
}

// Save will write a model, it must be of the same type as proto.
func (b Bucket) Save(db easynft.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}

	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete will remove the value at a key.
func (b Bucket) Delete(db easynft.KVStore, key []byte) error {
	dbkey := b.DBKey(key)
	return db.Delete(dbkey)
}

// Sequence returns a Sequence by name.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// queryPrefix returns all models with the given prefix.
func queryPrefix(db easynft.ReadOnlyKVStore, prefix []byte) ([]easynft.Model, error) {
	iter, err := db.Iterator(prefix, prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []easynft.Model
	for iter.Valid() {
		out = append(out, easynft.Model{
			Key:   append([]byte(nil), iter.Key()...),
			Value: append([]byte(nil), iter.Value()...),
		})
		if err := iter.Next(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// prefixRange gives the first key that is no longer part of the prefix,
// to be used as an exclusive iteration end. Returns nil for a prefix of
// all 0xff bytes, meaning iterate to the end.
func prefixRange(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
