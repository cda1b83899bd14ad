package orm

import (
	"github.com/easynft/easynft"
)

// CloneableData is an intelligent Value that can be embedded in a simple
// object to handle much of the details.
//
// Val := proto.Clone().(*MyType) is a useful way to get a copy of the
// value stored in an object.
type CloneableData interface {
	easynft.Persistent
	Validate() error
	Copy() CloneableData
}

// Object is what is stored in the bucket. Key is joined with the prefix
// to set the full key. Value is the data stored.
//
// This can be light wrapper around a protobuf-defined struct.
type Object interface {
	// Validate returns error if the object is not in a valid state to
	// save to the db (eg. field missing, out of range, ...)
	Validate() error

	Key() []byte
	Value() CloneableData

	// Clone returns an independent copy of this object.
	Clone() Object

	// SetKey may be used to update a simple obj key.
	SetKey([]byte)
}

// Reader defines an interface that allows reading objects from the db.
type Reader interface {
	Get(db easynft.ReadOnlyKVStore, key []byte) (Object, error)
}
