package easynft

import (
	"reflect"

	"github.com/easynft/easynft/errors"
)

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as this almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request to make a state transition. It is just the request,
// and must be validated by the Handlers. All authentication information
// is in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate performs a sanity check on the message content. It
	// returns an error for any message that cannot possibly be applied,
	// regardless of the current state.
	Validate() error

	// Path returns the message path. This is used by the Router to
	// locate the proper Handler. Must be alphanumeric [0-9A-Za-z_/]+
	Path() string
}

// Tx represents the data sent from the user. It includes the actual
// message, along with information needed to authenticate the sender,
// which is handled by the host environment before any Handler runs.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// LoadMsg extracts the message from the transaction, validates it and
// loads it into the destination. Destination must be a pointer to the
// expected message type. This is a helper to be used by handlers at the
// top of their validation cascade.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrState, "transaction without a message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	d := reflect.ValueOf(destination)
	if d.Kind() != reflect.Ptr {
		return errors.Wrapf(errors.ErrType, "destination must be a pointer, got %T", destination)
	}
	m := reflect.ValueOf(msg)
	if m.Type() != d.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	d.Elem().Set(m.Elem())
	return nil
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}
