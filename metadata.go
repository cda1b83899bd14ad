package easynft

import (
	"github.com/easynft/easynft/errors"
)

// Metadata is carried by every persistent entity. The schema version
// decouples the stored layout from the in-memory representation: a record
// written with a newer schema than the code understands must be rejected
// on load instead of being silently misread.
type Metadata struct {
	Schema uint32
}

// Validate ensures a schema version was set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be greater than zero")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when
// implementing orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
