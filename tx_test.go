package easynft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easynft/easynft"
	"github.com/easynft/easynft/easynfttest"
	"github.com/easynft/easynft/errors"
)

type pingMsg struct {
	Valid bool
}

var _ easynft.Msg = (*pingMsg)(nil)

func (m *pingMsg) Marshal() ([]byte, error) { return nil, nil }
func (m *pingMsg) Unmarshal([]byte) error   { return nil }
func (m *pingMsg) Path() string             { return "test/ping" }
func (m *pingMsg) Validate() error {
	if !m.Valid {
		return errors.Wrap(errors.ErrMsg, "invalid ping")
	}
	return nil
}

type pongMsg struct{ pingMsg }

func TestLoadMsg(t *testing.T) {
	tx := &easynfttest.Tx{Msg: &pingMsg{Valid: true}}

	var dest pingMsg
	require.NoError(t, easynft.LoadMsg(tx, &dest))
	assert.True(t, dest.Valid)

	// message validation runs during load
	tx = &easynfttest.Tx{Msg: &pingMsg{Valid: false}}
	err := easynft.LoadMsg(tx, &dest)
	assert.True(t, errors.ErrMsg.Is(err))

	// type mismatch is detected
	tx = &easynfttest.Tx{Msg: &pingMsg{Valid: true}}
	var wrong pongMsg
	err = easynft.LoadMsg(tx, &wrong)
	assert.True(t, errors.ErrType.Is(err))

	// a transaction without a message cannot be loaded
	tx = &easynfttest.Tx{}
	err = easynft.LoadMsg(tx, &dest)
	assert.True(t, errors.ErrState.Is(err))
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/ping", easynft.GetPath(&easynfttest.Tx{Msg: &pingMsg{}}))
	assert.Equal(t, "(missing)", easynft.GetPath(&easynfttest.Tx{}))
}
