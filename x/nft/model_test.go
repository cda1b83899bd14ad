package nft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
)

func TestNewInstanceID(t *testing.T) {
	assert.Equal(t, int64(10_003_000_000_001), NewInstanceID(1000, 3, 1))
	assert.Equal(t, int64(10_000_000_000_042), NewInstanceID(1000, 0, 42))

	// sequences from different tokens never collide
	assert.NotEqual(t,
		NewInstanceID(1, 0, 999_999_999),
		NewInstanceID(1, 1, 0))
}

func TestTokenSetMembership(t *testing.T) {
	set := TokenSet{Metadata: &easynft.Metadata{Schema: 1}}

	require.NoError(t, set.Add(7))
	require.NoError(t, set.Add(3))
	require.NoError(t, set.Add(5))
	assert.Equal(t, []int64{3, 5, 7}, set.IDs)
	require.NoError(t, set.Validate())

	err := set.Add(5)
	assert.True(t, errors.ErrDuplicate.Is(err))

	assert.True(t, set.Has(5))
	require.NoError(t, set.Remove(5))
	assert.False(t, set.Has(5))

	err = set.Remove(5)
	assert.True(t, ErrNotOwned.Is(err))
}

func TestTokenInfoValidate(t *testing.T) {
	base := TokenInfo{
		Metadata:    &easynft.Metadata{Schema: 1},
		TokenID:     1000,
		ClassTag:    1,
		TotalAmount: 10,
		Price:       5,
	}

	cases := map[string]struct {
		mutate  func(*TokenInfo)
		wantErr *errors.Error
	}{
		"valid":             {func(*TokenInfo) {}, nil},
		"missing metadata":  {func(i *TokenInfo) { i.Metadata = nil }, errors.ErrMetadata},
		"zero token id":     {func(i *TokenInfo) { i.TokenID = 0 }, errors.ErrInput},
		"huge token id":     {func(i *TokenInfo) { i.TokenID = MaxTokenID + 1 }, errors.ErrInput},
		"bad class tag":     {func(i *TokenInfo) { i.ClassTag = 10 }, errors.ErrInput},
		"zero total":        {func(i *TokenInfo) { i.TotalAmount = 0 }, errors.ErrInput},
		"negative price":    {func(i *TokenInfo) { i.Price = -1 }, errors.ErrAmount},
		"supply over total": {func(i *TokenInfo) { i.TotalSupply = 11 }, errors.ErrState},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			info := base
			info.Metadata = base.Metadata.Copy()
			tc.mutate(&info)
			err := info.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
			}
		})
	}
}
