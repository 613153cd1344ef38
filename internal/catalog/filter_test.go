package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusmosca/store-backend/internal/apperr"
)

func TestParseProductFilter_Defaults(t *testing.T) {
	filter, err := ParseProductFilter("", "", "")

	require.NoError(t, err)
	assert.Nil(t, filter.CategoryID)
	assert.Equal(t, DefaultTake, filter.Take)
	assert.Equal(t, 0, filter.Skip)
}

func TestParseProductFilter_Values(t *testing.T) {
	filter, err := ParseProductFilter("3", "25", "50")

	require.NoError(t, err)
	require.NotNil(t, filter.CategoryID)
	assert.Equal(t, uint(3), *filter.CategoryID)
	assert.Equal(t, 25, filter.Take)
	assert.Equal(t, 50, filter.Skip)
}

func TestParseProductFilter_Invalid(t *testing.T) {
	_, err := ParseProductFilter("abc", "0", "-1")

	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Len(t, apperr.Messages(err), 3)
}
