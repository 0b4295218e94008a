package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownProduct(t *testing.T) {
	facts, ok := Lookup("A01")
	require.True(t, ok)
	assert.Equal(t, 579.0, facts.Calories)
	assert.Contains(t, facts.Vitamins, "E")
	assert.Contains(t, facts.Minerals, "Magnesio")
}

func TestLookupUnknownProduct(t *testing.T) {
	_, ok := Lookup("Z99")
	assert.False(t, ok)
}
