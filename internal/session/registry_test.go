package session

import (
	"testing"

	"mix-service/internal/catalog"
	"mix-service/internal/designer"
	"mix-service/internal/mode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Len())

	d := designer.New(catalog.NewSnapshot(nil), nil, nil, mode.Staff)
	r.Put("s1", d)

	got, ok := r.Get("s1")
	require.True(t, ok)
	assert.Same(t, d, got)
	assert.Equal(t, 1, r.Len())

	_, ok = r.Get("missing")
	assert.False(t, ok)

	r.Remove("s1")
	assert.Equal(t, 0, r.Len())
}

func TestRegistryForEach(t *testing.T) {
	r := NewRegistry()
	r.Put("a", designer.New(catalog.NewSnapshot(nil), nil, nil, mode.Staff))
	r.Put("b", designer.New(catalog.NewSnapshot(nil), nil, nil, mode.Staff))

	count := 0
	r.ForEach(func(d *designer.Designer) {
		d.SetMode(mode.Client)
		count++
	})
	assert.Equal(t, 2, count)

	got, _ := r.Get("a")
	assert.Equal(t, mode.Client, got.Mode())
}
