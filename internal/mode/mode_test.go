package mode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeStringGetter struct {
	value string
	err   error
}

func (f *fakeStringGetter) GetString(ctx context.Context, key string) (string, error) {
	return f.value, f.err
}

func TestFromValue(t *testing.T) {
	assert.Equal(t, Client, FromValue("client"))
	assert.Equal(t, Staff, FromValue(""))
	assert.Equal(t, Staff, FromValue("staff"))
	assert.Equal(t, Staff, FromValue("Client"))
	assert.Equal(t, Staff, FromValue("anything else"))
}

func TestDetectorReadsFlag(t *testing.T) {
	d := NewDetector(&fakeStringGetter{value: "client"})
	assert.Equal(t, Client, d.Current(context.Background()))

	d = NewDetector(&fakeStringGetter{value: ""})
	assert.Equal(t, Staff, d.Current(context.Background()))
}

func TestDetectorFallsBackToStaffOnError(t *testing.T) {
	d := NewDetector(&fakeStringGetter{err: errors.New("connection refused")})
	assert.Equal(t, Staff, d.Current(context.Background()))
}
