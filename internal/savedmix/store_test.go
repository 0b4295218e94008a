package savedmix

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mix-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) GetRaw(ctx context.Context, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	raw, ok := f.data[key]
	return raw, ok, nil
}

func (f *fakeKV) SetJSON(ctx context.Context, key string, val interface{}) error {
	if f.setErr != nil {
		return f.setErr
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func sampleMix(id int64, name string) models.SavedMix {
	return models.SavedMix{
		ID:   id,
		Name: name,
		Components: []models.MixComponent{
			{ProductCode: "A01", ProductName: "Almendras Premium", Quantity: 2, LineTotal: 20},
		},
		TotalPrice: 20,
		CreatedAt:  time.UnixMilli(id),
	}
}

func TestListAbsentKeyIsEmpty(t *testing.T) {
	store := NewStore(newFakeKV())

	mixes, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, mixes)
}

func TestListMalformedPayloadIsEmpty(t *testing.T) {
	kv := newFakeKV()
	kv.data[StoreKey] = []byte(`{"not":"a list"`)
	store := NewStore(kv)

	mixes, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, mixes)
}

func TestListSanitizesBrokenEntries(t *testing.T) {
	kv := newFakeKV()
	payload, err := json.Marshal([]models.SavedMix{
		sampleMix(1, "Valida"),
		{ID: 0, Name: "sin id"},
		{ID: 2, Name: ""},
		{ID: 3, Name: "sin componentes"},
	})
	require.NoError(t, err)
	kv.data[StoreKey] = payload
	store := NewStore(kv)

	mixes, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, mixes, 1)
	assert.Equal(t, "Valida", mixes[0].Name)
}

func TestListStoreFailurePropagates(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("connection refused")
	store := NewStore(kv)

	_, err := store.List(context.Background())
	assert.Error(t, err)
}

func TestAppendAccumulates(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, sampleMix(1, "Primera")))
	require.NoError(t, store.Append(ctx, sampleMix(2, "Segunda")))

	mixes, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, mixes, 2)
	assert.Equal(t, "Primera", mixes[0].Name)
	assert.Equal(t, "Segunda", mixes[1].Name)
}

func TestAppendOverMalformedPayloadStartsFresh(t *testing.T) {
	kv := newFakeKV()
	kv.data[StoreKey] = []byte(`garbage`)
	store := NewStore(kv)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, sampleMix(1, "Nueva")))

	mixes, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, mixes, 1)
	assert.Equal(t, "Nueva", mixes[0].Name)
}

func TestAppendWriteFailurePropagates(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("connection refused")
	store := NewStore(kv)

	err := store.Append(context.Background(), sampleMix(1, "Perdida"))
	assert.Error(t, err)
}
