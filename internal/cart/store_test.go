package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memoryPersistence struct {
	data    []byte
	loadErr error
	saveErr error
}

func (m *memoryPersistence) Load(ctx context.Context) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data, nil
}

func (m *memoryPersistence) Save(ctx context.Context, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = data
	return nil
}

func TestStore_AddItemMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, &memoryPersistence{})

	assert.NoError(t, store.AddItem(ctx, 1, 10, 2))
	assert.NoError(t, store.AddItem(ctx, 1, 10, 3))

	items := store.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestStore_AddItemDefaultsQuantityToOne(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, &memoryPersistence{})

	assert.NoError(t, store.AddItem(ctx, 1, 10, 0))

	items := store.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_RemoveItem(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, &memoryPersistence{})
	assert.NoError(t, store.AddItem(ctx, 1, 10, 1))
	assert.NoError(t, store.AddItem(ctx, 2, 5, 1))

	assert.NoError(t, store.RemoveItem(ctx, 1))
	assert.Len(t, store.Items(), 1)

	// Removing an absent product is a no-op.
	assert.NoError(t, store.RemoveItem(ctx, 99))
	assert.Len(t, store.Items(), 1)
}

func TestStore_TotalIsRecomputable(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, &memoryPersistence{})

	assert.Equal(t, float64(0), store.Total())

	assert.NoError(t, store.AddItem(ctx, 1, 10, 2))
	assert.NoError(t, store.AddItem(ctx, 2, 2.5, 4))
	assert.Equal(t, float64(30), store.Total())

	// Repeated add/remove leaves no drift: the total always matches a manual
	// sum over the current items.
	assert.NoError(t, store.RemoveItem(ctx, 2))
	assert.NoError(t, store.AddItem(ctx, 2, 2.5, 4))
	var manual float64
	for _, it := range store.Items() {
		manual += it.UnitPrice * float64(it.Quantity)
	}
	assert.Equal(t, manual, store.Total())

	assert.NoError(t, store.Clear(ctx))
	assert.Equal(t, float64(0), store.Total())
}

func TestStore_SnapshotRoundtrip(t *testing.T) {
	ctx := context.Background()
	port := &memoryPersistence{}

	store := NewStore(ctx, port)
	assert.NoError(t, store.AddItem(ctx, 1, 9.99, 2))
	assert.NoError(t, store.AddItem(ctx, 2, 4, 1))

	restored := NewStore(ctx, port)
	assert.Equal(t, store.Items(), restored.Items())
	assert.Equal(t, store.Total(), restored.Total())
}

func TestStore_CorruptSnapshotFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		port Persistence
	}{
		{name: "garbage bytes", port: &memoryPersistence{data: []byte("{not json")}},
		{name: "invalid item values", port: &memoryPersistence{data: []byte(`{"items":[{"productId":1,"unitPrice":-5,"quantity":0}]}`)}},
		{name: "load failure", port: &memoryPersistence{loadErr: errors.New("store unavailable")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(ctx, tt.port)
			assert.Equal(t, 0, store.Len())
			assert.Equal(t, float64(0), store.Total())
		})
	}
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, &memoryPersistence{})
	assert.NoError(t, store.AddItem(ctx, 1, 10, 1))

	snapshot := store.Items()
	snapshot[0].Quantity = 99

	assert.Equal(t, 1, store.Items()[0].Quantity)
}
