package cart

import (
	"context"
	"encoding/json"
)

type Item struct {
	ProductID uint    `json:"productId"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type snapshot struct {
	Items []Item `json:"items"`
}

// Persistence is the port a store saves its snapshot through. Load returns
// nil bytes when no snapshot exists yet.
type Persistence interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Store holds pending line items. It is a plain data structure; durability is
// delegated entirely to the injected persistence port. A store restored from a
// corrupt or unreadable snapshot starts empty rather than failing.
type Store struct {
	items []Item
	port  Persistence
}

func NewStore(ctx context.Context, port Persistence) *Store {
	s := &Store{port: port}

	data, err := port.Load(ctx)
	if err != nil || len(data) == 0 {
		return s
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return s
	}
	for _, it := range snap.Items {
		if it.Quantity < 1 || it.UnitPrice < 0 {
			return &Store{port: port}
		}
	}
	s.items = snap.Items
	return s
}

// AddItem merges with an existing line for the same product by summing
// quantities, otherwise appends. Quantities below one count as one.
func (s *Store) AddItem(ctx context.Context, productID uint, unitPrice float64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity += quantity
			return s.persist(ctx)
		}
	}
	s.items = append(s.items, Item{ProductID: productID, UnitPrice: unitPrice, Quantity: quantity})
	return s.persist(ctx)
}

// RemoveItem drops the line for productID. Removing an absent product is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID uint) error {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.items = nil
	return s.persist(ctx)
}

// Total is derived from the current items on every call, never stored.
func (s *Store) Total() float64 {
	var total float64
	for _, it := range s.items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}

// Items returns a copy of the current lines, usable as a checkout snapshot.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(snapshot{Items: s.items})
	if err != nil {
		return err
	}
	return s.port.Save(ctx, data)
}
