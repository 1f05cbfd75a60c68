// AngelaMos | 2026
// fakes_test.go

package catalog

import (
	"context"
	"sync"

	"github.com/carterperez-dev/petshop-backend/internal/core"
)

type memProducts struct {
	mu     sync.Mutex
	rows   map[int64]Product
	nextID int64
	calls  int
}

func newMemProducts(seed ...Product) *memProducts {
	m := &memProducts{rows: map[int64]Product{}}
	for _, p := range seed {
		m.nextID++
		p.ID = m.nextID
		m.rows[p.ID] = p
	}
	return m
}

func (m *memProducts) touched() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *memProducts) List(_ context.Context, category string) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	out := []Product{}
	for id := int64(1); id <= m.nextID; id++ {
		p, ok := m.rows[id]
		if !ok || (category != "" && p.Category != category) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) GetByID(_ context.Context, id int64) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	p, ok := m.rows[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &p, nil
}

func (m *memProducts) Create(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	m.nextID++
	p.ID = m.nextID
	m.rows[p.ID] = *p
	return nil
}

func (m *memProducts) Update(
	_ context.Context,
	id int64,
	patch ProductPatch,
) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	p, ok := m.rows[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	m.rows[id] = p
	return &p, nil
}

func (m *memProducts) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	delete(m.rows, id)
	return nil
}

func (m *memProducts) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

type memServices struct {
	mu   sync.Mutex
	rows []PetService
}

func (m *memServices) List(context.Context) ([]PetService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PetService{}, m.rows...), nil
}

func (m *memServices) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

func (m *memServices) GetByID(_ context.Context, id int64) (*PetService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memServices) Create(_ context.Context, s *PetService) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *s)
	return nil
}
