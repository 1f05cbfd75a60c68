// AngelaMos | 2026
// service_test.go

package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/petshop-backend/internal/catalog"
	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/middleware"
)

type fakeCatalog struct {
	mu       sync.Mutex
	products map[int64]catalog.Product
	err      error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[int64]catalog.Product{
		1: {ID: 1, Name: "Ração Premium Cães", Price: decimal.RequireFromString("129.90")},
		2: {ID: 2, Name: "Brinquedo Mordedor", Price: decimal.RequireFromString("29.90")},
	}}
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (*catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &p, nil
}

func (f *fakeCatalog) setPrice(id int64, price string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.products[id]
	p.Price = decimal.RequireFromString(price)
	p.Name = "renamed"
	f.products[id] = p
}

type memOrders struct {
	mu     sync.Mutex
	orders []Order
	err    error
}

func (m *memOrders) Create(_ context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	o.ID = int64(len(m.orders) + 1)
	stored := *o
	stored.Items = append([]Item(nil), o.Items...)
	m.orders = append(m.orders, stored)
	return nil
}

func (m *memOrders) List(_ context.Context, userID *int64) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Order{}
	for i := len(m.orders) - 1; i >= 0; i-- {
		o := m.orders[i]
		if userID != nil && (o.UserID == nil || *o.UserID != *userID) {
			continue
		}
		o.Items = nil
		out = append(out, o)
	}
	return out, nil
}

func (m *memOrders) GetByID(_ context.Context, id int64) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id < 1 || int(id) > len(m.orders) {
		return nil, core.ErrNotFound
	}
	o := m.orders[id-1]
	return &o, nil
}

func (m *memOrders) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders), nil
}

func (m *memOrders) Revenue(context.Context) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sum := decimal.Zero
	for _, o := range m.orders {
		sum = sum.Add(o.Total)
	}
	return sum, nil
}

var (
	ana   = &middleware.Identity{UserID: 7, Role: "user", Name: "Ana"}
	bruno = &middleware.Identity{UserID: 8, Role: "user", Name: "Bruno"}
	admin = &middleware.Identity{UserID: 1, Role: "admin", Name: "Admin User"}
)

func cart(lines ...LineRequest) CreateOrderRequest {
	return CreateOrderRequest{CustomerName: "Ana", Items: lines}
}

func TestAssembleComputesExactTotal(t *testing.T) {
	svc := NewService(&memOrders{}, newFakeCatalog(), nil)

	order, err := svc.Assemble(context.Background(), nil, cart(
		LineRequest{ProductID: 1, Quantity: 2},
		LineRequest{ProductID: 2, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, "289.70", order.Total.StringFixed(2))
	assert.Equal(t, StatusPending, order.Status)
	assert.Nil(t, order.UserID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Ração Premium Cães", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestAssembleSkipsMissingProducts(t *testing.T) {
	metrics := core.NewMetrics()
	svc := NewService(&memOrders{}, newFakeCatalog(), metrics)

	order, err := svc.Assemble(context.Background(), ana, cart(
		LineRequest{ProductID: 1, Quantity: 1},
		LineRequest{ProductID: 99, Quantity: 5},
	))
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(1), order.Items[0].ProductID)
	assert.Equal(t, "129.90", order.Total.StringFixed(2))

	families, err := metrics.Registry.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range families {
		if mf.GetName() == "petshop_order_lines_skipped_total" {
			found = true
			assert.InDelta(t, 1, mf.GetMetric()[0].GetCounter().GetValue(), 0)
		}
	}
	assert.True(t, found)
}

func TestAssembleSetsUserID(t *testing.T) {
	svc := NewService(&memOrders{}, newFakeCatalog(), nil)

	order, err := svc.Assemble(context.Background(), ana, cart(
		LineRequest{ProductID: 2, Quantity: 3},
	))
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, int64(7), *order.UserID)
}

func TestAssembleLookupErrorPropagates(t *testing.T) {
	products := newFakeCatalog()
	products.err = errors.New("connection reset")
	repo := &memOrders{}
	svc := NewService(repo, products, nil)

	_, err := svc.Assemble(context.Background(), nil, cart(
		LineRequest{ProductID: 1, Quantity: 1},
	))
	require.Error(t, err)

	n, _ := repo.Count(context.Background())
	assert.Zero(t, n)
}

func TestAssembleRepositoryErrorPropagates(t *testing.T) {
	repo := &memOrders{err: errors.New("insert order item 1: deadlock")}
	svc := NewService(repo, newFakeCatalog(), nil)

	_, err := svc.Assemble(context.Background(), nil, cart(
		LineRequest{ProductID: 1, Quantity: 1},
	))
	assert.ErrorContains(t, err, "deadlock")
}

func TestItemsAreSnapshots(t *testing.T) {
	products := newFakeCatalog()
	repo := &memOrders{}
	svc := NewService(repo, products, nil)

	placed, err := svc.Assemble(context.Background(), ana, cart(
		LineRequest{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)

	products.setPrice(1, "10.00")

	got, err := svc.Get(context.Background(), ana, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, "129.90", got.Items[0].Price.StringFixed(2))
	assert.Equal(t, "Ração Premium Cães", got.Items[0].ProductName)
	assert.Equal(t, "129.90", got.Total.StringFixed(2))
}

func TestListFiltersByOwnerUnlessAdmin(t *testing.T) {
	repo := &memOrders{}
	svc := NewService(repo, newFakeCatalog(), nil)
	ctx := context.Background()

	for _, who := range []*middleware.Identity{ana, bruno, nil} {
		_, err := svc.Assemble(ctx, who, cart(LineRequest{ProductID: 2, Quantity: 1}))
		require.NoError(t, err)
	}

	own, err := svc.List(ctx, ana)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, int64(7), *own[0].UserID)

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int64(3), all[0].ID)
}

func TestGetHidesOtherUsersOrders(t *testing.T) {
	svc := NewService(&memOrders{}, newFakeCatalog(), nil)
	ctx := context.Background()

	placed, err := svc.Assemble(ctx, ana, cart(LineRequest{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)

	_, err = svc.Get(ctx, bruno, placed.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.Get(ctx, admin, placed.ID)
	assert.NoError(t, err)

	guest, err := svc.Assemble(ctx, nil, cart(LineRequest{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	_, err = svc.Get(ctx, ana, guest.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
