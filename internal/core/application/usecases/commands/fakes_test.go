package commands_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/courier"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/model/payment"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// In-memory repositories backing handler tests. They keep aggregates in maps
// and mimic the persistence contracts, including the split between aggregate
// saves and atomic workload counters.

type fakeOrderRepository struct {
	orders map[string]*order.Order
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: make(map[string]*order.Order)}
}

func (f *fakeOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	key := aggregate.ID().String()
	if _, ok := f.orders[key]; ok {
		return errs.NewConflictError("order already exists")
	}
	f.orders[key] = aggregate
	return nil
}

func (f *fakeOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	key := aggregate.ID().String()
	if _, ok := f.orders[key]; !ok {
		return errs.NewNotFoundError("orderID", key)
	}
	f.orders[key] = aggregate
	return nil
}

func (f *fakeOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := f.orders[id.String()]
	if !ok {
		return nil, errs.NewNotFoundError("orderID", id.String())
	}
	return o, nil
}

func (f *fakeOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return f.Get(ctx, id)
}

func (f *fakeOrderRepository) GetHallOrders(_ context.Context) ([]*order.Order, error) {
	hall := make([]*order.Order, 0)
	for _, o := range f.orders {
		if o.Status() == order.StatusPaid && o.PayStatus() == order.PayPaid && o.Courier() == nil {
			hall = append(hall, o)
		}
	}
	sort.Slice(hall, func(i, j int) bool { return hall[i].CreatedAt().Before(hall[j].CreatedAt()) })
	return hall, nil
}

func (f *fakeOrderRepository) GetStaleUnpaid(_ context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0)
	for _, o := range f.orders {
		if o.Status() == order.StatusCreated && o.PayStatus() == order.PayUnpaid &&
			!o.CreatedAt().After(cutoff) {
			ids = append(ids, o.ID())
		}
	}
	return ids, nil
}

func (f *fakeOrderRepository) GetStalePaidUnassigned(_ context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0)
	for _, o := range f.orders {
		if o.Status() == order.StatusPaid && o.PayStatus() == order.PayPaid &&
			o.Courier() == nil && o.PaidAt() != nil && !o.PaidAt().After(cutoff) {
			ids = append(ids, o.ID())
		}
	}
	return ids, nil
}

type fakeCourierRepository struct {
	couriers map[string]*courier.Courier
	loads    map[string]int
	ids      []kernel.UUID
}

func newFakeCourierRepository() *fakeCourierRepository {
	return &fakeCourierRepository{
		couriers: make(map[string]*courier.Courier),
		loads:    make(map[string]int),
	}
}

func (f *fakeCourierRepository) Add(_ context.Context, c *courier.Courier) error {
	key := c.ID().String()
	if _, ok := f.couriers[key]; ok {
		return errs.NewConflictError("courier already exists")
	}
	f.couriers[key] = c
	f.loads[key] = c.CurrentLoad()
	f.ids = append(f.ids, c.ID())
	return nil
}

// Update stores everything except the workload, which only the atomic
// counters touch.
func (f *fakeCourierRepository) Update(_ context.Context, c *courier.Courier) error {
	key := c.ID().String()
	if _, ok := f.couriers[key]; !ok {
		return errs.NewNotFoundError("courierID", key)
	}
	f.couriers[key] = c
	return nil
}

func (f *fakeCourierRepository) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	c, ok := f.couriers[id.String()]
	if !ok {
		return nil, errs.NewNotFoundError("courierID", id.String())
	}
	return courier.RestoreCourier(c.ID(), c.Name(), c.Phone(), c.Status(),
		f.loads[id.String()], c.Location(), c.LocationUpdatedAt())
}

func (f *fakeCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	all := make([]*courier.Courier, 0, len(f.ids))
	for _, id := range f.ids {
		c, err := f.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		all = append(all, c)
	}
	return all, nil
}

func (f *fakeCourierRepository) GetAssignable(ctx context.Context) ([]*courier.Courier, error) {
	all, err := f.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	pool := make([]*courier.Courier, 0, len(all))
	for _, c := range all {
		if c.IsActive() {
			pool = append(pool, c)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].CurrentLoad() != pool[j].CurrentLoad() {
			return pool[i].CurrentLoad() < pool[j].CurrentLoad()
		}
		return pool[i].ID().String() < pool[j].ID().String()
	})
	return pool, nil
}

func (f *fakeCourierRepository) IncrementLoad(_ context.Context, id kernel.UUID) error {
	key := id.String()
	if _, ok := f.couriers[key]; !ok {
		return errs.NewNotFoundError("courierID", key)
	}
	f.loads[key]++
	return nil
}

func (f *fakeCourierRepository) DecrementLoad(_ context.Context, id kernel.UUID) error {
	key := id.String()
	if _, ok := f.couriers[key]; !ok {
		return nil
	}
	if f.loads[key] > 0 {
		f.loads[key]--
	}
	return nil
}

type fakeLedgerRepository struct {
	entries []*payment.LedgerEntry
}

func newFakeLedgerRepository() *fakeLedgerRepository {
	return &fakeLedgerRepository{}
}

func (f *fakeLedgerRepository) Append(_ context.Context, entry *payment.LedgerEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLedgerRepository) GetByOrder(_ context.Context, orderID kernel.UUID) ([]*payment.LedgerEntry, error) {
	matched := make([]*payment.LedgerEntry, 0)
	for _, e := range f.entries {
		if e.OrderID().IsEqual(orderID) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// fakeState is the shared storage behind every unit of work a factory hands
// out, so per-order transactions in a sweep observe each other's writes.
type fakeState struct {
	orders   *fakeOrderRepository
	couriers *fakeCourierRepository
	ledger   *fakeLedgerRepository
}

func newFakeState() *fakeState {
	return &fakeState{
		orders:   newFakeOrderRepository(),
		couriers: newFakeCourierRepository(),
		ledger:   newFakeLedgerRepository(),
	}
}

type fakeUoW struct {
	state      *fakeState
	beginErr   error
	commitErr  error
	begun      bool
	committed  bool
	rolledBack bool
}

func (f *fakeUoW) Begin(_ context.Context) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.begun = true
	return nil
}

func (f *fakeUoW) Commit(_ context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeUoW) Rollback(_ context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

func (f *fakeUoW) OrderRepository() ports.OrderRepository     { return f.state.orders }
func (f *fakeUoW) CourierRepository() ports.CourierRepository { return f.state.couriers }
func (f *fakeUoW) LedgerRepository() ports.LedgerRepository   { return f.state.ledger }

type fakeUoWFactory struct {
	state     *fakeState
	beginErr  error
	commitErr error
	created   []*fakeUoW
}

func newFakeUoWFactory(state *fakeState) *fakeUoWFactory {
	return &fakeUoWFactory{state: state}
}

func (f *fakeUoWFactory) create() *fakeUoW {
	uow := &fakeUoW{state: f.state, beginErr: f.beginErr, commitErr: f.commitErr}
	f.created = append(f.created, uow)
	return uow
}

func (f *fakeUoWFactory) Create() commands.UoW { return f.create() }

type fakeOrderUoWFactory struct{ inner *fakeUoWFactory }

func (f fakeOrderUoWFactory) Create() commands.OrderUoW { return f.inner.create() }

type fakeCourierUoWFactory struct{ inner *fakeUoWFactory }

func (f fakeCourierUoWFactory) Create() commands.CourierUoW { return f.inner.create() }

// Test data helpers.

func mustMoney(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents)
	require.NoError(t, err)
	return m
}

func mustGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func testDestination(t *testing.T, coords *kernel.GeoPoint) order.Destination {
	t.Helper()
	d, err := order.NewDestination(coords, "12 Lenina St, apt 4", "Ivan", "+79990001122")
	require.NoError(t, err)
	return d
}

func seedOrder(t *testing.T, state *fakeState, totalCents, discountCents int64,
	coords *kernel.GeoPoint, createdAt time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		mustMoney(t, totalCents), mustMoney(t, discountCents),
		testDestination(t, coords), createdAt,
	)
	require.NoError(t, err)
	require.NoError(t, state.orders.Add(t.Context(), o))
	return o
}

func settleOrder(t *testing.T, o *order.Order, commissionCents int64, paidAt time.Time) {
	t.Helper()
	require.NoError(t, o.MarkPaid(mustMoney(t, commissionCents), "card", "tx-1", paidAt))
}

func seedCourier(t *testing.T, state *fakeState, name string, load int,
	location *kernel.GeoPoint) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, "+79990000000")
	require.NoError(t, err)
	if location != nil {
		require.NoError(t, c.UpdateLocation(*location, time.Now()))
	}
	require.NoError(t, state.couriers.Add(t.Context(), c))
	state.couriers.loads[c.ID().String()] = load
	return c
}
