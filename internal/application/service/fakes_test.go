package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/enum"
	"github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"github.com/sulayman101/puntrms/pkg/pagination"
)

// fakeStore is a shared in-memory backing for the fake repositories. The
// order and loan fakes share it so SettleLoan can span both, the way the
// real implementation spans both tables in one transaction.
type fakeStore struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*entity.Order
	entries   map[uuid.UUID]*entity.LoanEntry // keyed by order id
	customers map[uuid.UUID]*entity.LoanCustomer
	items     map[uuid.UUID]*entity.Item
	staff     map[uuid.UUID]*entity.Staff
	counter   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:    make(map[uuid.UUID]*entity.Order),
		entries:   make(map[uuid.UUID]*entity.LoanEntry),
		customers: make(map[uuid.UUID]*entity.LoanCustomer),
		items:     make(map[uuid.UUID]*entity.Item),
		staff:     make(map[uuid.UUID]*entity.Staff),
	}
}

func (s *fakeStore) addStaff(name string) *entity.Staff {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &entity.Staff{ID: uuid.New(), Name: name, Phone: name, Role: entity.RoleWaiter}
	s.staff[st.ID] = st
	return st
}

func (s *fakeStore) addItem(name string, price string, stock *int) *entity.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := &entity.Item{ID: uuid.New(), Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	s.items[it.ID] = it
	return it
}

func (s *fakeStore) addCustomer(name string) *entity.LoanCustomer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &entity.LoanCustomer{ID: uuid.New(), Name: name}
	s.customers[c.ID] = c
	return c
}

func (s *fakeStore) addOrder(o *entity.Order) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	s.orders[o.ID] = o
	return o
}

func copyOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Lines = append([]entity.OrderLine(nil), o.Lines...)
	return &cp
}

type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.store.addOrder(order)
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *fakeOrderRepo) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.orders {
		if o.Number == number {
			return copyOrder(o), nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	orders, err := r.Snapshot(ctx)
	return orders, int64(len(orders)), err
}

func (r *fakeOrderRepo) Snapshot(ctx context.Context) ([]entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entity.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		out = append(out, *copyOrder(o))
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus, collector string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok || o.Status != from {
		return apperror.ErrSettlementConflict
	}
	o.Status = to
	o.Collector = collector
	return nil
}

func (r *fakeOrderRepo) SettleLoan(ctx context.Context, id uuid.UUID, from enum.OrderStatus, collector string, entry entity.LoanEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok || o.Status != from {
		return apperror.ErrSettlementConflict
	}
	if existing, exists := r.store.entries[id]; exists {
		if existing.CustomerID != entry.CustomerID {
			return apperror.ErrDuplicateOrderLoan
		}
	} else {
		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		r.store.entries[id] = &entry
	}
	o.Status = enum.OrderStatusLoan
	o.Collector = collector
	return nil
}

func (r *fakeOrderRepo) CountByStatus(ctx context.Context, status enum.OrderStatus) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, o := range r.store.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeLoanRepo struct{ store *fakeStore }

func (r *fakeLoanRepo) CreateCustomer(ctx context.Context, customer *entity.LoanCustomer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.store.customers[customer.ID] = customer
	return nil
}

func (r *fakeLoanRepo) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.LoanCustomer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeLoanRepo) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.LoanCustomer, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entity.LoanCustomer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		if search == "" || strings.Contains(c.Name, search) {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeLoanRepo) AddEntry(ctx context.Context, entry *entity.LoanEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.entries[entry.OrderID]; exists {
		return apperror.ErrDuplicateOrderLoan
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	cp := *entry
	r.store.entries[entry.OrderID] = &cp
	return nil
}

func (r *fakeLoanRepo) EntryByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.LoanEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.entries[orderID]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeLoanRepo) ListEntries(ctx context.Context, customerID uuid.UUID) ([]entity.LoanEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.LoanEntry
	for _, e := range r.store.entries {
		if e.CustomerID == customerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) TotalFor(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := decimal.Zero
	for _, e := range r.store.entries {
		if e.CustomerID == customerID {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (r *fakeLoanRepo) OutstandingTotal(ctx context.Context) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := decimal.Zero
	for _, e := range r.store.entries {
		total = total.Add(e.Amount)
	}
	return total, nil
}

type fakeItemRepo struct{ store *fakeStore }

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.store.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Item
	for _, id := range ids {
		if it, ok := r.store.items[id]; ok {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Item, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entity.Item, 0, len(r.store.items))
	for _, it := range r.store.items {
		out = append(out, *it)
	}
	return out, int64(len(out)), nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.items, id)
	return nil
}

func (r *fakeItemRepo) PriceMap(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make(map[uuid.UUID]decimal.Decimal, len(r.store.items))
	for id, it := range r.store.items {
		out[id] = it.Price
	}
	return out, nil
}

func (r *fakeItemRepo) AtomicDecrementBatch(ctx context.Context, quantities map[uuid.UUID]int) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var failed []uuid.UUID
	for id, qty := range quantities {
		it, ok := r.store.items[id]
		if !ok {
			failed = append(failed, id)
			continue
		}
		if it.Stock != nil && *it.Stock < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range quantities {
		it := r.store.items[id]
		if it.Stock != nil {
			n := *it.Stock - qty
			it.Stock = &n
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) AtomicIncrementBatch(ctx context.Context, quantities map[uuid.UUID]int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, qty := range quantities {
		if it, ok := r.store.items[id]; ok && it.Stock != nil {
			n := *it.Stock + qty
			it.Stock = &n
		}
	}
	return nil
}

type fakeStaffRepo struct{ store *fakeStore }

func (r *fakeStaffRepo) Create(ctx context.Context, staff *entity.Staff) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	r.store.staff[staff.ID] = staff
	return nil
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	st, ok := r.store.staff[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r *fakeStaffRepo) GetByPhone(ctx context.Context, phone string) (*entity.Staff, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, st := range r.store.staff {
		if st.Phone == phone {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Staff, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entity.Staff, 0, len(r.store.staff))
	for _, st := range r.store.staff {
		out = append(out, *st)
	}
	return out, int64(len(out)), nil
}

func (r *fakeStaffRepo) UpdatePINHash(ctx context.Context, id uuid.UUID, pinHash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if st, ok := r.store.staff[id]; ok {
		st.PINHash = pinHash
	}
	return nil
}

type fakeCounterRepo struct{ store *fakeStore }

func (r *fakeCounterRepo) Next(ctx context.Context, name string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.counter++
	return r.store.counter, nil
}
