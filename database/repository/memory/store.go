// Package memory is an in-process implementation of every repository. It
// backs STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"rentify/models"
)

// Store holds all collections behind one mutex. A transaction holds the mutex
// for its whole duration and restores a snapshot if fn fails, so transactions
// are serializable.
type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	bookings  map[string]models.Booking
	details   map[string][]models.BookingDetail
	slots     map[string][]models.TimeSlotReservation
	wallets   map[string]models.Wallet
	walletTxs []models.WalletTransaction
	contracts map[string]models.Contract
	finals    map[string]models.FinalContract
	vehicles  map[string]models.Vehicle
	providers map[string]models.Provider
	coupons   map[string]models.Coupon
}

func NewStore() *Store {
	return &Store{state: &state{
		bookings:  map[string]models.Booking{},
		details:   map[string][]models.BookingDetail{},
		slots:     map[string][]models.TimeSlotReservation{},
		wallets:   map[string]models.Wallet{},
		contracts: map[string]models.Contract{},
		finals:    map[string]models.FinalContract{},
		vehicles:  map[string]models.Vehicle{},
		providers: map[string]models.Provider{},
		coupons:   map[string]models.Coupon{},
	}}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock takes the store mutex unless ctx already belongs to one of its transactions.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithTransaction implements database.Transactor.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

// Seeding helpers for the directory side, which has no write API.

func (s *Store) PutVehicle(v models.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.vehicles[v.ID] = v
}

func (s *Store) PutProvider(p models.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.providers[p.ID] = p
}

func (s *Store) PutCoupon(c models.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.coupons[c.ID] = c
}

// SetBalance creates or overwrites a wallet without recording a transaction.
func (s *Store) SetBalance(userID string, balance models.Amount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	w, ok := s.state.wallets[userID]
	if !ok {
		w = models.Wallet{UserID: userID, CreatedAt: now}
	}
	w.Balance = balance
	w.UpdatedAt = now
	s.state.wallets[userID] = w
}

// Views. Each satisfies one repository interface.

func (s *Store) Bookings() *BookingRepo    { return &BookingRepo{s: s} }
func (s *Store) TimeSlots() *TimeSlotRepo  { return &TimeSlotRepo{s: s} }
func (s *Store) Wallets() *WalletRepo      { return &WalletRepo{s: s} }
func (s *Store) Contracts() *ContractRepo  { return &ContractRepo{s: s} }
func (s *Store) Directory() *DirectoryRepo { return &DirectoryRepo{s: s} }
func (s *Store) Coupons() *CouponRepo      { return &CouponRepo{s: s} }

func (st *state) clone() *state {
	out := &state{
		bookings:  make(map[string]models.Booking, len(st.bookings)),
		details:   make(map[string][]models.BookingDetail, len(st.details)),
		slots:     make(map[string][]models.TimeSlotReservation, len(st.slots)),
		wallets:   make(map[string]models.Wallet, len(st.wallets)),
		walletTxs: append([]models.WalletTransaction(nil), st.walletTxs...),
		contracts: make(map[string]models.Contract, len(st.contracts)),
		finals:    make(map[string]models.FinalContract, len(st.finals)),
		vehicles:  make(map[string]models.Vehicle, len(st.vehicles)),
		providers: make(map[string]models.Provider, len(st.providers)),
		coupons:   make(map[string]models.Coupon, len(st.coupons)),
	}
	for k, v := range st.bookings {
		out.bookings[k] = copyBooking(v)
	}
	for k, v := range st.details {
		out.details[k] = append([]models.BookingDetail(nil), v...)
	}
	for k, v := range st.slots {
		out.slots[k] = append([]models.TimeSlotReservation(nil), v...)
	}
	for k, v := range st.wallets {
		out.wallets[k] = v
	}
	for k, v := range st.contracts {
		out.contracts[k] = v
	}
	for k, v := range st.finals {
		out.finals[k] = v
	}
	for k, v := range st.vehicles {
		out.vehicles[k] = v
	}
	for k, v := range st.providers {
		out.providers[k] = v
	}
	for k, v := range st.coupons {
		out.coupons[k] = v
	}
	return out
}

// copyBooking detaches the slice and pointer fields so callers cannot mutate stored state.
func copyBooking(b models.Booking) models.Booking {
	b.VehicleIDs = append([]string(nil), b.VehicleIDs...)
	if b.MinCancelHour != nil {
		v := *b.MinCancelHour
		b.MinCancelHour = &v
	}
	if b.TimeTransaction != nil {
		v := *b.TimeTransaction
		b.TimeTransaction = &v
	}
	return b
}
