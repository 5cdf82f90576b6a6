package memory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	bookingRepo "rentify/database/repository/booking"
	contractRepo "rentify/database/repository/contract"
	couponRepo "rentify/database/repository/coupon"
	timeslotRepo "rentify/database/repository/timeslot"
	vehicleRepo "rentify/database/repository/vehicle"
	walletRepo "rentify/database/repository/wallet"
	"rentify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	_ bookingRepo.BookingRepository   = (*BookingRepo)(nil)
	_ timeslotRepo.TimeSlotRepository = (*TimeSlotRepo)(nil)
	_ walletRepo.WalletRepository     = (*WalletRepo)(nil)
	_ contractRepo.ContractRepository = (*ContractRepo)(nil)
	_ vehicleRepo.VehicleDirectory    = (*DirectoryRepo)(nil)
	_ couponRepo.CouponRepository     = (*CouponRepo)(nil)
)

var t0 = time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)

func TestReleaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	slots := NewStore().TimeSlots()

	require.NoError(t, slots.Reserve(ctx, models.TimeSlotReservation{VehicleID: "v1", TimeFrom: t0, TimeTo: t0.Add(2 * time.Hour)}))
	require.NoError(t, slots.Release(ctx, "v1", t0, t0.Add(2*time.Hour)))
	require.NoError(t, slots.Release(ctx, "v1", t0, t0.Add(2*time.Hour)))

	ok, err := slots.IsAvailable(ctx, "v1", t0, t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOverlapIsHalfOpen(t *testing.T) {
	ctx := context.Background()
	slots := NewStore().TimeSlots()
	require.NoError(t, slots.Reserve(ctx, models.TimeSlotReservation{VehicleID: "v1", TimeFrom: t0, TimeTo: t0.Add(2 * time.Hour)}))

	tests := []struct {
		name       string
		start, end time.Time
		available  bool
	}{
		{"ends at reservation start", t0.Add(-time.Hour), t0, true},
		{"starts at reservation end", t0.Add(2 * time.Hour), t0.Add(3 * time.Hour), true},
		{"overlaps head", t0.Add(-time.Hour), t0.Add(30 * time.Minute), false},
		{"inside", t0.Add(30 * time.Minute), t0.Add(time.Hour), false},
		{"covers", t0.Add(-time.Hour), t0.Add(3 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := slots.IsAvailable(ctx, "v1", tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.available, ok)
		})
	}

	busy, err := slots.ListBusyVehicleIDs(ctx, t0.Add(time.Hour), t0.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, busy)
}

func TestReserveRejectsDuplicateWindow(t *testing.T) {
	ctx := context.Background()
	slots := NewStore().TimeSlots()
	slot := models.TimeSlotReservation{VehicleID: "v1", TimeFrom: t0, TimeTo: t0.Add(time.Hour)}

	require.NoError(t, slots.Reserve(ctx, slot))
	assert.Error(t, slots.Reserve(ctx, slot))
}

func TestTransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	store.SetBalance("u1", models.AmountFromUnits(100))

	boom := errors.New("boom")
	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := store.Wallets().Debit(ctx, "u1", models.AmountFromUnits(40))
		require.NoError(t, err)
		require.NoError(t, store.TimeSlots().Reserve(ctx, models.TimeSlotReservation{VehicleID: "v1", TimeFrom: t0, TimeTo: t0.Add(time.Hour)}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	w, err := store.Wallets().GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.AmountFromUnits(100), w.Balance)

	ok, err := store.TimeSlots().IsAvailable(ctx, "v1", t0, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDebitGuardsBalance(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	wallets := store.Wallets()

	_, err := wallets.Debit(ctx, "nobody", models.AmountFromUnits(1))
	assert.ErrorIs(t, err, walletRepo.ErrInsufficientBalance)

	store.SetBalance("u1", models.AmountFromUnits(10))
	_, err = wallets.Debit(ctx, "u1", models.AmountFromUnits(11))
	assert.ErrorIs(t, err, walletRepo.ErrInsufficientBalance)

	balance, err := wallets.Debit(ctx, "u1", models.AmountFromUnits(10))
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestBookingCopiesAreDetached(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()

	b := &models.Booking{ID: "b1", VehicleIDs: []string{"v1"}, Status: models.BookingStatusUnpaid}
	require.NoError(t, repo.Create(ctx, b, nil))
	b.VehicleIDs[0] = "mutated"

	got, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, got.VehicleIDs)

	require.NoError(t, repo.Delete(ctx, "b1"))
	require.NoError(t, repo.Delete(ctx, "b1"))
	_, err = repo.GetByID(ctx, "b1")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestLoadSeed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	err := s.LoadSeed(strings.NewReader(`{
		"providers": [{"id": "p1", "name": "City Wheels", "openTime": "07:00", "closeTime": "22:00",
			"penalty": {"type": "PERCENT", "value": 20, "minCancelHour": 24}}],
		"vehicles": [{"id": "v1", "providerId": "p1", "name": "Civic", "dailyRate": "4500.50"}],
		"coupons": [{"id": "WELCOME", "discount": 10, "status": "VALID", "timeExpired": "2030-01-01T00:00:00Z"}],
		"wallets": {"renter-1": 10000}
	}`))
	require.NoError(t, err)

	vehicles, err := s.Directory().GetVehicles(ctx, []string{"v1"})
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, models.MustParseAmount("4500.50"), vehicles[0].DailyRate)

	p, err := s.Directory().GetProvider(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p.Penalty)
	assert.Equal(t, 24, *p.Penalty.MinCancelHour)

	w, err := s.Wallets().GetByUserID(ctx, "renter-1")
	require.NoError(t, err)
	assert.Equal(t, models.AmountFromUnits(10000), w.Balance)

	assert.Error(t, s.LoadSeed(strings.NewReader(`{"vehicles": [{"id": "v2"}]}`)))
	assert.Error(t, s.LoadSeed(strings.NewReader(`{"vehicles": [{"id": "v3", "providerId": "ghost"}]}`)))
	assert.Error(t, s.LoadSeed(strings.NewReader(`{"drivers": []}`)))
}
