package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"rentify/database/repository/memory"
	"rentify/models"
	"rentify/services/contract"
	"rentify/services/wallet"
	"rentify/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (s *recordingSink) Notify(ctx context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return nil
}

type recordingScheduler struct {
	mu    sync.Mutex
	armed map[string]time.Duration
}

func (s *recordingScheduler) Arm(ctx context.Context, bookingID string, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed[bookingID] = delay
	return nil
}

type fixture struct {
	svc     *DefaultBookingService
	store   *memory.Store
	sink    *recordingSink
	cleanup *recordingScheduler
	now     time.Time
}

var (
	renter   = models.Actor{UserID: "renter-1", Role: models.RoleRenter}
	renter2  = models.Actor{UserID: "renter-2", Role: models.RoleRenter}
	provider = models.Actor{UserID: "provider-1", Role: models.RoleProvider}
	stranger = models.Actor{UserID: "someone-else", Role: models.RoleRenter}
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	minCancel := 24
	store.PutProvider(models.Provider{
		ID:        provider.UserID,
		Name:      "City Wheels",
		OpenTime:  "00:00",
		CloseTime: "00:00",
		Penalty: &models.PenaltyPolicy{
			Type:          models.PenaltyPercent,
			Value:         models.AmountFromUnits(20),
			MinCancelHour: &minCancel,
		},
	})
	store.PutProvider(models.Provider{ID: "provider-2", Name: "Day Rentals", OpenTime: "08:00", CloseTime: "20:00"})

	driverFee := models.AmountFromUnits(100_000)
	store.PutVehicle(models.Vehicle{ID: "v1", ProviderID: provider.UserID, Name: "Civic", DailyRate: models.AmountFromUnits(1_000_000)})
	store.PutVehicle(models.Vehicle{ID: "v2", ProviderID: provider.UserID, Name: "Hiace", DailyRate: models.AmountFromUnits(500_000), DriverFee: &driverFee})
	store.PutVehicle(models.Vehicle{ID: "v3", ProviderID: "provider-2", Name: "Vitz", DailyRate: models.AmountFromUnits(240_000)})

	store.SetBalance(renter.UserID, models.AmountFromUnits(2_000_000))

	f := &fixture{
		store:   store,
		sink:    &recordingSink{},
		cleanup: &recordingScheduler{armed: map[string]time.Duration{}},
		now:     time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }
	f.svc = &DefaultBookingService{
		Tx:             store,
		Bookings:       store.Bookings(),
		TimeSlots:      store.TimeSlots(),
		Contracts:      store.Contracts(),
		Directory:      store.Directory(),
		Coupons:        store.Coupons(),
		Wallet:         &wallet.DefaultWalletService{Repo: store.Wallets(), Tx: store, Now: clock},
		ContractSvc:    &contract.DefaultContractService{Repo: store.Contracts()},
		Notifier:       f.sink,
		Cleanup:        f.cleanup,
		Location:       time.UTC,
		CleanupDelay:   15 * time.Minute,
		DeliveryWindow: 8 * time.Hour,
		Now:            clock,
	}
	return f
}

// start is two days after the fixture clock.
func (f *fixture) start() time.Time {
	return time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
}

func (f *fixture) request(vehicleIDs ...string) models.CreateBookingRequest {
	return models.CreateBookingRequest{
		VehicleIDs:       vehicleIDs,
		TimeBookingStart: f.start(),
		TimeBookingEnd:   f.start().Add(24 * time.Hour),
		PhoneNumber:      "+254700000000",
		Address:          "Kenyatta Ave",
	}
}

func (f *fixture) create(t *testing.T, actor models.Actor, req models.CreateBookingRequest) *models.BookingView {
	t.Helper()
	view, err := f.svc.CreateBooking(context.Background(), actor, req)
	require.NoError(t, err)
	return view
}

func (f *fixture) balance(t *testing.T, userID string) models.Amount {
	t.Helper()
	w, err := f.svc.Wallet.Balance(context.Background(), userID)
	require.NoError(t, err)
	return w.Balance
}

func (f *fixture) available(t *testing.T, vehicleID string, start, end time.Time) bool {
	t.Helper()
	ok, err := f.store.TimeSlots().IsAvailable(context.Background(), vehicleID, start, end)
	require.NoError(t, err)
	return ok
}

func (f *fixture) paidBooking(t *testing.T) *models.BookingView {
	t.Helper()
	view := f.create(t, renter, f.request("v1"))
	_, err := f.svc.Pay(context.Background(), renter, view.ID)
	require.NoError(t, err)
	return view
}

func TestCreateBookingPricesAndReserves(t *testing.T) {
	f := newFixture(t)
	view := f.create(t, renter, f.request("v1"))

	assert.Equal(t, models.BookingStatusUnpaid, view.Status)
	assert.Equal(t, models.PriceDaily, view.PriceType)
	assert.Equal(t, models.AmountFromUnits(1_000_000), view.TotalCost)
	assert.Equal(t, models.PickupOffice, view.PickupMethod)
	assert.Equal(t, "1 day", view.RentalDuration)
	require.Len(t, view.Details, 1)
	assert.Equal(t, "v1", view.Details[0].VehicleID)

	// The provider's penalty policy is copied onto the booking.
	assert.Equal(t, models.PenaltyPercent, view.PenaltyType)
	require.NotNil(t, view.MinCancelHour)
	assert.Equal(t, 24, *view.MinCancelHour)

	assert.False(t, f.available(t, "v1", f.start(), f.start().Add(time.Hour)))
	assert.Equal(t, 15*time.Minute, f.cleanup.armed[view.ID])
	assert.Len(t, f.sink.sent, 2)
}

func TestCreateBookingHourlyWithDriver(t *testing.T) {
	f := newFixture(t)
	req := f.request("v2")
	req.TimeBookingEnd = f.start().Add(6*time.Hour + 30*time.Minute)
	req.WithDriver = true

	view := f.create(t, renter, req)
	assert.Equal(t, models.PriceHourly, view.PriceType)
	require.Len(t, view.Details, 1)
	// 500,000 * 390 / 1440 and 100,000 * 390 / 1440, rounded half-up.
	assert.Equal(t, models.MustParseAmount("135416.67"), view.Details[0].Cost)
	require.NotNil(t, view.Details[0].DriverFee)
	assert.Equal(t, models.MustParseAmount("27083.33"), *view.Details[0].DriverFee)
	assert.Equal(t, models.MustParseAmount("162500.00"), view.TotalCost)
	assert.Equal(t, "6 hours 30 minutes", view.RentalDuration)
}

func TestCreateBookingOverlap(t *testing.T) {
	f := newFixture(t)
	f.create(t, renter, f.request("v1"))

	overlapping := f.request("v1")
	overlapping.TimeBookingStart = f.start().Add(12 * time.Hour)
	overlapping.TimeBookingEnd = f.start().Add(36 * time.Hour)
	_, err := f.svc.CreateBooking(context.Background(), renter2, overlapping)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	// Back-to-back windows share an endpoint but do not overlap.
	adjacent := f.request("v1")
	adjacent.TimeBookingStart = f.start().Add(24 * time.Hour)
	adjacent.TimeBookingEnd = f.start().Add(48 * time.Hour)
	f.create(t, renter2, adjacent)
}

func TestCreateBookingDuplicateForSameRenter(t *testing.T) {
	f := newFixture(t)
	f.create(t, renter, f.request("v1"))

	_, err := f.svc.CreateBooking(context.Background(), renter, f.request("v1"))
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))
	assert.Contains(t, err.Error(), "you already have an active booking")
}

func TestCreateBookingMultiVehicleIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	single := f.request("v2")
	f.create(t, renter2, single)

	_, err := f.svc.CreateBooking(context.Background(), renter, f.request("v1", "v2"))
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	// v1 was not left reserved by the failed request.
	assert.True(t, f.available(t, "v1", f.start(), f.start().Add(24*time.Hour)))
}

func TestConcurrentCreatesReserveOnce(t *testing.T) {
	f := newFixture(t)
	const n = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := models.Actor{UserID: fmt.Sprintf("renter-%02d", i+10), Role: models.RoleRenter}
			_, err := f.svc.CreateBooking(context.Background(), actor, f.request("v1"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case utils.IsKind(err, utils.KindConflict):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicts)

	slots, err := f.svc.ListVehicleSlots(context.Background(), "v1")
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		actor  models.Actor
		mutate func(*models.CreateBookingRequest)
		kind   utils.ErrorKind
	}{
		{"no vehicles", renter, func(r *models.CreateBookingRequest) { r.VehicleIDs = nil }, utils.KindBadRequest},
		{"end before start", renter, func(r *models.CreateBookingRequest) { r.TimeBookingEnd = r.TimeBookingStart.Add(-time.Hour) }, utils.KindBadRequest},
		{"misaligned minutes", renter, func(r *models.CreateBookingRequest) { r.TimeBookingStart = r.TimeBookingStart.Add(15 * time.Minute) }, utils.KindBadRequest},
		{"in the past", renter, func(r *models.CreateBookingRequest) { r.TimeBookingStart = f.now.Add(-time.Hour) }, utils.KindBadRequest},
		{"unknown pickup", renter, func(r *models.CreateBookingRequest) { r.PickupMethod = "drone" }, utils.KindBadRequest},
		{"unknown vehicle", renter, func(r *models.CreateBookingRequest) { r.VehicleIDs = []string{"v1", "nope"} }, utils.KindNotFound},
		{"mixed providers", renter, func(r *models.CreateBookingRequest) { r.VehicleIDs = []string{"v1", "v3"} }, utils.KindBadRequest},
		{"own vehicle", provider, func(r *models.CreateBookingRequest) {}, utils.KindForbidden},
		{"outside hours", renter, func(r *models.CreateBookingRequest) {
			r.VehicleIDs = []string{"v3"}
			r.TimeBookingStart = time.Date(2026, 3, 4, 6, 0, 0, 0, time.UTC)
			r.TimeBookingEnd = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
		}, utils.KindBadRequest},
		{"unknown coupon", renter, func(r *models.CreateBookingRequest) { r.CouponID = "missing" }, utils.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request("v1")
			tt.mutate(&req)
			_, err := f.svc.CreateBooking(context.Background(), tt.actor, req)
			require.Error(t, err)
			assert.Equal(t, tt.kind, utils.KindOf(err), "got %v", err)
		})
	}

	// Nothing was reserved by any rejected request.
	assert.True(t, f.available(t, "v1", f.start(), f.start().Add(24*time.Hour)))
}

func TestCreateBookingInsideOperatingHours(t *testing.T) {
	f := newFixture(t)
	req := f.request("v3")
	req.TimeBookingStart = time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	req.TimeBookingEnd = time.Date(2026, 3, 4, 20, 0, 0, 0, time.UTC)

	view := f.create(t, renter, req)
	assert.Equal(t, models.MustParseAmount("120000.00"), view.TotalCost)
}

func TestCreateBookingCoupon(t *testing.T) {
	f := newFixture(t)
	f.store.PutCoupon(models.Coupon{ID: "SAVE10", Discount: models.AmountFromUnits(10), Status: models.CouponValid, TimeExpired: f.now.Add(72 * time.Hour)})
	f.store.PutCoupon(models.Coupon{ID: "OLD", Discount: models.AmountFromUnits(50), Status: models.CouponValid, TimeExpired: f.now.Add(-time.Hour)})

	req := f.request("v1")
	req.CouponID = "SAVE10"
	view := f.create(t, renter, req)
	assert.Equal(t, models.AmountFromUnits(1_000_000), view.PreDiscountCost)
	assert.Equal(t, models.AmountFromUnits(100_000), view.Discount)
	assert.Equal(t, models.AmountFromUnits(900_000), view.TotalCost)
	assert.Equal(t, "SAVE10", view.AppliedCouponID)

	// Changing the coupon later does not reprice the booking.
	f.store.PutCoupon(models.Coupon{ID: "SAVE10", Discount: models.AmountFromUnits(90), Status: models.CouponValid, TimeExpired: f.now.Add(72 * time.Hour)})
	got, err := f.svc.GetBooking(context.Background(), renter, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AmountFromUnits(900_000), got.TotalCost)

	expired := f.request("v2")
	expired.CouponID = "OLD"
	_, err = f.svc.CreateBooking(context.Background(), renter, expired)
	assert.True(t, utils.IsKind(err, utils.KindCouponInvalid))
}

func TestPayDebitsWalletAndOpensContract(t *testing.T) {
	f := newFixture(t)
	view := f.create(t, renter, f.request("v1"))

	b, err := f.svc.Pay(context.Background(), renter, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.True(t, strings.HasPrefix(b.CodeTransaction, "BOOK-"))
	assert.Len(t, b.CodeTransaction, len("BOOK-")+8)
	require.NotNil(t, b.TimeTransaction)
	assert.Equal(t, models.AmountFromUnits(1_000_000), f.balance(t, renter.UserID))

	contracts := f.store.Contracts().ListByBooking(context.Background(), view.ID)
	require.Len(t, contracts, 1)
	assert.Equal(t, models.ContractProcessing, contracts[0].Status)

	history, err := f.svc.Wallet.History(context.Background(), renter.UserID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.TransactionPayment, history[0].Kind)
}

func TestPayInsufficientFundsChangesNothing(t *testing.T) {
	f := newFixture(t)
	f.store.SetBalance(renter.UserID, models.AmountFromUnits(10))
	view := f.create(t, renter, f.request("v1"))

	_, err := f.svc.Pay(context.Background(), renter, view.ID)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindInsufficientFunds))

	got, err := f.svc.GetBooking(context.Background(), renter, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusUnpaid, got.Status)
	assert.Empty(t, got.CodeTransaction)
	assert.Equal(t, models.AmountFromUnits(10), f.balance(t, renter.UserID))
	assert.Empty(t, f.store.Contracts().ListByBooking(context.Background(), view.ID))
}

func TestTransitionPermissions(t *testing.T) {
	f := newFixture(t)
	view := f.create(t, renter, f.request("v1"))
	ctx := context.Background()

	_, err := f.svc.Pay(ctx, stranger, view.ID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	_, err = f.svc.Pay(ctx, provider, view.ID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	_, err = f.svc.Deliver(ctx, provider, view.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState))

	_, err = f.svc.Pay(ctx, renter, "missing")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = f.svc.GetBooking(ctx, stranger, view.ID)
	assert.True(t, utils.IsKind(err, utils.KindForbidden))

	_, err = f.svc.GetBooking(ctx, models.Actor{UserID: "ops", Role: models.RoleAdmin}, view.ID)
	assert.NoError(t, err)
}

func TestDeliverRespectsWindow(t *testing.T) {
	f := newFixture(t)
	view := f.paidBooking(t)

	f.now = f.start().Add(-10 * time.Hour)
	_, err := f.svc.Deliver(context.Background(), provider, view.ID)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))

	f.now = f.start().Add(-8 * time.Hour)
	b, err := f.svc.Deliver(context.Background(), provider, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusDelivered, b.Status)
}

func TestFullLifecycleToCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	view := f.paidBooking(t)

	f.now = f.start().Add(-time.Hour)
	_, err := f.svc.Deliver(ctx, provider, view.ID)
	require.NoError(t, err)
	_, err = f.svc.Receive(ctx, renter, view.ID)
	require.NoError(t, err)

	contracts := f.store.Contracts().ListByBooking(ctx, view.ID)
	require.Len(t, contracts, 1)
	assert.Equal(t, models.ContractRenting, contracts[0].Status)

	f.now = f.start().Add(24 * time.Hour)
	_, err = f.svc.Return(ctx, renter, view.ID)
	require.NoError(t, err)
	b, err := f.svc.Complete(ctx, provider, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, b.Status)

	assert.True(t, f.available(t, "v1", f.start(), f.start().Add(24*time.Hour)))

	contracts = f.store.Contracts().ListByBooking(ctx, view.ID)
	require.Len(t, contracts, 1)
	assert.Equal(t, models.ContractFinished, contracts[0].Status)
	final, err := f.svc.ContractSvc.GetFinalContract(ctx, contracts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.AmountFromUnits(1_000_000), final.CostSettlement)

	// Completion moves no money.
	assert.Equal(t, models.AmountFromUnits(1_000_000), f.balance(t, renter.UserID))
	assert.Equal(t, models.Amount(0), f.balance(t, provider.UserID))
}

func TestRenterLateCancellationChargesPenalty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	view := f.paidBooking(t)

	f.now = f.start().Add(-10 * time.Hour)
	b, err := f.svc.Cancel(ctx, renter, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, b.Status)
	assert.Equal(t, models.AmountFromUnits(200_000), b.PenaltyCharged)
	assert.Equal(t, models.AmountFromUnits(800_000), b.RefundAmount)
	assert.Equal(t, renter.UserID, b.CancelledBy)

	assert.Equal(t, models.AmountFromUnits(1_800_000), f.balance(t, renter.UserID))
	assert.Equal(t, models.AmountFromUnits(200_000), f.balance(t, provider.UserID))
	assert.True(t, f.available(t, "v1", f.start(), f.start().Add(24*time.Hour)))

	contracts := f.store.Contracts().ListByBooking(ctx, view.ID)
	require.Len(t, contracts, 1)
	assert.Equal(t, models.ContractCancelled, contracts[0].Status)
	final, err := f.svc.ContractSvc.GetFinalContract(ctx, contracts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.AmountFromUnits(200_000), final.CostSettlement)

	_, err = f.svc.Cancel(ctx, renter, view.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState))
}

func TestRenterEarlyCancellationRefundsInFull(t *testing.T) {
	f := newFixture(t)
	view := f.paidBooking(t)

	b, err := f.svc.Cancel(context.Background(), renter, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Amount(0), b.PenaltyCharged)
	assert.Equal(t, models.AmountFromUnits(2_000_000), f.balance(t, renter.UserID))
}

func TestProviderCancellationRefundsInFull(t *testing.T) {
	f := newFixture(t)
	view := f.paidBooking(t)

	f.now = f.start().Add(-time.Hour)
	b, err := f.svc.Cancel(context.Background(), provider, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AmountFromUnits(1_000_000), b.RefundAmount)
	assert.Equal(t, models.AmountFromUnits(2_000_000), f.balance(t, renter.UserID))
	assert.Equal(t, models.Amount(0), f.balance(t, provider.UserID))
}

func TestCancelUnpaidMovesNoMoney(t *testing.T) {
	f := newFixture(t)
	view := f.create(t, renter, f.request("v1"))

	b, err := f.svc.Cancel(context.Background(), renter, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, b.Status)
	assert.Equal(t, models.AmountFromUnits(2_000_000), f.balance(t, renter.UserID))
	assert.True(t, f.available(t, "v1", f.start(), f.start().Add(24*time.Hour)))

	history, err := f.svc.Wallet.History(context.Background(), renter.UserID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestNoShow(t *testing.T) {
	f := newFixture(t)
	view := f.paidBooking(t)

	_, err := f.svc.ReportNoShow(context.Background(), provider, view.ID)
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))

	f.now = f.start().Add(2 * time.Hour)
	b, err := f.svc.ReportNoShow(context.Background(), provider, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, b.Status)
	assert.Equal(t, models.AmountFromUnits(200_000), b.PenaltyCharged)
	assert.Equal(t, models.AmountFromUnits(200_000), f.balance(t, provider.UserID))
	assert.Equal(t, models.AmountFromUnits(1_800_000), f.balance(t, renter.UserID))
}

func TestExternalPaymentAwaitsConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	view := f.create(t, renter, f.request("v1"))

	b, err := f.svc.RecordExternalPayment(ctx, renter, view.ID, "MPESA-QX81")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, "MPESA-QX81", b.CodeTransaction)
	assert.Equal(t, models.AmountFromUnits(2_000_000), f.balance(t, renter.UserID))
	assert.Empty(t, f.store.Contracts().ListByBooking(ctx, view.ID))

	b, err = f.svc.Confirm(ctx, provider, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Len(t, f.store.Contracts().ListByBooking(ctx, view.ID), 1)
}

func TestCleanupAbandoned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	view := f.create(t, renter, f.request("v1"))

	removed, err := f.svc.CleanupAbandoned(ctx, view.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.True(t, f.available(t, "v1", f.start(), f.start().Add(24*time.Hour)))

	_, err = f.svc.GetBooking(ctx, renter, view.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	removed, err = f.svc.CleanupAbandoned(ctx, view.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCleanupLeavesPaidBookings(t *testing.T) {
	f := newFixture(t)
	view := f.paidBooking(t)

	removed, err := f.svc.CleanupAbandoned(context.Background(), view.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	got, err := f.svc.GetBooking(context.Background(), renter, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)
	assert.False(t, f.available(t, "v1", f.start(), f.start().Add(24*time.Hour)))
}

func TestSweepAbandoned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stale := f.create(t, renter, f.request("v2"))
	f.paidBooking(t)

	n, err := f.svc.SweepAbandoned(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	f.now = f.now.Add(20 * time.Minute)
	n, err = f.svc.SweepAbandoned(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = f.svc.GetBooking(ctx, renter, stale.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestListBookingsByRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, renter, f.request("v1"))
	f.create(t, renter2, f.request("v2"))

	mine, err := f.svc.ListBookings(ctx, renter, "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.svc.ListBookings(ctx, provider, models.BookingStatusUnpaid)
	require.NoError(t, err)
	assert.Len(t, theirs, 2)

	busy, err := f.svc.ListBusyVehicleIDs(ctx, f.start(), f.start().Add(time.Hour))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"v1", "v2"}, busy)

	_, err = f.svc.ListBusyVehicleIDs(ctx, f.start(), f.start())
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))
}
