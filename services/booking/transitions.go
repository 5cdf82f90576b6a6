package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentify/models"
	"rentify/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) Pay(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, EventPay, "")
}

// RecordExternalPayment marks a booking paid outside the wallet. It waits in
// PENDING for the provider to confirm.
func (s *DefaultBookingService) RecordExternalPayment(ctx context.Context, actor models.Actor, bookingID, reference string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, EventExternalPay, reference)
}

func (s *DefaultBookingService) Confirm(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, EventConfirm, "")
}

func (s *DefaultBookingService) Deliver(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, EventDeliver, "")
}

func (s *DefaultBookingService) Receive(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, EventReceive, "")
}

func (s *DefaultBookingService) Return(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, EventReturn, "")
}

func (s *DefaultBookingService) Complete(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, EventComplete, "")
}

func (s *DefaultBookingService) Cancel(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, EventCancel, "")
}

func (s *DefaultBookingService) ReportNoShow(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, EventNoShow, "")
}

// settlement is what the transaction leaves for after-commit work.
type settlement struct {
	contractID string
	amount     models.Amount
	note       string
}

// transition loads, decides and applies ev in one transaction. The booking is
// re-read inside the transaction so the decision is made on committed state.
func (s *DefaultBookingService) transition(ctx context.Context, actor models.Actor, bookingID string, ev Event, reference string) (*models.Booking, error) {
	logger := utils.GetLogger()
	now := s.now()

	var (
		updated *models.Booking
		dec     Decision
		settle  *settlement
	)
	err := s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		updated, settle = nil, nil

		b, err := s.Bookings.GetByID(ctx, bookingID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NotFound("booking %s not found", bookingID)
		}
		if err != nil {
			return fmt.Errorf("load booking %s: %w", bookingID, err)
		}

		dec, err = Decide(b, PartyOf(b, actor), ev, now, s.policy())
		if err != nil {
			return err
		}
		settle, err = s.apply(ctx, b, dec, actor, reference, now)
		if err != nil {
			return err
		}
		updated = b
		return nil
	})
	utils.BookingTransitions.WithLabelValues(string(ev), utils.Outcome(err)).Inc()
	if err != nil {
		logger.Info("Booking transition rejected",
			zap.String("bookingId", bookingID),
			zap.String("event", string(ev)),
			zap.String("actorId", actor.UserID),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Booking transitioned",
		zap.String("bookingId", bookingID),
		zap.String("event", string(ev)),
		zap.String("from", string(dec.From)),
		zap.String("to", string(dec.To)))

	if settle != nil {
		if _, err := s.ContractSvc.CreateFinalContract(ctx, settle.contractID, updated.ID, now, settle.amount, settle.note); err != nil {
			logger.Error("Failed to issue final contract",
				zap.String("bookingId", updated.ID),
				zap.String("contractId", settle.contractID),
				zap.Error(err))
		}
	}
	s.notifyAll(ctx, s.transitionNotifications(updated, dec))

	return updated, nil
}

// apply performs a decision's side effects and persists the new status. It
// must run inside the caller's transaction.
func (s *DefaultBookingService) apply(ctx context.Context, b *models.Booking, dec Decision, actor models.Actor, reference string, now time.Time) (*settlement, error) {
	switch dec.Event {
	case EventPay:
		code := transactionCode()
		if dec.Charge.IsPositive() {
			ref := models.LedgerRef{BookingID: b.ID, Kind: models.TransactionPayment, Note: "payment " + code}
			if _, err := s.Wallet.Debit(ctx, b.RenterID, dec.Charge, ref); err != nil {
				return nil, err
			}
		}
		b.CodeTransaction = code
		b.TimeTransaction = &now

	case EventExternalPay:
		if reference == "" {
			reference = transactionCode()
		}
		b.CodeTransaction = reference
		b.TimeTransaction = &now

	case EventCancel, EventNoShow:
		if dec.MoveFunds {
			if dec.Refund.IsPositive() {
				ref := models.LedgerRef{BookingID: b.ID, Kind: models.TransactionRefund, Note: "refund for cancelled booking"}
				if _, err := s.Wallet.Credit(ctx, b.RenterID, dec.Refund, ref); err != nil {
					return nil, err
				}
			}
			if dec.Penalty.IsPositive() {
				ref := models.LedgerRef{BookingID: b.ID, Kind: models.TransactionPenalty, Note: "cancellation penalty"}
				if _, err := s.Wallet.Credit(ctx, b.ProviderID, dec.Penalty, ref); err != nil {
					return nil, err
				}
			}
		}
		b.CancelledBy = actor.UserID
		b.RefundAmount = dec.Refund
		b.PenaltyCharged = dec.Penalty
	}

	if dec.OpenContract {
		c := &models.Contract{
			ID:         s.newID(),
			BookingID:  b.ID,
			RenterID:   b.RenterID,
			ProviderID: b.ProviderID,
			Status:     models.ContractProcessing,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.Contracts.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("open contract: %w", err)
		}
	}

	var settle *settlement
	if dec.ContractStatus != "" {
		c, err := s.Contracts.GetOpenByBooking(ctx, b.ID)
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			// Bookings cancelled before confirmation never had a contract.
		case err != nil:
			return nil, fmt.Errorf("load contract: %w", err)
		default:
			if err := s.Contracts.UpdateStatus(ctx, c.ID, dec.ContractStatus, now); err != nil {
				return nil, fmt.Errorf("update contract %s: %w", c.ID, err)
			}
			if dec.SettleContract {
				settle = settlementFor(c.ID, b, dec)
			}
		}
	}

	if dec.ReleaseSlots {
		for _, vehicleID := range b.VehicleIDs {
			if err := s.TimeSlots.Release(ctx, vehicleID, b.TimeBookingStart, b.TimeBookingEnd); err != nil {
				return nil, fmt.Errorf("release vehicle %s: %w", vehicleID, err)
			}
		}
	}

	b.Status = dec.To
	b.UpdatedAt = now
	if err := s.Bookings.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return settle, nil
}

func settlementFor(contractID string, b *models.Booking, dec Decision) *settlement {
	if dec.Event == EventComplete {
		return &settlement{
			contractID: contractID,
			amount:     b.TotalCost,
			note:       fmt.Sprintf("rental completed, settled %s", b.TotalCost),
		}
	}
	return &settlement{
		contractID: contractID,
		amount:     dec.Penalty,
		note:       fmt.Sprintf("%s by %s, refund %s, penalty %s", dec.Event, dec.Party, dec.Refund, dec.Penalty),
	}
}
