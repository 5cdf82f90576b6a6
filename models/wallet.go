package models

import "time"

type Wallet struct {
	UserID    string    `bson:"userId" json:"userId"`
	Balance   Amount    `bson:"balance" json:"balance"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type TransactionKind string

const (
	TransactionPayment TransactionKind = "PAYMENT"
	TransactionRefund  TransactionKind = "REFUND"
	TransactionPenalty TransactionKind = "PENALTY"
)

type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "PENDING"
	TransactionProcessing TransactionStatus = "PROCESSING"
	TransactionApproved   TransactionStatus = "APPROVED"
	TransactionRejected   TransactionStatus = "REJECTED"
	TransactionCancelled  TransactionStatus = "CANCELLED"
)

// WalletTransaction is the immutable record of one balance change. Amount is
// signed: debits are negative.
type WalletTransaction struct {
	ID           string            `bson:"id" json:"id"`
	UserID       string            `bson:"userId" json:"userId"`
	BookingID    string            `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	Kind         TransactionKind   `bson:"kind" json:"kind"`
	Amount       Amount            `bson:"amount" json:"amount"`
	BalanceAfter Amount            `bson:"balanceAfter" json:"balanceAfter"`
	Status       TransactionStatus `bson:"status" json:"status"`
	Note         string            `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt    time.Time         `bson:"createdAt" json:"createdAt"`
}

// LedgerRef ties a wallet movement to the booking transition that caused it.
type LedgerRef struct {
	BookingID string
	Kind      TransactionKind
	Note      string
}
