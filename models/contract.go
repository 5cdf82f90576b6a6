package models

import "time"

type ContractStatus string

const (
	ContractProcessing ContractStatus = "PROCESSING"
	ContractRenting    ContractStatus = "RENTING"
	ContractFinished   ContractStatus = "FINISHED"
	ContractCancelled  ContractStatus = "CANCELLED"
)

type Contract struct {
	ID         string         `bson:"id" json:"id"`
	BookingID  string         `bson:"bookingId" json:"bookingId"`
	RenterID   string         `bson:"renterId" json:"renterId"`
	ProviderID string         `bson:"providerId" json:"providerId"`
	Status     ContractStatus `bson:"status" json:"status"`
	CreatedAt  time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// IsOpen reports whether the contract is still the booking's active one.
func (c *Contract) IsOpen() bool {
	return c.Status == ContractProcessing || c.Status == ContractRenting
}

// FinalContract is the settlement issued when a contract ends.
type FinalContract struct {
	ID             string    `bson:"id" json:"id"`
	ContractID     string    `bson:"contractId" json:"contractId"`
	BookingID      string    `bson:"bookingId" json:"bookingId"`
	TimeFinish     time.Time `bson:"timeFinish" json:"timeFinish"`
	CostSettlement Amount    `bson:"costSettlement" json:"costSettlement"`
	Note           string    `bson:"note" json:"note"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
