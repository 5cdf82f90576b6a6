package models

type PriceType string

const (
	PriceDaily  PriceType = "daily"
	PriceHourly PriceType = "hourly"
)

// RentalCalculation is the billing breakdown of a rental window.
type RentalCalculation struct {
	PriceType      PriceType `json:"priceType"`
	BillableUnits  int64     `json:"billableUnits"`
	TotalMinutes   int64     `json:"totalMinutes"`
	BillingDays    int64     `json:"billingDays"`
	BillingHours   int64     `json:"billingHours"`
	BillingMinutes int64     `json:"billingMinutes"`
}
