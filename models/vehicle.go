package models

// Vehicle is the read-only directory entry the booking engine prices against.
type Vehicle struct {
	ID         string  `bson:"id" json:"id"`
	ProviderID string  `bson:"providerId" json:"providerId"`
	Name       string  `bson:"name" json:"name"`
	DailyRate  Amount  `bson:"dailyRate" json:"dailyRate"`
	DriverFee  *Amount `bson:"driverFee,omitempty" json:"driverFee,omitempty"`
}

// PenaltyPolicy is a provider's cancellation rule.
type PenaltyPolicy struct {
	Type          PenaltyType `bson:"type" json:"type"`
	Value         Amount      `bson:"value" json:"value"`
	MinCancelHour *int        `bson:"minCancelHour,omitempty" json:"minCancelHour,omitempty"`
}

// Provider owns vehicles. OpenTime and CloseTime are "HH:MM" in the business
// timezone; both "00:00" means the provider operates around the clock.
type Provider struct {
	ID        string         `bson:"id" json:"id"`
	Name      string         `bson:"name" json:"name"`
	OpenTime  string         `bson:"openTime" json:"openTime"`
	CloseTime string         `bson:"closeTime" json:"closeTime"`
	Penalty   *PenaltyPolicy `bson:"penalty,omitempty" json:"penalty,omitempty"`
}

// AlwaysOpen reports the midnight-to-midnight sentinel.
func (p *Provider) AlwaysOpen() bool {
	return (p.OpenTime == "" || p.OpenTime == "00:00") && (p.CloseTime == "" || p.CloseTime == "00:00")
}
