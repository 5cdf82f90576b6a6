package models

import "time"

type CouponStatus string

const (
	CouponValid   CouponStatus = "VALID"
	CouponExpired CouponStatus = "EXPIRED"
)

// Coupon discount is a percentage of the pre-discount total.
type Coupon struct {
	ID          string       `bson:"id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Discount    Amount       `bson:"discount" json:"discount"`
	Status      CouponStatus `bson:"status" json:"status"`
	TimeExpired time.Time    `bson:"timeExpired" json:"timeExpired"`
}
