package models

import "time"

// PaymentSession is the snapshot of a checkout session kept on the buyer
// until the payment is confirmed.
type PaymentSession struct {
	ID            string `json:"id"`
	URL           string `json:"url,omitempty"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	CourseID      string `json:"course_id"`
}

// RevokedToken holds the hash of a signed-out session token until it would
// have expired anyway.
type RevokedToken struct {
	TokenHash string    `gorm:"size:64;primaryKey"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
