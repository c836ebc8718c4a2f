package models

import (
	"time"
)

// OTP defines a one-time passcode record based on the 'otps' table.
// At most one live code exists per email: issuing a new code deletes
// all prior rows for that address.
type OTP struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Code      string    `json:"code" db:"code"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

// Expired reports whether the code is no longer usable at instant now.
// A code exactly at its expiry instant counts as expired.
func (o *OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
