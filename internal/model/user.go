package model

import "time"

// UserID uniquely identifies a registered user across the system
type UserID string

// User is a registered account. The password is stored only as a one-way
// digest; the credential store is the sole writer of User records.
type User struct {
	ID             UserID
	Username       string // login username, unique, immutable
	PasswordDigest string
	CreatedAt      time.Time
}
