package model

import "time"

type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Mobile       string
	OTP          string
	OTPExpiry    time.Time
	CreatedAt    time.Time
}

// HasValidOTP reports whether an OTP is set and has not expired.
func (u *User) HasValidOTP(now time.Time) bool {
	return u.OTP != "" && now.Before(u.OTPExpiry)
}
