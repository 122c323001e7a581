package model

import "time"

// JurorID uniquely identifies a juror across the system
type JurorID string

// JurorAccount holds a juror's credential and display state.
// Stored in the credential store keyed by JurorID.
type JurorAccount struct {
	ID JurorID

	// PIN is the 4-digit login PIN. Empty until first issuance.
	PIN string

	// Secret is the token-binding value. A bearer token is valid only
	// while its embedded secret matches this field exactly.
	Secret string

	FailedAttempts int
	Locked         bool

	// ResetUnlockAt is the time the juror last opened a reset-unlock
	// window. Zero if never opened.
	ResetUnlockAt time.Time

	DisplayName string
	DisplayDept string
}

// HasPIN reports whether a PIN has been issued for this account
func (a *JurorAccount) HasPIN() bool {
	return a.PIN != ""
}
