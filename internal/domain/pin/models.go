package pin

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrInvalidPIN = errors.New("pin must be 4 to 8 digits")
	ErrNoPINSet   = errors.New("no pin has been set")
)

// Credential is the stored PIN state: the bcrypt hash plus lockout
// bookkeeping.
type Credential struct {
	Hash           string
	FailedAttempts int
	LockedUntil    *time.Time
	UpdatedAt      time.Time
}

// VerifyResult is the outcome of a PIN verification attempt. It is a closed
// set: Success, Failed, or LockedOut. Switch over the concrete types
// exhaustively.
type VerifyResult interface {
	verifyResult()
}

// Success means the PIN matched and the failure counter was reset
type Success struct{}

// Failed means the PIN did not match; AttemptsRemaining counts down to the
// lockout.
type Failed struct {
	AttemptsRemaining int
}

// LockedOut means too many failures; no attempts are accepted until Until.
type LockedOut struct {
	Until time.Time
}

func (Success) verifyResult()   {}
func (Failed) verifyResult()    {}
func (LockedOut) verifyResult() {}
