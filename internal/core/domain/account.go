package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is the read-only view of an account owned by the wallet engine.
type Account struct {
	ID             uuid.UUID
	Name           string
	KeySource      string
	BirthdayHeight uint32
	RecoverUntil   *uint32
	Created        time.Time
}

// IsRecovering returns whether the account was imported from an existing
// mnemonic and still carries a recovery target.
func (a Account) IsRecovering() bool {
	return a.RecoverUntil != nil
}
