package core

import (
	"errors"
	"strings"
)

const (
	KindXP            Kind = "xp"
	KindAuditGiven    Kind = "up"
	KindAuditReceived Kind = "down"
)

type (
	Kind string

	// Transaction is one provider-reported event: an experience grant,
	// an audit given, or an audit received. Amounts are byte magnitudes.
	Transaction struct {
		Kind   Kind
		Amount int64
		Object string // project name, set only for xp records
	}

	// Profile is the immutable snapshot of the user returned alongside
	// the transaction list. DateOfBirth is kept as the raw provider
	// string and parsed on demand.
	Profile struct {
		FirstName   string
		LastName    string
		AuditRatio  float64
		DateOfBirth string
	}

	// Account bundles the profile with its transaction history.
	Account struct {
		Profile      Profile
		Transactions []Transaction
	}
)

var (
	ErrNegativeAmount = errors.New("negative amount")
	ErrUnknownKind    = errors.New("unknown transaction kind")
	ErrInvalidDate    = errors.New("invalid date of birth")
)

func (k Kind) Valid() bool {
	switch k {
	case KindXP, KindAuditGiven, KindAuditReceived:
		return true
	}
	return false
}

func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrUnknownKind
	}
	if t.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// FullName joins first and last name for the greeting line.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
