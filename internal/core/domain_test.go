package core

import (
	"errors"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Kind: KindXP, Amount: 5000, Object: "p1"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Transaction{Kind: KindAuditGiven, Amount: 0}).Validate(); err != nil {
		t.Fatalf("zero amount is valid, got %v", err)
	}

	if err := (Transaction{Kind: "bonus", Amount: 1}).Validate(); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("error = %v, want ErrUnknownKind", err)
	}
	if err := (Transaction{Kind: KindXP, Amount: -1}).Validate(); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("error = %v, want ErrNegativeAmount", err)
	}
}

func TestProfileFullName(t *testing.T) {
	cases := []struct {
		p    Profile
		want string
	}{
		{Profile{FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{Profile{FirstName: "Jane"}, "Jane"},
		{Profile{}, ""},
	}
	for i, tc := range cases {
		if got := tc.p.FullName(); got != tc.want {
			t.Fatalf("case %d: FullName() = %q, want %q", i, got, tc.want)
		}
	}
}
