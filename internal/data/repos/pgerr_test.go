package repos

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_sourcebook_authority_code"}
	if !IsUniqueViolation(dup) {
		t.Error("23505 must classify as a unique violation")
	}
	if !IsUniqueViolation(fmt.Errorf("insert sourcebook: %w", dup)) {
		t.Error("wrapped 23505 must classify as a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign-key violation is not a unique violation")
	}
	if IsUniqueViolation(errors.New("record not found")) {
		t.Error("plain error is not a unique violation")
	}
	if IsUniqueViolation(nil) {
		t.Error("nil is not a unique violation")
	}
}

func TestIsConnectionFailure(t *testing.T) {
	for _, code := range []string{"08000", "08003", "08006"} {
		if !IsConnectionFailure(&pgconn.PgError{Code: code}) {
			t.Errorf("SQLSTATE %s must classify as a connection failure", code)
		}
	}
	if !IsConnectionFailure(fmt.Errorf("ping: %w", &pgconn.PgError{Code: "08006"})) {
		t.Error("wrapped 08006 must classify as a connection failure")
	}
	if IsConnectionFailure(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation is not a connection failure")
	}
	if IsConnectionFailure(errors.New("dial tcp: refused")) {
		t.Error("plain dial error carries no SQLSTATE")
	}
}
