package db

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           "23505",
		ConstraintName: constraint,
		Detail:         "Key (email)=(ada@example.com) already exists.",
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name:       "matching constraint",
			err:        uniqueViolation("users_email_key"),
			constraint: "users_email_key",
			want:       true,
		},
		{
			name:       "any constraint when unrestricted",
			err:        uniqueViolation("other_key"),
			constraint: "",
			want:       true,
		},
		{
			name:       "different constraint",
			err:        uniqueViolation("other_key"),
			constraint: "users_email_key",
			want:       false,
		},
		{
			name:       "wrapped violation",
			err:        fmt.Errorf("insert user: %w", uniqueViolation("users_email_key")),
			constraint: "users_email_key",
			want:       true,
		},
		{
			name:       "different sqlstate",
			err:        &pgconn.PgError{Code: "23503"},
			constraint: "",
			want:       false,
		},
		{
			name:       "plain error",
			err:        errors.New("connection reset"),
			constraint: "users_email_key",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUniqueViolationDetail(t *testing.T) {
	if got := UniqueViolationDetail(uniqueViolation("users_email_key")); got == "" {
		t.Error("expected the postgres detail line")
	}
	if got := UniqueViolationDetail(errors.New("nope")); got != "" {
		t.Errorf("detail for non-pg error = %q, want empty", got)
	}
}

func TestHandleQueryError(t *testing.T) {
	notFound := errors.New("record not found")
	start := time.Now()

	if err := HandleQueryError(nil, notFound, "find", "users", start); err != nil {
		t.Errorf("nil error should pass through, got %v", err)
	}

	if err := HandleQueryError(pgx.ErrNoRows, notFound, "find", "users", start); !errors.Is(err, notFound) {
		t.Errorf("ErrNoRows should map to notFound, got %v", err)
	}

	boom := errors.New("connection reset")
	err := HandleQueryError(boom, notFound, "find", "users", start)
	if !errors.Is(err, boom) {
		t.Errorf("store error should be wrapped, got %v", err)
	}
	if errors.Is(err, notFound) {
		t.Error("store error must not be mistaken for not-found")
	}
}
