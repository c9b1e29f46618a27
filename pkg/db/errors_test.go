package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationPgx(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "ratings_user_id_store_id_key"}
	if !IsUniqueViolation(err, "ratings_user_id_store_id_key") {
		t.Fatal("expected pgx unique violation to match")
	}
	if IsUniqueViolation(err, "other_constraint") {
		t.Fatal("expected mismatched constraint to be rejected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violation must not match")
	}
}

func TestIsUniqueViolationPq(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "identities_email_key"}
	if !IsUniqueViolation(err, "identities_email_key") {
		t.Fatal("expected pq unique violation to match")
	}
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected pq unique violation to match without constraint")
	}
}

func TestIsUniqueViolationSQLiteFallback(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: ratings.user_id, ratings.store_id")
	if !IsUniqueViolation(err, "ratings_user_id_store_id_key") {
		t.Fatal("expected sqlite message to match")
	}
	if IsUniqueViolation(errors.New("some other failure"), "") {
		t.Fatal("unrelated error must not match")
	}
}
