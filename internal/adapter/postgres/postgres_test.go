package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestValidateConnString(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
		wantErr bool
	}{
		{"uri", "postgres://health@localhost:5432/health?sslmode=disable", false},
		{"key value", "host=localhost user=health dbname=health sslmode=disable", false},
		{"empty", "   ", true},
		{"bad uri", "postgres://%zz/health", true},
		{"unterminated quote", "host='localhost dbname=health", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateConnString(tc.connStr)
			if (err != nil) != tc.wantErr {
				t.Fatalf("got err=%v, wantErr=%v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConnectionString) {
				t.Errorf("expected ErrInvalidConnectionString, got %v", err)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505"}
	if !isUniqueViolation(dup) {
		t.Error("expected 23505 to be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert: %w", dup)) {
		t.Error("expected wrapped error to match")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("other")) {
		t.Error("plain error is not a unique violation")
	}
}
