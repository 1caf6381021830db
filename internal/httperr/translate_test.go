package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestFrom_PassesThroughAppError(t *testing.T) {
	orig := NotFound("No tour found with that ID")
	if got := From(orig); got != orig {
		t.Errorf("From() = %v, want the original error untouched", got)
	}

	// Wrapped AppErrors unwrap back to the original.
	wrapped := fmt.Errorf("loading tour: %w", orig)
	if got := From(wrapped); got != orig {
		t.Errorf("From(wrapped) = %v, want the original error", got)
	}
}

func TestFrom_RecordNotFound(t *testing.T) {
	got := From(gorm.ErrRecordNotFound)
	if got.Code != http.StatusNotFound || !got.Operational {
		t.Errorf("From(ErrRecordNotFound) = %+v, want operational 404", got)
	}
}

func TestFrom_UniqueViolation(t *testing.T) {
	got := From(&pgconn.PgError{Code: "23505"})
	if got.Code != http.StatusBadRequest || !got.Operational {
		t.Errorf("From(23505) = %+v, want operational 400", got)
	}
	if got.Message != "Duplicate field value. Please use another value" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestFrom_ForeignKeyViolation(t *testing.T) {
	got := From(&pgconn.PgError{Code: "23503"})
	if got.Code != http.StatusBadRequest || !got.Operational {
		t.Errorf("From(23503) = %+v, want operational 400", got)
	}
}

func TestFrom_TokenErrors(t *testing.T) {
	got := From(jwt.ErrTokenExpired)
	if got.Code != http.StatusUnauthorized || !got.Operational {
		t.Errorf("From(ErrTokenExpired) = %+v, want operational 401", got)
	}

	for _, err := range []error{
		jwt.ErrTokenMalformed,
		jwt.ErrTokenSignatureInvalid,
		jwt.ErrTokenUnverifiable,
		jwt.ErrTokenInvalidClaims,
	} {
		got := From(err)
		if got.Code != http.StatusUnauthorized || !got.Operational {
			t.Errorf("From(%v) = %+v, want operational 401", err, got)
		}
	}
}

func TestFrom_UnknownErrorIsOpaque500(t *testing.T) {
	cause := errors.New("connection reset by peer")
	got := From(cause)
	if got.Code != http.StatusInternalServerError {
		t.Errorf("Code = %d, want 500", got.Code)
	}
	if got.Operational {
		t.Error("unknown error marked operational")
	}
	if got.Message != "Something went very wrong" {
		t.Errorf("message leaks detail: %q", got.Message)
	}
	if !errors.Is(got, cause) {
		t.Error("cause not kept for logging")
	}
}
