package httperr

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error codes we turn into operational errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// From translates known store- and token-originated error shapes into
// operational errors at the boundary. Unrecognized errors come back as
// non-operational 500s and are never shown to clients.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("No record found with that ID")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return BadRequest("Duplicate field value. Please use another value")
		case pgForeignKeyViolation:
			return BadRequest("Referenced record does not exist")
		}
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Unauthorized("Your login session expired. Please log in again")
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return Unauthorized("Invalid token. Please log in to get access")
	}

	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "Something went very wrong",
		Err:     err,
	}
}
