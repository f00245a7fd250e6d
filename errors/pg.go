package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eventpulse/feedback-backend/logger"
)

// pgErrorMapping maps a PostgreSQL SQLSTATE class to the HTTP status and the
// sanitized message exposed to API clients. Anything not listed here is
// reported as a generic database failure; raw driver text never reaches the
// response for coded errors.
type pgErrorMapping struct {
	Message    string
	HTTPStatus int
}

var pgErrorTable = map[string]pgErrorMapping{
	"23505": {Message: "Unique constraint violation", HTTPStatus: http.StatusConflict},
	"23503": {Message: "Foreign key violation", HTTPStatus: http.StatusBadRequest},
	"23502": {Message: "Null constraint violation", HTTPStatus: http.StatusBadRequest},
	"23514": {Message: "Constraint failed", HTTPStatus: http.StatusBadRequest},
	"22001": {Message: "Field value too long", HTTPStatus: http.StatusBadRequest},
	"22003": {Message: "Value out of range", HTTPStatus: http.StatusBadRequest},
	"22P02": {Message: "Invalid field value", HTTPStatus: http.StatusBadRequest},
	"42P01": {Message: "Table/view does not exist", HTTPStatus: http.StatusInternalServerError},
	"42703": {Message: "Column does not exist", HTTPStatus: http.StatusInternalServerError},
}

var pgErrorOther = pgErrorMapping{
	Message:    "Database error occurred",
	HTTPStatus: http.StatusInternalServerError,
}

// lookupPgError returns the mapping for a SQLSTATE code, or the generic
// database mapping when the code is unrecognized.
func lookupPgError(code string) pgErrorMapping {
	if m, ok := pgErrorTable[code]; ok {
		return m
	}
	return pgErrorOther
}

// NewDatabaseError translates a failure reported by the persistence layer into
// an AppError. Errors carrying a SQLSTATE go through the fixed mapping table;
// anything else becomes a 500 whose message is the raw error text, matching
// the generic-error contract. The original error is logged either way.
func NewDatabaseError(err error) *AppError {
	logger.GetLogger().Errorw("Database error", "error", err)

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		m := lookupPgError(pgErr.Code)
		return &AppError{
			Type:       DatabaseError,
			Message:    m.Message,
			HTTPStatus: m.HTTPStatus,
			Raw:        err,
		}
	}

	return &AppError{
		Type:       ServerError,
		Message:    err.Error(),
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}
