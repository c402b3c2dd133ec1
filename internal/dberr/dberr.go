// Package dberr turns store and driver errors into API errors.
//
// Postgres SQLSTATE codes and Mongo server errors are folded into a small
// Code enum, then HandleError picks the HTTP shape for each category.
package dberr

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// Code is a driver-independent error category.
type Code int

const (
	Other Code = iota
	UniqueViolation
	NotNullViolation
	CheckViolation
	InvalidText
	Unavailable
)

var pgCodes = map[string]Code{
	"23505": UniqueViolation,
	"23502": NotNullViolation,
	"23514": CheckViolation,
	"22P02": InvalidText,
	"57P01": Unavailable, // admin_shutdown
	"57P03": Unavailable, // cannot_connect_now
	"53300": Unavailable, // too_many_connections
}

// MapCode maps a Postgres SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	if code, ok := pgCodes[sqlState]; ok {
		return code
	}
	return Other
}

// ErrCode categorizes err.
func ErrCode(err error) Code {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}

	switch {
	case mongo.IsDuplicateKeyError(err):
		return UniqueViolation
	case IsUnavailable(err):
		return Unavailable
	}
	return Other
}

// IsUnavailable reports whether err means the store could not be reached
// in time, as opposed to the store rejecting the operation.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}

	var selectionErr topology.ServerSelectionError
	if errors.As(err, &selectionErr) {
		return true
	}

	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}
