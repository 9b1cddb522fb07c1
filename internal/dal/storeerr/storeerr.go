// Package storeerr classifies store failures without altering them.
package storeerr

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Kind is the failure class of a store error.
type Kind int

const (
	KindUnknown Kind = iota
	KindConnectivity
	KindSchemaMismatch
	KindPermission
)

func (k Kind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindSchemaMismatch:
		return "schema_mismatch"
	case KindPermission:
		return "permission"
	default:
		return "unknown"
	}
}

// KindOf reports the failure class of err. A nil error is KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return postgresKind(pgErr.Code)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteKind(sqliteErr)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return KindConnectivity
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return KindConnectivity
	}

	if strings.Contains(err.Error(), "unable to open database file") {
		return KindConnectivity
	}

	return KindUnknown
}

// IsSchemaMismatch reports whether err comes from a missing table or column.
func IsSchemaMismatch(err error) bool {
	return KindOf(err) == KindSchemaMismatch
}

func postgresKind(code string) Kind {
	switch {
	case code == "42P01", code == "42703", code == "3F000":
		return KindSchemaMismatch
	case code == "42501", strings.HasPrefix(code, "28"):
		return KindPermission
	case strings.HasPrefix(code, "08"), strings.HasPrefix(code, "57P"):
		return KindConnectivity
	default:
		return KindUnknown
	}
}

func sqliteKind(err *sqlite.Error) Kind {
	switch err.Code() & 0xff {
	case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB:
		return KindConnectivity
	case sqlite3.SQLITE_PERM, sqlite3.SQLITE_READONLY, sqlite3.SQLITE_AUTH:
		return KindPermission
	}

	msg := err.Error()
	if strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "has no column named") {
		return KindSchemaMismatch
	}

	return KindUnknown
}
