package errors

// Driver-specific helpers for mapping MySQL and Postgres errors to project ErrorCode and retry semantics

import (
	"context"
	"database/sql/driver"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we care about
const (
	pgErrUndefinedTable         = "42P01"
	pgErrUndefinedColumn        = "42703"
	pgErrSyntaxError            = "42601"
	pgErrInvalidEscapeSequence  = "22025"
	pgErrSerializationFailure   = "40001"
	pgErrDeadlockDetected       = "40P01"
	pgErrLockNotAvailable       = "55P03"
	pgErrQueryCanceled          = "57014"
	pgErrAdminShutdown          = "57P01"
	pgErrCannotConnectNow       = "57P03"
	pgErrTooManyConnections     = "53300"
	pgErrInvalidPassword        = "28P01"
	pgErrInvalidAuthorization   = "28000"
	pgErrReadOnlySQLTransaction = "25006"
)

// MySQL server error numbers we care about
const (
	myErrAccessDenied      = 1045
	myErrBadDB             = 1049
	myErrServerShutdown    = 1053
	myErrUnknownColumn     = 1054
	myErrParse             = 1064
	myErrNoSuchTable       = 1146
	myErrTooManyConns      = 1040
	myErrConCount          = 1203
	myErrLockWaitTimeout   = 1205
	myErrLockDeadlock      = 1213
	myErrQueryInterrupted  = 1317
	myErrQueryTimeout      = 3024
	myErrReadOnly          = 1290
	myErrOptionPreventsRun = 1836
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// ExtractMySQLError returns (*mysql.MySQLError, true) if the cause is a MySQL server error
func ExtractMySQLError(err error) (*mysql.MySQLError, bool) {
	var myErr *mysql.MySQLError
	if stderrs.As(err, &myErr) {
		return myErr, true
	}
	return nil, false
}

// IsTimeout reports whether err is a deadline or a server-side statement timeout
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgErr, ok := ExtractPgError(err); ok {
		return pgErr.Code == pgErrQueryCanceled
	}
	if myErr, ok := ExtractMySQLError(err); ok {
		return myErr.Number == myErrQueryTimeout || myErr.Number == myErrQueryInterrupted
	}
	return false
}

// DBErrorCode maps a driver error to an ErrorCode with an ok flag
// !ok means err came from neither driver; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrQueryCanceled:
			return ErrorCodeTimeout, true
		case pgErrAdminShutdown, pgErrCannotConnectNow, pgErrTooManyConnections,
			pgErrInvalidPassword, pgErrInvalidAuthorization, pgErrReadOnlySQLTransaction:
			return ErrorCodeUnavailable, true
		case pgErrInvalidEscapeSequence:
			return ErrorCodeInvalidArgument, true
		case pgErrUndefinedTable, pgErrUndefinedColumn, pgErrSyntaxError:
			return ErrorCodeDB, true
		}
		return ErrorCodeDB, true
	}

	if myErr, ok := ExtractMySQLError(err); ok {
		switch myErr.Number {
		case myErrQueryTimeout, myErrQueryInterrupted:
			return ErrorCodeTimeout, true
		case myErrServerShutdown, myErrTooManyConns, myErrConCount, myErrAccessDenied,
			myErrBadDB, myErrReadOnly, myErrOptionPreventsRun:
			return ErrorCodeUnavailable, true
		case myErrNoSuchTable, myErrUnknownColumn, myErrParse:
			return ErrorCodeDB, true
		}
		return ErrorCodeDB, true
	}

	// connection level failures surface as driver sentinels rather than server errors
	if stderrs.Is(err, mysql.ErrInvalidConn) || stderrs.Is(err, driver.ErrBadConn) {
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeUnknown, false
}

// FromDB wraps a driver error with a mapped ErrorCode and message.
// If err is nil, returns nil
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	if IsTimeout(err) {
		return Wrap(err, ErrorCodeTimeout, msg)
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromDBf is the formatted variant of FromDB
func FromDBf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromDB(err, fmt.Sprintf(format, a...))
}

// IsRetryable reports whether a database error represents a transient condition
// worth retrying. It handles structured MySQL and Postgres errors and falls back
// to the driver text seen on connection loss
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// local cancellations/timeouts are the caller's decision
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrLockNotAvailable,
			pgErrCannotConnectNow, pgErrTooManyConnections, pgErrAdminShutdown:
			return true
		default:
			return false
		}
	}

	if myErr, ok := ExtractMySQLError(err); ok {
		switch myErr.Number {
		case myErrLockDeadlock, myErrLockWaitTimeout, myErrTooManyConns, myErrConCount, myErrServerShutdown:
			return true
		default:
			return false
		}
	}

	if stderrs.Is(err, mysql.ErrInvalidConn) || stderrs.Is(err, driver.ErrBadConn) {
		return true
	}

	s := strings.ToLower(Root(err).Error())
	switch {
	case strings.Contains(s, "connection refused"),
		strings.Contains(s, "connection reset by peer"),
		strings.Contains(s, "broken pipe"),
		strings.Contains(s, "deadlock"),
		strings.Contains(s, "terminating connection due to administrator command"):
		return true
	default:
		return false
	}
}
