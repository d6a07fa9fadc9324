package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
	"github.com/omeid/pgerror"
)

// ErrStoreUnavailable wraps every failure to reach or query the database.
var ErrStoreUnavailable = errors.New("store unavailable")

// Classify wraps err with ErrStoreUnavailable. It returns nil for a nil error.
func Classify(err error) error {
	if err == nil || errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// IsConnectionError reports whether err means the server could not be reached,
// as opposed to the server rejecting a statement.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pgerror.ConnectionException(pqErr) != nil ||
		pgerror.ConnectionDoesNotExist(pqErr) != nil ||
		pgerror.ConnectionFailure(pqErr) != nil ||
		pgerror.SQLclientUnableToEstablishSQLconnection(pqErr) != nil ||
		pgerror.SQLserverRejectedEstablishmentOfSQLconnection(pqErr) != nil ||
		pgerror.TooManyConnections(pqErr) != nil ||
		pgerror.AdminShutdown(pqErr) != nil ||
		pgerror.CrashShutdown(pqErr) != nil ||
		pgerror.CannotConnectNow(pqErr) != nil
}
