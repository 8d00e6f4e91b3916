// Package txn wraps multi-document MongoDB transactions for the
// register/cancel/payment units that must keep the camps and
// registrations collections consistent with each other.
//
// Transactions require a replica set or mongos. Standalone servers
// (common in dev and CI) reject them, so callers run the transactional
// path first and fall back to a compensated sequential path when
// IsNotSupported reports the deployment cannot do better.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a single MongoDB transaction. The
// session context passed to fn must be used for every read and write
// that belongs to the unit. Any error from fn aborts the transaction.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	return client.UseSession(ctx, func(sc mongo.SessionContext) error {
		_, err := sc.WithTransaction(sc, func(sc mongo.SessionContext) (any, error) {
			return nil, fn(sc)
		})
		return err
	})
}

// Server error codes that indicate the deployment cannot run
// multi-document transactions at all (as opposed to a transient
// transaction failure).
const (
	codeTransactionNumbersNotAllowed = 20  // not a replica set member
	codeIllegalOperation             = 51
	codeOperationNotSupportedInTxn   = 263
)

// IsNotSupported reports whether err means the server cannot run
// multi-document transactions, so the caller should retry on the
// compensated sequential path instead of failing the request.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case codeTransactionNumbersNotAllowed, codeIllegalOperation, codeOperationNotSupportedInTxn:
			return true
		}
	}

	// Older servers and some proxies report the condition only in the
	// message text. Require two independent keywords before concluding
	// anything from a string match.
	msg := strings.ToLower(err.Error())
	keywords := [][2]string{
		{"transaction", "replica set"},
		{"session", "not supported"},
		{"transaction", "session"},
		{"illegal operation", "transaction"},
	}
	for _, pair := range keywords {
		if strings.Contains(msg, pair[0]) && strings.Contains(msg, pair[1]) {
			return true
		}
	}
	return false
}
