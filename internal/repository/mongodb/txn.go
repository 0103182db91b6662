package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Txn runs units of work inside a MongoDB session transaction. The session
// context is passed down through the callback's ctx, so repositories stay
// transaction-agnostic. When disabled (standalone mongod without a replica
// set) the callback runs without a session and loses atomicity, which mirrors
// the original deployment's opt-out flag.
type Txn struct {
	client   *mongo.Client
	disabled bool
}

// NewTxn builds a transaction runner over the given client.
func NewTxn(client *mongo.Client, disabled bool) *Txn {
	return &Txn{client: client, disabled: disabled}
}

// WithTransaction starts a session, runs fn and commits. Any error from fn or
// from the commit aborts the transaction; the session is always ended.
func (t *Txn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.disabled {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
