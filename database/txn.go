package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner is the transactional boundary the booking engine runs its
// multi-document updates in. The callback's context carries the transaction;
// repository methods that receive it join the same atomic unit. A returned
// error aborts the whole unit, so a partially applied group of writes is
// never visible.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTxRunner struct {
	client *mongo.Client
}

// NewMongoTxRunner builds a TxRunner over MongoDB sessions.
func NewMongoTxRunner(client *mongo.Client) TxRunner {
	return &mongoTxRunner{client: client}
}

func (r *mongoTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
