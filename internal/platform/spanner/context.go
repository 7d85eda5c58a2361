package spanner

import (
	"context"

	"cloud.google.com/go/spanner"
)

// txKey is the context key for storing Spanner transactions.
type txKey struct{}

// ReadTransaction is the read surface shared by Spanner read-write and
// read-only transactions (and by client.Single()). Repositories read through
// this interface so queries work inside either scope.
type ReadTransaction interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	Read(ctx context.Context, table string, keys spanner.KeySet, columns []string) *spanner.RowIterator
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// withReadWriteTx embeds a ReadWriteTransaction in the context.
// Returns ErrNestedTransaction if a transaction is already present.
func withReadWriteTx(ctx context.Context, tx *spanner.ReadWriteTransaction) (context.Context, error) {
	if _, ok := ctx.Value(txKey{}).(ReadTransaction); ok {
		return nil, ErrNestedTransaction
	}
	return context.WithValue(ctx, txKey{}, tx), nil
}

// withReadOnlyTx embeds a ReadOnlyTransaction in the context.
// Returns ErrNestedTransaction if a transaction is already present.
func withReadOnlyTx(ctx context.Context, tx *spanner.ReadOnlyTransaction) (context.Context, error) {
	if _, ok := ctx.Value(txKey{}).(ReadTransaction); ok {
		return nil, ErrNestedTransaction
	}
	return context.WithValue(ctx, txKey{}, tx), nil
}

// ReadWriteTxFromContext extracts a ReadWriteTransaction from context.
// Returns (nil, false) if no read-write transaction is present.
func ReadWriteTxFromContext(ctx context.Context) (*spanner.ReadWriteTransaction, bool) {
	tx, ok := ctx.Value(txKey{}).(*spanner.ReadWriteTransaction)
	return tx, ok
}

// ReadTransactionFromContext extracts the read surface of whichever
// transaction is present. Returns (nil, false) outside a transaction scope;
// repositories then fall back to client.Single().
func ReadTransactionFromContext(ctx context.Context) (ReadTransaction, bool) {
	tx, ok := ctx.Value(txKey{}).(ReadTransaction)
	return tx, ok
}
