// Package persistence implements repository interfaces for accounts.
package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/anthol-dao/anthol-common/internal/platform/spanner"
	"github.com/anthol-dao/anthol-common/modules/account/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
	"github.com/anthol-dao/anthol-common/modules/shared/media"
)

// SpannerRepository implements domain.Repository using Cloud Spanner.
//
// The Accounts table is keyed by HandleKey, the handle's case-folded
// comparison key bytes, so "Alice" and "alice" hit the same row. The Handle
// column keeps the display form and is re-parsed on scan to restore case.
type SpannerRepository struct {
	client *spanner.Client
}

// NewSpannerRepository creates a new Spanner-backed account repository.
func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Compile-time interface check.
var _ domain.Repository = (*SpannerRepository)(nil)

var accountColumns = []string{
	"HandleKey", "Handle", "Name", "BirthName", "MailAddress",
	"ImageCID", "ImageMime", "ImageBlob", "Status", "CreatedAt", "UpdatedAt",
}

func (r *SpannerRepository) Save(ctx context.Context, account *domain.Account) error {
	image := account.Image()
	mutations := []*spanner.Mutation{
		spanner.InsertOrUpdate("Accounts", accountColumns,
			[]interface{}{
				[]byte(account.Handle().StoreKey()),
				account.Handle().String(),
				account.Name().String(),
				account.BirthName().String(),
				account.Mail().String(),
				image.CID(),
				image.Mime().String(),
				image.Blob(),
				account.Status().String(),
				account.CreatedAt(),
				account.UpdatedAt(),
			},
		),
	}

	// Use existing transaction if available
	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}

	// Fallback: standalone mutation
	_, err := r.client.Apply(ctx, mutations)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindByHandle(ctx context.Context, handle ident.ActorID) (*domain.Account, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	row, err := rtx.ReadRow(ctx, "Accounts",
		spanner.Key{[]byte(handle.StoreKey())},
		accountColumns,
	)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to read account: %w", err)
	}

	return r.scanAccount(row)
}

func (r *SpannerRepository) ExistsHandle(ctx context.Context, handle ident.ActorID) (bool, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	stmt := spanner.Statement{
		SQL:    `SELECT 1 FROM Accounts WHERE HandleKey = @key AND Status != 'deleted' LIMIT 1`,
		Params: map[string]interface{}{"key": []byte(handle.StoreKey())},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check handle existence: %w", err)
	}
	return true, nil
}

func (r *SpannerRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Account, int, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		rtx = roTx
	}

	// Get total count
	countStmt := spanner.Statement{
		SQL: `SELECT COUNT(*) FROM Accounts WHERE Status != 'deleted'`,
	}
	countIter := rtx.Query(ctx, countStmt)
	defer countIter.Stop()

	var total int64
	countRow, err := countIter.Next()
	if err != nil && err != iterator.Done {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	if countRow != nil {
		if err := countRow.Columns(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}

	// Query with pagination, ordered by the comparison key
	stmt := spanner.Statement{
		SQL: `SELECT HandleKey, Handle, Name, BirthName, MailAddress,
		             ImageCID, ImageMime, ImageBlob, Status, CreatedAt, UpdatedAt
		      FROM Accounts
		      WHERE Status != 'deleted'
		      ORDER BY HandleKey
		      LIMIT @limit OFFSET @offset`,
		Params: map[string]interface{}{
			"limit":  int64(limit),
			"offset": int64(offset),
		},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	var accounts []*domain.Account
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to query accounts: %w", err)
		}

		account, err := r.scanAccount(row)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, account)
	}

	return accounts, int(total), nil
}

func (r *SpannerRepository) scanAccount(row *spanner.Row) (*domain.Account, error) {
	var handleKey, imageBlob []byte
	var handleStr, nameStr, birthNameStr, mailStr, imageCID, imageMime, status string
	var createdAt, updatedAt time.Time

	if err := row.Columns(
		&handleKey, &handleStr, &nameStr, &birthNameStr, &mailStr,
		&imageCID, &imageMime, &imageBlob, &status, &createdAt, &updatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}

	// Re-parse the display form; it restores the case bitmap
	handle, err := ident.ParseActorID(handleStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse handle: %w", err)
	}

	name, err := domain.NewName(nameStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse name: %w", err)
	}

	birthName, err := domain.NewBirthName(birthNameStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse birth name: %w", err)
	}

	mail, err := domain.NewMailAddress(mailStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail address: %w", err)
	}

	image := domain.NoImage()
	switch {
	case imageCID != "":
		if image, err = domain.NewCIDImage(imageCID); err != nil {
			return nil, fmt.Errorf("failed to restore image: %w", err)
		}
	case len(imageBlob) > 0:
		if image, err = domain.NewBlobImage(media.ParseMime(imageMime), imageBlob); err != nil {
			return nil, fmt.Errorf("failed to restore image: %w", err)
		}
	}

	return domain.Reconstitute(
		handle, name, birthName, mail, image,
		domain.Status(status), createdAt, updatedAt,
	), nil
}
