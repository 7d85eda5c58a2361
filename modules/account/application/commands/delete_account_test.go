package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anthol-dao/anthol-common/modules/account/application/commands"
	"github.com/anthol-dao/anthol-common/modules/account/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/events/contracts"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// --- Mocks ---

type mockRepository struct {
	findByHandleFn func(ctx context.Context, handle ident.ActorID) (*domain.Account, error)
	saveFn         func(ctx context.Context, account *domain.Account) error
}

func (m *mockRepository) Save(ctx context.Context, account *domain.Account) error {
	return m.saveFn(ctx, account)
}

func (m *mockRepository) FindByHandle(ctx context.Context, handle ident.ActorID) (*domain.Account, error) {
	return m.findByHandleFn(ctx, handle)
}

func (m *mockRepository) ExistsHandle(ctx context.Context, handle ident.ActorID) (bool, error) {
	return false, nil
}

func (m *mockRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Account, int, error) {
	return nil, 0, nil
}

type mockTransactionScope struct {
	executeFn func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.executeFn(ctx, fn)
}

type mockPublisher struct {
	publishFn func(ctx context.Context, event events.Event) error
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.publishFn(ctx, event)
}

// --- Tests ---

func TestDeleteAccountHandler_Handle_Success(t *testing.T) {
	// Arrange
	handle := mustHandle(t, "Anthol_User")
	account := createTestAccount(t, handle)

	var savedAccount *domain.Account
	var publishedEvents []events.Event

	repo := &mockRepository{
		findByHandleFn: func(ctx context.Context, h ident.ActorID) (*domain.Account, error) {
			if !h.Equal(handle) {
				t.Errorf("expected handle %s, got %s", handle, h)
			}
			return account, nil
		},
		saveFn: func(ctx context.Context, a *domain.Account) error {
			savedAccount = a
			return nil
		},
	}

	publisher := &mockPublisher{
		publishFn: func(ctx context.Context, event events.Event) error {
			publishedEvents = append(publishedEvents, event)
			return nil
		},
	}

	txScope := &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}

	handler := commands.NewDeleteAccountHandler(repo, txScope, publisher)

	// Act
	err := handler.Handle(context.Background(), commands.DeleteAccountCommand{
		Handle: "anthol_user", // case-insensitive lookup
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if savedAccount == nil {
		t.Fatal("expected account to be saved")
	}
	if savedAccount.Status() != domain.StatusDeleted {
		t.Errorf("expected account status to be deleted, got %s", savedAccount.Status())
	}

	if len(publishedEvents) != 1 {
		t.Fatalf("expected 1 event, got %d", len(publishedEvents))
	}
	deletedEvent, ok := publishedEvents[0].(contracts.AccountDeletedEvent)
	if !ok {
		t.Fatalf("expected AccountDeletedEvent, got %T", publishedEvents[0])
	}
	if deletedEvent.Handle != "anthol_user" {
		t.Errorf("expected event handle 'anthol_user', got %s", deletedEvent.Handle)
	}
}

func TestDeleteAccountHandler_Handle_InvalidHandle(t *testing.T) {
	handler := commands.NewDeleteAccountHandler(nil, nil, nil)

	err := handler.Handle(context.Background(), commands.DeleteAccountCommand{
		Handle: "ab", // below minimum length
	})

	if err == nil {
		t.Fatal("expected error for invalid handle")
	}
	if !errors.Is(err, ident.ErrStringTooShort) {
		t.Errorf("expected ErrStringTooShort, got %v", err)
	}
}

func TestDeleteAccountHandler_Handle_AccountNotFound(t *testing.T) {
	handle := mustHandle(t, "Anthol_User")

	repo := &mockRepository{
		findByHandleFn: func(ctx context.Context, h ident.ActorID) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
		saveFn: func(ctx context.Context, a *domain.Account) error {
			t.Fatal("Save should not be called when account is not found")
			return nil
		},
	}

	publisher := &mockPublisher{
		publishFn: func(ctx context.Context, event events.Event) error {
			t.Fatal("Publish should not be called when account is not found")
			return nil
		},
	}

	txScope := &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}

	handler := commands.NewDeleteAccountHandler(repo, txScope, publisher)

	err := handler.Handle(context.Background(), commands.DeleteAccountCommand{
		Handle: handle.String(),
	})

	if err == nil {
		t.Fatal("expected error when account not found")
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestDeleteAccountHandler_Handle_SaveError(t *testing.T) {
	handle := mustHandle(t, "Anthol_User")
	account := createTestAccount(t, handle)
	errSave := errors.New("save failed")

	repo := &mockRepository{
		findByHandleFn: func(ctx context.Context, h ident.ActorID) (*domain.Account, error) {
			return account, nil
		},
		saveFn: func(ctx context.Context, a *domain.Account) error {
			return errSave
		},
	}

	publisher := &mockPublisher{
		publishFn: func(ctx context.Context, event events.Event) error {
			t.Fatal("Publish should not be called when save fails")
			return nil
		},
	}

	txScope := &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}

	handler := commands.NewDeleteAccountHandler(repo, txScope, publisher)

	err := handler.Handle(context.Background(), commands.DeleteAccountCommand{
		Handle: handle.String(),
	})

	if err == nil {
		t.Fatal("expected error when save fails")
	}
	if !errors.Is(err, errSave) {
		t.Errorf("expected errSave, got %v", err)
	}
}

func TestDeleteAccountHandler_Handle_PublishError(t *testing.T) {
	handle := mustHandle(t, "Anthol_User")
	account := createTestAccount(t, handle)
	errPublish := errors.New("publish failed")

	repo := &mockRepository{
		findByHandleFn: func(ctx context.Context, h ident.ActorID) (*domain.Account, error) {
			return account, nil
		},
		saveFn: func(ctx context.Context, a *domain.Account) error {
			return nil
		},
	}

	publisher := &mockPublisher{
		publishFn: func(ctx context.Context, event events.Event) error {
			return errPublish
		},
	}

	txScope := &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}

	handler := commands.NewDeleteAccountHandler(repo, txScope, publisher)

	err := handler.Handle(context.Background(), commands.DeleteAccountCommand{
		Handle: handle.String(),
	})

	if err == nil {
		t.Fatal("expected error when publish fails")
	}
	if !errors.Is(err, errPublish) {
		t.Errorf("expected errPublish, got %v", err)
	}
}

func TestDeleteAccountHandler_Handle_TransactionError(t *testing.T) {
	handle := mustHandle(t, "Anthol_User")
	errTx := errors.New("transaction failed")

	txScope := &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return errTx
		},
	}

	handler := commands.NewDeleteAccountHandler(nil, txScope, nil)

	err := handler.Handle(context.Background(), commands.DeleteAccountCommand{
		Handle: handle.String(),
	})

	if err == nil {
		t.Fatal("expected error when transaction fails")
	}
	if !errors.Is(err, errTx) {
		t.Errorf("expected errTx, got %v", err)
	}
}

// --- Helpers ---

func mustHandle(t *testing.T, s string) ident.ActorID {
	t.Helper()
	handle, err := ident.ParseActorID(s)
	if err != nil {
		t.Fatalf("failed to parse handle: %v", err)
	}
	return handle
}

func createTestAccount(t *testing.T, handle ident.ActorID) *domain.Account {
	t.Helper()

	name, err := domain.NewName("Alice")
	if err != nil {
		t.Fatalf("failed to create name: %v", err)
	}
	mail, err := domain.NewMailAddress("alice@example.com")
	if err != nil {
		t.Fatalf("failed to create mail address: %v", err)
	}

	return domain.Reconstitute(
		handle, name, domain.BirthName{}, mail,
		domain.NoImage(), domain.StatusActive,
		time.Now(), time.Now(),
	)
}
