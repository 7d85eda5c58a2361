package commands_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/anthol-dao/anthol-common/modules/basket/application/commands"
	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/events"
	"github.com/anthol-dao/anthol-common/modules/shared/events/contracts"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// --- Mocks ---

type mockRepository struct {
	findByHandleFn func(ctx context.Context, handle ident.ActorID) (*domain.Basket, error)
	saveFn         func(ctx context.Context, basket *domain.Basket) error
	deleteFn       func(ctx context.Context, handle ident.ActorID) error
}

func (m *mockRepository) Save(ctx context.Context, basket *domain.Basket) error {
	return m.saveFn(ctx, basket)
}

func (m *mockRepository) FindByHandle(ctx context.Context, handle ident.ActorID) (*domain.Basket, error) {
	return m.findByHandleFn(ctx, handle)
}

func (m *mockRepository) Delete(ctx context.Context, handle ident.ActorID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, handle)
	}
	return nil
}

type mockTransactionScope struct {
	executeFn func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.executeFn(ctx, fn)
}

type recordingHandler struct {
	events []events.Event
}

func (h *recordingHandler) Handle(ctx context.Context, event events.Event) error {
	h.events = append(h.events, event)
	return nil
}

type mockRegistry struct {
	handlers map[events.EventType][]events.Handler
}

func (m *mockRegistry) HandlersFor(eventType events.EventType) []events.Handler {
	return m.handlers[eventType]
}

type mockPublisher struct {
	published []events.Event
	failWith  error
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.published = append(m.published, event)
	return nil
}

// --- Tests ---

func TestCheckoutHandler_Handle_Success(t *testing.T) {
	// Arrange
	handle := mustHandle(t, "Anthol_User")
	basket := createTestBasket(t, handle, 2)

	var savedBasket *domain.Basket
	handler := &recordingHandler{}

	repo := &mockRepository{
		findByHandleFn: func(ctx context.Context, h ident.ActorID) (*domain.Basket, error) {
			if !h.Equal(handle) {
				t.Errorf("expected handle %s, got %s", handle, h)
			}
			return basket, nil
		},
		saveFn: func(ctx context.Context, b *domain.Basket) error {
			savedBasket = b
			return nil
		},
	}

	registry := &mockRegistry{
		handlers: map[events.EventType][]events.Handler{
			contracts.BasketCheckedOutEventType: {handler},
		},
	}

	txScope := &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}

	publisher := &mockPublisher{}
	checkout := commands.NewCheckoutHandler(repo, txScope, registry, publisher, nil)

	// Act
	err := checkout.Handle(context.Background(), commands.CheckoutCommand{
		Handle: "anthol_user", // case-insensitive lookup
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if savedBasket == nil {
		t.Fatal("expected basket to be saved")
	}
	if savedBasket.Status() != domain.StatusCheckedOut {
		t.Errorf("expected basket status to be checked_out, got %s", savedBasket.Status())
	}

	if len(handler.events) != 1 {
		t.Fatalf("expected 1 handled event, got %d", len(handler.events))
	}
	checkedOut, ok := handler.events[0].(contracts.BasketCheckedOutEvent)
	if !ok {
		t.Fatalf("expected BasketCheckedOutEvent, got %T", handler.events[0])
	}
	if checkedOut.ItemCount != 2 {
		t.Errorf("expected event item count 2, got %d", checkedOut.ItemCount)
	}

	// Committed events also reach async subscribers
	if len(publisher.published) != 1 {
		t.Errorf("expected 1 event on the async publisher, got %d", len(publisher.published))
	}
}

func TestCheckoutHandler_Handle_AsyncPublishErrorIsLogged(t *testing.T) {
	handle := mustHandle(t, "Anthol_User")
	basket := createTestBasket(t, handle, 2)

	repo := &mockRepository{
		findByHandleFn: func(ctx context.Context, h ident.ActorID) (*domain.Basket, error) {
			return basket, nil
		},
		saveFn: func(ctx context.Context, b *domain.Basket) error {
			return nil
		},
	}

	txScope := &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	publisher := &mockPublisher{failWith: errors.New("broker unavailable")}

	checkout := commands.NewCheckoutHandler(repo, txScope, &mockRegistry{}, publisher, logger)

	// The transaction already committed; a failed async publish must not
	// fail the checkout.
	err := checkout.Handle(context.Background(), commands.CheckoutCommand{
		Handle: handle.String(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(logs.String(), "failed to publish checkout event") {
		t.Errorf("expected publish failure to be logged, got %q", logs.String())
	}
	if !strings.Contains(logs.String(), "broker unavailable") {
		t.Errorf("expected the publish error in the log, got %q", logs.String())
	}
}

func TestCheckoutHandler_Handle_InvalidHandle(t *testing.T) {
	handler := commands.NewCheckoutHandler(nil, nil, nil, nil, nil)

	err := handler.Handle(context.Background(), commands.CheckoutCommand{
		Handle: "ab", // below minimum length
	})

	if err == nil {
		t.Fatal("expected error for invalid handle")
	}
	if !errors.Is(err, ident.ErrStringTooShort) {
		t.Errorf("expected ErrStringTooShort, got %v", err)
	}
}

func TestCheckoutHandler_Handle_EmptyBasket(t *testing.T) {
	handle := mustHandle(t, "Anthol_User")
	basket := createTestBasket(t, handle, 0)

	repo := &mockRepository{
		findByHandleFn: func(ctx context.Context, h ident.ActorID) (*domain.Basket, error) {
			return basket, nil
		},
		saveFn: func(ctx context.Context, b *domain.Basket) error {
			t.Fatal("Save should not be called for an empty basket")
			return nil
		},
	}

	txScope := &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}

	checkout := commands.NewCheckoutHandler(repo, txScope, &mockRegistry{}, nil, nil)

	err := checkout.Handle(context.Background(), commands.CheckoutCommand{
		Handle: handle.String(),
	})

	if !errors.Is(err, domain.ErrBasketEmpty) {
		t.Errorf("expected ErrBasketEmpty, got %v", err)
	}
}

func TestCheckoutHandler_Handle_TransactionError(t *testing.T) {
	handle := mustHandle(t, "Anthol_User")
	errTx := errors.New("transaction failed")

	txScope := &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return errTx
		},
	}

	checkout := commands.NewCheckoutHandler(nil, txScope, nil, nil, nil)

	err := checkout.Handle(context.Background(), commands.CheckoutCommand{
		Handle: handle.String(),
	})

	if !errors.Is(err, errTx) {
		t.Errorf("expected errTx, got %v", err)
	}
}

func TestAddItemHandler_Handle_CreatesBasket(t *testing.T) {
	handle := mustHandle(t, "Anthol_User")

	var savedBasket *domain.Basket
	repo := &mockRepository{
		findByHandleFn: func(ctx context.Context, h ident.ActorID) (*domain.Basket, error) {
			return nil, domain.ErrBasketNotFound
		},
		saveFn: func(ctx context.Context, b *domain.Basket) error {
			savedBasket = b
			return nil
		},
	}

	addItem := commands.NewAddItemHandler(repo, nil)

	err := addItem.Handle(context.Background(), commands.AddItemCommand{
		Handle:    handle.String(),
		MarketID:  "main-market",
		StoreID:   "cozy-store",
		ItemID:    "wiggle-stool",
		AttrKeys:  "00000001",
		ItemType:  "physical",
		Name:      "Wiggle Stool",
		StoreName: "Cozy Store",
		UnitPrice: unit.MustPrice(24.99),
		Currency:  "USD",
		Count:     2,
		Stock:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if savedBasket == nil {
		t.Fatal("expected basket to be created and saved")
	}
	if savedBasket.ItemCount() != 2 {
		t.Errorf("expected item count 2, got %d", savedBasket.ItemCount())
	}
	if savedBasket.Currency() != unit.CurrencyUSD {
		t.Errorf("expected currency USD, got %s", savedBasket.Currency())
	}
}

func TestAddItemHandler_Handle_InvalidAttrKeys(t *testing.T) {
	addItem := commands.NewAddItemHandler(&mockRepository{}, nil)

	err := addItem.Handle(context.Background(), commands.AddItemCommand{
		Handle:   "anthol_user",
		MarketID: "main-market",
		StoreID:  "cozy-store",
		ItemID:   "wiggle-stool",
		AttrKeys: "xyz", // not 8 hex digits
		Currency: "USD",
		Count:    1,
		Stock:    1,
	})

	if !errors.Is(err, types.ErrInvalidAttrKeys) {
		t.Errorf("expected ErrInvalidAttrKeys, got %v", err)
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

func createTestBasket(t *testing.T, handle ident.ActorID, count int) *domain.Basket {
	t.Helper()

	var items []domain.BasketItem
	if count > 0 {
		marketID, _ := types.ParseMarketID("main-market")
		storeID, _ := types.ParseStoreID("cozy-store")
		itemID, _ := types.ParseItemID("wiggle-stool")
		items = append(items, domain.BasketItem{
			Ref: domain.ItemRef{
				MarketID: marketID,
				StoreID:  storeID,
				ItemID:   itemID,
				Attrs:    types.NewAttrKeys(1, 0, 0, 0),
			},
			Type:      domain.ItemPhysical,
			Name:      "Wiggle Stool",
			StoreName: "Cozy Store",
			UnitPrice: unit.MustPrice(24.99),
			Count:     count,
			Stock:     10,
		})
	}

	return domain.Reconstitute(
		handle, items, unit.CurrencyUSD, domain.StatusDraft,
		time.Now(), time.Now(),
	)
}
