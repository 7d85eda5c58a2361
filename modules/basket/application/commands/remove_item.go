package commands

import (
	"context"
	"fmt"

	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// RemoveItemCommand removes a line from a handle's basket.
type RemoveItemCommand struct {
	Handle   string
	MarketID string
	StoreID  string
	ItemID   string
	AttrKeys string
}

type RemoveItemHandler struct {
	repo domain.Repository
}

func NewRemoveItemHandler(repo domain.Repository) *RemoveItemHandler {
	return &RemoveItemHandler{repo: repo}
}

func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) error {
	handle, err := ident.ParseActorID(cmd.Handle)
	if err != nil {
		return fmt.Errorf("invalid handle: %w", err)
	}

	ref, err := parseItemRef(cmd.MarketID, cmd.StoreID, cmd.ItemID, cmd.AttrKeys)
	if err != nil {
		return err
	}

	basket, err := h.repo.FindByHandle(ctx, handle)
	if err != nil {
		return fmt.Errorf("finding basket: %w", err)
	}

	if err := basket.RemoveItem(ref); err != nil {
		return err
	}

	if err := h.repo.Save(ctx, basket); err != nil {
		return fmt.Errorf("saving basket: %w", err)
	}

	return nil
}
