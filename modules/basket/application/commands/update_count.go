package commands

import (
	"context"
	"fmt"

	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// UpdateCountCommand changes the count of a basket line.
type UpdateCountCommand struct {
	Handle   string
	MarketID string
	StoreID  string
	ItemID   string
	AttrKeys string
	Count    int
}

type UpdateCountHandler struct {
	repo domain.Repository
}

func NewUpdateCountHandler(repo domain.Repository) *UpdateCountHandler {
	return &UpdateCountHandler{repo: repo}
}

func (h *UpdateCountHandler) Handle(ctx context.Context, cmd UpdateCountCommand) error {
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

	if err := basket.UpdateCount(ref, cmd.Count); err != nil {
		return err
	}

	if err := h.repo.Save(ctx, basket); err != nil {
		return fmt.Errorf("saving basket: %w", err)
	}

	return nil
}
