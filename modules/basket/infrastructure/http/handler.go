// Package http provides HTTP handlers for the basket module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anthol-dao/anthol-common/modules/basket/application/commands"
	"github.com/anthol-dao/anthol-common/modules/basket/application/queries"
	"github.com/anthol-dao/anthol-common/modules/basket/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

type Handler struct {
	addItem     *commands.AddItemHandler
	updateCount *commands.UpdateCountHandler
	removeItem  *commands.RemoveItemHandler
	checkout    *commands.CheckoutHandler
	getBasket   *queries.GetBasketHandler
}

// RegisterRoutes registers the basket module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	addItem *commands.AddItemHandler,
	updateCount *commands.UpdateCountHandler,
	removeItem *commands.RemoveItemHandler,
	checkout *commands.CheckoutHandler,
	getBasket *queries.GetBasketHandler,
) {
	h := &Handler{
		addItem:     addItem,
		updateCount: updateCount,
		removeItem:  removeItem,
		checkout:    checkout,
		getBasket:   getBasket,
	}

	mux.HandleFunc("GET /baskets/{handle}", h.handleGetBasket)
	mux.HandleFunc("POST /baskets/{handle}/items", h.handleAddItem)
	mux.HandleFunc("PUT /baskets/{handle}/items/{itemId}", h.handleUpdateCount)
	mux.HandleFunc("DELETE /baskets/{handle}/items/{itemId}", h.handleRemoveItem)
	mux.HandleFunc("POST /baskets/{handle}/checkout", h.handleCheckout)
}

// Request/Response DTOs

type addItemRequest struct {
	MarketID  string     `json:"market_id"`
	StoreID   string     `json:"store_id"`
	ItemID    string     `json:"item_id"`
	AttrKeys  string     `json:"attr_keys"`
	ItemType  string     `json:"item_type"`
	Name      string     `json:"name"`
	StoreName string     `json:"store_name"`
	ImageURL  string     `json:"image_url"`
	ImageMime string     `json:"image_mime"`
	UnitPrice unit.Price `json:"unit_price"`
	Currency  string     `json:"currency"`
	Count     int        `json:"count"`
	Stock     int        `json:"stock"`
}

type updateCountRequest struct {
	MarketID string `json:"market_id"`
	StoreID  string `json:"store_id"`
	AttrKeys string `json:"attr_keys"`
	Count    int    `json:"count"`
}

type removeItemRequest struct {
	MarketID string `json:"market_id"`
	StoreID  string `json:"store_id"`
	AttrKeys string `json:"attr_keys"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handleGetBasket(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if handle == "" {
		writeError(w, http.StatusBadRequest, "handle is required")
		return
	}

	query := queries.GetBasketQuery{Handle: handle}
	basket, err := h.getBasket.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, basket)
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if handle == "" {
		writeError(w, http.StatusBadRequest, "handle is required")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.AddItemCommand{
		Handle:    handle,
		MarketID:  req.MarketID,
		StoreID:   req.StoreID,
		ItemID:    req.ItemID,
		AttrKeys:  req.AttrKeys,
		ItemType:  req.ItemType,
		Name:      req.Name,
		StoreName: req.StoreName,
		ImageURL:  req.ImageURL,
		ImageMime: req.ImageMime,
		UnitPrice: req.UnitPrice,
		Currency:  req.Currency,
		Count:     req.Count,
		Stock:     req.Stock,
	}

	if err := h.addItem.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateCount(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	itemID := r.PathValue("itemId")

	var req updateCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.UpdateCountCommand{
		Handle:   handle,
		MarketID: req.MarketID,
		StoreID:  req.StoreID,
		ItemID:   itemID,
		AttrKeys: req.AttrKeys,
		Count:    req.Count,
	}

	if err := h.updateCount.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	itemID := r.PathValue("itemId")

	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.RemoveItemCommand{
		Handle:   handle,
		MarketID: req.MarketID,
		StoreID:  req.StoreID,
		ItemID:   itemID,
		AttrKeys: req.AttrKeys,
	}

	if err := h.removeItem.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if handle == "" {
		writeError(w, http.StatusBadRequest, "handle is required")
		return
	}

	cmd := commands.CheckoutCommand{Handle: handle}
	if err := h.checkout.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions

func handleError(w http.ResponseWriter, err error) {
	var charErr ident.InvalidCharacterError
	switch {
	case errors.Is(err, domain.ErrBasketNotFound), errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrBasketNotDraft):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrBasketEmpty),
		errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrInvalidItemType),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, types.ErrInvalidAttrKeys),
		errors.Is(err, unit.ErrUnknownCurrency),
		errors.As(err, &charErr),
		errors.Is(err, ident.ErrStringTooShort),
		errors.Is(err, ident.ErrStringTooLong),
		errors.Is(err, ident.ErrInvalidHyphenPosition):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
