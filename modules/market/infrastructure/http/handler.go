// Package http provides HTTP handlers for the market module.
// Handlers translate HTTP requests into commands/queries and format responses.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/anthol-dao/anthol-common/modules/market/application/commands"
	"github.com/anthol-dao/anthol-common/modules/market/application/queries"
	"github.com/anthol-dao/anthol-common/modules/market/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
	"github.com/anthol-dao/anthol-common/modules/shared/types"
	"github.com/anthol-dao/anthol-common/modules/shared/unit"
)

// Handler handles HTTP requests for the market module.
type Handler struct {
	registerMarket *commands.RegisterMarketHandler
	putListing     *commands.PutListingHandler
	removeListing  *commands.RemoveListingHandler
	homePage       *queries.HomePageHandler
	marketPage     *queries.MarketPageHandler
	getListing     *queries.GetListingHandler
}

// RegisterRoutes registers the market module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	registerMarket *commands.RegisterMarketHandler,
	putListing *commands.PutListingHandler,
	removeListing *commands.RemoveListingHandler,
	homePage *queries.HomePageHandler,
	marketPage *queries.MarketPageHandler,
	getListing *queries.GetListingHandler,
) {
	h := &Handler{
		registerMarket: registerMarket,
		putListing:     putListing,
		removeListing:  removeListing,
		homePage:       homePage,
		marketPage:     marketPage,
		getListing:     getListing,
	}

	mux.HandleFunc("GET /markets", h.handleHomePage)
	mux.HandleFunc("POST /markets", h.handleRegisterMarket)
	mux.HandleFunc("GET /markets/{marketId}", h.handleMarketPage)
	mux.HandleFunc("GET /markets/{marketId}/stores/{storeId}/items/{itemId}", h.handleGetListing)
	mux.HandleFunc("PUT /markets/{marketId}/stores/{storeId}/items/{itemId}", h.handlePutListing)
	mux.HandleFunc("DELETE /markets/{marketId}/stores/{storeId}/items/{itemId}", h.handleRemoveListing)
}

// Request/Response DTOs

type registerMarketRequest struct {
	MarketID string `json:"market_id"`
	Name     string `json:"name"`
}

type registerMarketResponse struct {
	MarketID string `json:"market_id"`
}

type variantRequest struct {
	AttrKeys  string            `json:"attr_keys"`
	InStock   bool              `json:"in_stock"`
	Prices    map[string]string `json:"prices"`
	ImageURL  string            `json:"image_url"`
	ImageCID  string            `json:"image_cid"`
	ImageMime string            `json:"image_mime"`
	ImageAlt  string            `json:"image_alt"`
}

type specLabelRequest struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type specCategoryRequest struct {
	Name   string             `json:"name"`
	Labels []specLabelRequest `json:"labels"`
}

type putListingRequest struct {
	Name      string                `json:"name"`
	StoreName string                `json:"store_name"`
	Tags      []string              `json:"tags"`
	Variants  []variantRequest      `json:"variants"`
	Specs     []specCategoryRequest `json:"specs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handleRegisterMarket(w http.ResponseWriter, r *http.Request) {
	var req registerMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.RegisterMarketCommand{
		MarketID: req.MarketID,
		Name:     req.Name,
	}

	marketID, err := h.registerMarket.Handle(r.Context(), cmd)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerMarketResponse{MarketID: marketID})
}

func (h *Handler) handleHomePage(w http.ResponseWriter, r *http.Request) {
	itemsPerMarket, _ := strconv.Atoi(r.URL.Query().Get("items_per_market"))

	query := queries.HomePageQuery{
		Currency:       r.URL.Query().Get("currency"),
		ItemsPerMarket: itemsPerMarket,
	}

	page, err := h.homePage.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleMarketPage(w http.ResponseWriter, r *http.Request) {
	query := queries.MarketPageQuery{
		MarketID: r.PathValue("marketId"),
		Currency: r.URL.Query().Get("currency"),
	}

	page, err := h.marketPage.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleGetListing(w http.ResponseWriter, r *http.Request) {
	query := queries.GetListingQuery{
		MarketID: r.PathValue("marketId"),
		StoreID:  r.PathValue("storeId"),
		ItemID:   r.PathValue("itemId"),
	}

	listing, err := h.getListing.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

func (h *Handler) handlePutListing(w http.ResponseWriter, r *http.Request) {
	var req putListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	variants := make([]commands.VariantInput, len(req.Variants))
	for i, v := range req.Variants {
		variants[i] = commands.VariantInput{
			AttrKeys:  v.AttrKeys,
			InStock:   v.InStock,
			Prices:    v.Prices,
			ImageURL:  v.ImageURL,
			ImageCID:  v.ImageCID,
			ImageMime: v.ImageMime,
			ImageAlt:  v.ImageAlt,
		}
	}
	specs := make([]commands.SpecCategoryInput, len(req.Specs))
	for i, category := range req.Specs {
		labels := make([]commands.SpecLabelInput, len(category.Labels))
		for j, label := range category.Labels {
			labels[j] = commands.SpecLabelInput{Name: label.Name, Values: label.Values}
		}
		specs[i] = commands.SpecCategoryInput{Name: category.Name, Labels: labels}
	}

	cmd := commands.PutListingCommand{
		MarketID:  r.PathValue("marketId"),
		StoreID:   r.PathValue("storeId"),
		ItemID:    r.PathValue("itemId"),
		Name:      req.Name,
		StoreName: req.StoreName,
		Tags:      req.Tags,
		Variants:  variants,
		Specs:     specs,
	}

	if err := h.putListing.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveListing(w http.ResponseWriter, r *http.Request) {
	cmd := commands.RemoveListingCommand{
		MarketID: r.PathValue("marketId"),
		StoreID:  r.PathValue("storeId"),
		ItemID:   r.PathValue("itemId"),
	}

	if err := h.removeListing.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions

func handleError(w http.ResponseWriter, err error) {
	var charErr ident.InvalidCharacterError
	switch {
	case errors.Is(err, domain.ErrMarketNotFound),
		errors.Is(err, domain.ErrListingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &charErr),
		errors.Is(err, ident.ErrStringTooShort),
		errors.Is(err, ident.ErrStringTooLong),
		errors.Is(err, ident.ErrInvalidHyphenPosition),
		errors.Is(err, types.ErrInvalidAttrKeys),
		errors.Is(err, unit.ErrUnknownCurrency),
		errors.Is(err, unit.ErrNegativePrice),
		errors.Is(err, domain.ErrMarketNameRequired),
		errors.Is(err, domain.ErrListingNameRequired),
		errors.Is(err, domain.ErrNoAttrVariants),
		errors.Is(err, domain.ErrTagEmpty),
		errors.Is(err, domain.ErrTagTooLong),
		errors.Is(err, domain.ErrTagInvalidCharacters):
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
