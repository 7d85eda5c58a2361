// Package http provides HTTP handlers for the account module.
// Handlers translate HTTP requests into commands/queries and format responses.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/anthol-dao/anthol-common/modules/account/application/commands"
	"github.com/anthol-dao/anthol-common/modules/account/application/queries"
	"github.com/anthol-dao/anthol-common/modules/account/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// Handler handles HTTP requests for the account module.
type Handler struct {
	registerAccount *commands.RegisterAccountHandler
	updateProfile   *commands.UpdateProfileHandler
	deleteAccount   *commands.DeleteAccountHandler
	getAccount      *queries.GetAccountHandler
	listAccounts    *queries.ListAccountsHandler
}

// RegisterRoutes registers the account module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	registerAccount *commands.RegisterAccountHandler,
	updateProfile *commands.UpdateProfileHandler,
	deleteAccount *commands.DeleteAccountHandler,
	getAccount *queries.GetAccountHandler,
	listAccounts *queries.ListAccountsHandler,
) {
	h := &Handler{
		registerAccount: registerAccount,
		updateProfile:   updateProfile,
		deleteAccount:   deleteAccount,
		getAccount:      getAccount,
		listAccounts:    listAccounts,
	}

	mux.HandleFunc("GET /accounts", h.handleListAccounts)
	mux.HandleFunc("POST /accounts", h.handleRegisterAccount)
	mux.HandleFunc("GET /accounts/{handle}", h.handleGetAccount)
	mux.HandleFunc("PUT /accounts/{handle}", h.handleUpdateProfile)
	mux.HandleFunc("DELETE /accounts/{handle}", h.handleDeleteAccount)
}

// Request/Response DTOs

type registerAccountRequest struct {
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	MailAddress string `json:"mail_address"`
}

type registerAccountResponse struct {
	Handle string `json:"handle"`
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	BirthName   string `json:"birth_name"`
	MailAddress string `json:"mail_address"`
	ImageCID    string `json:"image_cid"`
	ImageMime   string `json:"image_mime"`
	ImageBlob   []byte `json:"image_blob"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handleRegisterAccount(w http.ResponseWriter, r *http.Request) {
	var req registerAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.RegisterAccountCommand{
		Handle:      req.Handle,
		Name:        req.Name,
		MailAddress: req.MailAddress,
	}

	handle, err := h.registerAccount.Handle(r.Context(), cmd)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerAccountResponse{Handle: handle})
}

func (h *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if handle == "" {
		writeError(w, http.StatusBadRequest, "handle is required")
		return
	}

	query := queries.GetAccountQuery{Handle: handle}
	account, err := h.getAccount.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if handle == "" {
		writeError(w, http.StatusBadRequest, "handle is required")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.UpdateProfileCommand{
		Handle:      handle,
		Name:        req.Name,
		BirthName:   req.BirthName,
		MailAddress: req.MailAddress,
		ImageCID:    req.ImageCID,
		ImageMime:   req.ImageMime,
		ImageBlob:   req.ImageBlob,
	}

	if err := h.updateProfile.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	if handle == "" {
		writeError(w, http.StatusBadRequest, "handle is required")
		return
	}

	cmd := commands.DeleteAccountCommand{Handle: handle}
	if err := h.deleteAccount.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	query := queries.ListAccountsQuery{
		Offset: offset,
		Limit:  limit,
	}

	result, err := h.listAccounts.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Helper functions

func handleError(w http.ResponseWriter, err error) {
	var charErr ident.InvalidCharacterError
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrHandleTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAccountDeleted):
		writeError(w, http.StatusGone, err.Error())
	case errors.As(err, &charErr),
		errors.Is(err, ident.ErrStringTooShort),
		errors.Is(err, ident.ErrStringTooLong),
		errors.Is(err, ident.ErrInvalidHyphenPosition),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrNameLength),
		errors.Is(err, domain.ErrBirthNameLength),
		errors.Is(err, domain.ErrMailRequired),
		errors.Is(err, domain.ErrMailInvalid),
		errors.Is(err, domain.ErrImageCIDRequired),
		errors.Is(err, domain.ErrImageBlobRequired):
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
