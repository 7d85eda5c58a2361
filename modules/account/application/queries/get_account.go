// Package queries contains read use cases for the account module.
// Queries return data and don't change state (CQRS pattern).
package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/anthol-dao/anthol-common/modules/account/domain"
	"github.com/anthol-dao/anthol-common/modules/shared/ident"
)

// AccountDTO is a read model for account data.
// DTOs are optimized for reading and decoupled from domain entities.
type AccountDTO struct {
	Handle      string    `json:"handle"`
	Name        string    `json:"name"`
	BirthName   string    `json:"birth_name,omitempty"`
	MailAddress string    `json:"mail_address"`
	ImageURL    string    `json:"image_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetAccountQuery represents a request to get an account by handle.
type GetAccountQuery struct {
	Handle string
}

// GetAccountHandler handles GetAccountQuery.
type GetAccountHandler struct {
	repo domain.Repository
}

func NewGetAccountHandler(repo domain.Repository) *GetAccountHandler {
	return &GetAccountHandler{repo: repo}
}

// Handle executes the get account query.
func (h *GetAccountHandler) Handle(ctx context.Context, query GetAccountQuery) (*AccountDTO, error) {
	handle, err := ident.ParseActorID(query.Handle)
	if err != nil {
		return nil, fmt.Errorf("invalid handle: %w", err)
	}

	account, err := h.repo.FindByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	return toAccountDTO(account), nil
}

func toAccountDTO(account *domain.Account) *AccountDTO {
	dto := &AccountDTO{
		Handle:      account.Handle().String(),
		Name:        account.Name().String(),
		BirthName:   account.BirthName().String(),
		MailAddress: account.Mail().String(),
		Status:      account.Status().String(),
		CreatedAt:   account.CreatedAt(),
		UpdatedAt:   account.UpdatedAt(),
	}
	if url, ok := account.Image().URL(); ok {
		dto.ImageURL = url
	}
	return dto
}
