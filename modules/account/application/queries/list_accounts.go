package queries

import (
	"context"

	"github.com/anthol-dao/anthol-common/modules/account/domain"
)

// AccountListDTO contains a paginated list of accounts.
type AccountListDTO struct {
	Accounts   []*AccountDTO `json:"accounts"`
	TotalCount int           `json:"total_count"`
	Offset     int           `json:"offset"`
	Limit      int           `json:"limit"`
}

// ListAccountsQuery represents a request to list accounts with pagination.
type ListAccountsQuery struct {
	Offset int
	Limit  int
}

// ListAccountsHandler handles ListAccountsQuery.
type ListAccountsHandler struct {
	repo domain.Repository
}

func NewListAccountsHandler(repo domain.Repository) *ListAccountsHandler {
	return &ListAccountsHandler{repo: repo}
}

// Handle executes the list accounts query.
func (h *ListAccountsHandler) Handle(ctx context.Context, query ListAccountsQuery) (*AccountListDTO, error) {
	// Apply defaults
	offset := query.Offset
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	accounts, total, err := h.repo.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]*AccountDTO, len(accounts))
	for i, account := range accounts {
		dtos[i] = toAccountDTO(account)
	}

	return &AccountListDTO{
		Accounts:   dtos,
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
	}, nil
}
