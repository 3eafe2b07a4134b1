package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/insightdelivered/hl-client/internal/models"
	"github.com/insightdelivered/hl-client/internal/scraper"
)

const entityAccount = "account"

// AccountService reads the accounts of the selected client.
type AccountService struct {
	client *Client
}

// List returns the accounts on the portfolio overview.
func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	doc, err := s.client.page(ctx, "my-accounts/portfolio_overview", "", "")
	if err != nil {
		return nil, err
	}
	return scraper.ListAccounts(doc)
}

// Holdings returns the stocks and funds held in an account.
func (s *AccountService) Holdings(ctx context.Context, accountID int) ([]models.Holding, error) {
	id := strconv.Itoa(accountID)
	doc, err := s.client.page(ctx, fmt.Sprintf("my-accounts/account_summary/account/%d", accountID), entityAccount, id)
	if err != nil {
		return nil, err
	}
	return scraper.ListHoldings(doc)
}

// CashSummary returns the cash breakdown of an account.
func (s *AccountService) CashSummary(ctx context.Context, accountID int) (models.CashSummary, error) {
	id := strconv.Itoa(accountID)
	doc, err := s.client.page(ctx, fmt.Sprintf("my-accounts/cash/account/%d", accountID), entityAccount, id)
	if err != nil {
		return models.CashSummary{}, err
	}
	return scraper.GetCashSummary(doc)
}

// Transactions returns the capital transaction history of an account.
func (s *AccountService) Transactions(ctx context.Context, accountID int) ([]models.Transaction, error) {
	id := strconv.Itoa(accountID)
	doc, err := s.client.page(ctx, fmt.Sprintf("my-accounts/capital-transaction-history/account/%d", accountID), entityAccount, id)
	if err != nil {
		return nil, err
	}
	return scraper.ListTransactions(doc, s.client.txOpts)
}
