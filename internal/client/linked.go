package client

import (
	"context"
	"fmt"

	"github.com/insightdelivered/hl-client/internal/models"
	"github.com/insightdelivered/hl-client/internal/scraper"
)

// LinkedAccountService lists and switches between the clients a login can
// act for.
type LinkedAccountService struct {
	client *Client
}

// List returns the linked clients, or an empty list for a single client.
func (s *LinkedAccountService) List(ctx context.Context) ([]models.ClientAccount, error) {
	doc, err := s.client.page(ctx, "my-accounts", "", "")
	if err != nil {
		return nil, err
	}
	return scraper.ListClientAccounts(doc)
}

// Switch selects another linked client and reports whether the returned
// page shows it as selected. The message cache is emptied before the
// request, whatever the outcome. The site is assumed to apply the switch before
// answering; false is returned rather than an error when it has not.
func (s *LinkedAccountService) Switch(ctx context.Context, clientNumber int) (bool, error) {
	s.client.forgetMessages()
	path := fmt.Sprintf("my-accounts/linked_accounts_control?method=switch&client_no=%d", clientNumber)
	doc, err := s.client.page(ctx, path, "", "")
	if err != nil {
		return false, err
	}

	accounts, err := scraper.ListClientAccounts(doc)
	if err != nil {
		return false, err
	}
	for _, a := range accounts {
		if a.ClientNumber == clientNumber && a.CurrentlySelected {
			s.client.logger.Info().Int("client", clientNumber).Msg("switched linked account")
			return true, nil
		}
	}
	s.client.logger.Warn().Int("client", clientNumber).Msg("linked account not selected after switch")
	return false, nil
}
