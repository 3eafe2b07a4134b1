package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/models"
)

const linkedPage = `<html><body>
<ul class="linked-account-tabs">
  <li class="current-tab"><a href="https://online.hl.co.uk/my-accounts/linked_accounts_control?method=switch&amp;client_no=1001" title="Mr J Smith (1001)">Mr J Smith</a></li>
  <li><a href="/my-accounts/linked_accounts_control?method=switch&amp;client_no=2002" title="Mrs A Smith (2002)">Mrs A Smith</a></li>
</ul>
</body></html>`

func TestListClientAccounts(t *testing.T) {
	accounts, err := ListClientAccounts(MustLoad(linkedPage))
	require.NoError(t, err)

	assert.Equal(t, []models.ClientAccount{
		{ClientNumber: 1001, Name: "Mr J Smith", CurrentlySelected: true},
		{ClientNumber: 2002, Name: "Mrs A Smith", CurrentlySelected: false},
	}, accounts)
}

func TestListClientAccounts_SingleClient(t *testing.T) {
	accounts, err := ListClientAccounts(MustLoad("<html><body><h1>My accounts</h1></body></html>"))
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
}

func TestListClientAccounts_BadClientNumber(t *testing.T) {
	page := `<html><body><ul class="linked-account-tabs"><li><a href="/x?client_no=abc" title="X">X</a></li></ul></body></html>`
	_, err := ListClientAccounts(MustLoad(page))
	assert.ErrorIs(t, err, common.ErrUnrecognizedDocument)
}
