package scraper

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/insightdelivered/hl-client/internal/locale"
	"github.com/insightdelivered/hl-client/internal/models"
)

// ListClientAccounts reads the linked account tabs. Logins with a single
// client never render the tabs, which yields an empty list.
func ListClientAccounts(doc *goquery.Document) ([]models.ClientAccount, error) {
	accounts := []models.ClientAccount{}

	list := doc.Find("ul.linked-account-tabs").First()
	if list.Length() == 0 {
		return accounts, nil
	}

	var err error
	list.Find("li").EachWithBreak(func(i int, item *goquery.Selection) bool {
		var a models.ClientAccount
		if a, err = parseClientAccount(item); err != nil {
			err = fmt.Errorf("linked account %d: %w", i, err)
			return false
		}
		accounts = append(accounts, a)
		return true
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func parseClientAccount(item *goquery.Selection) (models.ClientAccount, error) {
	var a models.ClientAccount

	link := item.Find("a").First()
	if link.Length() == 0 {
		return a, missing("linked account link", "no <a> in tab")
	}
	href, _ := link.Attr("href")
	u, err := url.Parse(href)
	if err != nil {
		return a, missing("linked account link", fmt.Sprintf("invalid href %q", href))
	}
	clientNo := u.Query().Get("client_no")
	if a.ClientNumber, err = strconv.Atoi(clientNo); err != nil {
		return a, missing("linked account link", fmt.Sprintf("client_no %q is not a number", clientNo))
	}

	title, _ := link.Attr("title")
	a.Name = locale.Clean(strings.ReplaceAll(title, "("+strconv.Itoa(a.ClientNumber)+")", ""))
	a.CurrentlySelected = item.HasClass("current-tab")
	return a, nil
}
