package auth

import (
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/locale"
)

// TokenField is the name of the hidden anti-forgery input on each login page.
const TokenField = "hl_vt"

// Stage is one step of the login. Build turns the loaded login page into
// the form fields to post back, without the verification token.
type Stage struct {
	Number       int
	Path         string
	ExpectedPath string
	Build        func(page *goquery.Document) (url.Values, error)
}

// StageOne identifies the user by name and date of birth.
func StageOne(username string, dateOfBirth time.Time) Stage {
	return Stage{
		Number:       1,
		Path:         "my-accounts/login-step-one",
		ExpectedPath: "/my-accounts/login-step-two",
		Build: func(*goquery.Document) (url.Values, error) {
			return url.Values{
				"username":      {username},
				"date-of-birth": {dateOfBirth.Format(locale.DateOfBirth)},
			}, nil
		},
	}
}

// StageTwo answers the password and the digit challenge rendered on the page.
func StageTwo(password, secureNumber string) Stage {
	return Stage{
		Number:       2,
		Path:         "my-accounts/login-step-two",
		ExpectedPath: "/my-accounts",
		Build: func(page *goquery.Document) (url.Values, error) {
			challenge, err := ParseDigitChallenge(page)
			if err != nil {
				return nil, err
			}
			digits, err := challenge.Select(secureNumber)
			if err != nil {
				return nil, err
			}

			fields := url.Values{
				"online-password-verification": {password},
				"submit":                       {"Log in"},
			}
			for i, d := range digits {
				fields.Set(fmt.Sprintf("secure-number[%d]", i+1), d)
			}
			return fields, nil
		},
	}
}

// VerificationToken returns the value of the page's single token input.
func VerificationToken(page *goquery.Document, stage int) (string, error) {
	inputs := page.Find(`input[name="` + TokenField + `"]`)
	if inputs.Length() != 1 {
		return "", &common.VerificationTokenError{Stage: stage, Field: TokenField, Found: inputs.Length()}
	}
	value, _ := inputs.Attr("value")
	return value, nil
}
