package auth

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/insightdelivered/hl-client/internal/common"
)

// RequiredDigits is how many secret digits the second login page asks for.
const RequiredDigits = 3

const (
	challengeContainer = "secure-number-container"
	fillerClass        = "secure-number-grey-box"
	labelClass         = "secure-number-container__label"
)

// Box is one position of the secure number widget.
type Box int

const (
	// Filler stands for a digit that is not requested.
	Filler Box = iota
	// Label marks a position whose secret digit must be entered.
	Label
)

// DigitChallenge is the secure number widget of one stage two page, read in
// document order.
type DigitChallenge struct {
	Boxes []Box
}

// ParseDigitChallenge reads the widget from a stage two page.
func ParseDigitChallenge(doc *goquery.Document) (DigitChallenge, error) {
	container := doc.Find("div." + challengeContainer).First()
	if container.Length() == 0 {
		return DigitChallenge{}, &common.DocumentError{Element: "div." + challengeContainer, Detail: "not found"}
	}

	var c DigitChallenge
	container.Find("div").Each(func(_ int, div *goquery.Selection) {
		switch {
		case div.HasClass(labelClass):
			c.Boxes = append(c.Boxes, Label)
		case div.HasClass(fillerClass):
			c.Boxes = append(c.Boxes, Filler)
		}
	})

	if len(c.Boxes) == 0 {
		return DigitChallenge{}, &common.DocumentError{Element: "div." + challengeContainer, Detail: "no secure number boxes"}
	}
	if n := len(c.Positions()); n != RequiredDigits {
		return DigitChallenge{}, &common.DocumentError{
			Element: "div." + challengeContainer,
			Detail:  fmt.Sprintf("expected %d requested digits, found %d", RequiredDigits, n),
		}
	}
	return c, nil
}

// Positions returns the zero-based ordinals of the label boxes.
func (c DigitChallenge) Positions() []int {
	var positions []int
	for i, b := range c.Boxes {
		if b == Label {
			positions = append(positions, i)
		}
	}
	return positions
}

// Select picks the secret's digits at the requested positions.
func (c DigitChallenge) Select(secret string) ([]string, error) {
	if !allDigits(secret) {
		return nil, common.InvalidArgument("secure number", "must contain digits only")
	}

	positions := c.Positions()
	digits := make([]string, 0, len(positions))
	for _, p := range positions {
		if p >= len(secret) {
			return nil, common.InvalidArgument("secure number",
				fmt.Sprintf("digit %d requested but only %d digits given", p+1, len(secret)))
		}
		digits = append(digits, secret[p:p+1])
	}
	return digits, nil
}

// allDigits reports whether s is made of ASCII digits only.
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
