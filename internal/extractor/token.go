package extractor

import (
	"fmt"
	"math"
	"strings"
)

// Token is a text run shown at a fixed position on the page.
type Token struct {
	X, Y float64
	Text string
}

// Coord returns the token position rounded to hundredths.
func (t Token) Coord() Coord {
	return At(t.X, t.Y)
}

func (t Token) String() string {
	return fmt.Sprintf("(%g, %g) %q", t.X, t.Y, t.Text)
}

// Coord is a page position in hundredths of a point. Layout positions are
// written with two decimals, so comparing Coords is exact where comparing
// floats read back from a file is not.
type Coord struct {
	X, Y int64
}

// At converts a position in points to a Coord.
func At(x, y float64) Coord {
	return Coord{X: hundredths(x), Y: hundredths(y)}
}

func hundredths(v float64) int64 {
	return int64(math.Round(v * 100))
}

// Points returns the position back in points.
func (c Coord) Points() (x, y float64) {
	return float64(c.X) / 100, float64(c.Y) / 100
}

type operandKind int

const (
	operandOther operandKind = iota
	operandInteger
	operandReal
	operandString
)

// operand is one argument of a content stream operator, reduced to what
// the cursor looks at.
type operand struct {
	kind operandKind
	num  float64
	text string
}

// cursor follows the text state through a content stream. Every q starts a
// fresh run; the matching Q emits it when a position and text were both
// set in between.
type cursor struct {
	x, y    float64
	havePos bool
	text    string
	emit    func(Token)
}

func (c *cursor) reset() {
	c.x, c.y, c.havePos, c.text = 0, 0, false, ""
}

func (c *cursor) apply(op string, args []operand) {
	switch op {
	case "q":
		c.reset()
	case "Td":
		// only explicit decimal positions identify a field
		if len(args) == 2 && args[0].kind == operandReal && args[1].kind == operandReal {
			c.x, c.y, c.havePos = args[0].num, args[1].num, true
		}
	case "Tj":
		if len(args) > 0 && args[0].kind == operandString {
			c.text = args[0].text
		}
	case "Q":
		if c.havePos && strings.TrimSpace(c.text) != "" {
			c.emit(Token{X: c.x, Y: c.y, Text: c.text})
		}
		c.reset()
	}
}
