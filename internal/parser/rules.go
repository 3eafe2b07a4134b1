package parser

import (
	"github.com/insightdelivered/hl-client/internal/extractor"
)

// rule maps a position to a field when match accepts it.
type rule struct {
	field Field
	match func(c extractor.Coord) bool
}

func pt(v float64) int64 {
	return extractor.At(v, 0).X
}

func between(v int64, lo, hi float64) bool {
	return v > pt(lo) && v < pt(hi)
}

// heuristics cover fields whose position drifts along one axis. They are
// tried before the layout table and in this order, since some overlap it.
var heuristics = []rule{
	{StockCode, func(c extractor.Coord) bool {
		return c.Y == pt(454.82)
	}},
	{TransactionType, func(c extractor.Coord) bool {
		return between(c.X, 250, 280) && c.Y == pt(538.58)
	}},
	{Quantity, func(c extractor.Coord) bool {
		return c.X < pt(100) && c.Y == pt(435.83)
	}},
	{TotalIncludingFees, func(c extractor.Coord) bool {
		return c.X > pt(400) && c.Y == pt(158.03)
	}},
	{TotalExcludingFees, func(c extractor.Coord) bool {
		return between(c.X, 450, 500) && (c.Y == pt(371.34) || c.Y == pt(435.83))
	}},
	{UnitPrice, func(c extractor.Coord) bool {
		return between(c.X, 360, 390) && c.Y == pt(435.83)
	}},
}

// layout holds the fixed positions of the remaining fields.
var layout = map[extractor.Coord]Field{
	extractor.At(62.36, 687.4):  ClientName,
	extractor.At(62.36, 677.48): AddressLine1,
	extractor.At(62.36, 667.56): AddressLine2,
	extractor.At(62.36, 657.64): AddressLine3,
	extractor.At(62.36, 647.72): AddressLine4,
	extractor.At(62.36, 637.80): AddressLine5,
	extractor.At(62.36, 627.88): AddressLine6,

	extractor.At(34.02, 158.03):  AccountName,
	extractor.At(374.17, 158.03): SettlementDate,
	extractor.At(433.7, 582.52):  ContractNoteID,
	extractor.At(56.69, 582.52):  OrderDate,
	extractor.At(249.45, 582.52): OrderTime,

	extractor.At(119.06, 290.55): FeeType1,
	extractor.At(119.06, 280.63): FeeType2,
	extractor.At(119.06, 270.71): FeeType3,
	extractor.At(119.06, 260.79): FeeType4,
	extractor.At(493.94, 290.55): FeeValue1,
	extractor.At(493.94, 280.63): FeeValue2,
	extractor.At(493.94, 270.71): FeeValue3,
	extractor.At(493.94, 260.79): FeeValue4,

	extractor.At(119.06, 323.15): OrderDetailNote1,
	extractor.At(119.06, 333.07): OrderDetailNote2,
	extractor.At(119.06, 342.99): OrderDetailNote3,
	extractor.At(119.06, 352.91): OrderDetailNote4,

	extractor.At(119.06, 454.96): Isin,
	extractor.At(119.06, 445.04): UnitName,
	extractor.At(119.06, 435.12): UnitType,

	extractor.At(119.06, 398.27): PriceDetailType1,
	extractor.At(119.06, 388.35): PriceDetailType2,
	extractor.At(119.06, 378.43): PriceDetailType3,
	extractor.At(388.35, 398.27): PriceDetailValue1,
	extractor.At(388.35, 388.35): PriceDetailValue2,
	extractor.At(388.35, 378.43): PriceDetailValue3,

	extractor.At(31.18, 123.44): NoteLine1,
	extractor.At(31.18, 109.27): NoteLine2,
}

// Classify returns the field drawn at c, or FieldUnknown.
func Classify(c extractor.Coord) Field {
	for _, r := range heuristics {
		if r.match(c) {
			return r.field
		}
	}
	if f, ok := layout[c]; ok {
		return f
	}
	return FieldUnknown
}
