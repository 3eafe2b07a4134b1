package parser

import "fmt"

// Field is a contract note item identified by where it is drawn.
type Field int

const (
	FieldUnknown Field = iota
	ClientName
	AddressLine1
	AddressLine2
	AddressLine3
	AddressLine4
	AddressLine5
	AddressLine6
	AccountName
	SettlementDate
	ContractNoteID
	OrderDate
	OrderTime
	PriceDetailType1
	PriceDetailValue1
	PriceDetailType2
	PriceDetailValue2
	PriceDetailType3
	PriceDetailValue3
	FeeType1
	FeeValue1
	FeeType2
	FeeValue2
	FeeType3
	FeeValue3
	FeeType4
	FeeValue4
	OrderDetailNote1
	OrderDetailNote2
	OrderDetailNote3
	OrderDetailNote4
	Isin
	UnitName
	UnitType
	UnitPrice
	NoteLine1
	NoteLine2
	StockCode
	TransactionType
	Quantity
	TotalIncludingFees
	TotalExcludingFees
)

var fieldNames = map[Field]string{
	FieldUnknown:       "Unknown",
	ClientName:         "ClientName",
	AddressLine1:       "AddressLine1",
	AddressLine2:       "AddressLine2",
	AddressLine3:       "AddressLine3",
	AddressLine4:       "AddressLine4",
	AddressLine5:       "AddressLine5",
	AddressLine6:       "AddressLine6",
	AccountName:        "AccountName",
	SettlementDate:     "SettlementDate",
	ContractNoteID:     "ContractNoteID",
	OrderDate:          "OrderDate",
	OrderTime:          "OrderTime",
	PriceDetailType1:   "PriceDetailType1",
	PriceDetailValue1:  "PriceDetailValue1",
	PriceDetailType2:   "PriceDetailType2",
	PriceDetailValue2:  "PriceDetailValue2",
	PriceDetailType3:   "PriceDetailType3",
	PriceDetailValue3:  "PriceDetailValue3",
	FeeType1:           "FeeType1",
	FeeValue1:          "FeeValue1",
	FeeType2:           "FeeType2",
	FeeValue2:          "FeeValue2",
	FeeType3:           "FeeType3",
	FeeValue3:          "FeeValue3",
	FeeType4:           "FeeType4",
	FeeValue4:          "FeeValue4",
	OrderDetailNote1:   "OrderDetailNote1",
	OrderDetailNote2:   "OrderDetailNote2",
	OrderDetailNote3:   "OrderDetailNote3",
	OrderDetailNote4:   "OrderDetailNote4",
	Isin:               "Isin",
	UnitName:           "UnitName",
	UnitType:           "UnitType",
	UnitPrice:          "UnitPrice",
	NoteLine1:          "NoteLine1",
	NoteLine2:          "NoteLine2",
	StockCode:          "StockCode",
	TransactionType:    "TransactionType",
	Quantity:           "Quantity",
	TotalIncludingFees: "TotalIncludingFees",
	TotalExcludingFees: "TotalExcludingFees",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Numbered field groups, in reading order.
var (
	addressLines     = []Field{AddressLine1, AddressLine2, AddressLine3, AddressLine4, AddressLine5, AddressLine6}
	priceDetails     = [][2]Field{{PriceDetailType1, PriceDetailValue1}, {PriceDetailType2, PriceDetailValue2}, {PriceDetailType3, PriceDetailValue3}}
	fees             = [][2]Field{{FeeType1, FeeValue1}, {FeeType2, FeeValue2}, {FeeType3, FeeValue3}, {FeeType4, FeeValue4}}
	orderDetailNotes = []Field{OrderDetailNote1, OrderDetailNote2, OrderDetailNote3, OrderDetailNote4}
)
