// Package parser reads trade confirmations from contract note PDFs.
//
// A contract note has a fixed layout, so each text run is identified by
// where it is drawn rather than by what it says. The extractor supplies
// positioned runs, Classify names them and assemble derives the record.
package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/extractor"
	"github.com/insightdelivered/hl-client/internal/models"
)

// ContractNoteParser turns contract note PDFs into records.
type ContractNoteParser struct {
	extractor *extractor.Extractor
	logger    *common.Logger
}

// Option configures a ContractNoteParser.
type Option func(*ContractNoteParser)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(p *ContractNoteParser) {
		p.logger = logger
	}
}

// WithExtractor replaces the token extractor, for example to change the
// ignored positions.
func WithExtractor(e *extractor.Extractor) Option {
	return func(p *ContractNoteParser) {
		p.extractor = e
	}
}

// New creates a ContractNoteParser.
func New(opts ...Option) *ContractNoteParser {
	p := &ContractNoteParser{logger: common.NewSilentLogger()}
	for _, opt := range opts {
		opt(p)
	}
	if p.extractor == nil {
		p.extractor = extractor.New(extractor.WithLogger(p.logger))
	}
	return p
}

// ParseFile reads and parses the contract note at path.
func (p *ContractNoteParser) ParseFile(path string) (*models.ContractNote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	note, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return note, nil
}

// Parse parses a contract note held in memory.
func (p *ContractNoteParser) Parse(data []byte) (*models.ContractNote, error) {
	tokens, err := p.extractor.Extract(data)
	if err != nil {
		return nil, err
	}
	fields, err := p.classify(tokens)
	if err != nil {
		return nil, err
	}
	note, err := assemble(fields)
	if err != nil {
		return nil, err
	}
	p.logger.Debug().
		Str("contract_note", note.ContractNoteID).
		Int("fields", len(fields)).
		Msg("parsed contract note")
	return note, nil
}

// classify names every token. A later token for the same field replaces
// an earlier one.
func (p *ContractNoteParser) classify(tokens []extractor.Token) (map[Field]string, error) {
	fields := make(map[Field]string, len(tokens))
	for _, t := range tokens {
		f := Classify(t.Coord())
		if f == FieldUnknown {
			return nil, &common.PdfTokenError{X: t.X, Y: t.Y, Text: t.Text}
		}
		p.logger.Debug().Stringer("field", f).Stringer("token", t).Msg("classified token")
		fields[f] = t.Text
	}
	return fields, nil
}

func assemble(fields map[Field]string) (*models.ContractNote, error) {
	note := &models.ContractNote{
		ClientName:     fields[ClientName],
		Account:        fields[AccountName],
		ContractNoteID: fields[ContractNoteID],
		UnitName:       fields[UnitName],
		UnitType:       fields[UnitType],
		Isin:           fields[Isin],
		ClientAddress:  []string{},
	}

	for _, f := range addressLines {
		if line, ok := fields[f]; ok && strings.TrimSpace(line) != "" {
			note.ClientAddress = append(note.ClientAddress, line)
		}
	}

	var err error
	if text, ok := fields[SettlementDate]; ok {
		if note.SettlementDate, err = date(SettlementDate, text); err != nil {
			return nil, err
		}
	}

	if text, ok := fields[TransactionType]; ok {
		if note.TransactionType, err = transactionType(text); err != nil {
			return nil, err
		}
	}

	if text, ok := fields[OrderDate]; ok {
		if note.OrderTime, err = orderTimestamp(text, fields[OrderTime]); err != nil {
			return nil, err
		}
	}

	if text, ok := fields[Quantity]; ok {
		if note.Quantity, err = number(Quantity, text); err != nil {
			return nil, err
		}
	}

	note.Note = joinNote(fields[NoteLine1], fields[NoteLine2])

	for _, pair := range priceDetails {
		if err := applyPriceDetail(note, fields[pair[0]], pair[1], fields[pair[1]]); err != nil {
			return nil, err
		}
	}

	for _, pair := range fees {
		if err := applyFee(note, fields[pair[0]], pair[1], fields[pair[1]]); err != nil {
			return nil, err
		}
	}

	for _, f := range orderDetailNotes {
		applyOrderDetail(note, fields[f])
	}

	if text, ok := fields[StockCode]; ok {
		note.Symbol = strings.TrimSpace(strings.ReplaceAll(text, stockCodePrefix, ""))
	}

	if text, ok := fields[TotalIncludingFees]; ok {
		if note.TotalGBPIncludingFees, err = number(TotalIncludingFees, text); err != nil {
			return nil, err
		}
	}

	if text, ok := fields[TotalExcludingFees]; ok {
		text = strings.TrimSpace(strings.ReplaceAll(text, "GBP", ""))
		if note.TotalGBPExcludingFees, err = number(TotalExcludingFees, text); err != nil {
			return nil, err
		}
	}

	// the positional unit price only fills what the price details left unset
	if text, ok := fields[UnitPrice]; ok {
		price, err := number(UnitPrice, text)
		if err != nil {
			return nil, err
		}
		if note.UnitPrice.IsZero() {
			note.UnitPrice = price
		}
		if note.UnitPriceGBP.IsZero() {
			note.UnitPriceGBP = price
		}
		if note.UnitCurrency == "" {
			note.UnitCurrency = "GBP"
		}
	}

	return note, nil
}
