package api

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/hl-client/internal/common"
	"github.com/insightdelivered/hl-client/internal/models"
	"github.com/insightdelivered/hl-client/internal/parser"
	"github.com/insightdelivered/hl-client/internal/writer"
)

// maxUpload bounds the request body; contract notes are a single page.
const maxUpload = 8 << 20

// ContractNoteResponse is the JSON response from the contract note endpoint.
type ContractNoteResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	ContractNote *models.ContractNote `json:"contractNote,omitempty"`
	Fees         string               `json:"fees,omitempty"`
	Total        string               `json:"total,omitempty"`
	CSV          string               `json:"csv,omitempty"`
	Version      string               `json:"version,omitempty"`
}

// Handler serves contract note parsing over HTTP.
type Handler struct {
	parser *parser.ContractNoteParser
	logger *common.Logger
}

// NewHandler creates a Handler.
func NewHandler(p *parser.ContractNoteParser, logger *common.Logger) *Handler {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Handler{parser: p, logger: logger}
}

// NewApp creates the fiber app with all routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "hl-client " + common.Version,
		BodyLimit:             maxUpload,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Post("/api/contract-notes", h.HandleContractNote)
}

// HandleHealth reports liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": common.Version,
		"engine":  "fiber",
	})
}

// HandleContractNote parses an uploaded contract note PDF from the
// multipart field "file". With format=csv the note is returned as CSV
// instead of JSON.
func (h *Handler) HandleContractNote(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	file, err := header.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Failed to read uploaded file.")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Failed to read uploaded file.")
	}

	note, err := h.parser.Parse(data)
	if err != nil {
		h.logger.Warn().Err(err).Str("file", header.Filename).Msg("contract note rejected")
		return writeError(c, statusFor(err), "Parsing failed: "+err.Error())
	}

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{IncludeHeader: c.FormValue("header") != "false"}
	if err := csvWriter.WriteContractNotes(&csvBuf, []*models.ContractNote{note}); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "CSV generation failed: "+err.Error())
	}

	if strings.EqualFold(c.Query("format", c.FormValue("format")), "csv") {
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+csvName(header.Filename)+`"`)
		return c.Send(csvBuf.Bytes())
	}

	return c.JSON(ContractNoteResponse{
		Success:      true,
		ContractNote: note,
		Fees:         writer.Sterling(note.Fees()),
		Total:        writer.Sterling(note.TotalGBPIncludingFees),
		CSV:          csvBuf.String(),
		Version:      common.Version,
	})
}

// statusFor separates layouts we do not understand from server faults.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrUnrecognizedPdfToken),
		errors.Is(err, common.ErrUnknownTransactionType),
		errors.Is(err, common.ErrUnrecognizedDocument):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func csvName(pdf string) string {
	base := pdf[strings.LastIndexAny(pdf, `/\`)+1:]
	return strings.TrimSuffix(base, base[len(base)-len(".pdf"):]) + ".csv"
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ContractNoteResponse{
		Success: false,
		Error:   msg,
	})
}
