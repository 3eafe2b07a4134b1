package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/hl-client/internal/extractor/pdftest"
	"github.com/insightdelivered/hl-client/internal/parser"
)

func setupTestApp() *fiber.App {
	return NewApp(NewHandler(parser.New(), nil))
}

func upload(t *testing.T, target, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func notePDF() []byte {
	return pdftest.New().Page(pdftest.Content(
		pdftest.At(433.7, 582.52, "B123456"),
		pdftest.At(263.62, 538.58, "WE HAVE SOLD"),
		pdftest.At(119.06, 290.55, "Commission"),
		pdftest.At(493.94, 290.55, "11.95"),
		pdftest.At(481.89, 158.03, "1,038.05"),
	)).Bytes()
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, "fiber", result["engine"])
}

func TestContractNoteEndpointRequiresFile(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(upload(t, "/api/contract-notes", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestContractNoteEndpointRejectsNonPDF(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(upload(t, "/api/contract-notes", "note.txt", []byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestContractNoteEndpointJSON(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(upload(t, "/api/contract-notes", "B123456.pdf", notePDF()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result ContractNoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	require.NotNil(t, result.ContractNote)
	assert.Equal(t, "B123456", result.ContractNote.ContractNoteID)
	assert.Equal(t, "SELL", string(result.ContractNote.TransactionType))
	assert.Equal(t, "£11.95", result.Fees)
	assert.Equal(t, "£1,038.05", result.Total)
	assert.Contains(t, result.CSV, "B123456")
}

func TestContractNoteEndpointCSV(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(upload(t, "/api/contract-notes?format=csv", "B123456.PDF", notePDF()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="B123456.csv"`)

	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Contract Note,Type,"))
	assert.True(t, strings.HasPrefix(lines[1], "B123456,SELL,"))
}

func TestContractNoteEndpointUnknownLayout(t *testing.T) {
	app := setupTestApp()

	data := pdftest.New().Page(pdftest.Content(pdftest.At(1.23, 4.56, "unexpected"))).Bytes()
	resp, err := app.Test(upload(t, "/api/contract-notes", "other.pdf", data))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var result ContractNoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unexpected")
}

func TestCSVName(t *testing.T) {
	assert.Equal(t, "note.csv", csvName("note.pdf"))
	assert.Equal(t, "B1.csv", csvName(`C:\notes\B1.PDF`))
}
