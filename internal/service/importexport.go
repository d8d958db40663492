package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// exportColumns is the header row shared by CSV and Excel export.
var exportColumns = []string{"Wallet ID", "Amount", "Type", "Category", "Tags", "Description", "Date", "Created At"}

// columnAliases maps accepted header spellings (lowercased, trimmed)
// to canonical field names.
var columnAliases = map[string]string{
	"wallet id": "wallet_id", "walletid": "wallet_id", "wallet": "wallet_id",
	"amount": "amount",
	"type":   "type",
	"category": "category",
	"tags": "tags", "tag": "tags",
	"description": "description", "desc": "description", "note": "description",
	"date": "date", "transactiondate": "date", "datetime": "date",
}

// walletPlaceholders are template tokens users leave in sample files;
// they resolve to the request's default wallet.
var walletPlaceholders = map[string]bool{
	"wallet_id_here": true,
	"walletid_here":  true,
	"wallet_id":      true,
}

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ImportRowError records one rejected row. Row numbers are 1-based
// positions in the source file, header included.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult is the batch outcome. The batch never aborts early;
// every row is attempted and classified.
type ImportResult struct {
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors"`
}

// ImportExportService parses CSV/Excel uploads into transactions and
// serializes a user's transactions back out.
type ImportExportService struct {
	store        repository.Store
	transactions *TransactionService
}

func NewImportExportService(store repository.Store, transactions *TransactionService) *ImportExportService {
	return &ImportExportService{store: store, transactions: transactions}
}

// normalizeRow turns one raw row (canonical field → cell value) into
// a creation payload, or a descriptive error naming the bad value.
func normalizeRow(row map[string]string, defaultWalletID string) (CreateTransactionInput, error) {
	var in CreateTransactionInput

	walletID := strings.TrimSpace(row["wallet_id"])
	if walletID == "" || walletPlaceholders[strings.ToLower(walletID)] {
		if defaultWalletID == "" {
			return in, Invalid("wallet is required: leave a wallet id in the row or supply a default wallet for the import")
		}
		walletID = defaultWalletID
	}
	if !uuidPattern.MatchString(walletID) {
		return in, Invalid(fmt.Sprintf("wallet id %q is not a valid UUID; expected 8-4-4-4-12 hex format", walletID))
	}
	in.WalletID = walletID

	rawAmount := strings.TrimSpace(row["amount"])
	if rawAmount == "" {
		return in, Invalid("amount is required")
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return in, Invalid(fmt.Sprintf("amount %q is not a number; use a plain decimal like 199.99", rawAmount))
	}
	if !amount.IsPositive() {
		return in, Invalid(fmt.Sprintf("amount %q must be positive", rawAmount))
	}
	in.Amount = amount

	rawType := strings.ToLower(strings.TrimSpace(row["type"]))
	if !models.ValidTransactionType(rawType) {
		return in, Invalid(fmt.Sprintf("type %q is not recognized; valid values are income, expense", row["type"]))
	}
	in.Type = rawType

	in.Category = strings.TrimSpace(row["category"])
	if in.Category == "" {
		return in, Invalid("category is required")
	}

	in.Tags = splitTags(row["tags"])
	in.Description = strings.TrimSpace(row["description"])

	rawDate := strings.TrimSpace(row["date"])
	if rawDate == "" {
		return in, Invalid("date is required")
	}
	date, ok := parseDate(rawDate)
	if !ok {
		return in, Invalid(fmt.Sprintf("date %q could not be parsed; use an ISO date like 2026-01-31 or 2026-01-31T12:00:00Z", rawDate))
	}
	in.Date = date

	return in, nil
}

func splitTags(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// mapHeader resolves header cells to canonical field names by index.
// Unknown columns are ignored.
func mapHeader(header []string) map[int]string {
	fields := make(map[int]string, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if canonical, ok := columnAliases[h]; ok {
			fields[i] = canonical
		}
	}
	return fields
}

func rowToMap(fields map[int]string, cells []string) map[string]string {
	row := make(map[string]string, len(fields))
	for i, name := range fields {
		if i < len(cells) {
			row[name] = cells[i]
		}
	}
	return row
}

// importRows runs the shared batch loop. Rows are processed in input
// order so row numbers in errors map 1:1 to the source file.
func (s *ImportExportService) importRows(ctx context.Context, userID string, rows [][]string, defaultWalletID string) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, Invalid("the file contains no rows")
	}
	fields := mapHeader(rows[0])
	if len(fields) == 0 {
		return nil, Invalid("no recognized columns in the header row; expected at least wallet id, amount, type, category, date")
	}

	result := &ImportResult{Errors: []ImportRowError{}}
	for i, cells := range rows[1:] {
		rowNumber := i + 2 // header is row 1
		in, err := normalizeRow(rowToMap(fields, cells), defaultWalletID)
		if err == nil {
			_, err = s.transactions.Create(ctx, userID, in)
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNumber, Message: err.Error()})
			continue
		}
		result.Success++
	}
	return result, nil
}

// ImportCSV reads a CSV upload. A UTF-8 BOM on the first header cell
// is tolerated.
func (s *ImportExportService) ImportCSV(ctx context.Context, userID string, r io.Reader, defaultWalletID string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, Invalid("the file is not valid CSV: " + err.Error())
	}
	return s.importRows(ctx, userID, rows, defaultWalletID)
}

// ImportExcel reads the first sheet of an XLSX upload.
func (s *ImportExportService) ImportExcel(ctx context.Context, userID string, r io.Reader, defaultWalletID string) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, Invalid("the file is not a valid Excel workbook: " + err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, Invalid("the workbook contains no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, Invalid("could not read sheet " + sheets[0] + ": " + err.Error())
	}
	return s.importRows(ctx, userID, rows, defaultWalletID)
}

func (s *ImportExportService) exportRows(ctx context.Context, userID string) ([][]string, error) {
	txs, _, err := s.store.Transactions().FindByUser(ctx, userID, repository.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(txs)+1)
	rows = append(rows, exportColumns)
	for _, t := range txs {
		rows = append(rows, []string{
			t.WalletID,
			t.Amount.StringFixed(2),
			t.Type,
			t.Category,
			strings.Join(t.Tags, ","),
			t.Description,
			t.Date.Format(time.RFC3339),
			t.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows, nil
}

// ExportCSV serializes every transaction of the user, newest first.
func (s *ImportExportService) ExportCSV(ctx context.Context, userID string) ([]byte, error) {
	rows, err := s.exportRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportExcel writes the same rows to a single-sheet XLSX workbook.
func (s *ImportExportService) ExportExcel(ctx context.Context, userID string) ([]byte, error) {
	rows, err := s.exportRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transactions"
	f.SetSheetName(f.GetSheetName(0), sheet)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
