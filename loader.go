package pnlreport

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/xuri/excelize/v2"
)

// Sheet names of a positions workbook.
const (
	PositionsSheet = "positions"
	PriceMapSheet  = "price_map"
)

// LoadPositions reads raw position records from a workbook (.xlsx, .xlsm) or
// a delimited file (.csv), depending on the file extension.
func LoadPositions(path string) ([]RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadWorkbook(path)
	case ".csv", ".txt":
		return LoadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported positions file %q: expecting .xlsx or .csv", path)
	}
}

// LoadCSV reads raw position records from a CSV file with a header row.
func LoadCSV(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open positions file %q: %w", path, err)
	}
	defer f.Close()

	records, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode positions file %q: %w", path, err)
	}
	return records, nil
}

// DecodeCSV reads raw position records from CSV content. Columns symbol, qty
// and cost are required, price is optional.
func DecodeCSV(r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // short rows are padded, not rejected
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	return decodeTable(rows[0], rows[1:], nil)
}

// LoadWorkbook reads raw position records from a workbook. The positions
// sheet holds symbol, qty, cost and optionally price. The optional price_map
// sheet (symbol, price) provides the prices missing from the positions sheet.
func LoadWorkbook(path string) ([]RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open workbook %q: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(PositionsSheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q of %q: %w", PositionsSheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q of %q has no header row", PositionsSheet, path)
	}

	prices, err := readPriceMap(f)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q of %q: %w", PriceMapSheet, path, err)
	}
	return decodeTable(rows[0], rows[1:], prices)
}

// readPriceMap returns the price map sheet keyed by normalized symbol, or nil
// if the workbook has no such sheet.
func readPriceMap(f *excelize.File) (map[string]string, error) {
	rows, err := f.GetRows(PriceMapSheet)
	var notExist excelize.ErrSheetNotExist
	if errors.As(err, &notExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cols := columnIndex(rows[0])
	symbol, okSymbol := cols["symbol"]
	price, okPrice := cols["price"]
	if !okSymbol || !okPrice {
		return nil, fmt.Errorf("missing columns: expecting symbol and price")
	}
	prices := make(map[string]string, len(rows)-1)
	for _, row := range rows[1:] {
		s := normalizeSymbol(cell(row, symbol))
		if s == "" {
			continue
		}
		prices[s] = cell(row, price)
	}
	return prices, nil
}

// columnIndex maps normalized header names to their column index.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, ok := cols[name]; !ok && name != "" {
			cols[name] = i
		}
	}
	return cols
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// decodeTable converts a header and its data rows into records. A price found
// in the rows wins over the price map.
func decodeTable(header []string, rows [][]string, prices map[string]string) ([]RawRecord, error) {
	cols := columnIndex(header)
	var missing []string
	for _, name := range []string{"symbol", "qty", "cost"} {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	price, hasPrice := cols["price"]
	if !hasPrice {
		price = -1
	}

	records := make([]RawRecord, 0, len(rows))
	for i, row := range rows {
		if blank(row) {
			continue
		}
		r := RawRecord{
			Row:    i + 2, // 1-based, after the header
			Symbol: cell(row, cols["symbol"]),
			Qty:    cell(row, cols["qty"]),
			Cost:   cell(row, cols["cost"]),
			Price:  cell(row, price),
		}
		if strings.TrimSpace(r.Price) == "" {
			r.Price = prices[normalizeSymbol(r.Symbol)]
		}
		records = append(records, r)
	}
	return records, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// LoadScenarioSource reads a scenario source file. A missing file means no
// scenarios and returns nil without error.
//
// query is a JSONPath expression locating the source in the document, "" or
// "$" for the root.
func LoadScenarioSource(path, query string) (*ScenarioSource, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open scenario file %q: %w", path, err)
	}
	defer f.Close()

	src, err := DecodeScenarioSource(f, query)
	if err != nil {
		return nil, fmt.Errorf("scenario file %q: %w", path, err)
	}
	return src, nil
}

// DecodeScenarioSource decodes a scenario source. The located value must be
// an object with a "scenarios" array, or directly the array of scenarios.
// null means no scenarios. Any other structure is an ErrScenarioFormat.
//
// Scenarios are decoded one by one: a scenario that cannot be decoded is
// marked invalid and the others are kept. An undecodable base_totals is
// ignored and reported in the source findings.
func DecodeScenarioSource(r io.Reader, query string) (*ScenarioSource, error) {
	var doc any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrScenarioFormat, err)
	}

	if query = strings.TrimSpace(query); query != "" && query != "$" {
		v, err := jsonpath.Get(query, doc)
		if err != nil {
			return nil, fmt.Errorf("%w: locating %q: %v", ErrScenarioFormat, query, err)
		}
		doc = v
	}

	var src ScenarioSource
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		if base, ok := v["base_totals"]; ok && base != nil {
			var o Override
			if err := remarshal(base, &o); err != nil {
				src.Findings.Add(Error, "base_totals invalid, ignored: %v", err)
			} else {
				src.BaseTotals = &o
			}
		}
		switch list := v["scenarios"].(type) {
		case nil:
		case []any:
			src.Scenarios = decodeScenarioRecords(list)
		default:
			return nil, fmt.Errorf("%w: scenarios must be an array, got %T", ErrScenarioFormat, list)
		}
	case []any:
		src.Scenarios = decodeScenarioRecords(v)
	default:
		return nil, fmt.Errorf("%w: expecting an object or an array, got %T", ErrScenarioFormat, doc)
	}
	return &src, nil
}

// decodeScenarioRecords decodes each element on its own.
func decodeScenarioRecords(list []any) []ScenarioRecord {
	records := make([]ScenarioRecord, len(list))
	for i, v := range list {
		if _, ok := v.(map[string]any); !ok {
			records[i].Invalid = fmt.Sprintf("expecting an object, got %s", jsonType(v))
			continue
		}
		var r ScenarioRecord
		if err := remarshal(v, &r); err != nil {
			records[i].Invalid = err.Error()
			continue
		}
		records[i] = r
	}
	return records
}

// jsonType names the JSON type of a decoded value.
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// remarshal converts a generic JSON value into a typed one.
func remarshal(v any, dst any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// ReadText reads an external text file. A missing file is not an error: it
// is the same as an empty text.
func ReadText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("could not read text file %q: %w", path, err)
	}
	return string(b), nil
}
