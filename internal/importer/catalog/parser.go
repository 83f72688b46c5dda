package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/pharmacare/internal/encoding"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
)

// Parser reads product lists and produces product params. It detects which
// layout is in use by matching the header row against known profiles; the
// header does not have to be the first row.
type Parser struct {
	profiles []Profile
}

// NewParser restricts detection to the named profiles, or tries all of them
// when none are given.
func NewParser(names ...string) *Parser {
	if len(names) == 0 {
		return &Parser{profiles: profiles}
	}

	var selected []Profile

	for _, p := range profiles {
		if slices.Contains(names, p.Name) {
			selected = append(selected, p)
		}
	}

	return &Parser{profiles: selected}
}

func (p *Parser) Parse(r io.Reader) ([]product.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, comma := range p.separators() {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := p.detectProfile(comma, rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("no matching product list format found: expected columns for %s", strings.Join(p.names(), " or "))
}

func (p *Parser) separators() []rune {
	var out []rune

	for _, pr := range p.profiles {
		if !slices.Contains(out, pr.Comma) {
			out = append(out, pr.Comma)
		}
	}

	return out
}

func (p *Parser) names() []string {
	out := make([]string, 0, len(p.profiles))
	for _, pr := range p.profiles {
		out = append(out, pr.Name)
	}

	return out
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) index(name string) int {
	if name == "" {
		return -1
	}

	idx, ok := c[strings.ToLower(name)]
	if !ok {
		return -1
	}

	return idx
}

// detectProfile scans rows for a header matching a profile that uses comma.
func (p *Parser) detectProfile(comma rune, rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range p.profiles {
			if p.profiles[i].Comma == comma && matchesProfile(&p.profiles[i], cols) {
				return &p.profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if cols.index(name) < 0 {
			return false
		}
	}

	return true
}

// parseRows converts data rows to product params. Rows with neither a name
// nor a SKU are skipped as blank or footer rows; any other malformed row
// fails the whole file. headerRowNum is the 0-based header index, used for
// error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]product.CreateParams, error) {
	var out []product.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		name := cellValue(row, cols.index(p.NameCol))
		sku := cellValue(row, cols.index(p.SKUCol))

		if name == "" && sku == "" {
			continue
		}

		if name == "" {
			return nil, fmt.Errorf("row %d: missing product name", rowNum)
		}

		params, err := parseRow(p, cols, row, name, sku)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		out = append(out, params)
	}

	return out, nil
}

func parseRow(p *Profile, cols colIndex, row []string, name, sku string) (product.CreateParams, error) {
	params := product.CreateParams{
		Name:         name,
		SKU:          sku,
		Category:     p.DefaultCategory,
		Manufacturer: cellValue(row, cols.index(p.ManufacturerCol)),
		BatchNumber:  cellValue(row, cols.index(p.BatchCol)),
		Description:  cellValue(row, cols.index(p.DescCol)),
	}

	price, err := parsePrice(cellValue(row, cols.index(p.PriceCol)), p.Decimal)
	if err != nil {
		return params, fmt.Errorf("invalid price: %w", err)
	}

	params.Price = price

	stock, err := strconv.Atoi(cellValue(row, cols.index(p.StockCol)))
	if err != nil {
		return params, fmt.Errorf("invalid stock: %w", err)
	}

	params.Stock = stock

	if s := cellValue(row, cols.index(p.ThresholdCol)); s != "" {
		threshold, err := strconv.Atoi(s)
		if err != nil {
			return params, fmt.Errorf("invalid low stock threshold: %w", err)
		}

		params.LowStockThreshold = &threshold
	}

	if s := cellValue(row, cols.index(p.CategoryCol)); s != "" {
		params.Category = normalizeCategory(s)
	}

	if s := cellValue(row, cols.index(p.ExpiryCol)); s != "" {
		expiry, err := time.Parse(p.DateLayout, s)
		if err != nil {
			return params, fmt.Errorf("invalid expiry date %q", s)
		}

		params.ExpiryDate = expiry.Format(time.DateOnly)
	}

	if s := cellValue(row, cols.index(p.RxCol)); s != "" {
		rx, ok := parseFlag(s)
		if !ok {
			return params, fmt.Errorf("invalid prescription flag %q", s)
		}

		params.RequiresPrescription = rx
	}

	return params, nil
}

// normalizeCategory maps free-form labels ("Medical Supplies", "OTC") onto
// category identifiers. Unknown labels are passed through for validation to reject.
func normalizeCategory(s string) product.Category {
	return product.Category(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-"))
}

func parseFlag(s string) (value, ok bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1", "sim", "s":
		return true, true
	case "false", "no", "n", "0", "não", "nao":
		return false, true
	}

	return false, false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
