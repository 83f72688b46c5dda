package catalog

import "github.com/MrJamesThe3rd/pharmacare/internal/product"

// decimalMark is the character separating whole and fractional units in prices.
type decimalMark int

const (
	// decimalPoint reads "1,234.50".
	decimalPoint decimalMark = iota
	// decimalComma reads "1.234,50".
	decimalComma
)

const (
	ProfilePharmaCare = "pharmacare"
	ProfileSupplier   = "supplier"
)

// Profile describes the column layout of one product list format. Column
// names are matched case-insensitively. Optional columns may be empty.
type Profile struct {
	Name       string
	Comma      rune
	Decimal    decimalMark
	DateLayout string

	NameCol  string
	SKUCol   string
	PriceCol string
	StockCol string

	CategoryCol     string
	ThresholdCol    string
	ManufacturerCol string
	BatchCol        string
	ExpiryCol       string
	RxCol           string
	DescCol         string

	DefaultCategory product.Category
}

func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.SKUCol, p.PriceCol, p.StockCol}
}

// profiles is tried in order during auto-detection.
var profiles = []Profile{
	{
		// The layout written by the products CSV export.
		Name:            ProfilePharmaCare,
		Comma:           ',',
		Decimal:         decimalPoint,
		DateLayout:      "2006-01-02",
		NameCol:         "name",
		SKUCol:          "sku",
		PriceCol:        "price",
		StockCol:        "stock",
		CategoryCol:     "category",
		ThresholdCol:    "lowStockThreshold",
		ManufacturerCol: "manufacturer",
		BatchCol:        "batchNumber",
		ExpiryCol:       "expiryDate",
		RxCol:           "requiresPrescription",
		DescCol:         "description",
		DefaultCategory: product.CategoryOTC,
	},
	{
		// Wholesaler price lists exported from European spreadsheets.
		Name:            ProfileSupplier,
		Comma:           ';',
		Decimal:         decimalComma,
		DateLayout:      "02-01-2006",
		NameCol:         "Produto",
		SKUCol:          "Referência",
		PriceCol:        "Preço",
		StockCol:        "Quantidade",
		CategoryCol:     "Categoria",
		ManufacturerCol: "Fabricante",
		BatchCol:        "Lote",
		ExpiryCol:       "Validade",
		RxCol:           "Receita",
		DescCol:         "Descrição",
		DefaultCategory: product.CategoryOTC,
	},
}
