package importer

import (
	"errors"
	"io"

	"github.com/MrJamesThe3rd/pharmacare/internal/product"
)

// Format names a product list layout. FormatAuto detects it from the header.
type Format string

const (
	FormatAuto       Format = ""
	FormatPharmaCare Format = "pharmacare"
	FormatSupplier   Format = "supplier"
)

// ErrInvalidInput wraps every error caused by the uploaded content itself.
var ErrInvalidInput = errors.New("invalid product list")

type Importer interface {
	Parse(r io.Reader) ([]product.CreateParams, error)
}
