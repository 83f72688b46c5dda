package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/pharmacare/internal/importer/catalog"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
)

type Service struct {
	parsers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		parsers: map[Format]Importer{
			FormatAuto:       catalog.NewParser(),
			FormatPharmaCare: catalog.NewParser(catalog.ProfilePharmaCare),
			FormatSupplier:   catalog.NewParser(catalog.ProfileSupplier),
		},
	}
}

// Import parses a product list, detecting its layout from the header row.
func (s *Service) Import(r io.Reader) ([]product.CreateParams, error) {
	return s.ImportAs(FormatAuto, r)
}

func (s *Service) ImportAs(format Format, r io.Reader) ([]product.CreateParams, error) {
	p, ok := s.parsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown product list format: %s", format)
	}

	params, err := p.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return params, nil
}
