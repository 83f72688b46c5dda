package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pharmacare/internal/importer"
)

const pharmaCareCSV = `name,sku,category,price,stock
Loratadine 10mg,LOR10,otc,5.25,30
`

func TestService_ImportAs(t *testing.T) {
	tests := []struct {
		name        string
		format      importer.Format
		input       string
		wantLen     int
		wantInvalid bool
		wantErr     bool
	}{
		{name: "AutoDetect", format: importer.FormatAuto, input: pharmaCareCSV, wantLen: 1},
		{name: "Explicit", format: importer.FormatPharmaCare, input: pharmaCareCSV, wantLen: 1},
		{name: "WrongLayout", format: importer.FormatSupplier, input: pharmaCareCSV, wantInvalid: true},
		{name: "Garbage", format: importer.FormatAuto, input: "hello\nworld\n", wantInvalid: true},
		{name: "UnknownFormat", format: "xml", input: pharmaCareCSV, wantErr: true},
	}

	svc := importer.NewService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := svc.ImportAs(tt.format, strings.NewReader(tt.input))

			switch {
			case tt.wantInvalid:
				assert.ErrorIs(t, err, importer.ErrInvalidInput)
			case tt.wantErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, importer.ErrInvalidInput)
			default:
				require.NoError(t, err)
				require.Len(t, params, tt.wantLen)
				assert.Equal(t, "Loratadine 10mg", params[0].Name)
			}
		})
	}
}
