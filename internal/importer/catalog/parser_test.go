package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/pharmacare/internal/importer/catalog"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
)

func TestParser_PharmaCare(t *testing.T) {
	csv := `name,sku,category,price,stock,lowStockThreshold,manufacturer,batchNumber,expiryDate,requiresPrescription,description
Ibuprofen 200mg,IBU200,otc,8.99,150,20,Generic Pharma,B-100,2025-12-31,false,Anti-inflammatory pain reliever
Amoxicillin 500mg,AMX500,prescription,"1,012.50",40,,MedCorp,,2026-03-20,true,
`

	p := catalog.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "Ibuprofen 200mg", params[0].Name)
	assert.Equal(t, "IBU200", params[0].SKU)
	assert.Equal(t, product.CategoryOTC, params[0].Category)
	assert.InDelta(t, 8.99, params[0].Price, 1e-9)
	assert.Equal(t, 150, params[0].Stock)
	require.NotNil(t, params[0].LowStockThreshold)
	assert.Equal(t, 20, *params[0].LowStockThreshold)
	assert.Equal(t, "Generic Pharma", params[0].Manufacturer)
	assert.Equal(t, "B-100", params[0].BatchNumber)
	assert.Equal(t, "2025-12-31", params[0].ExpiryDate)
	assert.False(t, params[0].RequiresPrescription)

	assert.Equal(t, product.CategoryPrescription, params[1].Category)
	assert.InDelta(t, 1012.50, params[1].Price, 1e-9)
	assert.Nil(t, params[1].LowStockThreshold)
	assert.True(t, params[1].RequiresPrescription)
}

func TestParser_Supplier(t *testing.T) {
	csv := `Tabela de preços - Março 2026

Produto;Referência;Preço;Quantidade;Categoria;Fabricante;Lote;Validade;Receita
Vitamina C 1000mg;VITC1000;€ 1.204,50;12;Vitamins;VitaLife;L2201;31-12-2026;não
Compressas esterilizadas;CMP010;2,30;300;Medical Supplies;;;;
;;;;;;;;
`

	p := catalog.NewParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "Vitamina C 1000mg", params[0].Name)
	assert.Equal(t, "VITC1000", params[0].SKU)
	assert.InDelta(t, 1204.50, params[0].Price, 1e-9)
	assert.Equal(t, 12, params[0].Stock)
	assert.Equal(t, product.CategoryVitamins, params[0].Category)
	assert.Equal(t, "VitaLife", params[0].Manufacturer)
	assert.Equal(t, "L2201", params[0].BatchNumber)
	assert.Equal(t, "2026-12-31", params[0].ExpiryDate)
	assert.False(t, params[0].RequiresPrescription)

	assert.Equal(t, product.CategoryMedicalSupplies, params[1].Category)
	assert.InDelta(t, 2.30, params[1].Price, 1e-9)
	assert.Empty(t, params[1].ExpiryDate)
}

func TestParser_SupplierLatin1(t *testing.T) {
	csv := "Produto;Referência;Preço;Quantidade;Receita\n" +
		"Água oxigenada 10 vol.;AGO10;1,20;48;não\n" +
		"Amoxicilina 500mg;AMX500;6,75;20;sim\n"

	latin1, err := charmap.Windows1252.NewEncoder().String(csv)
	require.NoError(t, err)

	params, err := catalog.NewParser(catalog.ProfileSupplier).Parse(strings.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "Água oxigenada 10 vol.", params[0].Name)
	assert.InDelta(t, 1.20, params[0].Price, 1e-9)
	assert.False(t, params[0].RequiresPrescription)

	assert.Equal(t, "AMX500", params[1].SKU)
	assert.True(t, params[1].RequiresPrescription)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		input   string
		wantErr string
	}{
		{
			name:    "UnknownLayout",
			input:   "foo,bar\n1,2\n",
			wantErr: "no matching product list format",
		},
		{
			name:    "RestrictedToOtherProfile",
			names:   []string{catalog.ProfileSupplier},
			input:   "name,sku,price,stock\nAspirin,ASP,1.00,3\n",
			wantErr: "expected columns for supplier",
		},
		{
			name:    "BadPrice",
			input:   "name,sku,price,stock\nAspirin,ASP,abc,3\n",
			wantErr: "row 2: invalid price",
		},
		{
			name:    "BadStock",
			input:   "name,sku,price,stock\nAspirin,ASP,1.00,3\nGauze,GZ,2.00,many\n",
			wantErr: "row 3: invalid stock",
		},
		{
			name:    "MissingName",
			input:   "name,sku,price,stock\n,ASP,1.00,3\n",
			wantErr: "row 2: missing product name",
		},
		{
			name:    "BadExpiry",
			input:   "name,sku,price,stock,expiryDate\nAspirin,ASP,1.00,3,31/12/2026\n",
			wantErr: `invalid expiry date "31/12/2026"`,
		},
		{
			name:    "BadFlag",
			input:   "name,sku,price,stock,requiresPrescription\nAspirin,ASP,1.00,3,maybe\n",
			wantErr: `invalid prescription flag "maybe"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.NewParser(tt.names...).Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParser_HeaderIsCaseInsensitive(t *testing.T) {
	csv := "NAME,SKU,PRICE,STOCK\nAspirin,ASP,1.5,3\n"

	params, err := catalog.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, "Aspirin", params[0].Name)
	assert.Equal(t, product.CategoryOTC, params[0].Category)
}
