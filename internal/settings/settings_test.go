package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

func TestDefaults_AreValid(t *testing.T) {
	d := settings.Defaults()

	require.NoError(t, validate.Struct(d))
	assert.InDelta(t, 0.08, d.TaxRate, 1e-9)
	assert.Equal(t, "0000", d.PIN)
	assert.Equal(t, "USD", d.Currency)
}

func TestService_Update(t *testing.T) {
	type testCase struct {
		name      string
		params    settings.UpdateParams
		wantField string
		check     func(t *testing.T, got *settings.Settings)
	}

	tests := []testCase{
		{
			name:   "PartialMerge",
			params: settings.UpdateParams{TaxRate: new(0.1), PIN: new("1234")},
			check: func(t *testing.T, got *settings.Settings) {
				assert.InDelta(t, 0.1, got.TaxRate, 1e-9)
				assert.Equal(t, "1234", got.PIN)
				assert.Equal(t, "HealthCare Pharmacy", got.Name)
			},
		},
		{
			name:      "TaxRateAboveOne",
			params:    settings.UpdateParams{TaxRate: new(8.0)},
			wantField: "taxRate",
		},
		{
			name:      "ShortPIN",
			params:    settings.UpdateParams{PIN: new("12")},
			wantField: "pin",
		},
		{
			name:      "LetterPIN",
			params:    settings.UpdateParams{PIN: new("abcd")},
			wantField: "pin",
		},
		{
			name:      "SignedPIN",
			params:    settings.UpdateParams{PIN: new("+123")},
			wantField: "pin",
		},
		{
			name:      "EmptyName",
			params:    settings.UpdateParams{Name: new("")},
			wantField: "name",
		},
		{
			name:      "DiscountOver100",
			params:    settings.UpdateParams{DefaultDiscount: new(150.0)},
			wantField: "defaultDiscount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			current := settings.Defaults()

			repo := settings.NewMockRepository(ctrl)
			repo.EXPECT().GetSettings(gomock.Any()).Return(&current, nil)

			if tt.wantField == "" {
				repo.EXPECT().SaveSettings(gomock.Any(), gomock.Any()).Return(nil)
			}

			got, err := settings.NewService(repo).Update(context.Background(), tt.params)

			if tt.wantField != "" {
				var verr validate.Errors
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr[0].Field)
				assert.Equal(t, settings.Defaults(), current, "stored record must not change")

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}
