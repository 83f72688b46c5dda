package customer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    customer.CreateParams
		setupMock func(m *customer.MockRepository)
		wantField string
	}

	tests := []testCase{
		{
			name: "Success",
			params: customer.CreateParams{
				Name:          " John Smith ",
				Phone:         "(555) 123-4567",
				Email:         "john.smith@email.com",
				InsuranceInfo: &customer.Insurance{Provider: "Blue Cross", PolicyNumber: "BC-1"},
			},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						c.ID = "c1"
						return nil
					})
			},
		},
		{
			name:      "MissingPhone",
			params:    customer.CreateParams{Name: "John Smith"},
			wantField: "phone",
		},
		{
			name:      "BlankName",
			params:    customer.CreateParams{Name: "  ", Phone: "(555) 123-4567"},
			wantField: "name",
		},
		{
			name:      "BlankPhone",
			params:    customer.CreateParams{Name: "John Smith", Phone: " \t "},
			wantField: "phone",
		},
		{
			name:      "BadEmail",
			params:    customer.CreateParams{Name: "John Smith", Phone: "1", Email: "not-an-email"},
			wantField: "email",
		},
		{
			name:      "BadDateOfBirth",
			params:    customer.CreateParams{Name: "John Smith", Phone: "1", DateOfBirth: "15/05/1980"},
			wantField: "dateOfBirth",
		},
		{
			name: "IncompleteInsurance",
			params: customer.CreateParams{
				Name:          "John Smith",
				Phone:         "1",
				InsuranceInfo: &customer.Insurance{Provider: "Aetna"},
			},
			wantField: "policyNumber",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := customer.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantField != "" {
				var verr validate.Errors
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr[0].Field, tt.wantField)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "c1", got.ID)
			assert.Equal(t, "John Smith", got.Name)
			assert.Zero(t, got.TotalPurchases)
			assert.Nil(t, got.LastVisit)
		})
	}
}

func TestService_List(t *testing.T) {
	customers := []*customer.Customer{
		{ID: "1", Name: "John Smith", Email: "john.smith@email.com", Phone: "(555) 123-4567"},
		{ID: "2", Name: "Sarah Johnson", Email: "sarah.j@email.com", Phone: "(555) 987-6543"},
	}

	tests := []struct {
		name    string
		search  string
		wantIDs []string
	}{
		{name: "Empty", search: "", wantIDs: []string{"1", "2"}},
		{name: "NameCaseInsensitive", search: "SARAH", wantIDs: []string{"2"}},
		{name: "Phone", search: "123-45", wantIDs: []string{"1"}},
		{name: "Email", search: "sarah.j@", wantIDs: []string{"2"}},
		{name: "SharedFragment", search: "john", wantIDs: []string{"1", "2"}},
		{name: "NoMatch", search: "zzz", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			repo.EXPECT().ListCustomers(gomock.Any()).Return(customers, nil)

			got, err := customer.NewService(repo).List(context.Background(), tt.search)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestService_Update_KeepsAggregates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	visit := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	existing := &customer.Customer{
		ID:             "1",
		Name:           "John Smith",
		Phone:          "1",
		TotalPurchases: 42.5,
		LastVisit:      &visit,
	}

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().GetCustomer(gomock.Any(), "1").Return(existing, nil)
	repo.EXPECT().UpdateCustomer(gomock.Any(), existing).Return(nil)

	got, err := customer.NewService(repo).Update(context.Background(), "1", customer.UpdateParams{
		Notes: new("Prefers generics"),
		IsVIP: new(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "Prefers generics", got.Notes)
	assert.True(t, got.IsVIP)
	assert.InDelta(t, 42.5, got.TotalPurchases, 1e-9)
	assert.Equal(t, &visit, got.LastVisit)
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().GetCustomer(gomock.Any(), "nope").Return(nil, customer.ErrNotFound)

	_, err := customer.NewService(repo).Get(context.Background(), "nope")
	assert.ErrorIs(t, err, customer.ErrNotFound)
}
