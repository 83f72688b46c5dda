package prescription_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

func validParams() prescription.CreateParams {
	return prescription.CreateParams{
		CustomerID: "c1",
		DoctorName: "Dr. Wilson",
		Medication: "Lisinopril 10mg",
		Dosage:     "1 tablet daily",
		Quantity:   30,
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     func() prescription.CreateParams
		setupMock  func(m *prescription.MockRepository)
		wantNumber string
		wantStatus prescription.Status
		wantFilled bool
		wantErr    error
		wantField  string
	}

	john := &customer.Customer{ID: "c1", Name: "John Smith"}

	tests := []testCase{
		{
			name:   "NumberLeftToRepository",
			params: validParams,
			setupMock: func(m *prescription.MockRepository) {
				m.EXPECT().GetCustomer(gomock.Any(), "c1").Return(john, nil)
				m.EXPECT().
					CreatePrescription(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *prescription.Prescription) error {
						assert.Empty(t, p.PrescriptionNumber)
						p.PrescriptionNumber = "RX000003"

						return nil
					})
			},
			wantNumber: "RX000003",
			wantStatus: prescription.StatusPending,
		},
		{
			name: "DuplicateNumber",
			params: func() prescription.CreateParams {
				p := validParams()
				p.PrescriptionNumber = "RX001234"

				return p
			},
			setupMock: func(m *prescription.MockRepository) {
				m.EXPECT().GetCustomer(gomock.Any(), "c1").Return(john, nil)
				m.EXPECT().CreatePrescription(gomock.Any(), gomock.Any()).Return(prescription.ErrDuplicateNumber)
			},
			wantErr: prescription.ErrDuplicateNumber,
		},
		{
			name: "ExplicitNumberAndCompleted",
			params: func() prescription.CreateParams {
				p := validParams()
				p.PrescriptionNumber = " RX-PAPER-12 "
				p.Status = prescription.StatusCompleted

				return p
			},
			setupMock: func(m *prescription.MockRepository) {
				m.EXPECT().GetCustomer(gomock.Any(), "c1").Return(john, nil)
				m.EXPECT().CreatePrescription(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantNumber: "RX-PAPER-12",
			wantStatus: prescription.StatusCompleted,
			wantFilled: true,
		},
		{
			name: "UnknownCustomer",
			params: func() prescription.CreateParams {
				p := validParams()
				p.CustomerID = "ghost"

				return p
			},
			setupMock: func(m *prescription.MockRepository) {
				m.EXPECT().GetCustomer(gomock.Any(), "ghost").Return(nil, customer.ErrNotFound)
			},
			wantErr: customer.ErrNotFound,
		},
		{
			name: "ZeroQuantity",
			params: func() prescription.CreateParams {
				p := validParams()
				p.Quantity = 0

				return p
			},
			wantField: "quantity",
		},
		{
			name: "BadStatus",
			params: func() prescription.CreateParams {
				p := validParams()
				p.Status = "shipped"

				return p
			},
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := prescription.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := prescription.NewService(repo).Create(context.Background(), tt.params())

			if tt.wantField != "" {
				var verr validate.Errors
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr[0].Field)

				return
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantNumber, got.PrescriptionNumber)
			assert.Equal(t, "John Smith", got.CustomerName)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantFilled, got.FilledAt != nil)
		})
	}
}

func TestService_SetStatus(t *testing.T) {
	filled := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		current    prescription.Prescription
		status     prescription.Status
		wantFilled func(t *testing.T, got *time.Time)
	}{
		{
			name:    "CompletingStampsFilledAt",
			current: prescription.Prescription{ID: "p1", Status: prescription.StatusReady},
			status:  prescription.StatusCompleted,
			wantFilled: func(t *testing.T, got *time.Time) {
				require.NotNil(t, got)
				assert.WithinDuration(t, time.Now(), *got, time.Minute)
			},
		},
		{
			name:    "AlreadyCompletedKeepsFilledAt",
			current: prescription.Prescription{ID: "p1", Status: prescription.StatusCompleted, FilledAt: &filled},
			status:  prescription.StatusCompleted,
			wantFilled: func(t *testing.T, got *time.Time) {
				assert.Equal(t, &filled, got)
			},
		},
		{
			name:    "BackwardsTransitionAllowed",
			current: prescription.Prescription{ID: "p1", Status: prescription.StatusCancelled},
			status:  prescription.StatusPending,
			wantFilled: func(t *testing.T, got *time.Time) {
				assert.Nil(t, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			current := tt.current

			repo := prescription.NewMockRepository(ctrl)
			repo.EXPECT().GetPrescription(gomock.Any(), "p1").Return(&current, nil)
			repo.EXPECT().UpdatePrescription(gomock.Any(), gomock.Any()).Return(nil)

			got, err := prescription.NewService(repo).SetStatus(context.Background(), "p1", tt.status)
			require.NoError(t, err)

			assert.Equal(t, tt.status, got.Status)
			tt.wantFilled(t, got.FilledAt)
		})
	}
}

func TestService_SetStatus_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := prescription.NewMockRepository(ctrl)

	_, err := prescription.NewService(repo).SetStatus(context.Background(), "p1", "lost")
	assert.True(t, validate.IsValidation(err))
}

func TestService_List(t *testing.T) {
	all := []*prescription.Prescription{
		{ID: "1", CustomerID: "c1", Status: prescription.StatusPending},
		{ID: "2", CustomerID: "c2", Status: prescription.StatusReady},
		{ID: "3", CustomerID: "c1", Status: prescription.StatusReady},
	}

	tests := []struct {
		name    string
		filter  prescription.ListFilter
		wantIDs []string
	}{
		{name: "All", wantIDs: []string{"1", "2", "3"}},
		{name: "ByStatus", filter: prescription.ListFilter{Status: new(prescription.StatusReady)}, wantIDs: []string{"2", "3"}},
		{name: "ByCustomer", filter: prescription.ListFilter{CustomerID: "c1"}, wantIDs: []string{"1", "3"}},
		{
			name:    "Both",
			filter:  prescription.ListFilter{Status: new(prescription.StatusReady), CustomerID: "c1"},
			wantIDs: []string{"3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := prescription.NewMockRepository(ctrl)
			repo.EXPECT().ListPrescriptions(gomock.Any()).Return(all, nil)

			got, err := prescription.NewService(repo).List(context.Background(), tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestService_CountByStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := prescription.NewMockRepository(ctrl)
	repo.EXPECT().ListPrescriptions(gomock.Any()).Return([]*prescription.Prescription{
		{Status: prescription.StatusPending},
		{Status: prescription.StatusPending},
		{Status: prescription.StatusCompleted},
	}, nil)

	got, err := prescription.NewService(repo).CountByStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, got[prescription.StatusPending])
	assert.Equal(t, 1, got[prescription.StatusCompleted])
	assert.Zero(t, got[prescription.StatusReady])
}

func TestService_Delete_PropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := prescription.NewMockRepository(ctrl)
	repo.EXPECT().DeletePrescription(gomock.Any(), "p1").Return(errors.New("disk full"))

	err := prescription.NewService(repo).Delete(context.Background(), "p1")
	assert.EqualError(t, err, "disk full")
}
