package store

import (
	"time"

	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

// The seed data a fresh installation starts with.

func defaultProducts(now time.Time) []*product.Product {
	return []*product.Product{
		{
			ID:                "1",
			Name:              "Ibuprofen 200mg",
			SKU:               "IBU200",
			Category:          product.CategoryOTC,
			Price:             8.99,
			Stock:             150,
			LowStockThreshold: 20,
			Description:       "Anti-inflammatory pain reliever",
			Manufacturer:      "Generic Pharma",
			ExpiryDate:        "2025-12-31",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:                "2",
			Name:              "Acetaminophen 500mg",
			SKU:               "ACE500",
			Category:          product.CategoryOTC,
			Price:             7.49,
			Stock:             8,
			LowStockThreshold: 15,
			Description:       "Pain reliever and fever reducer",
			Manufacturer:      "MedCorp",
			ExpiryDate:        "2025-10-15",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:                "3",
			Name:              "Multivitamin Daily",
			SKU:               "MVI001",
			Category:          product.CategoryVitamins,
			Price:             15.99,
			Stock:             75,
			LowStockThreshold: 10,
			Description:       "Complete daily vitamin supplement",
			Manufacturer:      "VitaLife",
			ExpiryDate:        "2026-03-20",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}
}

func defaultCustomers(now time.Time) []*customer.Customer {
	return []*customer.Customer{
		{
			ID:               "1",
			Name:             "John Smith",
			Email:            "john.smith@email.com",
			Phone:            "(555) 123-4567",
			Address:          "123 Main St, City, State 12345",
			DateOfBirth:      "1980-05-15",
			RegistrationDate: now,
			InsuranceInfo:    &customer.Insurance{Provider: "Blue Cross Blue Shield", PolicyNumber: "BCBS-0001"},
		},
		{
			ID:               "2",
			Name:             "Sarah Johnson",
			Email:            "sarah.j@email.com",
			Phone:            "(555) 987-6543",
			Address:          "456 Oak Ave, City, State 12345",
			DateOfBirth:      "1992-11-28",
			RegistrationDate: now.AddDate(0, 0, -30),
			InsuranceInfo:    &customer.Insurance{Provider: "Aetna", PolicyNumber: "AET-0002"},
		},
	}
}

func defaultPrescriptions(now time.Time) []*prescription.Prescription {
	return []*prescription.Prescription{
		{
			ID:                 "1",
			PrescriptionNumber: "RX001234",
			CustomerID:         "1",
			CustomerName:       "John Smith",
			DoctorName:         "Dr. Emily Brown",
			Medication:         "Lisinopril 10mg",
			Dosage:             "10mg once daily",
			Quantity:           30,
			RefillsRemaining:   5,
			Status:             prescription.StatusReady,
			Notes:              "Take with food",
			CreatedAt:          now,
			UpdatedAt:          now,
		},
		{
			ID:                 "2",
			PrescriptionNumber: "RX001235",
			CustomerID:         "2",
			CustomerName:       "Sarah Johnson",
			DoctorName:         "Dr. Michael Davis",
			Medication:         "Amoxicillin 500mg",
			Dosage:             "500mg three times daily",
			Quantity:           21,
			RefillsRemaining:   0,
			Status:             prescription.StatusPending,
			Notes:              "Complete full course",
			CreatedAt:          now,
			UpdatedAt:          now,
		},
	}
}

func defaultTransactions(now time.Time) []*transaction.Transaction {
	return []*transaction.Transaction{
		{
			ID:           "1",
			CustomerID:   "1",
			CustomerName: "John Smith",
			Items: []transaction.Item{
				{ProductID: "1", ProductName: "Ibuprofen 200mg", Quantity: 2, UnitPrice: 8.99, Total: 17.98},
			},
			Subtotal:      17.98,
			Discount:      0,
			TaxRate:       0.08,
			Tax:           1.44,
			Total:         19.42,
			PaymentMethod: transaction.PaymentCard,
			CreatedAt:     now,
			CompletedAt:   now,
		},
	}
}
