package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/esperanzagt/donations/internal/entity"
)

func TestDonationIntent_AmountString(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name   string
		amount float64
		want   string
	}{
		{
			name:   "whole units",
			amount: 100,
			want:   "100.00",
		},
		{
			name:   "one decimal",
			amount: 50.5,
			want:   "50.50",
		},
		{
			name:   "rounds half up",
			amount: 10.005,
			want:   "10.01",
		},
		{
			name:   "truncates extra precision",
			amount: 25.4449,
			want:   "25.44",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			i := entity.DonationIntent{Amount: decimal.NewFromFloat(tt.amount)}
			if got := i.AmountString(); got != tt.want {
				t.Errorf("AmountString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDonationIntent_Validate(t *testing.T) {
	t.Parallel()

	i := entity.DonationIntent{Amount: decimal.NewFromInt(100), Currency: "GTQ"}
	if err := i.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	i = entity.DonationIntent{Amount: decimal.NewFromInt(0), Currency: "GTQ"}
	if err := i.Validate(); err == nil {
		t.Error("Validate() = nil, want error for zero amount")
	}

	i = entity.DonationIntent{Amount: decimal.NewFromInt(100)}
	if err := i.Validate(); err == nil {
		t.Error("Validate() = nil, want error for missing currency")
	}
}

func TestPaymentResult_DonorName(t *testing.T) {
	t.Parallel()

	r := entity.PaymentResult{FirstName: "Ana", LastName: "Lopez"}
	if got := r.DonorName(); got != "Ana Lopez" {
		t.Errorf("DonorName() = %q, want %q", got, "Ana Lopez")
	}

	r = entity.PaymentResult{LastName: "Lopez"}
	if got := r.DonorName(); got != "Lopez" {
		t.Errorf("DonorName() = %q, want %q", got, "Lopez")
	}
}
