package entity

import (
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Decision is the gateway's categorical outcome for one payment attempt.
type Decision string

const (
	DecisionAccepted  Decision = "ACCEPT"
	DecisionDeclined  Decision = "DECLINE"
	DecisionCancelled Decision = "CANCEL"
	DecisionError     Decision = "ERROR"
)

func (d Decision) String() string {
	return string(d)
}

// DonationIntent is one checkout attempt. It is never persisted as-is; its
// reference number becomes the durable correlation key once the gateway
// calls back.
type DonationIntent struct {
	Amount          decimal.Decimal
	Currency        string
	ReferenceNumber string
	Locale          string
	FirstName       string
	LastName        string
	Email           string
	AddressLine1    string
	City            string
	Country         string
	TestMode        *bool // overrides the configured gateway environment when set
}

func (i DonationIntent) Validate() error {
	if !i.Amount.Round(2).IsPositive() {
		return fmt.Errorf("%w: amount %s must be positive", ErrInvalidArgument, i.Amount)
	}

	if strings.TrimSpace(i.Currency) == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidArgument)
	}

	return nil
}

// AmountString formats the amount the way the gateway signs it: exactly two
// decimal places.
func (i DonationIntent) AmountString() string {
	return i.Amount.Round(2).StringFixed(2)
}

// SignedCheckout is the redirect target plus the full signed field map the
// browser submits to the hosted payment page.
type SignedCheckout struct {
	URL    string
	Fields map[string]string
}

// PaymentResult is the normalized, already signature-verified callback. Card
// number is masked by the gateway and re-masked on our side; a full PAN never
// enters this struct.
type PaymentResult struct {
	Decision      Decision
	ReasonCode    string
	Reference     string
	Amount        decimal.Decimal
	Currency      string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       string
	CardType      string
	CardNumber    string
	TransactionID string
	Message       string
}

func (r PaymentResult) DonorName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Reconciliation identifies the donation row a verified result resolved to.
// Replayed is true when the reference number was already reconciled and no
// writes were performed.
type Reconciliation struct {
	DonationID uuid.UUID
	DonorID    uuid.NullUUID
	Replayed   bool
}

// CallbackOutcome is what the result redirect is built from.
type CallbackOutcome struct {
	Result   PaymentResult
	Recon    Reconciliation
	Notified bool
}
