package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type DonationStatus string

const (
	DonationStatusConfirmed DonationStatus = "confirmed"
)

func (s DonationStatus) String() string {
	return string(s)
}

const (
	DonationSourceCybersource = "cybersource"
	PaymentMethodCard         = "card"
	DonationTypeOneTime       = "one_time"
)

// Donor is the durable donor record. TotalDonated and DonationCount are
// derived aggregates: they must always equal the sum/count of this donor's
// confirmed donations and are re-summed rather than incremented.
type Donor struct {
	ID              uuid.UUID
	Email           string
	Name            string
	Phone           string
	Address         string
	DonationCount   int64
	TotalDonated    decimal.Decimal
	FirstDonationAt time.Time
	LastDonationAt  time.Time
}

// Donation is written exactly once per reference number. Notes holds the
// reference number and is unique in the DB; it is the idempotency key for
// the whole confirmation pipeline. Donor contact fields are a snapshot taken
// at payment time, independent of the Donor row.
type Donation struct {
	ID            uuid.UUID
	DonorID       uuid.NullUUID // NULL for anonymous donations (no email)
	DonorEmail    string
	DonorName     string
	DonorPhone    string
	DonorAddress  string
	Amount        decimal.Decimal
	Currency      string
	Status        DonationStatus
	Source        string
	PaymentMethod string
	DonationType  string
	Notes         string
	ConfirmedAt   time.Time
	CreatedAt     time.Time
}

type DonationFilter struct {
	Email         *string
	Currency      *string
	ConfirmedFrom *string
	Page          uint64
	Limit         uint64
	SortBy        DonationSortCol
	OrderBy       OrderByCol
}

type DonationSortCol string

const (
	SortByAmount      DonationSortCol = "amount"
	SortByConfirmedAt DonationSortCol = "confirmed_at"
	SortByCreatedAt   DonationSortCol = "created_at"
)

func (c DonationSortCol) String() string {
	return string(c)
}

func (c DonationSortCol) IsValid() bool {
	switch c {
	case SortByAmount, SortByConfirmedAt, SortByCreatedAt:
		return true
	}

	return false
}

type OrderByCol string

const (
	DESC OrderByCol = "desc"
	ASC  OrderByCol = "asc"
)

func (o OrderByCol) String() string {
	return string(o)
}

func (o OrderByCol) IsValid() bool {
	switch o {
	case DESC, ASC:
		return true
	}

	return false
}
