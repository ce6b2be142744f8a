package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/esperanzagt/donations/internal/entity"
	"github.com/esperanzagt/donations/internal/repository"
	"github.com/esperanzagt/donations/pkg/postgres"
)

func TestRepository_CreateDonation(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	now := time.Now().Truncate(time.Millisecond)

	d := entity.Donation{
		ID:            uuid.Must(uuid.NewV4()),
		DonorEmail:    "ana@example.com",
		DonorName:     "Ana Lopez",
		Amount:        decimal.New(10_000, -2),
		Currency:      "GTQ",
		Status:        entity.DonationStatusConfirmed,
		Source:        entity.DonationSourceCybersource,
		PaymentMethod: entity.PaymentMethodCard,
		DonationType:  entity.DonationTypeOneTime,
		Notes:         uuid.Must(uuid.NewV4()).String(),
		ConfirmedAt:   now,
		CreatedAt:     now,
	}

	err := repo.CreateDonation(context.Background(), d)
	require.NoError(t, err)

	got, err := repo.DonationByReference(context.Background(), d.Notes)
	require.NoError(t, err)
	require.Equal(t, d.ID, got.ID)
	require.True(t, d.Amount.Equal(got.Amount))
	require.Equal(t, d.Notes, got.Notes)
	require.False(t, got.DonorID.Valid)
}

func TestRepository_CreateDonation_DuplicateReference(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	now := time.Now().Truncate(time.Millisecond)

	d := entity.Donation{
		ID:            uuid.Must(uuid.NewV4()),
		Amount:        decimal.New(5_000, -2),
		Currency:      "GTQ",
		Status:        entity.DonationStatusConfirmed,
		Source:        entity.DonationSourceCybersource,
		PaymentMethod: entity.PaymentMethodCard,
		DonationType:  entity.DonationTypeOneTime,
		Notes:         uuid.Must(uuid.NewV4()).String(),
		ConfirmedAt:   now,
		CreatedAt:     now,
	}

	err := repo.CreateDonation(context.Background(), d)
	require.NoError(t, err)

	d.ID = uuid.Must(uuid.NewV4())

	err = repo.CreateDonation(context.Background(), d)
	require.ErrorIs(t, err, entity.ErrDuplicateReference)
}

func TestRepository_CreateDonor_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	now := time.Now().Truncate(time.Millisecond)

	donor := entity.Donor{
		ID:              uuid.Must(uuid.NewV4()),
		Email:           uuid.Must(uuid.NewV4()).String() + "@example.com",
		Name:            "Ana Lopez",
		DonationCount:   1,
		TotalDonated:    decimal.New(10_000, -2),
		FirstDonationAt: now,
		LastDonationAt:  now,
	}

	err := repo.CreateDonor(context.Background(), donor)
	require.NoError(t, err)

	donor.ID = uuid.Must(uuid.NewV4())

	err = repo.CreateDonor(context.Background(), donor)
	require.ErrorIs(t, err, entity.ErrDuplicateEmail)
}

func TestRepository_DonationByReference_NotFound(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)

	_, err := repo.DonationByReference(context.Background(), uuid.Must(uuid.NewV4()).String())
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestRepository_DonorLifecycle(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	now := time.Now().Truncate(time.Millisecond)

	donor := entity.Donor{
		ID:              uuid.Must(uuid.NewV4()),
		Email:           uuid.Must(uuid.NewV4()).String() + "@example.com",
		Name:            "Ana Lopez",
		DonationCount:   1,
		TotalDonated:    decimal.New(10_000, -2),
		FirstDonationAt: now,
		LastDonationAt:  now,
	}

	err := repo.CreateDonor(context.Background(), donor)
	require.NoError(t, err)

	got, err := repo.DonorByEmail(context.Background(), donor.Email)
	require.NoError(t, err)
	require.Equal(t, donor.ID, got.ID)
	require.Equal(t, int64(1), got.DonationCount)

	// Empty incoming contact fields must not blank out stored values.
	err = repo.TouchDonor(context.Background(), donor.ID, "", "+502 5555 1234", "", now.Add(time.Hour))
	require.NoError(t, err)

	got, err = repo.DonorByEmail(context.Background(), donor.Email)
	require.NoError(t, err)
	require.Equal(t, "Ana Lopez", got.Name)
	require.Equal(t, "+502 5555 1234", got.Phone)
	require.Equal(t, int64(2), got.DonationCount)
}

func TestRepository_RecalculateDonorTotals(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	now := time.Now().Truncate(time.Millisecond)

	donor := entity.Donor{
		ID:              uuid.Must(uuid.NewV4()),
		Email:           uuid.Must(uuid.NewV4()).String() + "@example.com",
		DonationCount:   0,
		TotalDonated:    decimal.Zero,
		FirstDonationAt: now,
		LastDonationAt:  now,
	}

	err := repo.CreateDonor(context.Background(), donor)
	require.NoError(t, err)

	amounts := []decimal.Decimal{decimal.New(10_000, -2), decimal.New(5_050, -2)}

	for _, amount := range amounts {
		d := entity.Donation{
			ID:            uuid.Must(uuid.NewV4()),
			DonorID:       uuid.NullUUID{UUID: donor.ID, Valid: true},
			DonorEmail:    donor.Email,
			Amount:        amount,
			Currency:      "GTQ",
			Status:        entity.DonationStatusConfirmed,
			Source:        entity.DonationSourceCybersource,
			PaymentMethod: entity.PaymentMethodCard,
			DonationType:  entity.DonationTypeOneTime,
			Notes:         uuid.Must(uuid.NewV4()).String(),
			ConfirmedAt:   now,
			CreatedAt:     now,
		}

		err = repo.CreateDonation(context.Background(), d)
		require.NoError(t, err)
	}

	err = repo.RecalculateDonorTotals(context.Background(), donor.ID)
	require.NoError(t, err)

	got, err := repo.DonorByEmail(context.Background(), donor.Email)
	require.NoError(t, err)
	require.True(t, decimal.New(15_050, -2).Equal(got.TotalDonated), "total_donated = %s", got.TotalDonated)
	require.Equal(t, int64(2), got.DonationCount)
}

func TestRepository_Donations_Filter(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	now := time.Now().Truncate(time.Millisecond)

	email := uuid.Must(uuid.NewV4()).String() + "@example.com"

	for i := 0; i < 3; i++ {
		d := entity.Donation{
			ID:            uuid.Must(uuid.NewV4()),
			DonorEmail:    email,
			Amount:        decimal.New(int64(1_000*(i+1)), -2),
			Currency:      "GTQ",
			Status:        entity.DonationStatusConfirmed,
			Source:        entity.DonationSourceCybersource,
			PaymentMethod: entity.PaymentMethodCard,
			DonationType:  entity.DonationTypeOneTime,
			Notes:         uuid.Must(uuid.NewV4()).String(),
			ConfirmedAt:   now,
			CreatedAt:     now,
		}

		err := repo.CreateDonation(context.Background(), d)
		require.NoError(t, err)
	}

	filter := entity.DonationFilter{
		Email:   &email,
		Page:    1,
		Limit:   2,
		SortBy:  entity.SortByAmount,
		OrderBy: entity.ASC,
	}

	donations, totalCount, err := repo.Donations(context.Background(), filter)
	require.NoError(t, err)
	require.Equal(t, 3, totalCount)
	require.Len(t, donations, 2)
	require.True(t, donations[0].Amount.LessThan(donations[1].Amount))
}

func newRepository(t *testing.T) *repository.Repository {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	pool, err := postgres.Connect(context.Background(), dsn, 10)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	err = postgres.UpMigrations(dsn)
	require.NoError(t, err)

	return repository.New(pool)
}
