package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype/zeronull"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esperanzagt/donations/internal/entity"
)

const uniqueViolationCode = "23505"

type Repository struct {
	db *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		db: pool,
	}
}

func (r *Repository) DonationByReference(ctx context.Context, reference string) (entity.Donation, error) {
	q := selectDonation + " WHERE notes = $1"
	return scanDonation(r.db.QueryRow(ctx, q, reference))
}

// CreateDonation inserts exactly one row per reference number. The unique
// index on notes makes a concurrent duplicate surface as
// ErrDuplicateReference, which callers treat as the replay path.
func (r *Repository) CreateDonation(ctx context.Context, d entity.Donation) error {
	const q = `
	INSERT INTO donations (
		id,
		donor_id,
		donor_email,
		donor_name,
		donor_phone,
		donor_address,
		amount,
		currency,
		status,
		source,
		payment_method,
		donation_type,
		notes,
		confirmed_at,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(
		ctx,
		q,
		d.ID,
		d.DonorID,
		zeronull.Text(d.DonorEmail),
		zeronull.Text(d.DonorName),
		zeronull.Text(d.DonorPhone),
		zeronull.Text(d.DonorAddress),
		d.Amount,
		d.Currency,
		d.Status,
		d.Source,
		d.PaymentMethod,
		d.DonationType,
		d.Notes,
		d.ConfirmedAt,
		d.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("donation %q: %w", d.Notes, entity.ErrDuplicateReference)
		}

		return err
	}

	return nil
}

func (r *Repository) DonorByEmail(ctx context.Context, email string) (entity.Donor, error) {
	q := selectDonor + " WHERE email = $1"
	return scanDonor(r.db.QueryRow(ctx, q, email))
}

// CreateDonor inserts a new donor. Email is unique: a concurrent first
// donation from the same address surfaces as ErrDuplicateEmail, which callers
// treat as the existing-donor path.
func (r *Repository) CreateDonor(ctx context.Context, d entity.Donor) error {
	const q = `
	INSERT INTO donors (
		id,
		email,
		name,
		phone,
		address,
		donation_count,
		total_donated,
		first_donation_at,
		last_donation_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(
		ctx,
		q,
		d.ID,
		d.Email,
		zeronull.Text(d.Name),
		zeronull.Text(d.Phone),
		zeronull.Text(d.Address),
		d.DonationCount,
		d.TotalDonated,
		d.FirstDonationAt,
		d.LastDonationAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("donor %q: %w", d.Email, entity.ErrDuplicateEmail)
		}

		return err
	}

	return nil
}

// TouchDonor records one more donation for an existing donor. Contact fields
// are updated non-destructively: an empty incoming value never overwrites a
// stored one.
func (r *Repository) TouchDonor(ctx context.Context, id uuid.UUID, name, phone, address string, at time.Time) error {
	const q = `
	UPDATE donors SET
		name = COALESCE(NULLIF($1, ''), name),
		phone = COALESCE(NULLIF($2, ''), phone),
		address = COALESCE(NULLIF($3, ''), address),
		donation_count = donation_count + 1,
		last_donation_at = $4
	WHERE id = $5
	`

	result, err := r.db.Exec(ctx, q, name, phone, address, at, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// RecalculateDonorTotals re-sums the donor's aggregates from the donation
// rows instead of incrementing, healing any drift left by earlier partial
// failures.
func (r *Repository) RecalculateDonorTotals(ctx context.Context, donorID uuid.UUID) error {
	const q = `
	UPDATE donors SET
		total_donated = COALESCE((SELECT SUM(amount) FROM donations WHERE donor_id = $1 AND status = $2), 0),
		donation_count = (SELECT COUNT(*) FROM donations WHERE donor_id = $1 AND status = $2)
	WHERE id = $1
	`

	result, err := r.db.Exec(ctx, q, donorID, entity.DonationStatusConfirmed)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) RecalculateAllDonorTotals(ctx context.Context) error {
	const q = `
	UPDATE donors SET
		total_donated = COALESCE((SELECT SUM(amount) FROM donations WHERE donor_id = donors.id AND status = $1), 0),
		donation_count = (SELECT COUNT(*) FROM donations WHERE donor_id = donors.id AND status = $1)
	`

	_, err := r.db.Exec(ctx, q, entity.DonationStatusConfirmed)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) Donations(ctx context.Context, f entity.DonationFilter) ([]entity.Donation, int, error) {
	stmt := sq.Select(
		"id",
		"donor_id",
		"donor_email",
		"donor_name",
		"donor_phone",
		"donor_address",
		"amount",
		"currency",
		"status",
		"source",
		"payment_method",
		"donation_type",
		"notes",
		"confirmed_at",
		"created_at",
		"COUNT(*) OVER() AS total_count",
	).From("donations").PlaceholderFormat(sq.Dollar)

	stmt = applyDonationFilter(stmt, f).
		Limit(f.Limit).
		Offset(f.Page*f.Limit - f.Limit).
		OrderBy(fmt.Sprintf("%s %s", f.SortBy, f.OrderBy))

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	donations := make([]entity.Donation, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var d entity.Donation

		var count int

		err = rows.Scan(
			&d.ID,
			&d.DonorID,
			(*zeronull.Text)(&d.DonorEmail),
			(*zeronull.Text)(&d.DonorName),
			(*zeronull.Text)(&d.DonorPhone),
			(*zeronull.Text)(&d.DonorAddress),
			&d.Amount,
			&d.Currency,
			&d.Status,
			&d.Source,
			&d.PaymentMethod,
			&d.DonationType,
			&d.Notes,
			&d.ConfirmedAt,
			&d.CreatedAt,
			&count,
		)
		if err != nil {
			return nil, 0, err
		}

		totalCount = count

		donations = append(donations, d)
	}

	return donations, totalCount, nil
}

func applyDonationFilter(stmt sq.SelectBuilder, f entity.DonationFilter) sq.SelectBuilder {
	if f.Email != nil {
		stmt = stmt.Where(sq.Eq{"donor_email": *f.Email})
	}

	if f.Currency != nil {
		stmt = stmt.Where(sq.Eq{"currency": *f.Currency})
	}

	if f.ConfirmedFrom != nil {
		stmt = stmt.Where(sq.GtOrEq{"confirmed_at": *f.ConfirmedFrom})
	}

	return stmt
}

func scanDonation(row pgx.Row) (d entity.Donation, err error) {
	err = row.Scan(
		&d.ID,
		&d.DonorID,
		(*zeronull.Text)(&d.DonorEmail),
		(*zeronull.Text)(&d.DonorName),
		(*zeronull.Text)(&d.DonorPhone),
		(*zeronull.Text)(&d.DonorAddress),
		&d.Amount,
		&d.Currency,
		&d.Status,
		&d.Source,
		&d.PaymentMethod,
		&d.DonationType,
		&d.Notes,
		&d.ConfirmedAt,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Donation{}, entity.ErrNotFound
		}

		return entity.Donation{}, err
	}

	return d, nil
}

func scanDonor(row pgx.Row) (d entity.Donor, err error) {
	err = row.Scan(
		&d.ID,
		&d.Email,
		(*zeronull.Text)(&d.Name),
		(*zeronull.Text)(&d.Phone),
		(*zeronull.Text)(&d.Address),
		&d.DonationCount,
		&d.TotalDonated,
		&d.FirstDonationAt,
		&d.LastDonationAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Donor{}, entity.ErrNotFound
		}

		return entity.Donor{}, err
	}

	return d, nil
}
