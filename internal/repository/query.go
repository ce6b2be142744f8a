package repository

const (
	selectDonation = `SELECT
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
	FROM donations`

	selectDonor = `SELECT
		id,
		email,
		name,
		phone,
		address,
		donation_count,
		total_donated,
		first_donation_at,
		last_donation_at
	FROM donors`
)
