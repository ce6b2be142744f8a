package cybersource

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"

	"github.com/esperanzagt/donations/internal/entity"
	"github.com/esperanzagt/donations/pkg/config"
	"github.com/esperanzagt/donations/pkg/security"
)

// signedFieldOrder is the outbound Secure Acceptance field list. The order is
// part of the signature contract and must be reproduced byte-for-byte by the
// gateway when it echoes the fields back.
var signedFieldOrder = []string{
	"access_key",
	"profile_id",
	"transaction_uuid",
	"signed_field_names",
	"unsigned_field_names",
	"signed_date_time",
	"locale",
	"transaction_type",
	"reference_number",
	"amount",
	"currency",
	"bill_to_forename",
	"bill_to_surname",
	"bill_to_email",
	"bill_to_address_line1",
	"bill_to_address_city",
	"bill_to_address_country",
}

const (
	transactionType = "sale"
	defaultLocale   = "en"
	dateTimeFormat  = "2006-01-02T15:04:05Z"
)

type Client struct {
	cfg config.CyberSource
}

func NewClient(cfg config.CyberSource) *Client {
	return &Client{
		cfg: cfg,
	}
}

// BuildCheckout validates the intent, fixes the signed field set, signs it
// and returns the hosted payment page URL plus the form fields the browser
// submits. It is pure computation: nothing is persisted here.
func (c *Client) BuildCheckout(intent entity.DonationIntent) (entity.SignedCheckout, error) {
	if c.cfg.AccessKey == "" || c.cfg.ProfileID == "" || c.cfg.SecretKey == "" {
		return entity.SignedCheckout{}, fmt.Errorf("%w: secure acceptance credentials are not set", entity.ErrConfiguration)
	}

	err := intent.Validate()
	if err != nil {
		return entity.SignedCheckout{}, err
	}

	reference := intent.ReferenceNumber
	if reference == "" {
		reference = generateReference()
	}

	locale := intent.Locale
	if locale == "" {
		locale = defaultLocale
	}

	fields := map[string]string{
		"access_key":              c.cfg.AccessKey,
		"profile_id":              c.cfg.ProfileID,
		"transaction_uuid":        uuid.Must(uuid.NewV4()).String(),
		"signed_field_names":      strings.Join(signedFieldOrder, ","),
		"unsigned_field_names":    "",
		"signed_date_time":        time.Now().UTC().Format(dateTimeFormat),
		"locale":                  locale,
		"transaction_type":        transactionType,
		"reference_number":        reference,
		"amount":                  intent.AmountString(),
		"currency":                strings.ToUpper(intent.Currency),
		"bill_to_forename":        intent.FirstName,
		"bill_to_surname":         intent.LastName,
		"bill_to_email":           intent.Email,
		"bill_to_address_line1":   intent.AddressLine1,
		"bill_to_address_city":    intent.City,
		"bill_to_address_country": intent.Country,
	}

	fields["signature"] = security.Sign(c.cfg.SecretKey, signedFieldOrder, fields)

	return entity.SignedCheckout{
		URL:    c.checkoutURL(intent.TestMode),
		Fields: fields,
	}, nil
}

func (c *Client) checkoutURL(testMode *bool) string {
	test := c.cfg.TestMode
	if testMode != nil {
		test = *testMode
	}

	if test {
		return c.cfg.TestURL
	}

	return c.cfg.LiveURL
}

// VerifyCallback is the hard gate between the gateway POST and the rest of
// the pipeline. The MAC is recomputed over exactly the field list the payload
// claims was signed, in its received order; the list is input, not
// configuration, and is trusted only after the MAC check passes. Any failure
// here means the caller must not persist or notify anything.
func (c *Client) VerifyCallback(form map[string]string) (entity.PaymentResult, error) {
	if c.cfg.SecretKey == "" {
		return entity.PaymentResult{}, fmt.Errorf("%w: secure acceptance secret key is not set", entity.ErrConfiguration)
	}

	signedNames, ok := form["signed_field_names"]
	if !ok || signedNames == "" {
		return entity.PaymentResult{}, fmt.Errorf("%w: signed_field_names is missing", entity.ErrSignatureMismatch)
	}

	signature, ok := form["signature"]
	if !ok || signature == "" {
		return entity.PaymentResult{}, fmt.Errorf("%w: signature is missing", entity.ErrSignatureMismatch)
	}

	fieldNames := strings.Split(signedNames, ",")

	if !security.Verify(c.cfg.SecretKey, fieldNames, form, signature) {
		return entity.PaymentResult{}, entity.ErrSignatureMismatch
	}

	return normalize(form), nil
}

// normalize maps the gateway's heterogeneous field names (request fields come
// back with a req_ prefix, some fields appear under either name) into one
// canonical result.
func normalize(form map[string]string) entity.PaymentResult {
	get := func(keys ...string) string {
		for _, k := range keys {
			if v := form[k]; v != "" {
				return v
			}
		}

		return ""
	}

	decision := classifyDecision(get("decision"), get("reason_code"))

	amount, err := decimal.NewFromString(get("req_amount", "amount", "auth_amount"))
	if err != nil {
		amount = decimal.Zero

		// An accepted callback without a parseable amount must not reconcile
		// as a 0.00 donation.
		if decision == entity.DecisionAccepted {
			decision = entity.DecisionError
		}
	}

	return entity.PaymentResult{
		Decision:      decision,
		ReasonCode:    get("reason_code"),
		Reference:     get("req_reference_number", "reference_number"),
		Amount:        amount,
		Currency:      strings.ToUpper(get("req_currency", "currency")),
		FirstName:     get("req_bill_to_forename", "bill_to_forename"),
		LastName:      get("req_bill_to_surname", "bill_to_surname"),
		Email:         get("req_bill_to_email", "bill_to_email"),
		Phone:         get("req_bill_to_phone", "bill_to_phone"),
		Address:       joinAddress(get("req_bill_to_address_line1"), get("req_bill_to_address_city"), get("req_bill_to_address_country")),
		CardType:      cardBrand(get("req_card_type", "card_type")),
		CardNumber:    maskCardNumber(get("req_card_number", "card_number")),
		TransactionID: get("transaction_id"),
		Message:       get("message"),
	}
}

// reasonCodeSuccess is sent by the gateway on some accepted transactions
// where the decision field is absent or blank.
const reasonCodeSuccess = "100"

func classifyDecision(decision, reasonCode string) entity.Decision {
	switch strings.ToUpper(decision) {
	case "ACCEPT":
		return entity.DecisionAccepted
	case "DECLINE", "REVIEW":
		return entity.DecisionDeclined
	case "CANCEL":
		return entity.DecisionCancelled
	case "ERROR":
		return entity.DecisionError
	}

	if reasonCode == reasonCodeSuccess {
		return entity.DecisionAccepted
	}

	return entity.DecisionError
}

func joinAddress(parts ...string) string {
	kept := make([]string, 0, len(parts))

	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, ", ")
}

func cardBrand(code string) string {
	switch code {
	case "001":
		return "Visa"
	case "002":
		return "Mastercard"
	case "003":
		return "American Express"
	case "004":
		return "Discover"
	case "":
		return ""
	default:
		return code
	}
}

// maskCardNumber keeps only the last four digits no matter what the gateway
// sent. A full PAN must never leave this function.
func maskCardNumber(number string) string {
	digits := make([]rune, 0, len(number))

	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}

	if len(digits) < 4 {
		return ""
	}

	return "xxxxxxxxxxxx" + string(digits[len(digits)-4:])
}

// CaptureContext issues the short-lived signed token handed to the
// client-side card-entry widget, so raw card data never transits our own
// servers. It shares the secret key discipline with the checkout signature.
func (c *Client) CaptureContext(targetOrigins []string) (string, error) {
	if c.cfg.SecretKey == "" || c.cfg.ProfileID == "" {
		return "", fmt.Errorf("%w: secure acceptance credentials are not set", entity.ErrConfiguration)
	}

	if len(targetOrigins) == 0 {
		return "", fmt.Errorf("%w: targetOrigins is required", entity.ErrInvalidArgument)
	}

	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":           c.cfg.ProfileID,
		"iat":           now.Unix(),
		"exp":           now.Add(c.cfg.CaptureContextTTL).Unix(),
		"targetOrigins": targetOrigins,
	})

	signed, err := token.SignedString([]byte(c.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("sign capture context: %w", err)
	}

	return signed, nil
}

func generateReference() string {
	return fmt.Sprintf("DON-%d-%s", time.Now().UnixNano(), uuid.Must(uuid.NewV4()).String()[:8])
}
