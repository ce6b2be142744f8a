package cybersource_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/esperanzagt/donations/internal/clients/cybersource"
	"github.com/esperanzagt/donations/internal/entity"
	"github.com/esperanzagt/donations/pkg/config"
	"github.com/esperanzagt/donations/pkg/security"
)

func testConfig() config.CyberSource {
	return config.CyberSource{
		AccessKey:         "test-access-key",
		ProfileID:         "test-profile",
		SecretKey:         "test-secret",
		TestMode:          true,
		LiveURL:           "https://secureacceptance.cybersource.com/pay",
		TestURL:           "https://testsecureacceptance.cybersource.com/pay",
		CaptureContextTTL: 15 * time.Minute,
	}
}

func TestClient_BuildCheckout(t *testing.T) {
	t.Parallel()

	c := cybersource.NewClient(testConfig())

	intent := entity.DonationIntent{
		Amount:    decimal.NewFromFloat(150.5),
		Currency:  "gtq",
		FirstName: "Ana",
		LastName:  "Lopez",
		Email:     "ana@example.com",
	}

	checkout, err := c.BuildCheckout(intent)
	require.NoError(t, err)
	require.Equal(t, "https://testsecureacceptance.cybersource.com/pay", checkout.URL)

	require.Equal(t, "150.50", checkout.Fields["amount"])
	require.Equal(t, "GTQ", checkout.Fields["currency"])
	require.Equal(t, "sale", checkout.Fields["transaction_type"])
	require.NotEmpty(t, checkout.Fields["transaction_uuid"])
	require.NotEmpty(t, checkout.Fields["reference_number"])
	require.NotEmpty(t, checkout.Fields["signed_date_time"])

	names := strings.Split(checkout.Fields["signed_field_names"], ",")
	require.True(t, security.Verify("test-secret", names, checkout.Fields, checkout.Fields["signature"]))
}

func TestClient_BuildCheckout_FreshTransactionUUIDPerRequest(t *testing.T) {
	t.Parallel()

	c := cybersource.NewClient(testConfig())

	intent := entity.DonationIntent{
		Amount:          decimal.NewFromInt(100),
		Currency:        "GTQ",
		ReferenceNumber: "DON-1",
	}

	first, err := c.BuildCheckout(intent)
	require.NoError(t, err)

	second, err := c.BuildCheckout(intent)
	require.NoError(t, err)

	require.NotEqual(t, first.Fields["transaction_uuid"], second.Fields["transaction_uuid"])
}

func TestClient_BuildCheckout_Validation(t *testing.T) {
	t.Parallel()

	c := cybersource.NewClient(testConfig())

	_, err := c.BuildCheckout(entity.DonationIntent{Amount: decimal.Zero, Currency: "GTQ"})
	require.ErrorIs(t, err, entity.ErrInvalidArgument)

	_, err = c.BuildCheckout(entity.DonationIntent{Amount: decimal.NewFromInt(10)})
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestClient_BuildCheckout_MissingCredentials(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.SecretKey = ""

	c := cybersource.NewClient(cfg)

	_, err := c.BuildCheckout(entity.DonationIntent{Amount: decimal.NewFromInt(10), Currency: "GTQ"})
	require.ErrorIs(t, err, entity.ErrConfiguration)
}

func TestClient_BuildCheckout_LiveURL(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.TestMode = false

	c := cybersource.NewClient(cfg)

	checkout, err := c.BuildCheckout(entity.DonationIntent{Amount: decimal.NewFromInt(10), Currency: "GTQ"})
	require.NoError(t, err)
	require.Equal(t, cfg.LiveURL, checkout.URL)

	testMode := true
	checkout, err = c.BuildCheckout(entity.DonationIntent{Amount: decimal.NewFromInt(10), Currency: "GTQ", TestMode: &testMode})
	require.NoError(t, err)
	require.Equal(t, cfg.TestURL, checkout.URL)
}

func signedCallbackForm(t *testing.T, secret string, override map[string]string) map[string]string {
	t.Helper()

	form := map[string]string{
		"decision":             "ACCEPT",
		"reason_code":          "100",
		"req_reference_number": "DON-1",
		"req_amount":           "100.00",
		"req_currency":         "GTQ",
		"req_bill_to_forename": "Ana",
		"req_bill_to_surname":  "Lopez",
		"req_bill_to_email":    "ana@example.com",
		"req_card_type":        "001",
		"req_card_number":      "xxxxxxxxxxxx1111",
		"transaction_id":       "6240981773456837104946",
		"message":              "Request was processed successfully.",
	}

	for k, v := range override {
		form[k] = v
	}

	names := make([]string, 0, len(form))
	for k := range form {
		names = append(names, k)
	}

	form["signed_field_names"] = strings.Join(append(names, "signed_field_names"), ",")
	form["signature"] = security.Sign(secret, strings.Split(form["signed_field_names"], ","), form)

	return form
}

func TestClient_VerifyCallback(t *testing.T) {
	t.Parallel()

	c := cybersource.NewClient(testConfig())

	res, err := c.VerifyCallback(signedCallbackForm(t, "test-secret", nil))
	require.NoError(t, err)

	require.Equal(t, entity.DecisionAccepted, res.Decision)
	require.Equal(t, "DON-1", res.Reference)
	require.True(t, decimal.NewFromInt(100).Equal(res.Amount))
	require.Equal(t, "GTQ", res.Currency)
	require.Equal(t, "ana@example.com", res.Email)
	require.Equal(t, "Visa", res.CardType)
	require.Equal(t, "xxxxxxxxxxxx1111", res.CardNumber)
	require.Equal(t, "Ana Lopez", res.DonorName())
}

func TestClient_VerifyCallback_TamperedField(t *testing.T) {
	t.Parallel()

	c := cybersource.NewClient(testConfig())

	form := signedCallbackForm(t, "test-secret", nil)
	form["req_amount"] = "999.00"

	_, err := c.VerifyCallback(form)
	require.ErrorIs(t, err, entity.ErrSignatureMismatch)
}

func TestClient_VerifyCallback_ForgedSignature(t *testing.T) {
	t.Parallel()

	c := cybersource.NewClient(testConfig())

	form := signedCallbackForm(t, "test-secret", nil)
	form["signature"] = "bm90IGEgcmVhbCBzaWduYXR1cmU="

	_, err := c.VerifyCallback(form)
	require.ErrorIs(t, err, entity.ErrSignatureMismatch)
}

func TestClient_VerifyCallback_WrongSecret(t *testing.T) {
	t.Parallel()

	c := cybersource.NewClient(testConfig())

	_, err := c.VerifyCallback(signedCallbackForm(t, "other-secret", nil))
	require.ErrorIs(t, err, entity.ErrSignatureMismatch)
}

func TestClient_VerifyCallback_MissingSignedFieldNames(t *testing.T) {
	t.Parallel()

	c := cybersource.NewClient(testConfig())

	form := signedCallbackForm(t, "test-secret", nil)
	delete(form, "signed_field_names")

	_, err := c.VerifyCallback(form)
	require.ErrorIs(t, err, entity.ErrSignatureMismatch)
}

func TestClient_VerifyCallback_MissingSecretFailsClosed(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.SecretKey = ""

	c := cybersource.NewClient(cfg)

	_, err := c.VerifyCallback(signedCallbackForm(t, "test-secret", nil))
	require.ErrorIs(t, err, entity.ErrConfiguration)
}

func TestClient_VerifyCallback_Decisions(t *testing.T) {
	t.Parallel()

	c := cybersource.NewClient(testConfig())

	for _, tt := range []struct {
		name       string
		decision   string
		reasonCode string
		want       entity.Decision
	}{
		{name: "explicit accept", decision: "ACCEPT", reasonCode: "100", want: entity.DecisionAccepted},
		{name: "reason code only", decision: "", reasonCode: "100", want: entity.DecisionAccepted},
		{name: "decline", decision: "DECLINE", reasonCode: "203", want: entity.DecisionDeclined},
		{name: "review maps to decline", decision: "REVIEW", reasonCode: "480", want: entity.DecisionDeclined},
		{name: "cancel", decision: "CANCEL", reasonCode: "", want: entity.DecisionCancelled},
		{name: "error", decision: "ERROR", reasonCode: "102", want: entity.DecisionError},
		{name: "unknown falls back to error", decision: "SOMETHING", reasonCode: "", want: entity.DecisionError},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			form := signedCallbackForm(t, "test-secret", map[string]string{
				"decision":    tt.decision,
				"reason_code": tt.reasonCode,
			})

			res, err := c.VerifyCallback(form)
			require.NoError(t, err)
			require.Equal(t, tt.want, res.Decision)
		})
	}
}

func TestClient_VerifyCallback_UnparseableAmount(t *testing.T) {
	t.Parallel()

	c := cybersource.NewClient(testConfig())

	// Accepted without a usable amount must not become a 0.00 donation.
	res, err := c.VerifyCallback(signedCallbackForm(t, "test-secret", map[string]string{
		"req_amount": "not-a-number",
	}))
	require.NoError(t, err)
	require.Equal(t, entity.DecisionError, res.Decision)
	require.True(t, res.Amount.IsZero())

	// A cancelled attempt legitimately carries no amount and stays cancelled.
	res, err = c.VerifyCallback(signedCallbackForm(t, "test-secret", map[string]string{
		"decision":    "CANCEL",
		"reason_code": "",
		"req_amount":  "",
	}))
	require.NoError(t, err)
	require.Equal(t, entity.DecisionCancelled, res.Decision)
}

func TestClient_CaptureContext(t *testing.T) {
	t.Parallel()

	c := cybersource.NewClient(testConfig())

	signed, err := c.CaptureContext([]string{"https://donate.esperanza.org.gt"})
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "test-profile", claims["iss"])

	_, err = c.CaptureContext(nil)
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}
