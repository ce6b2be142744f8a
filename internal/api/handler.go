package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/esperanzagt/donations/internal/entity"
)

// @title Donations API
// @version 1.0
// @description Donation checkout signing and payment confirmation API
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-Api-Key

type Service interface {
	CreateCheckout(ctx context.Context, intent entity.DonationIntent) (entity.SignedCheckout, error)
	CaptureContext(ctx context.Context, targetOrigins []string) (string, error)
	HandleCallback(ctx context.Context, form map[string]string) (entity.CallbackOutcome, error)
	Donations(ctx context.Context, f entity.DonationFilter) ([]entity.Donation, int, error)
}

type Handler struct {
	s             Service
	resultPageURL string
}

func NewHandler(s Service, resultPageURL string) *Handler {
	return &Handler{
		s:             s,
		resultPageURL: resultPageURL,
	}
}

type SignDonationRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Locale          string          `json:"locale,omitempty"`
	FirstName       string          `json:"donor_first_name,omitempty"`
	LastName        string          `json:"donor_last_name,omitempty"`
	Email           string          `json:"donor_email,omitempty"`
	AddressLine1    string          `json:"bill_address1,omitempty"`
	City            string          `json:"bill_city,omitempty"`
	Country         string          `json:"bill_country,omitempty"`
	TestMode        *bool           `json:"test_mode,omitempty"`
}

type SignDonationResponse struct {
	Success        bool              `json:"success"`
	CybersourceURL string            `json:"cybersource_url"`
	Fields         map[string]string `json:"fields"`
}

// SignDonation signs a checkout form for the hosted payment page
// @Summary Sign donation checkout
// @Description Validates the donation intent and returns the signed form fields the browser submits to the hosted payment page
// @Tags donations
// @Accept json
// @Produce json
// @Param SignDonationRequest body SignDonationRequest true "Donation checkout request"
// @Success 200 {object} SignDonationResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON or invalid donation data"
// @Failure 500 {object} ErrorResponse "Failed to sign checkout"
// @Router /donations/sign [post]
func (h *Handler) SignDonation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignDonationRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	checkout, err := h.s.CreateCheckout(ctx, entity.DonationIntent{
		Amount:          req.Amount,
		Currency:        req.Currency,
		ReferenceNumber: req.ReferenceNumber,
		Locale:          req.Locale,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		AddressLine1:    req.AddressLine1,
		City:            req.City,
		Country:         req.Country,
		TestMode:        req.TestMode,
	})
	if err != nil {
		if errors.Is(err, entity.ErrInvalidArgument) {
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid donation data")
			return
		}

		// Configuration details stay out of the response body.
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to sign checkout")

		return
	}

	SendJSON(ctx, w, http.StatusOK, SignDonationResponse{
		Success:        true,
		CybersourceURL: checkout.URL,
		Fields:         checkout.Fields,
	})
}

// CybersourceCallback receives the gateway's form POST after payment
// @Summary Handle payment gateway callback
// @Description Verifies the callback signature, reconciles the donation and redirects the payer to the result page
// @Tags donations
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 302 {string} string "Redirect to the result page"
// @Failure 400 {object} ErrorResponse "Invalid form or signature verification failed"
// @Failure 500 {object} ErrorResponse "Callback processing is not configured"
// @Router /donations/callbacks/cybersource [post]
func (h *Handler) CybersourceCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := r.ParseForm()
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid form")
		return
	}

	form := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		form[k] = r.PostForm.Get(k)
	}

	outcome, err := h.s.HandleCallback(ctx, form)
	if err != nil {
		if errors.Is(err, entity.ErrConfiguration) {
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Callback processing is not configured")
			return
		}

		// An unverifiable callback gets no redirect: there is nothing
		// trustworthy to show the payer.
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Signature verification failed")

		return
	}

	http.Redirect(w, r, h.resultURL(outcome), http.StatusFound)
}

// resultURL rebuilds the result page query from the normalized outcome, never
// from the raw form: the card number is already masked and nothing unsigned
// leaks through.
func (h *Handler) resultURL(outcome entity.CallbackOutcome) string {
	res := outcome.Result

	q := url.Values{}
	q.Set("decision", res.Decision.String())
	q.Set("reason_code", res.ReasonCode)
	q.Set("req_reference_number", res.Reference)
	q.Set("req_amount", res.Amount.StringFixed(2))
	q.Set("req_currency", res.Currency)
	q.Set("req_bill_to_forename", res.FirstName)
	q.Set("req_bill_to_surname", res.LastName)
	q.Set("req_bill_to_email", res.Email)
	q.Set("req_card_type", res.CardType)
	q.Set("req_card_number", res.CardNumber)
	q.Set("transaction_id", res.TransactionID)
	q.Set("message", res.Message)
	q.Set("notified", strconv.FormatBool(outcome.Notified))

	return h.resultPageURL + "?" + q.Encode()
}

type CaptureContextRequest struct {
	TargetOrigins []string `json:"targetOrigins"`
}

type CaptureContextResponse struct {
	CaptureContext string `json:"captureContext"`
}

// CaptureContext issues a signed capture context token
// @Summary Create capture context
// @Description Issues a short-lived signed token for the client-side card entry widget
// @Tags donations
// @Accept json
// @Produce json
// @Param CaptureContextRequest body CaptureContextRequest true "Capture context request"
// @Success 200 {object} CaptureContextResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON or missing target origins"
// @Failure 500 {object} ErrorResponse "Failed to create capture context"
// @Router /donations/capture-context [post]
func (h *Handler) CaptureContext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CaptureContextRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	token, err := h.s.CaptureContext(ctx, req.TargetOrigins)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidArgument) {
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "targetOrigins is required")
			return
		}

		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to create capture context")

		return
	}

	SendJSON(ctx, w, http.StatusOK, CaptureContextResponse{CaptureContext: token})
}

type DonationsResponse struct {
	Donations  []DonationEntity `json:"donations"`
	TotalCount int              `json:"totalCount"`
}

type DonationEntity struct {
	ID            string `json:"id"`
	DonorID       string `json:"donorID,omitempty"`
	DonorEmail    string `json:"donorEmail,omitempty"`
	DonorName     string `json:"donorName,omitempty"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	Source        string `json:"source"`
	PaymentMethod string `json:"paymentMethod"`
	DonationType  string `json:"donationType"`
	Reference     string `json:"reference"`
	ConfirmedAt   string `json:"confirmedAt"`
	CreatedAt     string `json:"createdAt"`
}

// Donations retrieves confirmed donations with optional filters
// @Summary List donations
// @Description Returns confirmed donations with filtering, sorting and pagination for back-office use
// @Tags donations
// @Accept json
// @Produce json
// @Param email query string false "Filter by donor email"
// @Param currency query string false "Filter by currency code"
// @Param confirmedFrom query string false "Filter by confirmation date lower bound (format: YYYY-MM-DD)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param page query int false "Page number (default 1)"
// @Param sortBy query string false "Sort column (amount, confirmed_at, created_at)"
// @Param orderBy query string false "Sort order (asc or desc)"
// @Success 200 {object} DonationsResponse
// @Failure 401 {object} ErrorResponse "Invalid API key"
// @Failure 500 {object} ErrorResponse "Failed to get donations"
// @Router /private/donations [get]
// @Security ApiKeyAuth
func (h *Handler) Donations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := parseDonationFilter(r.URL.Query())

	donations, totalCount, err := h.s.Donations(ctx, filter)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to get donations")
		return
	}

	SendJSON(ctx, w, http.StatusOK, DonationsResponse{
		Donations:  donationsToAPI(donations),
		TotalCount: totalCount,
	})
}

func parseDonationFilter(url url.Values) entity.DonationFilter {
	const (
		defaultLimit uint64 = 10
		maxLimit     uint64 = 100
		defaultPage  uint64 = 1
	)

	email := url.Get("email")
	currency := url.Get("currency")
	confirmedFrom := url.Get("confirmedFrom")
	qLimit := url.Get("limit")
	qPage := url.Get("page")
	sortBy := entity.DonationSortCol(url.Get("sortBy"))
	orderBy := entity.OrderByCol(url.Get("orderBy"))

	limit, err := strconv.ParseUint(qLimit, 10, 64)
	if err != nil {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	page, err := strconv.ParseUint(qPage, 10, 64)
	if err != nil || page < 1 {
		page = defaultPage
	}

	if !sortBy.IsValid() {
		sortBy = entity.SortByCreatedAt
	}

	if !orderBy.IsValid() {
		orderBy = entity.DESC
	}

	filter := entity.DonationFilter{
		Page:    page,
		Limit:   limit,
		SortBy:  sortBy,
		OrderBy: orderBy,
	}

	if email != "" {
		filter.Email = &email
	}

	if currency != "" {
		filter.Currency = &currency
	}

	if confirmedFrom != "" {
		filter.ConfirmedFrom = &confirmedFrom
	}

	return filter
}

func donationsToAPI(donations []entity.Donation) []DonationEntity {
	res := make([]DonationEntity, 0, len(donations))
	for _, d := range donations {
		donorID := ""
		if d.DonorID.Valid {
			donorID = d.DonorID.UUID.String()
		}

		res = append(res, DonationEntity{
			ID:            d.ID.String(),
			DonorID:       donorID,
			DonorEmail:    d.DonorEmail,
			DonorName:     d.DonorName,
			Amount:        d.Amount.StringFixed(2),
			Currency:      d.Currency,
			Status:        d.Status.String(),
			Source:        d.Source,
			PaymentMethod: d.PaymentMethod,
			DonationType:  d.DonationType,
			Reference:     d.Notes,
			ConfirmedAt:   d.ConfirmedAt.Format("2006-01-02T15:04:05Z07:00"),
			CreatedAt:     d.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return res
}

// HealthHandler - returns service health status.
// @Summary Health check
// @Description Health check
// @Tags health
// @Accept text/plain
// @Produce text/plain
// @Success 200 {string} string "Service is up!"
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("Service is up!\n"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Service is down!")
		return
	}
}
