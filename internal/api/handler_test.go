package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texbill/m/domain"
	"texbill/m/internal/database"
	"texbill/m/internal/migrations"
	"texbill/m/internal/seed"
)

// newTestServer spins up the full stack over an in-memory database with the
// clock pinned to 2025-08-20, and returns a ready owner token.
func newTestServer(t *testing.T) (http.Handler, string) {
	t.Helper()

	db := database.Connect(":memory:")
	t.Cleanup(func() { _ = db.Close() })
	migrations.Run(db)
	seed.LoadDefaults(db)

	h := New(db, "test-secret")
	h.now = func() time.Time {
		return time.Date(2025, 8, 20, 11, 30, 0, 0, time.UTC)
	}
	router := h.Router()

	rec := doRequest(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"username": "owner",
		"email":    "owner@example.com",
		"password": "secret123",
		"role":     "owner",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &auth))
	require.NotEmpty(t, auth.Token)

	return router, auth.Token
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createRef(t *testing.T, router http.Handler, token, path string, body map[string]any) int64 {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.ID
}

func TestHealthNoAuth(t *testing.T) {
	router, _ := newTestServer(t)
	rec := doRequest(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/bills/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBillLifecycle(t *testing.T) {
	router, token := newTestServer(t)

	buyerID := createRef(t, router, token, "/buyers/", map[string]any{
		"name": "Shrusti pvt ltd", "contact_number": "9898969858", "gst_number": "HGTU231975",
	})
	dalalID := createRef(t, router, token, "/dalals/", map[string]any{
		"name": "Kishan Patel", "contact_number": "7418529635",
	})
	taxID := createRef(t, router, token, "/taxes/", map[string]any{
		"name": "GST 10%", "percentage": 10,
	})

	// seeded: material 3 = Silk, dhara 2 = War to War (10 days)
	billBody := map[string]any{
		"bill_no":     1,
		"date":        "2025-08-05",
		"buyer_id":    buyerID,
		"dalal_id":    dalalID,
		"material_id": 3,
		"dhara_id":    2,
		"tax_id":      taxID,
		"meter":       50,
		"price_rate":  200,
		"chalan_no":   "8526",
		"taka_count":  120,
	}
	rec := doRequest(t, router, http.MethodPost, "/bills/", token, billBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.BillView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 10000.0, created.BaseAmount)
	assert.Equal(t, 1000.0, created.TaxAmount)
	assert.Equal(t, 11000.0, created.TotalAmount)
	assert.Equal(t, "2025-08-15", created.DueDate)
	assert.Equal(t, -5, created.DaysToDue)
	assert.Equal(t, "overdue", created.Status)

	// list derives aging at read time
	rec = doRequest(t, router, http.MethodGet, "/bills/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []domain.BillView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "overdue", listed[0].Status)
	assert.Equal(t, "Shrusti pvt ltd", listed[0].BuyerName)
	assert.Equal(t, "Silk", listed[0].MaterialName)

	// overdue and unpaid shows up as urgent
	rec = doRequest(t, router, http.MethodGet, "/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash struct {
		Stats struct {
			TotalBills    int64   `json:"total_bills"`
			PendingBills  int64   `json:"pending_bills"`
			PendingAmount float64 `json:"pending_amount"`
		} `json:"stats"`
		UrgentBills []domain.BillView `json:"urgent_bills"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Equal(t, int64(1), dash.Stats.TotalBills)
	assert.Equal(t, int64(1), dash.Stats.PendingBills)
	assert.Equal(t, 11000.0, dash.Stats.PendingAmount)
	require.Len(t, dash.UrgentBills, 1)

	// invoice spells out the total
	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/bills/%d/invoice", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var invoice struct {
		AmountInWords string `json:"amount_in_words"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invoice))
	assert.Equal(t, "Eleven Thousand Rupees Only", invoice.AmountInWords)

	// mark paid, then the paid filter finds it and pending does not
	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/bills/%d/paid", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/bills/?status=paid", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "paid", listed[0].Status)

	rec = doRequest(t, router, http.MethodGet, "/bills/?status=pending", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestStoredDateRoundTripsUnchanged(t *testing.T) {
	router, token := newTestServer(t)

	buyerID := createRef(t, router, token, "/buyers/", map[string]any{
		"name": "Shrusti pvt ltd", "contact_number": "9898969858",
	})
	dalalID := createRef(t, router, token, "/dalals/", map[string]any{
		"name": "Kishan Patel", "contact_number": "7418529635",
	})
	rec := doRequest(t, router, http.MethodPost, "/bills/", token, map[string]any{
		"bill_no":     1,
		"date":        "2025-08-05",
		"buyer_id":    buyerID,
		"dalal_id":    dalalID,
		"material_id": 1,
		"dhara_id":    2,
		"tax_id":      1,
		"meter":       10,
		"price_rate":  10,
		"chalan_no":   "1",
		"taka_count":  1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// the date must come back from storage exactly as written, or every
	// read-time aging derivation degrades to the malformed-date fallback
	rec = doRequest(t, router, http.MethodGet, "/bills/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []domain.BillView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "2025-08-05", listed[0].Date)
	assert.Equal(t, "2025-08-15", listed[0].DueDate)
	assert.Equal(t, -5, listed[0].DaysToDue)
	assert.Equal(t, "overdue", listed[0].Status)
}

func TestListBillsDateRange(t *testing.T) {
	router, token := newTestServer(t)

	buyerID := createRef(t, router, token, "/buyers/", map[string]any{
		"name": "Jalaram ltd.", "contact_number": "8574968596",
	})
	dalalID := createRef(t, router, token, "/dalals/", map[string]any{
		"name": "Ramesh Rathod", "contact_number": "7965845690",
	})
	for i, date := range []string{"2025-08-05", "2025-08-18", "2025-09-01"} {
		rec := doRequest(t, router, http.MethodPost, "/bills/", token, map[string]any{
			"bill_no":     i + 1,
			"date":        date,
			"buyer_id":    buyerID,
			"dalal_id":    dalalID,
			"material_id": 1,
			"dhara_id":    1,
			"tax_id":      1,
			"meter":       10,
			"price_rate":  10,
			"chalan_no":   "1",
			"taka_count":  1,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	// bounds are inclusive: a bill dated exactly on to_date stays in
	rec := doRequest(t, router, http.MethodGet, "/bills/?from_date=2025-08-10&to_date=2025-08-18", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []domain.BillView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "2025-08-18", listed[0].Date)

	rec = doRequest(t, router, http.MethodGet, "/bills/?from_date=2025-08-05&to_date=2025-09-01", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 3)
	// date descending
	assert.Equal(t, "2025-09-01", listed[0].Date)
	assert.Equal(t, "2025-08-05", listed[2].Date)

	rec = doRequest(t, router, http.MethodGet, "/bills/?to_date=2025-08-04", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestResetPassword(t *testing.T) {
	router, token := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/auth/reset-password", token, map[string]any{
		"new_password": "rotated456",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "owner@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "owner@example.com", "password": "rotated456",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestCreateBillMissingReference(t *testing.T) {
	router, token := newTestServer(t)

	buyerID := createRef(t, router, token, "/buyers/", map[string]any{
		"name": "Jalaram ltd.", "contact_number": "8574968596",
	})

	rec := doRequest(t, router, http.MethodPost, "/bills/", token, map[string]any{
		"bill_no":     7,
		"date":        "2025-08-05",
		"buyer_id":    buyerID,
		"dalal_id":    9999, // does not exist
		"material_id": 1,
		"dhara_id":    1,
		"tax_id":      1,
		"meter":       100,
		"price_rate":  50,
		"chalan_no":   "7485",
		"taka_count":  200,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "dalal reference not found")
}

func TestCreateBillRejectsBadNumbers(t *testing.T) {
	router, token := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/bills/", token, map[string]any{
		"bill_no":     1,
		"date":        "2025-08-05",
		"buyer_id":    1,
		"dalal_id":    1,
		"material_id": 1,
		"dhara_id":    1,
		"tax_id":      1,
		"meter":       -5, // form layer must reject non-positive quantity
		"price_rate":  200,
		"chalan_no":   "1",
		"taka_count":  1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBillRecomputesAmounts(t *testing.T) {
	router, token := newTestServer(t)

	buyerID := createRef(t, router, token, "/buyers/", map[string]any{
		"name": "Jalaram ltd.", "contact_number": "8574968596",
	})
	dalalID := createRef(t, router, token, "/dalals/", map[string]any{
		"name": "Ramesh Rathod", "contact_number": "7965845690",
	})

	billBody := map[string]any{
		"bill_no":     2,
		"date":        "2025-08-18",
		"buyer_id":    buyerID,
		"dalal_id":    dalalID,
		"material_id": 1,
		"dhara_id":    1, // Regular (35 days)
		"tax_id":      1, // GST 5%
		"meter":       100,
		"price_rate":  50,
		"chalan_no":   "7485",
		"taka_count":  200,
	}
	rec := doRequest(t, router, http.MethodPost, "/bills/", token, billBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created domain.BillView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 5000.0, created.BaseAmount)
	assert.Equal(t, 250.0, created.TaxAmount)
	assert.Equal(t, "pending", created.Status)

	billBody["meter"] = 200
	rec = doRequest(t, router, http.MethodPut, fmt.Sprintf("/bills/%d", created.ID), token, billBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated domain.BillView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 10000.0, updated.BaseAmount)
	assert.Equal(t, 500.0, updated.TaxAmount)
	assert.Equal(t, 10500.0, updated.TotalAmount)
}

func TestDeleteReferencedBuyerConflicts(t *testing.T) {
	router, token := newTestServer(t)

	buyerID := createRef(t, router, token, "/buyers/", map[string]any{
		"name": "Jalaram ltd.", "contact_number": "8574968596",
	})
	dalalID := createRef(t, router, token, "/dalals/", map[string]any{
		"name": "Kishan Patel", "contact_number": "7418529635",
	})
	rec := doRequest(t, router, http.MethodPost, "/bills/", token, map[string]any{
		"bill_no":     3,
		"date":        "2025-08-05",
		"buyer_id":    buyerID,
		"dalal_id":    dalalID,
		"material_id": 1,
		"dhara_id":    1,
		"tax_id":      1,
		"meter":       10,
		"price_rate":  10,
		"chalan_no":   "1",
		"taka_count":  1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/buyers/%d", buyerID), token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCompanyProfileRoundTrip(t *testing.T) {
	router, token := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/company/", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/company/", token, map[string]any{
		"name":          "Vimal Textiles",
		"address":       "127-128, Prabhudarshan Ind., Ved Road, Surat-395004",
		"contact":       "9510988597",
		"gst":           "24AKPPM0065J1Z1",
		"pan":           "AKPPM0065J",
		"business_type": "MFG & Dealers in Art Silk Cloth",
		"bank_name":     "The Sutex Co-operative Bank Ltd.",
		"account_no":    "002010021001351",
		"ifsc":          "SUTB0248020",
		"branch":        "Jahangirpura",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/company/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile domain.CompanyProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Vimal Textiles", profile.Name)
}
