package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"texbill/m/billing"
	"texbill/m/domain"
)

// billViewQuery joins a bill with its five reference rows. The aging fields
// (due_date, days_to_due, total, status) are deliberately absent: they are
// derived in Go against an injected clock, never in SQL.
const billViewQuery = `
    SELECT b.id, b.bill_no, b.date, b.buyer_id, b.dalal_id, b.material_id,
           b.dhara_id, b.tax_id, b.meter, b.price_rate, b.chalan_no,
           b.taka_count, b.base_amount, b.tax_amount, b.payment_received,
           b.created_at, b.updated_at,
           buyer.name AS buyer_name, buyer.gst_number AS buyer_gst,
           dalal.name AS dalal_name,
           m.name AS material_name, m.hsn_code AS material_hsn_code,
           d.dhara_name, d.days AS dhara_days,
           t.name AS tax_name, t.percentage AS tax_percentage
    FROM bills b
    JOIN buyers buyer ON b.buyer_id = buyer.id
    JOIN dalals dalal ON b.dalal_id = dalal.id
    JOIN materials m ON b.material_id = m.id
    JOIN dharas d ON b.dhara_id = d.id
    JOIN taxes t ON b.tax_id = t.id`

type billRequest struct {
	BillNo     int64   `json:"bill_no" validate:"required,gt=0"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	BuyerID    int64   `json:"buyer_id" validate:"required,gt=0"`
	DalalID    int64   `json:"dalal_id" validate:"required,gt=0"`
	MaterialID int64   `json:"material_id" validate:"required,gt=0"`
	DharaID    int64   `json:"dhara_id" validate:"required,gt=0"`
	TaxID      int64   `json:"tax_id" validate:"required,gt=0"`
	Meter      float64 `json:"meter" validate:"required,gt=0"`
	PriceRate  float64 `json:"price_rate" validate:"required,gt=0"`
	ChalanNo   string  `json:"chalan_no" validate:"required"`
	TakaCount  int64   `json:"taka_count" validate:"required,gt=0"`
}

// loadReferences resolves the five foreign keys. A missing row leaves its
// field nil so the builder can report exactly which reference is absent.
func (h *Handler) loadReferences(req billRequest) (billing.References, error) {
	var refs billing.References

	var buyer domain.Buyer
	switch err := h.db.Get(&buyer, `SELECT id, name, address, contact_number, gst_number FROM buyers WHERE id = ?`, req.BuyerID); {
	case err == nil:
		refs.Buyer = &buyer
	case !errors.Is(err, sql.ErrNoRows):
		return refs, err
	}

	var dalal domain.Dalal
	switch err := h.db.Get(&dalal, `SELECT id, name, contact_number, address FROM dalals WHERE id = ?`, req.DalalID); {
	case err == nil:
		refs.Dalal = &dalal
	case !errors.Is(err, sql.ErrNoRows):
		return refs, err
	}

	var material domain.Material
	switch err := h.db.Get(&material, `SELECT id, name, extra_detail, hsn_code FROM materials WHERE id = ?`, req.MaterialID); {
	case err == nil:
		refs.Material = &material
	case !errors.Is(err, sql.ErrNoRows):
		return refs, err
	}

	var dhara domain.Dhara
	switch err := h.db.Get(&dhara, `SELECT id, dhara_name, days FROM dharas WHERE id = ?`, req.DharaID); {
	case err == nil:
		refs.Dhara = &dhara
	case !errors.Is(err, sql.ErrNoRows):
		return refs, err
	}

	var tax domain.Tax
	switch err := h.db.Get(&tax, `SELECT id, name, percentage FROM taxes WHERE id = ?`, req.TaxID); {
	case err == nil:
		refs.Tax = &tax
	case !errors.Is(err, sql.ErrNoRows):
		return refs, err
	}

	return refs, nil
}

func (h *Handler) createBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	refs, err := h.loadReferences(req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to resolve bill references")
		return
	}
	view, err := billing.BuildBill(billing.BillInput{
		BillNo:    req.BillNo,
		Date:      req.Date,
		Meter:     req.Meter,
		PriceRate: req.PriceRate,
		ChalanNo:  req.ChalanNo,
		TakaCount: req.TakaCount,
	}, refs, h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.db.Exec(`INSERT INTO bills
        (bill_no, date, buyer_id, dalal_id, material_id, dhara_id, tax_id,
         meter, price_rate, chalan_no, taka_count, base_amount, tax_amount, payment_received)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		view.BillNo, view.Date, view.BuyerID, view.DalalID, view.MaterialID, view.DharaID, view.TaxID,
		view.Meter, view.PriceRate, view.ChalanNo, view.TakaCount, view.BaseAmount, view.TaxAmount)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create bill")
		return
	}
	view.ID, _ = res.LastInsertId()
	respondJSON(w, http.StatusCreated, view)
}

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	spec := billing.FilterSpec{Status: billing.FilterAll}

	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		if status != billing.FilterAll && status != billing.FilterPending && status != billing.FilterPaid {
			respondError(w, http.StatusBadRequest, "status must be all, pending or paid")
			return
		}
		spec.Status = status
	}
	if buyerID := strings.TrimSpace(r.URL.Query().Get("buyer_id")); buyerID != "" {
		id, err := strconv.ParseInt(buyerID, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid buyer_id")
			return
		}
		spec.BuyerID = id
	}
	if from := strings.TrimSpace(r.URL.Query().Get("from_date")); from != "" {
		if _, err := billing.ParseDate(from); err != nil {
			respondError(w, http.StatusBadRequest, "from_date must be in YYYY-MM-DD format")
			return
		}
		spec.FromDate = from
	}
	if to := strings.TrimSpace(r.URL.Query().Get("to_date")); to != "" {
		if _, err := billing.ParseDate(to); err != nil {
			respondError(w, http.StatusBadRequest, "to_date must be in YYYY-MM-DD format")
			return
		}
		spec.ToDate = to
	}

	views, err := h.loadBillViews("")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list bills")
		return
	}
	respondJSON(w, http.StatusOK, billing.Filter(views, spec))
}

// loadBillViews fetches joined rows and derives the aging snapshot for each
// against the handler clock. An optional WHERE clause narrows the scan.
func (h *Handler) loadBillViews(where string, args ...any) ([]domain.BillView, error) {
	query := billViewQuery
	if where != "" {
		query += " WHERE " + where
	}
	views := []domain.BillView{}
	if err := h.db.Select(&views, query, args...); err != nil {
		return nil, err
	}
	now := h.now()
	for i := range views {
		billing.Derive(&views[i], now)
	}
	return views, nil
}

func (h *Handler) updateBill(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	var existing domain.Bill
	if err := h.db.Get(&existing, `SELECT * FROM bills WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "bill not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load bill")
		return
	}

	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	refs, err := h.loadReferences(req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to resolve bill references")
		return
	}
	// Full replacement: amounts are recomputed from the edited inputs.
	// payment_received is untouched; marking paid is its own endpoint.
	view, err := billing.BuildBill(billing.BillInput{
		BillNo:          req.BillNo,
		Date:            req.Date,
		Meter:           req.Meter,
		PriceRate:       req.PriceRate,
		ChalanNo:        req.ChalanNo,
		TakaCount:       req.TakaCount,
		PaymentReceived: existing.PaymentReceived,
	}, refs, h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err = h.db.Exec(`UPDATE bills SET
        bill_no = ?, date = ?, buyer_id = ?, dalal_id = ?, material_id = ?,
        dhara_id = ?, tax_id = ?, meter = ?, price_rate = ?, chalan_no = ?,
        taka_count = ?, base_amount = ?, tax_amount = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`,
		view.BillNo, view.Date, view.BuyerID, view.DalalID, view.MaterialID,
		view.DharaID, view.TaxID, view.Meter, view.PriceRate, view.ChalanNo,
		view.TakaCount, view.BaseAmount, view.TaxAmount, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update bill")
		return
	}
	view.ID = id
	respondJSON(w, http.StatusOK, view)
}

// markBillPaid is the one-way pending-to-paid transition.
func (h *Handler) markBillPaid(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	res, err := h.db.Exec(`UPDATE bills SET payment_received = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to mark bill paid")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		respondError(w, http.StatusNotFound, "bill not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

func (h *Handler) deleteBill(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, "owner") {
		return
	}
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	res, err := h.db.Exec(`DELETE FROM bills WHERE id = ?`, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete bill")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		respondError(w, http.StatusNotFound, "bill not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type invoiceResponse struct {
	Bill          domain.BillView        `json:"bill"`
	Company       *domain.CompanyProfile `json:"company,omitempty"`
	AmountInWords string                 `json:"amount_in_words"`
}

// billInvoice returns everything the invoice printer needs: the aggregate,
// the company block and the total spelled out in words. No HTML here; the
// presentation layer owns formatting.
func (h *Handler) billInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	views, err := h.loadBillViews("b.id = ?", id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load bill")
		return
	}
	if len(views) == 0 {
		respondError(w, http.StatusNotFound, "bill not found")
		return
	}
	view := views[0]

	resp := invoiceResponse{
		Bill:          view,
		AmountInWords: billing.AmountToWords(view.TotalAmount),
	}
	var company domain.CompanyProfile
	if err := h.db.Get(&company, `SELECT * FROM company WHERE id = 1`); err == nil {
		resp.Company = &company
	}
	respondJSON(w, http.StatusOK, resp)
}

type dashboardStats struct {
	Buyers        int64   `json:"buyers"`
	Dalals        int64   `json:"dalals"`
	Materials     int64   `json:"materials"`
	TotalBills    int64   `json:"total_bills"`
	PendingBills  int64   `json:"pending_bills"`
	TotalRevenue  float64 `json:"total_revenue"`
	PendingAmount float64 `json:"pending_amount"`
}

type dashboardResponse struct {
	Stats       dashboardStats    `json:"stats"`
	UrgentBills []domain.BillView `json:"urgent_bills"`
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	var stats dashboardStats
	counts := []struct {
		dest  any
		query string
	}{
		{&stats.Buyers, `SELECT COUNT(*) FROM buyers`},
		{&stats.Dalals, `SELECT COUNT(*) FROM dalals`},
		{&stats.Materials, `SELECT COUNT(*) FROM materials`},
		{&stats.TotalBills, `SELECT COUNT(*) FROM bills`},
		{&stats.PendingBills, `SELECT COUNT(*) FROM bills WHERE payment_received = 0`},
		{&stats.TotalRevenue, `SELECT COALESCE(SUM(base_amount + tax_amount), 0) FROM bills WHERE payment_received = 1`},
		{&stats.PendingAmount, `SELECT COALESCE(SUM(base_amount + tax_amount), 0) FROM bills WHERE payment_received = 0`},
	}
	for _, c := range counts {
		if err := h.db.Get(c.dest, c.query); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load dashboard stats")
			return
		}
	}

	pending, err := h.loadBillViews("b.payment_received = 0")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load pending bills")
		return
	}
	respondJSON(w, http.StatusOK, dashboardResponse{
		Stats:       stats,
		UrgentBills: billing.Urgent(pending),
	})
}
