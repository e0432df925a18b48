package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"texbill/m/domain"
)

// Reference-data handlers: buyers, dalals, materials, dharas, taxes and the
// company profile. All follow the same list/create/update/delete shape;
// deletes are owner-only and blocked while bills still point at the row.

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) deleteReference(w http.ResponseWriter, r *http.Request, table string) {
	if !h.requireRole(w, r, "owner") {
		return
	}
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	res, err := h.db.Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint") {
			respondError(w, http.StatusConflict, "record is referenced by existing bills")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to delete record")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		respondError(w, http.StatusNotFound, "record not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Buyers

type buyerRequest struct {
	Name          string `json:"name" validate:"required"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number" validate:"required"`
	GSTNumber     string `json:"gst_number"`
}

func (h *Handler) listBuyers(w http.ResponseWriter, r *http.Request) {
	var buyers []domain.Buyer
	if err := h.db.Select(&buyers, `SELECT id, name, address, contact_number, gst_number FROM buyers ORDER BY name`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list buyers")
		return
	}
	respondJSON(w, http.StatusOK, buyers)
}

func (h *Handler) createBuyer(w http.ResponseWriter, r *http.Request) {
	var req buyerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.db.Exec(`INSERT INTO buyers (name, address, contact_number, gst_number) VALUES (?, ?, ?, ?)`,
		req.Name, nullIfEmpty(req.Address), req.ContactNumber, nullIfEmpty(req.GSTNumber))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create buyer")
		return
	}
	id, _ := res.LastInsertId()
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": req.Name})
}

func (h *Handler) updateBuyer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid buyer id")
		return
	}
	var req buyerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.db.Exec(`UPDATE buyers SET name = ?, address = ?, contact_number = ?, gst_number = ? WHERE id = ?`,
		req.Name, nullIfEmpty(req.Address), req.ContactNumber, nullIfEmpty(req.GSTNumber), id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update buyer")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteBuyer(w http.ResponseWriter, r *http.Request) {
	h.deleteReference(w, r, "buyers")
}

// Dalals

type dalalRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required"`
	Address       string `json:"address"`
}

func (h *Handler) listDalals(w http.ResponseWriter, r *http.Request) {
	var dalals []domain.Dalal
	if err := h.db.Select(&dalals, `SELECT id, name, contact_number, address FROM dalals ORDER BY name`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list dalals")
		return
	}
	respondJSON(w, http.StatusOK, dalals)
}

func (h *Handler) createDalal(w http.ResponseWriter, r *http.Request) {
	var req dalalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.db.Exec(`INSERT INTO dalals (name, contact_number, address) VALUES (?, ?, ?)`,
		req.Name, req.ContactNumber, nullIfEmpty(req.Address))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create dalal")
		return
	}
	id, _ := res.LastInsertId()
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": req.Name})
}

func (h *Handler) updateDalal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dalal id")
		return
	}
	var req dalalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.db.Exec(`UPDATE dalals SET name = ?, contact_number = ?, address = ? WHERE id = ?`,
		req.Name, req.ContactNumber, nullIfEmpty(req.Address), id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update dalal")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteDalal(w http.ResponseWriter, r *http.Request) {
	h.deleteReference(w, r, "dalals")
}

// Materials

type materialRequest struct {
	Name        string `json:"name" validate:"required"`
	ExtraDetail string `json:"extra_detail"`
	HSNCode     string `json:"hsn_code"`
}

func (h *Handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	var materials []domain.Material
	if err := h.db.Select(&materials, `SELECT id, name, extra_detail, hsn_code FROM materials ORDER BY name`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list materials")
		return
	}
	respondJSON(w, http.StatusOK, materials)
}

func (h *Handler) createMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.db.Exec(`INSERT INTO materials (name, extra_detail, hsn_code) VALUES (?, ?, ?)`,
		req.Name, nullIfEmpty(req.ExtraDetail), nullIfEmpty(req.HSNCode))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create material")
		return
	}
	id, _ := res.LastInsertId()
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": req.Name})
}

func (h *Handler) updateMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid material id")
		return
	}
	var req materialRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.db.Exec(`UPDATE materials SET name = ?, extra_detail = ?, hsn_code = ? WHERE id = ?`,
		req.Name, nullIfEmpty(req.ExtraDetail), nullIfEmpty(req.HSNCode), id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update material")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteMaterial(w http.ResponseWriter, r *http.Request) {
	h.deleteReference(w, r, "materials")
}

// Dharas (payment terms)

type dharaRequest struct {
	DharaName string `json:"dhara_name" validate:"required"`
	Days      int    `json:"days" validate:"gte=0"`
}

func (h *Handler) listDharas(w http.ResponseWriter, r *http.Request) {
	var dharas []domain.Dhara
	if err := h.db.Select(&dharas, `SELECT id, dhara_name, days FROM dharas ORDER BY days`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list dharas")
		return
	}
	respondJSON(w, http.StatusOK, dharas)
}

func (h *Handler) createDhara(w http.ResponseWriter, r *http.Request) {
	var req dharaRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.db.Exec(`INSERT INTO dharas (dhara_name, days) VALUES (?, ?)`, req.DharaName, req.Days)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create dhara")
		return
	}
	id, _ := res.LastInsertId()
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "dhara_name": req.DharaName})
}

func (h *Handler) updateDhara(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid dhara id")
		return
	}
	var req dharaRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.db.Exec(`UPDATE dharas SET dhara_name = ?, days = ? WHERE id = ?`, req.DharaName, req.Days, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update dhara")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteDhara(w http.ResponseWriter, r *http.Request) {
	h.deleteReference(w, r, "dharas")
}

// Taxes

type taxRequest struct {
	Name       string  `json:"name" validate:"required"`
	Percentage float64 `json:"percentage" validate:"gte=0"`
}

func (h *Handler) listTaxes(w http.ResponseWriter, r *http.Request) {
	var taxes []domain.Tax
	if err := h.db.Select(&taxes, `SELECT id, name, percentage FROM taxes ORDER BY percentage`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list taxes")
		return
	}
	respondJSON(w, http.StatusOK, taxes)
}

func (h *Handler) createTax(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.db.Exec(`INSERT INTO taxes (name, percentage) VALUES (?, ?)`, req.Name, req.Percentage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create tax")
		return
	}
	id, _ := res.LastInsertId()
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": req.Name})
}

// updateTax edits the tax row only; bills keep the amounts computed from
// the percentage in force when they were written.
func (h *Handler) updateTax(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tax id")
		return
	}
	var req taxRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.db.Exec(`UPDATE taxes SET name = ?, percentage = ? WHERE id = ?`, req.Name, req.Percentage, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update tax")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteTax(w http.ResponseWriter, r *http.Request) {
	h.deleteReference(w, r, "taxes")
}

// Company profile (single row, printed on invoices)

type companyRequest struct {
	Name            string `json:"name" validate:"required"`
	Tagline         string `json:"tagline"`
	Address         string `json:"address" validate:"required"`
	Contact         string `json:"contact" validate:"required,len=10,numeric"`
	GST             string `json:"gst" validate:"required"`
	PAN             string `json:"pan" validate:"required"`
	BusinessType    string `json:"business_type" validate:"required"`
	BankName        string `json:"bank_name" validate:"required"`
	AccountNo       string `json:"account_no" validate:"required"`
	IFSC            string `json:"ifsc" validate:"required"`
	Branch          string `json:"branch" validate:"required"`
	TermsConditions string `json:"terms_conditions"`
}

func (h *Handler) getCompanyProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.CompanyProfile
	if err := h.db.Get(&profile, `SELECT * FROM company WHERE id = 1`); err != nil {
		respondError(w, http.StatusNotFound, "company profile not set")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *Handler) saveCompanyProfile(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, "owner") {
		return
	}
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	_, err := h.db.Exec(`INSERT OR REPLACE INTO company
        (id, name, tagline, address, contact, gst, pan, business_type, bank_name, account_no, ifsc, branch, terms_conditions)
        VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Name, nullIfEmpty(req.Tagline), req.Address, req.Contact, req.GST, req.PAN,
		req.BusinessType, req.BankName, req.AccountNo, req.IFSC, req.Branch, nullIfEmpty(req.TermsConditions))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to save company profile")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
