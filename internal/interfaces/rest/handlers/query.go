package handlers

import (
	"net/http"

	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/interfaces/rest"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

func (h *Handlers) GetPurchase(w http.ResponseWriter, r *http.Request) {
	var purchaseID string
	if err := bindPath(r, "purchaseId", &purchaseID); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	purchase, err := h.queries.FindPurchase(r.Context(), purchaseID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.PurchaseResponse{
		Success:  true,
		Purchase: rest.ToAPIPurchase(purchase),
	})
}

func (h *Handlers) ListCustomerPurchases(w http.ResponseWriter, r *http.Request) {
	var customerID string
	if err := bindPath(r, "customerId", &customerID); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	limit, offset, err := bindPage(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	purchases, err := h.queries.PurchasesByCustomer(r.Context(), customerID, limit, offset)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.PurchaseListResponse{
		Success:   true,
		Purchases: rest.ToAPIPurchases(purchases),
	})
}

func (h *Handlers) ListCustomerRefunds(w http.ResponseWriter, r *http.Request) {
	var customerID string
	if err := bindPath(r, "customerId", &customerID); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	refunds, err := h.queries.RefundsByCustomer(r.Context(), customerID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.RefundListResponse{
		Success: true,
		Refunds: rest.ToAPIRefunds(refunds),
	})
}

func (h *Handlers) ListDeveloperComplaints(w http.ResponseWriter, r *http.Request) {
	var developerID string
	if err := bindPath(r, "developerId", &developerID); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	limit, offset, err := bindPage(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	complaints, err := h.queries.ComplaintsForDeveloper(r.Context(), developerID, limit, offset)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.ComplaintListResponse{
		Success:    true,
		Complaints: rest.ToAPIComplaints(complaints),
	})
}

func bindPath(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return application.NewInvalidInputError(err)
	}
	return nil
}

// bindPage reads optional limit/offset; zero values defer to the query
// service's defaults.
func bindPage(r *http.Request) (int, int, error) {
	var limit, offset *int
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &limit); err != nil {
		return 0, 0, application.NewInvalidInputError(err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", query, &offset); err != nil {
		return 0, 0, application.NewInvalidInputError(err)
	}

	var l, o int
	if limit != nil {
		l = *limit
	}
	if offset != nil {
		o = *offset
	}
	return l, o, nil
}
