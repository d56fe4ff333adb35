package web

import (
	"errors"
	"io"
	"net/http"

	"purchasing-bridge/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc app.ApplicationService
	log zerolog.Logger
}

// Config carries transport configuration for NewHandler.
type Config struct {
	AllowedOrigins string // comma-separated, empty disables CORS
	APIToken       string // empty disables auth
}

// NewHandler creates and wires the chi router with all routes. Domain
// failures come back as HTTP 200 envelopes with success=false, matching
// the RPC behavior of the upstream ERP; HTTP statuses are reserved for
// transport problems.
func NewHandler(svc app.ApplicationService, log zerolog.Logger, cfg Config) http.Handler {
	h := &Handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(cfg.AllowedOrigins))

	r.Get("/api/health", h.health)

	r.Group(func(r chi.Router) {
		r.Use(RequireToken(cfg.APIToken))
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Post("/api/purchase-invoices", h.createPurchaseInvoice)
		r.Get("/api/purchase-invoices/{name}", h.getPurchaseInvoice)
		r.Get("/api/purchase-receipts/{name}/invoice-detail", h.receiptInvoiceDetail)
	})

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// createPurchaseInvoice handles POST /api/purchase-invoices.
// Body: an InvoiceRequest JSON object, or a JSON string containing one.
func (h *Handler) createPurchaseInvoice(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, r, "failed to read request body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	writeJSON(w, h.svc.CreatePurchaseInvoiceRaw(r.Context(), raw))
}

// getPurchaseInvoice handles GET /api/purchase-invoices/{name}.
func (h *Handler) getPurchaseInvoice(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.GetPurchaseInvoice(r.Context(), chi.URLParam(r, "name")))
}

// receiptInvoiceDetail handles GET /api/purchase-receipts/{name}/invoice-detail.
func (h *Handler) receiptInvoiceDetail(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.FetchReceiptDetail(r.Context(), chi.URLParam(r, "name")))
}
