package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/sibabeauty/storefront/internal/catalog"
	"github.com/sibabeauty/storefront/internal/checkout"
	"github.com/sibabeauty/storefront/internal/config"
	httpopenapi "github.com/sibabeauty/storefront/internal/http/openapi"
	"github.com/sibabeauty/storefront/internal/model"
	"github.com/sibabeauty/storefront/internal/obs"
	"github.com/sibabeauty/storefront/internal/pricing"
	"github.com/sibabeauty/storefront/internal/promo"
	"github.com/sibabeauty/storefront/internal/queue"
)

// App wires the stores, checkout service, and receipt queue behind the
// HTTP handlers.
type App struct {
	Cfg      config.Config
	Catalog  *catalog.Store
	Promos   *promo.Store
	Orders   *checkout.Orders
	Checkout *checkout.Service
	Mailq    *queue.Manager
	Metrics  *obs.ServerMetrics

	closing bool
	started time.Time
}

func NewApp(cfg config.Config, cat *catalog.Store, promos *promo.Store, orders *checkout.Orders, svc *checkout.Service, mailq *queue.Manager) *App {
	return &App{
		Cfg:      cfg,
		Catalog:  cat,
		Promos:   promos,
		Orders:   orders,
		Checkout: svc,
		Mailq:    mailq,
		Metrics:  obs.NewServerMetrics(),
		started:  time.Now(),
	}
}

// StartShutdown rejects new checkouts and closes receipt intake so the
// queue can drain.
func (a *App) StartShutdown() {
	a.closing = true
	a.Mailq.CloseIntake()
}

// productView is a catalog product plus its price under the active sale.
type productView struct {
	model.Product
	SalePriceCents int64 `json:"sale_price_cents"`
}

func (a *App) viewAt(p model.Product, sale *model.Sale, now time.Time) productView {
	return productView{Product: p, SalePriceCents: pricing.DiscountedUnitPriceAt(p, sale, now)}
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	sale := a.Promos.ActiveSaleAt(now)
	products := a.Catalog.List()
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, a.viewAt(p, sale, now))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	p, ok := a.Catalog.Get(id)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	now := time.Now()
	writeJSON(w, http.StatusOK, a.viewAt(p, a.Promos.ActiveSaleAt(now), now))
}

func (a *App) getSaleHandler(w http.ResponseWriter, r *http.Request) {
	sale := a.Promos.ActiveSaleAt(time.Now())
	if sale == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

type quoteRequest struct {
	Items []catalog.Line `json:"items"`
}

func (a *App) quoteHandler(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	now := time.Now()
	q, err := a.Checkout.Quote(req.Items, a.Promos.ActiveSaleAt(now), now)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

type orderAck struct {
	Status    string         `json:"status"`
	RequestID string         `json:"request_id"`
	Order     checkout.Order `json:"order"`
}

func (a *App) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	if a.closing || a.Mailq.IsShuttingDown() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	var req checkout.OrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	now := time.Now()
	ord, err := a.Checkout.PlaceOrder(req, a.Promos.ActiveSaleAt(now), now)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, orderAck{
		Status:    "placed",
		RequestID: RequestIDFromContext(r.Context()),
		Order:     ord,
	})
	obs.Logger.Info("order_placed",
		"request_id", RequestIDFromContext(r.Context()),
		"order_id", ord.ID,
		"payment_method", string(ord.PaymentMethod),
		"total_cents", ord.TotalCents,
		"discount_cents", ord.DiscountCents,
	)
}

func (a *App) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if !decodeBody(w, r, &p) {
		return
	}
	if p.Name == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}
	if p.PriceCents < 0 {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "price_cents must be >= 0")
		return
	}
	p.ID = ""
	writeJSON(w, http.StatusCreated, a.Catalog.Create(p))
}

func (a *App) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if !decodeBody(w, r, &p) {
		return
	}
	if p.PriceCents < 0 {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "price_cents must be >= 0")
		return
	}
	updated, err := a.Catalog.Update(mux.Vars(r)["id"], p)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *App) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Catalog.Delete(mux.Vars(r)["id"]); err != nil {
		a.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) listSalesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Promos.List())
}

func (a *App) createSaleHandler(w http.ResponseWriter, r *http.Request) {
	var s model.Sale
	if !decodeBody(w, r, &s) {
		return
	}
	s.ID = ""
	created, err := a.Promos.Create(s)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *App) updateSaleHandler(w http.ResponseWriter, r *http.Request) {
	var s model.Sale
	if !decodeBody(w, r, &s) {
		return
	}
	updated, err := a.Promos.Update(mux.Vars(r)["id"], s)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *App) deleteSaleHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Promos.Delete(mux.Vars(r)["id"]); err != nil {
		a.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ord, ok := a.Orders.Get(mux.Vars(r)["id"])
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, ord)
}

func (a *App) statsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"products": a.Catalog.Count(),
		"orders":   a.Orders.Count(),
		"sales":    len(a.Promos.List()),
	})
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) debugMetricsHandler(w http.ResponseWriter, r *http.Request) {
	enq, delivered, backlog, depth := a.Mailq.QueueMetrics()
	writeJSON(w, http.StatusOK, map[string]any{
		"receipts_enqueued":  enq,
		"receipts_delivered": delivered,
		"backlog_size":       backlog,
		"queue_depth":        depth,
		"worker_count":       a.Mailq.WorkerCount(),
		"uptime_sec":         time.Since(a.started).Seconds(),
	})
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Storefront API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}

// decodeBody enforces a JSON content type and strict field decoding.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps store and checkout errors onto HTTP statuses.
func (a *App) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, promo.ErrSaleNotFound),
		errors.Is(err, checkout.ErrOrderNotFound):
		WriteJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, promo.ErrInvalidSale),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidQuantity),
		errors.Is(err, checkout.ErrAddressIncomplete),
		errors.Is(err, checkout.ErrInvalidPayment),
		errors.Is(err, checkout.ErrCardDetailsRequired):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
