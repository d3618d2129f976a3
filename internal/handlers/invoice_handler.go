package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/services/invoices"
	"invoice-dashboard-backend/internal/services/validation"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type InvoiceHandler struct {
	service *invoices.Service
	pages   cache.PageCache
	log     *zap.Logger
}

func NewInvoiceHandler(s *invoices.Service, pages cache.PageCache, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: s, pages: pages, log: log.Named("invoices.handler")}
}

type invoiceView struct {
	models.InvoiceRow
	AmountFormatted string `json:"amount_formatted"`
}

type listResponse struct {
	Query      string        `json:"query"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Invoices   []invoiceView `json:"invoices"`
}

// ListInvoices serves one filtered page. Bodies are cached per query and page
// until the next mutation revalidates the listing.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	page := parsePage(c.Query("page"))
	key := url.Values{"query": {query}, "page": {strconv.Itoa(page)}}.Encode()
	ctx := c.Request.Context()

	body, generation, ok := h.pages.Get(ctx, invoices.InvoicesPath, key)
	if ok {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	resp := listResponse{Query: query, Page: page}
	var rows []models.InvoiceRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, err = h.service.Search(gctx, query, page)
		return err
	})
	g.Go(func() (err error) {
		resp.TotalPages, err = h.service.TotalPages(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	resp.Invoices = make([]invoiceView, 0, len(rows))
	for _, row := range rows {
		resp.Invoices = append(resp.Invoices, invoiceView{InvoiceRow: row, AmountFormatted: formatCurrency(row.Amount)})
	}

	body, err := json.Marshal(resp)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	h.pages.Set(ctx, invoices.InvoicesPath, key, generation, body)

	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *InvoiceHandler) GetInvoiceForEdit(c *gin.Context) {
	form, err := h.service.GetForEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var form validation.InvoiceForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AbortWithError(c, middleware.ErrInvalidRequest)
		return
	}
	respond(c, h.service.Create(c.Request.Context(), form))
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var form validation.InvoiceForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AbortWithError(c, middleware.ErrInvalidRequest)
		return
	}
	respond(c, h.service.Update(c.Request.Context(), c.Param("id"), form))
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	respond(c, h.service.Delete(c.Request.Context(), c.Param("id")))
}

// ImportInvoices bulk creates invoices from a multipart CSV upload.
func (h *InvoiceHandler) ImportInvoices(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		middleware.AbortWithError(c, middleware.ErrInvalidRequest)
		return
	}
	defer file.Close()

	h.log.Info("import received", zap.String("file", header.Filename), zap.Int64("size", header.Size))

	report, err := h.service.Import(c.Request.Context(), file)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file":     header.Filename,
		"inserted": report.Inserted,
		"rejected": report.Rejected,
	})
}

func (h *InvoiceHandler) GetInvoiceHistory(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (h *InvoiceHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	latest := make([]invoiceView, 0, len(summary.Latest))
	for _, row := range summary.Latest {
		latest = append(latest, invoiceView{InvoiceRow: row, AmountFormatted: formatCurrency(row.Amount)})
	}
	c.JSON(http.StatusOK, gin.H{
		"invoice_count":  summary.InvoiceCount,
		"customer_count": summary.CustomerCount,
		"total_paid":     formatCurrency(summary.TotalPaid),
		"total_pending":  formatCurrency(summary.TotalPending),
		"latest":         latest,
	})
}

func (h *InvoiceHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customers})
}

// respond maps a mutation outcome onto HTTP. Redirects use 303 so the client
// follows them with a GET.
func respond(c *gin.Context, out invoices.Outcome) {
	switch out.Kind {
	case invoices.ValidationFailed:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": out.Errors, "message": out.Message})
	case invoices.PersistFailed:
		c.JSON(http.StatusInternalServerError, gin.H{"message": out.Message})
	default:
		if out.RedirectTo != "" {
			c.Redirect(http.StatusSeeOther, out.RedirectTo)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": out.Message})
	}
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func formatCurrency(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}
