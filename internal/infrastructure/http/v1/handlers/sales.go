package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Iqbalshah786/inventory/internal/domain/documents/sale"
	"github.com/Iqbalshah786/inventory/internal/domain/reports"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles sale documents and the sales summary report.
type SaleHandler struct {
	*BaseHandler
	service *sale.Service
	reports *reports.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service, reports *reports.Service) *SaleHandler {
	return &SaleHandler{BaseHandler: base, service: service, reports: reports}
}

// Create handles POST /api/v1/sales.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get handles GET /api/v1/sales/:id.
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, found)
}

// List handles GET /api/v1/sales.
func (h *SaleHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Summary handles GET /api/v1/sales/summary?from=&to= - sales, cost and
// profit over a period. Defaults to the current month.
func (h *SaleHandler) Summary(c *gin.Context) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	from, ok := h.ParseDateQuery(c, "from", monthStart)
	if !ok {
		return
	}
	to, ok := h.ParseDateQuery(c, "to", now)
	if !ok {
		return
	}

	summary, err := h.reports.SalesSummary(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}
