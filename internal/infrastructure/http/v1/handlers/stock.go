package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Iqbalshah786/inventory/internal/domain/documents/stockintake"
	"github.com/Iqbalshah786/inventory/internal/domain/reports"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/http/v1/dto"
)

// StockHandler handles stock intake documents and the stock report.
type StockHandler struct {
	*BaseHandler
	service *stockintake.Service
	reports *reports.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stockintake.Service, reports *reports.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service, reports: reports}
}

// CreateIntake handles POST /api/v1/stock/intake.
func (h *StockHandler) CreateIntake(c *gin.Context) {
	var req dto.CreateStockIntakeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lot, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, lot)
}

// GetIntake handles GET /api/v1/stock/intake/:id.
func (h *StockHandler) GetIntake(c *gin.Context) {
	lotID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	lot, err := h.service.GetByID(c.Request.Context(), lotID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, lot)
}

// ListIntakes handles GET /api/v1/stock/intake.
func (h *StockHandler) ListIntakes(c *gin.Context) {
	lots, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: lots, TotalCount: len(lots)})
}

// Lines handles GET /api/v1/stock?from=&to= - flattened lot lines, the
// way the stock page lists arrivals. Defaults to the full history.
func (h *StockHandler) Lines(c *gin.Context) {
	from, ok := h.ParseDateQuery(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := h.ParseDateQuery(c, "to", time.Now())
	if !ok {
		return
	}

	lines, err := h.reports.LotLines(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: lines, TotalCount: len(lines)})
}

// Positions handles GET /api/v1/stock/positions - current positions with
// valuation.
func (h *StockHandler) Positions(c *gin.Context) {
	lines, err := h.reports.StockLines(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: lines, TotalCount: len(lines)})
}
