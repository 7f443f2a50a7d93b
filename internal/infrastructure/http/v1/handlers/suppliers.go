package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/supplier"
	"github.com/Iqbalshah786/inventory/internal/domain/reports"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/http/v1/dto"
)

// SupplierHandler handles supplier catalog and supplier report endpoints.
type SupplierHandler struct {
	*BaseHandler
	service *supplier.Service
	reports *reports.Service
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service, reports *reports.Service) *SupplierHandler {
	return &SupplierHandler{BaseHandler: base, service: service, reports: reports}
}

// Create handles POST /api/v1/suppliers.
func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	supplierID, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, supplierID.String())
}

// Get handles GET /api/v1/suppliers/:id.
func (h *SupplierHandler) Get(c *gin.Context) {
	supplierID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, found)
}

// List handles GET /api/v1/suppliers.
func (h *SupplierHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Balances handles GET /api/v1/suppliers/balances.
func (h *SupplierHandler) Balances(c *gin.Context) {
	balances, err := h.reports.SupplierBalances(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: balances, TotalCount: len(balances)})
}

// Balance handles GET /api/v1/suppliers/:id/balance.
func (h *SupplierHandler) Balance(c *gin.Context) {
	supplierID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	balance, err := h.reports.SupplierBalance(c.Request.Context(), supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, balance)
}

// Purchases handles GET /api/v1/suppliers/:id/purchases - the lot-by-lot
// purchase history.
func (h *SupplierHandler) Purchases(c *gin.Context) {
	supplierID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	rows, err := h.reports.SupplierPurchases(c.Request.Context(), supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: rows, TotalCount: len(rows)})
}
