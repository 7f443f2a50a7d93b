package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/client"
	"github.com/Iqbalshah786/inventory/internal/domain/reports"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/http/v1/dto"
)

// ClientHandler handles client catalog and client report endpoints.
type ClientHandler struct {
	*BaseHandler
	service *client.Service
	reports *reports.Service
}

// NewClientHandler creates a new client handler.
func NewClientHandler(base *BaseHandler, service *client.Service, reports *reports.Service) *ClientHandler {
	return &ClientHandler{BaseHandler: base, service: service, reports: reports}
}

// Create handles POST /api/v1/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	clientType := client.Type(req.Type)
	if clientType == "" {
		clientType = client.TypeRegular
	}

	clientID, err := h.service.Create(c.Request.Context(), req.Name, clientType)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, clientID.String())
}

// Get handles GET /api/v1/clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, found)
}

// List handles GET /api/v1/clients.
func (h *ClientHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Balances handles GET /api/v1/clients/balances.
func (h *ClientHandler) Balances(c *gin.Context) {
	balances, err := h.reports.ClientBalances(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: balances, TotalCount: len(balances)})
}

// Balance handles GET /api/v1/clients/:id/balance.
func (h *ClientHandler) Balance(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	balance, err := h.reports.ClientBalance(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, balance)
}

// Ledger handles GET /api/v1/clients/:id/ledger - the account statement
// with running balance.
func (h *ClientHandler) Ledger(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	rows, err := h.reports.ClientLedger(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: rows, TotalCount: len(rows)})
}
