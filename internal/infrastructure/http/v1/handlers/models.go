package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/phonemodel"
	"github.com/Iqbalshah786/inventory/internal/domain/ledger"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/http/v1/dto"
)

// PhoneModelHandler handles phone model catalog endpoints and the expense
// workflow tied to a model.
type PhoneModelHandler struct {
	*BaseHandler
	service *phonemodel.Service
	ledger  *ledger.Service
}

// NewPhoneModelHandler creates a new phone model handler.
func NewPhoneModelHandler(base *BaseHandler, service *phonemodel.Service, ledger *ledger.Service) *PhoneModelHandler {
	return &PhoneModelHandler{BaseHandler: base, service: service, ledger: ledger}
}

// Create handles POST /api/v1/models.
func (h *PhoneModelHandler) Create(c *gin.Context) {
	var req dto.CreatePhoneModelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	modelID, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, modelID.String())
}

// Get handles GET /api/v1/models/:id.
func (h *PhoneModelHandler) Get(c *gin.Context) {
	modelID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), modelID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, found)
}

// List handles GET /api/v1/models.
func (h *PhoneModelHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// AddExpense handles POST /api/v1/models/:id/expense - spreads an expense
// over the model's remaining units and books it in the ledger.
func (h *PhoneModelHandler) AddExpense(c *gin.Context) {
	modelID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entryID, err := h.ledger.AddExpense(c.Request.Context(), req.ToInput(modelID))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, entryID.String())
}
