package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Iqbalshah786/inventory/internal/domain/ledger"
	"github.com/Iqbalshah786/inventory/internal/domain/reports"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/http/v1/dto"
)

// PaymentHandler handles payment postings and the daily cashbook.
type PaymentHandler struct {
	*BaseHandler
	ledger  *ledger.Service
	reports *reports.Service
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(base *BaseHandler, ledger *ledger.Service, reports *reports.Service) *PaymentHandler {
	return &PaymentHandler{BaseHandler: base, ledger: ledger, reports: reports}
}

// Received handles POST /api/v1/payments/received - money collected from
// a client, reducing what they owe.
func (h *PaymentHandler) Received(c *gin.Context) {
	var req dto.PaymentReceivedRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entryID, err := h.ledger.RecordReceived(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, entryID.String())
}

// Paid handles POST /api/v1/payments/paid - money paid out to a supplier.
func (h *PaymentHandler) Paid(c *gin.Context) {
	var req dto.PaymentPaidRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entryID, err := h.ledger.RecordPaid(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, entryID.String())
}

// Cashbook handles GET /api/v1/cashbook?date= - the daily cash report.
// Defaults to today.
func (h *PaymentHandler) Cashbook(c *gin.Context) {
	day, ok := h.ParseDateQuery(c, "date", time.Now())
	if !ok {
		return
	}

	book, err := h.reports.Cashbook(c.Request.Context(), day)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, book)
}
