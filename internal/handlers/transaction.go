package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/services"
)

type TransactionHandler struct {
	txnService services.TransactionService
}

func NewTransactionHandler(txnService services.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

func (th *TransactionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			RespondError(c, apierr.ValidationRejected(fmt.Errorf("invalid limit %q", raw)))
			return
		}
		limit = parsed
	}
	txns, err := th.txnService.ListByCreator(c.Request.Context(), userID, limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, txns)
}

func (th *TransactionHandler) ListByLink(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized(fmt.Errorf("not authenticated")))
		return
	}
	id, err := linkID(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	txns, err := th.txnService.ListByPaymentLink(c.Request.Context(), userID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, txns)
}
