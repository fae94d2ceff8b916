package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

func newReceiptHandler(rs portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{receiptService: rs}
}

// RegisterReceiptRoutes registers routes for receipts.
func RegisterReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade) {
	h := newReceiptHandler(receiptService)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.createReceipt)
		receipts.GET("", h.listReceipts)
		receipts.GET("/:receipt_id", h.getReceipt)
		receipts.PUT("/:receipt_id", h.updateReceipt)
		receipts.DELETE("/:receipt_id", h.deleteReceipt)
	}
}

// createReceipt godoc
// @Summary Record a receipt
// @Description Stores the receipt, credits the client's journal and adds each linked amount to its payment method.
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receipt body dto.ReceiptRequest true "Receipt details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Client or payment method not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	var req dto.ReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create receipt")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// getReceipt godoc
// @Summary Get a receipt
// @Tags receipts
// @Produce  json
// @Param   receipt_id path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts/{receipt_id} [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	receipt, err := h.receiptService.GetReceiptByID(c.Request.Context(), c.Param("receipt_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// listReceipts godoc
// @Summary List receipts
// @Tags receipts
// @Produce  json
// @Param   clientId query string false "Client ID"
// @Param   limit query int false "Page size (max 100)"
// @Param   offset query int false "Rows to skip"
// @Success 200 {object} dto.ListReceiptsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	var params dto.ListReceiptsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	receipts, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list receipts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListReceiptsResponse(receipts))
}

// updateReceipt godoc
// @Summary Replace a receipt
// @Description Reverts the old transactions' balance effects, then applies the new ones.
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receipt_id path string true "Receipt ID"
// @Param   receipt body dto.ReceiptRequest true "Receipt details"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "A reverted balance would go negative"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts/{receipt_id} [put]
func (h *receiptHandler) updateReceipt(c *gin.Context) {
	var req dto.ReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), c.Param("receipt_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// deleteReceipt godoc
// @Summary Delete a receipt
// @Tags receipts
// @Param   receipt_id path string true "Receipt ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "A reverted balance would go negative"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /receipts/{receipt_id} [delete]
func (h *receiptHandler) deleteReceipt(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), c.Param("receipt_id"), userID); err != nil {
		respondError(c, err, "Failed to delete receipt")
		return
	}
	c.Status(http.StatusNoContent)
}
