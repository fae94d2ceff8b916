package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type paymentMethodHandler struct {
	paymentMethodService portssvc.PaymentMethodSvcFacade
}

func newPaymentMethodHandler(ps portssvc.PaymentMethodSvcFacade) *paymentMethodHandler {
	return &paymentMethodHandler{paymentMethodService: ps}
}

// RegisterPaymentMethodRoutes registers routes for payment methods.
func RegisterPaymentMethodRoutes(rg *gin.RouterGroup, paymentMethodService portssvc.PaymentMethodSvcFacade) {
	h := newPaymentMethodHandler(paymentMethodService)

	methods := rg.Group("/payment-methods")
	{
		methods.POST("", h.createPaymentMethod)
		methods.GET("", h.listPaymentMethods)
		methods.GET("/:payment_method_id", h.getPaymentMethod)
		methods.PUT("/:payment_method_id", h.updatePaymentMethod)
		methods.DELETE("/:payment_method_id", h.deletePaymentMethod)
		methods.POST("/:payment_method_id/adjust-balance", h.adjustBalance)
	}
}

// createPaymentMethod godoc
// @Summary Create a payment method
// @Description Registers a cash, bank, wallet or cheque funding source.
// @Tags payment-methods
// @Accept  json
// @Produce  json
// @Param   paymentMethod body dto.CreatePaymentMethodRequest true "Payment method details"
// @Success 201 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A default already exists for the type"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods [post]
func (h *paymentMethodHandler) createPaymentMethod(c *gin.Context) {
	var req dto.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	pm, err := h.paymentMethodService.CreatePaymentMethod(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create payment method")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentMethodResponse(pm))
}

// getPaymentMethod godoc
// @Summary Get a payment method
// @Tags payment-methods
// @Produce  json
// @Param   payment_method_id path string true "Payment method ID"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{payment_method_id} [get]
func (h *paymentMethodHandler) getPaymentMethod(c *gin.Context) {
	pm, err := h.paymentMethodService.GetPaymentMethodByID(c.Request.Context(), c.Param("payment_method_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve payment method")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(pm))
}

// listPaymentMethods godoc
// @Summary List payment methods
// @Tags payment-methods
// @Produce  json
// @Param   type query string false "cash, bank, wallet or cheque"
// @Success 200 {object} dto.ListPaymentMethodsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods [get]
func (h *paymentMethodHandler) listPaymentMethods(c *gin.Context) {
	var params dto.ListPaymentMethodsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	methods, err := h.paymentMethodService.ListPaymentMethods(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list payment methods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentMethodsResponse(methods))
}

// updatePaymentMethod godoc
// @Summary Update a payment method
// @Description Replaces descriptive fields. The balance is left unchanged.
// @Tags payment-methods
// @Accept  json
// @Produce  json
// @Param   payment_method_id path string true "Payment method ID"
// @Param   paymentMethod body dto.UpdatePaymentMethodRequest true "Payment method details"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{payment_method_id} [put]
func (h *paymentMethodHandler) updatePaymentMethod(c *gin.Context) {
	var req dto.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	pm, err := h.paymentMethodService.UpdatePaymentMethod(c.Request.Context(), c.Param("payment_method_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update payment method")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(pm))
}

// deletePaymentMethod godoc
// @Summary Delete a payment method
// @Tags payment-methods
// @Param   payment_method_id path string true "Payment method ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Protected default or still referenced"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{payment_method_id} [delete]
func (h *paymentMethodHandler) deletePaymentMethod(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.paymentMethodService.DeletePaymentMethod(c.Request.Context(), c.Param("payment_method_id"), userID); err != nil {
		respondError(c, err, "Failed to delete payment method")
		return
	}
	c.Status(http.StatusNoContent)
}

// adjustBalance godoc
// @Summary Adjust a payment method balance
// @Description Adds a signed amount to the balance. The result may not go below zero.
// @Tags payment-methods
// @Accept  json
// @Produce  json
// @Param   payment_method_id path string true "Payment method ID"
// @Param   adjustment body dto.AdjustBalanceRequest true "Signed amount"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payment-methods/{payment_method_id}/adjust-balance [post]
func (h *paymentMethodHandler) adjustBalance(c *gin.Context) {
	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	pm, err := h.paymentMethodService.AdjustBalance(c.Request.Context(), c.Param("payment_method_id"), req.Amount, userID)
	if err != nil {
		respondError(c, err, "Failed to adjust balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(pm))
}
