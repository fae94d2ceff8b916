package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/SscSPs/billing_ledger/internal/export"
	"github.com/SscSPs/billing_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves client journals with running balances.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers the journal routes. Client-scoped reads hang off /clients/:client_id.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	clientJournal := rg.Group("/clients/:client_id/journal")
	{
		clientJournal.GET("", h.listClientJournal)
		clientJournal.GET("/summary", h.getJournalSummary)
		clientJournal.GET("/export", h.exportStatement)
	}

	rg.POST("/journal/entries", h.appendEntry)
}

// listClientJournal godoc
// @Summary List a client's journal
// @Description Returns one page of entries with debit, credit and the running balance after each entry.
// @Description Balances are computed over the whole journal, independent of filters and paging.
// @Tags journal
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   page query int false "Page number (1-based)"
// @Param   limit query int false "Page size (max 100)"
// @Param   dateFrom query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   dateTo query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   type query string false "bill or receipt"
// @Success 200 {object} dto.ClientJournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{client_id}/journal [get]
func (h *ledgerHandler) listClientJournal(c *gin.Context) {
	var params dto.ListJournalParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.ledgerService.ListClientJournal(c.Request.Context(), c.Param("client_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientJournalResponse(page))
}

// getJournalSummary godoc
// @Summary Summarise a client's journal
// @Tags journal
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Success 200 {object} dto.JournalSummaryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{client_id}/journal/summary [get]
func (h *ledgerHandler) getJournalSummary(c *gin.Context) {
	summary, err := h.ledgerService.GetClientJournalSummary(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		respondError(c, err, "Failed to summarise journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalSummaryResponse(summary))
}

// exportStatement godoc
// @Summary Export a client statement
// @Description Renders the filtered journal as an xlsx workbook.
// @Tags journal
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   client_id path string true "Client ID"
// @Param   dateFrom query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   dateTo query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   type query string false "bill or receipt"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{client_id}/journal/export [get]
func (h *ledgerHandler) exportStatement(c *gin.Context) {
	var params dto.ListJournalParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	clientID := c.Param("client_id")

	data, err := h.ledgerService.ExportClientStatement(c.Request.Context(), clientID, params)
	if err != nil {
		respondError(c, err, "Failed to export statement")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Statement exported",
		slog.String("client_id", clientID), slog.Int("bytes", len(data)))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "statement-"+clientID+".xlsx"))
	c.Data(http.StatusOK, export.ContentType, data)
}

// appendEntry godoc
// @Summary Append a journal entry
// @Description Records an entry that is not driven by a bill or receipt, such as an opening adjustment.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.AppendEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Client not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journal/entries [post]
func (h *ledgerHandler) appendEntry(c *gin.Context) {
	var req dto.AppendEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.AppendEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to append journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}
