package handlers

import (
	"net/http"

	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests for bills and estimates.
type documentHandler struct {
	documentService  portssvc.DocumentSvcFacade
	numberingService portssvc.NumberingSvc
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, ns portssvc.NumberingSvc) *documentHandler {
	return &documentHandler{documentService: ds, numberingService: ns}
}

// RegisterDocumentRoutes registers routes for bills and estimates.
func RegisterDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, numberingService portssvc.NumberingSvc) {
	h := newDocumentHandler(documentService, numberingService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/next-number", h.nextNumber)
		documents.GET("/:document_id", h.getDocument)
		documents.PUT("/:document_id", h.updateEstimate)
		documents.DELETE("/:document_id", h.deleteDocument)
	}
}

// NextNumberResponse carries a preview of the next document number.
type NextNumberResponse struct {
	Kind   string `json:"kind"`
	Number string `json:"number"`
}

// createDocument godoc
// @Summary Create a bill or estimate
// @Description Numbers and stores a document. A bill also debits the client's journal.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Client not found"
// @Failure 409 {object} ErrorResponse "Number could not be allocated"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create document")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// nextNumber godoc
// @Summary Preview the next document number
// @Description Reserves nothing; a concurrent create may take the number first.
// @Tags documents
// @Produce  json
// @Param   kind query string true "bill or estimate"
// @Success 200 {object} NextNumberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/next-number [get]
func (h *documentHandler) nextNumber(c *gin.Context) {
	kind := domain.DocumentKind(c.Query("kind"))
	number, err := h.numberingService.NextNumber(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err, "Failed to generate document number")
		return
	}
	c.JSON(http.StatusOK, NextNumberResponse{Kind: string(kind), Number: number})
}

// getDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce  json
// @Param   document_id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{document_id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), c.Param("document_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List documents
// @Tags documents
// @Produce  json
// @Param   kind query string false "bill or estimate"
// @Param   clientId query string false "Client ID"
// @Param   limit query int false "Page size (max 100)"
// @Param   offset query int false "Rows to skip"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(docs))
}

// updateEstimate godoc
// @Summary Update an estimate
// @Description Replaces an estimate's content and recomputes its totals. Bills are immutable.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document_id path string true "Document ID"
// @Param   document body dto.UpdateEstimateRequest true "Estimate details"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Document is a bill"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{document_id} [put]
func (h *documentHandler) updateEstimate(c *gin.Context) {
	var req dto.UpdateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.UpdateEstimate(c.Request.Context(), c.Param("document_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update estimate")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// deleteDocument godoc
// @Summary Delete a document
// @Description Deleting a bill also removes its journal entry.
// @Tags documents
// @Param   document_id path string true "Document ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{document_id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), c.Param("document_id"), userID); err != nil {
		respondError(c, err, "Failed to delete document")
		return
	}
	c.Status(http.StatusNoContent)
}
