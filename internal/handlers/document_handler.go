package handlers

import (
	"net/http"

	"careercraft_backend/internal/dto"
	"careercraft_backend/internal/middleware"
	"careercraft_backend/internal/models"
	"careercraft_backend/internal/services"
	"careercraft_backend/internal/validator"
	"careercraft_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// DocumentHandler serves the single-document operations: cover letters,
// statements of purpose, motivation letters, study plans, financial
// letters and short bios. The document kind comes from the path.
type DocumentHandler struct {
	*BaseHandler
	documentService services.DocumentService
}

func NewDocumentHandler(v *validator.Validator, documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler:     NewBaseHandler(v),
		documentService: documentService,
	}
}

func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	{
		documents.POST("/generate/:kind", middleware.OperationFromParam("kind"), h.Generate)
		documents.GET("", h.List)
		documents.GET("/:id", h.Get)
		documents.DELETE("/:id", h.Delete)
	}
}

func (h *DocumentHandler) Generate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	kind := models.DocumentKind(c.Param("kind"))
	if !kind.Valid() {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown document kind: "+c.Param("kind")))
		return
	}

	var req dto.GenerateDocumentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.documentService.Generate(c.Request.Context(), userID, IdempotencyKey(c), kind, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.documentService.Get(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	kind := models.DocumentKind(c.Query("kind"))
	if kind != "" && !kind.Valid() {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown document kind: "+c.Query("kind")))
		return
	}

	page, pageSize := ParsePagination(c)

	resp, err := h.documentService.List(userID, kind, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.documentService.Delete(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
