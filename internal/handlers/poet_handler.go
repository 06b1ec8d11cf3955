package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eremean89/poetry/internal/services"
	"github.com/eremean89/poetry/internal/utils"
)

type PoetHandler struct {
	BaseHandler
	poetService services.PoetService
}

func NewPoetHandler(poetService services.PoetService, logger utils.Logger) *PoetHandler {
	return &PoetHandler{
		BaseHandler: NewBaseHandler(logger),
		poetService: poetService,
	}
}

// ListPoets returns all poets ordered by name
func (h *PoetHandler) ListPoets(c *gin.Context) {
	poets, err := h.poetService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, poets)
}

// GetPoet returns one poet with works and media split by type
func (h *PoetHandler) GetPoet(c *gin.Context) {
	poetID := h.parseIDParam(c, "id")
	if poetID == 0 {
		return
	}

	detail, err := h.poetService.Get(c.Request.Context(), poetID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// SearchPoets matches poet names by substring for the search box
func (h *PoetHandler) SearchPoets(c *gin.Context) {
	query := c.Query("q")

	poets, err := h.poetService.Search(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, poets)
}

// ListWorks returns all works with their poets
func (h *PoetHandler) ListWorks(c *gin.Context) {
	works, err := h.poetService.ListWorks(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, works)
}

// GetWork returns one work with its poet and media
func (h *PoetHandler) GetWork(c *gin.Context) {
	workID := h.parseIDParam(c, "id")
	if workID == 0 {
		return
	}

	work, err := h.poetService.GetWork(c.Request.Context(), workID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, work)
}
