package handler

import (
	"net/http"

	"tiendaonline/internal/apierror"
	"tiendaonline/internal/dto"
	"tiendaonline/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler serves the public, read-only side of the catalog.
type CatalogoHandler struct{ svc *service.ProductoService }

func NewCatalogoHandler(svc *service.ProductoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// Listar GET /v1/catalogo
func (h *CatalogoHandler) Listar(c *gin.Context) {
	var f dto.CatalogoFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros inválidos: "+err.Error()))
		return
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	resp, err := h.svc.Catalogo(c.Request.Context(), f)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detalle GET /v1/catalogo/:slug
func (h *CatalogoHandler) Detalle(c *gin.Context) {
	resp, err := h.svc.DetallePorSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
