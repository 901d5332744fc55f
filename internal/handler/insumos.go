package handler

import (
	"net/http"

	"tiendaonline/internal/apierror"
	"tiendaonline/internal/dto"
	"tiendaonline/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InsumosHandler struct{ svc *service.InsumoService }

func NewInsumosHandler(svc *service.InsumoService) *InsumosHandler {
	return &InsumosHandler{svc: svc}
}

// Crear POST /v1/insumos
func (h *InsumosHandler) Crear(c *gin.Context) {
	var req dto.CrearInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /v1/insumos
func (h *InsumosHandler) Listar(c *gin.Context) {
	var f dto.InsumoFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros inválidos: "+err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), f)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener GET /v1/insumos/:id
func (h *InsumosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, svcErr := h.svc.Obtener(c.Request.Context(), id)
	if svcErr != nil {
		responderError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar PUT /v1/insumos/:id
func (h *InsumosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.Actualizar(c.Request.Context(), id, req)
	if svcErr != nil {
		responderError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar DELETE /v1/insumos/:id
func (h *InsumosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if svcErr := h.svc.Eliminar(c.Request.Context(), id); svcErr != nil {
		responderError(c, svcErr)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// AjustarStock POST /v1/insumos/:id/stock
//
// The quantity must be a whole number: a fractional delta is a validation
// error (422), not a malformed request.
func (h *InsumosHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}

	var req dto.AjustarStockInsumoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{
			"quantity": "debe ser un número entero",
		}))
		return
	}

	// Un delta cero es válido: responde la cantidad sin cambios.
	resp, svcErr := h.svc.AjustarStock(c.Request.Context(), id, req.Cantidad)
	if svcErr != nil {
		responderError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}
