package handler

import (
	"net/http"
	"strconv"

	"tiendaonline/internal/apierror"
	"tiendaonline/internal/dto"
	"tiendaonline/internal/filtro"
	"tiendaonline/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct{ svc *service.PedidoService }

func NewPedidosHandler(svc *service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Solicitar POST /v1/pedidos/solicitud
//
// Public endpoint: creates the pedido in estado solicitado and returns the
// tracking token. Rate limited at the router.
func (h *PedidosHandler) Solicitar(c *gin.Context) {
	var req dto.SolicitudPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Solicitar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Seguimiento GET /v1/pedidos/seguimiento/:token
func (h *PedidosHandler) Seguimiento(c *gin.Context) {
	resp, err := h.svc.Seguimiento(c.Request.Context(), c.Param("token"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar GET /v1/pedidos
func (h *PedidosHandler) Listar(c *gin.Context) {
	var params filtro.Parametros
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros inválidos: "+err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), params)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorFecha GET /v1/pedidos/fecha/:year, /:year/:month, /:year/:month/:day
func (h *PedidosHandler) ListarPorFecha(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Año inválido"))
		return
	}
	month, day := 0, 0
	if m := c.Param("month"); m != "" {
		if month, err = strconv.Atoi(m); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Mes inválido"))
			return
		}
	}
	if d := c.Param("day"); d != "" {
		if day, err = strconv.Atoi(d); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Día inválido"))
			return
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, svcErr := h.svc.ListarPorFecha(c.Request.Context(), year, month, day, page, limit)
	if svcErr != nil {
		responderError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener GET /v1/pedidos/:id
func (h *PedidosHandler) Obtener(c *gin.Context) {
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

// Actualizar PUT /v1/pedidos/:id
func (h *PedidosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarPedidoRequest
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

// CambiarEstado POST /v1/pedidos/:id/estado
func (h *PedidosHandler) CambiarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.CambiarEstado(c.Request.Context(), id, req.Estado)
	if svcErr != nil {
		responderError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstadoPago POST /v1/pedidos/:id/pago
func (h *PedidosHandler) CambiarEstadoPago(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CambiarEstadoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.CambiarEstadoPago(c.Request.Context(), id, req.EstadoPago)
	if svcErr != nil {
		responderError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarImagen POST /v1/pedidos/:id/imagenes
func (h *PedidosHandler) AgregarImagen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AgregarImagenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.AgregarImagen(c.Request.Context(), id, req.URL)
	if svcErr != nil {
		responderError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
