package handler

import (
	"net/http"
	"strconv"

	"tiendaonline/internal/service"

	"github.com/gin-gonic/gin"
)

type EstadisticasHandler struct{ svc *service.EstadisticasService }

func NewEstadisticasHandler(svc *service.EstadisticasService) *EstadisticasHandler {
	return &EstadisticasHandler{svc: svc}
}

// Resumen GET /v1/estadisticas?start_date=&end_date=&days=
func (h *EstadisticasHandler) Resumen(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	resp, err := h.svc.Resumen(c.Request.Context(), c.Query("start_date"), c.Query("end_date"), days)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard GET /v1/estadisticas/dashboard
func (h *EstadisticasHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Grafico GET /v1/estadisticas/grafico?type=status|platform|monthly
func (h *EstadisticasHandler) Grafico(c *gin.Context) {
	resp, err := h.svc.Grafico(c.Request.Context(), c.DefaultQuery("type", "status"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Inventario GET /v1/estadisticas/inventario
func (h *EstadisticasHandler) Inventario(c *gin.Context) {
	resp, err := h.svc.Inventario(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
