package handler

import (
	"errors"
	"net/http"
	"reflect"

	"tiendaonline/internal/apierror"
	"tiendaonline/internal/filtro"
	"tiendaonline/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// responderError maps service errors onto the HTTP surface. Anything not
// recognized is pushed to the error-handler middleware as a 500.
func responderError(c *gin.Context, err error) {
	var ev *filtro.ErrorValidacion
	switch {
	case errors.As(err, &ev):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{ev.Campo: ev.Mensaje}))
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New("Recurso no encontrado"))
	case errors.Is(err, service.ErrConflictoStock):
		c.JSON(http.StatusConflict, apierror.New("Stock insuficiente para el ajuste"))
	case errors.Is(err, service.ErrCategoriaEnUso):
		c.JSON(http.StatusConflict, apierror.New("La categoria tiene productos asociados"))
	default:
		_ = c.Error(err)
	}
}
