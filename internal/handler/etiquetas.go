package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luisfd3v/ajusta-preco/internal/apierror"
	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/service"
)

// EtiquetasHandler serve a geração do PDF de etiquetas de preço.
type EtiquetasHandler struct {
	svc service.EtiquetaService
}

func NewEtiquetasHandler(svc service.EtiquetaService) *EtiquetasHandler {
	return &EtiquetasHandler{svc: svc}
}

func (h *EtiquetasHandler) Gerar(c *gin.Context) {
	var req dto.GerarEtiquetasRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Gerar(c.Request.Context(), req)
	switch {
	case errors.Is(err, service.ErrValidacao):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case err != nil:
		c.Error(err)
	default:
		c.JSON(http.StatusCreated, resp)
	}
}
