package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luisfd3v/ajusta-preco/internal/apierror"
	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/service"
)

// PrecosHandler serve a gravação do lote de preços editados.
type PrecosHandler struct {
	svc service.PrecoService
}

func NewPrecosHandler(svc service.PrecoService) *PrecosHandler {
	return &PrecosHandler{svc: svc}
}

// Gravar confirma o lote de preços da nota no ERP e registra a nota no ledger.
// A trava fiscal devolve 422: o lote é bem formado, mas a nota não pode ser
// gravada enquanto a entrada não for corrigida.
func (h *PrecosHandler) Gravar(c *gin.Context) {
	var req dto.GravarPrecosRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Gravar(c.Request.Context(), req)
	switch {
	case errors.Is(err, service.ErrValidacao):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNotaSemItens):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrBloqueioFiscal):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case err != nil:
		c.Error(err)
	default:
		c.JSON(http.StatusOK, resp)
	}
}
