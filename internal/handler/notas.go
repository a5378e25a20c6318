package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luisfd3v/ajusta-preco/internal/apierror"
	"github.com/luisfd3v/ajusta-preco/internal/service"
)

// NotasHandler serve a busca de notas de fornecedor e a carga dos itens.
type NotasHandler struct {
	svc    service.NotaService
	limite int
}

func NewNotasHandler(svc service.NotaService, limite int) *NotasHandler {
	return &NotasHandler{svc: svc, limite: limite}
}

// Listar devolve as notas mais recentes com o flag de processada do ledger.
// O parâmetro limite é opcional e nunca ultrapassa o teto configurado.
func (h *NotasHandler) Listar(c *gin.Context) {
	limite := h.limite
	if raw := c.Query("limite"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("Parâmetro limite inválido"))
			return
		}
		if n < limite {
			limite = n
		}
	}

	resp, err := h.svc.Listar(c.Request.Context(), limite)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarItens carrega as linhas da nota identificada por numero, serie e
// fornecedor, prontas para edição de preço.
func (h *NotasHandler) BuscarItens(c *gin.Context) {
	numero := c.Query("numero")
	serie := c.Query("serie")
	fornecedor := c.Query("fornecedor")

	resp, err := h.svc.BuscarItens(c.Request.Context(), numero, serie, fornecedor)
	switch {
	case errors.Is(err, service.ErrValidacao):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNotaSemItens):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case err != nil:
		c.Error(err)
	default:
		c.JSON(http.StatusOK, resp)
	}
}
