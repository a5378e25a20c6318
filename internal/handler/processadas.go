package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/ledger"
)

// ProcessadasHandler expõe o ledger de notas processadas: listagem para
// conferência e purga por retenção.
type ProcessadasHandler struct {
	notas *ledger.Ledger
}

func NewProcessadasHandler(notas *ledger.Ledger) *ProcessadasHandler {
	return &ProcessadasHandler{notas: notas}
}

func (h *ProcessadasHandler) Listar(c *gin.Context) {
	registros := h.notas.ListarTodas()
	c.JSON(http.StatusOK, gin.H{
		"data":  registros,
		"total": len(registros),
	})
}

// Purgar remove do ledger os registros mais antigos que a janela de retenção.
func (h *ProcessadasHandler) Purgar(c *gin.Context) {
	var req dto.PurgarProcessadasRequest
	if !bindAndValidate(c, &req) {
		return
	}

	removidas, err := h.notas.LimparAntigas(req.Dias)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.PurgarProcessadasResponse{Removidas: removidas})
}
