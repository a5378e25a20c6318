package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/repository"
)

// EmpresaHandler serve os dados da empresa corrente: nome para o cabeçalho
// da tela e regime tributário para a trava fiscal do lado do cliente.
type EmpresaHandler struct {
	repo repository.EmpresaRepository
}

func NewEmpresaHandler(repo repository.EmpresaRepository) *EmpresaHandler {
	return &EmpresaHandler{repo: repo}
}

func (h *EmpresaHandler) Buscar(c *gin.Context) {
	ctx := c.Request.Context()

	nome, err := h.repo.BuscarNome(ctx)
	if err != nil {
		c.Error(err)
		return
	}

	// Regime indisponível não impede o uso da tela; a trava fiscal definitiva
	// é reavaliada na gravação.
	regime, err := h.repo.BuscarRegimeTributario(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("regime tributário indisponível")
		regime = 0
	}

	c.JSON(http.StatusOK, dto.EmpresaResponse{Nome: nome, RegimeTributario: regime})
}
