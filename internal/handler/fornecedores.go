package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luisfd3v/ajusta-preco/internal/apierror"
	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/repository"
)

// FornecedoresHandler serve a consulta do cadastro de fornecedor usada para
// confirmar o emitente da nota antes da edição.
type FornecedoresHandler struct {
	repo repository.FornecedorRepository
}

func NewFornecedoresHandler(repo repository.FornecedorRepository) *FornecedoresHandler {
	return &FornecedoresHandler{repo: repo}
}

func (h *FornecedoresHandler) BuscarPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")

	fornecedor, err := h.repo.BuscarPorCodigo(c.Request.Context(), codigo)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Fornecedor não encontrado"))
	case err != nil:
		c.Error(err)
	default:
		c.JSON(http.StatusOK, dto.FornecedorResponse{
			Codigo:        fornecedor.Codigo,
			Nome:          fornecedor.Nome,
			CNPJ:          fornecedor.CNPJ,
			Estado:        fornecedor.Estado,
			Classificacao: fornecedor.Classificacao,
		})
	}
}
