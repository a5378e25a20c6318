package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/luisfd3v/ajusta-preco/internal/apierror"
	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/repository"
)

const precoCacheTTL = 4 * time.Hour

// ConsultaPrecosHandler serve a consulta de preço por código de barras,
// usada pelo leitor de balcão. Somente leitura, sem efeitos colaterais.
type ConsultaPrecosHandler struct {
	repo repository.ProdutoRepository
	rdb  *redis.Client
}

func NewConsultaPrecosHandler(repo repository.ProdutoRepository, rdb *redis.Client) *ConsultaPrecosHandler {
	return &ConsultaPrecosHandler{repo: repo, rdb: rdb}
}

func (h *ConsultaPrecosHandler) GetPrecoPorCodigoBarras(c *gin.Context) {
	barras := c.Param("barcode")
	ctx := c.Request.Context()
	cacheKey := "preco:" + barras

	// 1. Tenta o cache primeiro
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecoResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — consulta o ERP
	consulta, err := h.repo.BuscarPrecoPorCodigoBarras(ctx, barras)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Produto não encontrado"))
		return
	}

	resp := dto.ConsultaPrecoResponse{
		Codigo:        consulta.Codigo,
		Descricao:     consulta.Descricao,
		PrecoVendaMin: consulta.PrecoVendaMin,
		PrecoVendaMax: consulta.PrecoVendaMax,
	}

	// 3. Popula o cache — melhor esforço, erro ignorado
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precoCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
