package dto

import "github.com/shopspring/decimal"

// EtiquetaItem é um produto com preço já ajustado, pronto para impressão.
type EtiquetaItem struct {
	Codigo    string          `json:"codigo"    validate:"required"`
	Descricao string          `json:"descricao" validate:"required"`
	Preco     decimal.Decimal `json:"preco"     validate:"required,gt=0"`
}

type GerarEtiquetasRequest struct {
	Itens []EtiquetaItem `json:"itens" validate:"required,min=1,dive"`
}

type GerarEtiquetasResponse struct {
	Arquivo   string `json:"arquivo"`
	Etiquetas int    `json:"etiquetas"`
}
