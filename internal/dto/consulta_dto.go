package dto

import "github.com/shopspring/decimal"

// ConsultaPrecoResponse é a resposta da consulta de preço por código de barras.
type ConsultaPrecoResponse struct {
	Codigo        string          `json:"codigo"`
	Descricao     string          `json:"descricao"`
	PrecoVendaMin decimal.Decimal `json:"preco_venda_min"`
	PrecoVendaMax decimal.Decimal `json:"preco_venda_max"`
}

// PurgarProcessadasRequest dispara a limpeza de retenção do ledger.
type PurgarProcessadasRequest struct {
	Dias int `json:"dias" validate:"required,gte=1"`
}

type PurgarProcessadasResponse struct {
	Removidas int `json:"removidas"`
}
