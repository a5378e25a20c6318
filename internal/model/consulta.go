package model

import "github.com/shopspring/decimal"

// ConsultaPreco é o resultado da consulta de preço por código de barras.
type ConsultaPreco struct {
	Codigo        string
	Descricao     string
	PrecoVendaMin decimal.Decimal
	PrecoVendaMax decimal.Decimal
}
