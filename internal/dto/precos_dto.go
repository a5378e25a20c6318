package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemEditado é um item da nota com o preço de venda novo digitado.
type ItemEditado struct {
	Codigo    string          `json:"codigo"     validate:"required"`
	PrecoNovo decimal.Decimal `json:"preco_novo" validate:"required,gt=0"`
}

type GravarPrecosRequest struct {
	CodigoFornecedor string        `json:"codigo_fornecedor" validate:"required"`
	NumeroNota       string        `json:"numero_nota"       validate:"required"`
	Serie            string        `json:"serie"`
	Itens            []ItemEditado `json:"itens"             validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// GravarPrecosResponse relata o resultado real da gravação: os preços
// confirmados no ERP e, separadamente, se o registro no ledger funcionou.
// Sucesso parcial (preços gravados, ledger falhou) é reportado, nunca desfeito.
type GravarPrecosResponse struct {
	Atualizados    int    `json:"atualizados"`
	NotaRegistrada bool   `json:"nota_registrada"`
	Aviso          string `json:"aviso,omitempty"`
}
