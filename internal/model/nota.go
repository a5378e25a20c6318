package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nota é o cabeçalho de uma nota fiscal de entrada listado na busca de notas.
// Status e Emitente já vêm traduzidos do código para o rótulo de exibição.
type Nota struct {
	Emissao          time.Time
	Numero           string
	Serie            string
	CodigoFornecedor string
	TipoEntrada      string
	CNPJ             string
	Fornecedor       string
	Entrada          time.Time
	Valor            decimal.Decimal
	Status           string
	Emitente         string
	ChaveNFE         string

	// Processada vem do ledger de notas processadas, nunca do ERP.
	Processada bool
}
