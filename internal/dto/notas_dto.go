package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

// NotaListItem é um cabeçalho de nota na listagem de busca, com o rótulo de
// status já traduzido e o flag informativo do ledger.
type NotaListItem struct {
	Emissao          string          `json:"emissao"`
	Numero           string          `json:"numero"`
	Serie            string          `json:"serie"`
	CodigoFornecedor string          `json:"codigo_fornecedor"`
	TipoEntrada      string          `json:"tipo_entrada"`
	CNPJ             string          `json:"cnpj"`
	Fornecedor       string          `json:"fornecedor"`
	Entrada          string          `json:"entrada"`
	Valor            decimal.Decimal `json:"valor"`
	Status           string          `json:"status"`
	Emitente         string          `json:"emitente"`
	ChaveNFE         string          `json:"chave_nfe"`
	Processada       bool            `json:"processada"`
}

type NotaListResponse struct {
	Data  []NotaListItem `json:"data"`
	Total int            `json:"total"`
}

// ProdutoItem é uma linha da nota pronta para edição de preço.
type ProdutoItem struct {
	Sequencia        string          `json:"sequencia"`
	Codigo           string          `json:"codigo"`
	Descricao        string          `json:"descricao"`
	CustoReposicao   decimal.Decimal `json:"custo_reposicao"`
	CustoTotal       decimal.Decimal `json:"custo_total"`
	PrecoVendaMin    decimal.Decimal `json:"preco_venda_min"`
	PrecoVendaMax    decimal.Decimal `json:"preco_venda_max"`
	PrecoVendaNovo   decimal.Decimal `json:"preco_venda_novo"`
	MargemVenda      decimal.Decimal `json:"margem_venda"`
	PorcentagemCusto decimal.Decimal `json:"porcentagem_custo"`
	TipoCalculo      int             `json:"tipo_calculo"`
	ValorICMS        decimal.Decimal `json:"valor_icms"`
}

// ItensNotaResponse devolve as linhas da nota mais os dois flags informativos:
// Processada (do ledger, nunca bloqueante) e AlertaICMS (aviso de lançamento
// incorreto, só relevante no Regime Normal).
type ItensNotaResponse struct {
	Produtos   []ProdutoItem `json:"produtos"`
	Processada bool          `json:"processada"`
	AlertaICMS bool          `json:"alerta_icms"`
}

type FornecedorResponse struct {
	Codigo        string `json:"codigo"`
	Nome          string `json:"nome"`
	CNPJ          string `json:"cnpj"`
	Estado        string `json:"estado"`
	Classificacao string `json:"classificacao"`
}

type EmpresaResponse struct {
	Nome             string `json:"nome"`
	RegimeTributario int    `json:"regime_tributario"`
}
