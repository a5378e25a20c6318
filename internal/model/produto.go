package model

import (
	"github.com/shopspring/decimal"
)

var cem = decimal.NewFromInt(100)

// Produto representa um item de nota fiscal de entrada com os valores de custo
// carregados do ERP e o trio derivado (preço novo, margem de venda, porcentagem
// sobre o custo). O trio é mantido consistente exclusivamente pelas três
// operações de recálculo abaixo — nunca por atribuição direta de campo.
type Produto struct {
	Sequencia string
	Codigo    string
	Descricao string

	// Bases de custo — imutáveis após a carga da nota.
	CustoReposicao decimal.Decimal
	CustoTotal     decimal.Decimal

	// Preços de venda vigentes no ERP no momento da carga.
	PrecoVendaMin decimal.Decimal
	PrecoVendaMax decimal.Decimal

	// Trio derivado. PrecoVendaNovo inicia em PrecoVendaMin.
	PrecoVendaNovo   decimal.Decimal
	MargemVenda      decimal.Decimal
	PorcentagemCusto decimal.Decimal

	// TipoCalculo (AG_PEN) indica qual fórmula de rateio de impostos produziu o
	// custo de reposição; ValorICMS (AR_PEN) é usado apenas na validação fiscal.
	TipoCalculo int
	ValorICMS   decimal.Decimal

	// UsarCustoTotal alterna a base de custo das fórmulas. A troca NÃO recalcula
	// o preço retroativamente: o chamador precisa disparar um novo recálculo.
	UsarCustoTotal bool
}

// NovoProduto monta um Produto a partir de uma linha da nota, com o preço novo
// inicializado no preço mínimo vigente.
func NovoProduto(codigo, descricao string, custoReposicao, precoMin, precoMax decimal.Decimal) *Produto {
	return &Produto{
		Codigo:         codigo,
		Descricao:      descricao,
		CustoReposicao: custoReposicao,
		PrecoVendaMin:  precoMin,
		PrecoVendaMax:  precoMax,
		PrecoVendaNovo: precoMin,
	}
}

// CustoBase retorna a base de custo selecionada para as fórmulas.
func (p *Produto) CustoBase() decimal.Decimal {
	if p.UsarCustoTotal {
		return p.CustoTotal
	}
	return p.CustoReposicao
}

// CalcularPrecoPorMargemVenda ancora a edição na margem: preço = base / (1 - m/100).
// Com base ≤ 0 (ou m = 100, que degeneraria em divisão por zero) o preço fica
// como está — sem erro.
func (p *Produto) CalcularPrecoPorMargemVenda(margem decimal.Decimal) decimal.Decimal {
	p.MargemVenda = margem
	base := p.CustoBase()
	if base.IsPositive() && !margem.Equal(cem) {
		p.PrecoVendaNovo = base.Div(decimal.NewFromInt(1).Sub(margem.Div(cem)))
		p.PorcentagemCusto = p.PrecoVendaNovo.Sub(base).Div(base).Mul(cem)
	}
	return p.PrecoVendaNovo
}

// CalcularPrecoPorPorcentagemCusto ancora a edição no acréscimo sobre o custo:
// preço = base * (1 + pct/100).
func (p *Produto) CalcularPrecoPorPorcentagemCusto(pct decimal.Decimal) decimal.Decimal {
	p.PorcentagemCusto = pct
	base := p.CustoBase()
	if base.IsPositive() {
		p.PrecoVendaNovo = base.Mul(decimal.NewFromInt(1).Add(pct.Div(cem)))
		if !p.PrecoVendaNovo.IsZero() {
			p.MargemVenda = decimal.NewFromInt(1).Sub(base.Div(p.PrecoVendaNovo)).Mul(cem)
		}
	}
	return p.PrecoVendaNovo
}

// DefinirPrecoVendaNovo ancora a edição no preço digitado e deriva margem e
// porcentagem. Com base ou preço não positivos, ambos os percentuais zeram.
func (p *Produto) DefinirPrecoVendaNovo(preco decimal.Decimal) {
	p.PrecoVendaNovo = preco
	base := p.CustoBase()
	if base.IsPositive() && preco.IsPositive() {
		p.MargemVenda = decimal.NewFromInt(1).Sub(base.Div(preco)).Mul(cem)
		p.PorcentagemCusto = preco.Sub(base).Div(base).Mul(cem)
	} else {
		p.MargemVenda = decimal.Zero
		p.PorcentagemCusto = decimal.Zero
	}
}
