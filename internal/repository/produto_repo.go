package repository

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/model"
)

// ProdutoRepository defines the data access contract for invoice line items
// and price writes against the ERP schema. Services depend on this interface,
// not on the concrete GORM implementation, enabling unit testing via stubs.
type ProdutoRepository interface {
	// BuscarPorNota retorna as linhas da nota na ordem da sequência, com o
	// custo de reposição já derivado pela fórmula de rateio do tipo de cálculo.
	BuscarPorNota(ctx context.Context, numeroNota, serie, codigoFornecedor string) ([]model.Produto, error)

	// BuscarCodigoBarras resolve o código de barras impresso de um produto.
	// Produto sem código de barras cadastrado retorna string vazia, sem erro.
	BuscarCodigoBarras(ctx context.Context, codigoProduto string) (string, error)

	// BuscarPrecoPorCodigoBarras atende a consulta de preço do leitor.
	BuscarPrecoPorCodigoBarras(ctx context.Context, codigoBarras string) (*model.ConsultaPreco, error)

	// GravarPrecos aplica o lote inteiro em uma única transação: para cada item,
	// preço mínimo e máximo recebem o preço novo e uma linha de auditoria entra
	// na tabela de variação. Qualquer falha desfaz o lote completo.
	GravarPrecos(ctx context.Context, itens []dto.ItemEditado, usuario string) (int, error)

	// DB exposes the underlying *gorm.DB for the health check.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

// zfill prefixa zeros como o ERP armazena códigos de largura fixa.
func zfill(s string, largura int) string {
	s = strings.TrimSpace(s)
	if len(s) >= largura {
		return s
	}
	return strings.Repeat("0", largura-len(s)) + s
}

type produtoRow struct {
	Sequencia      string          `gorm:"column:sequencia"`
	Codigo         string          `gorm:"column:codigo"`
	Descricao      string          `gorm:"column:descricao"`
	CustoTotal     decimal.Decimal `gorm:"column:custo_total"`
	TipoCalculo    int             `gorm:"column:tipo_calculo"`
	ValorICMS      decimal.Decimal `gorm:"column:valor_icms"`
	CustoReposicao decimal.Decimal `gorm:"column:custo_reposicao"`
	PrecoMinimo    decimal.Decimal `gorm:"column:preco_minimo"`
	PrecoMaximo    decimal.Decimal `gorm:"column:preco_maximo"`
}

// O custo de reposição é derivado na própria consulta, por tipo de cálculo:
// tipo 2 rateia o ICMS junto, tipo 3 usa só o valor da operação; quantidade
// zero derruba o custo para 0 em vez de dividir por zero.
const queryProdutosPorNota = `
	SELECT
		COALESCE(a.ah_pen, '')                    AS sequencia,
		COALESCE(a.ae_pen, '')                    AS codigo,
		TRIM(COALESCE(cp.ab_ite, ''))             AS descricao,
		COALESCE(a.aj_pen, 0)                     AS custo_total,
		COALESCE(a.ag_pen, 0)                     AS tipo_calculo,
		COALESCE(a.ar_pen, 0)                     AS valor_icms,
		CASE
			WHEN a.ag_pen = 2 AND a.ai_pen > 0 THEN (a.ao_pen + COALESCE(a.ar_pen, 0)) / a.ai_pen
			WHEN a.ag_pen = 3 AND a.ai_pen > 0 THEN a.ao_pen / a.ai_pen
			WHEN a.ai_pen > 0                  THEN (a.ao_pen + COALESCE(a.ar_pen, 0)) / a.ai_pen
			ELSE 0
		END                                       AS custo_reposicao,
		COALESCE(pa.precovendamin, 0)             AS preco_minimo,
		COALESCE(pa.precovendamax, 0)             AS preco_maximo
	FROM apecence a
	LEFT JOIN ce_produto cp             ON a.ae_pen = cp.au_ite
	LEFT JOIN ce_produtos_adicionais pa ON a.ae_pen = pa.codreduzido
	WHERE a.ab_pen = ? AND a.ac_pen = ? AND a.aa_pen = ?
	ORDER BY a.ah_pen`

func (r *produtoRepo) BuscarPorNota(ctx context.Context, numeroNota, serie, codigoFornecedor string) ([]model.Produto, error) {
	nota := zfill(numeroNota, 6)
	fornecedor := ""
	if codigoFornecedor != "" {
		fornecedor = zfill(codigoFornecedor, 5)
	}

	var rows []produtoRow
	if err := r.db.WithContext(ctx).
		Raw(queryProdutosPorNota, nota, serie, fornecedor).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	produtos := make([]model.Produto, 0, len(rows))
	for _, row := range rows {
		p := model.NovoProduto(row.Codigo, row.Descricao, row.CustoReposicao, row.PrecoMinimo, row.PrecoMaximo)
		p.Sequencia = row.Sequencia
		p.CustoTotal = row.CustoTotal
		p.TipoCalculo = row.TipoCalculo
		p.ValorICMS = row.ValorICMS
		produtos = append(produtos, *p)
	}
	return produtos, nil
}

func (r *produtoRepo) BuscarCodigoBarras(ctx context.Context, codigoProduto string) (string, error) {
	var row struct {
		CodigoBarras string `gorm:"column:codigo_barras"`
		Codigo       string `gorm:"column:codigo"`
	}
	res := r.db.WithContext(ctx).
		Raw(`SELECT TRIM(COALESCE(bo_ite, '')) AS codigo_barras, TRIM(au_ite) AS codigo
		     FROM ce_produto WHERE au_ite = ?`, codigoProduto).
		Scan(&row)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", nil
	}
	if row.CodigoBarras != "" {
		return row.CodigoBarras, nil
	}
	return row.Codigo, nil
}

func (r *produtoRepo) BuscarPrecoPorCodigoBarras(ctx context.Context, codigoBarras string) (*model.ConsultaPreco, error) {
	var row struct {
		Codigo        string          `gorm:"column:codigo"`
		Descricao     string          `gorm:"column:descricao"`
		PrecoVendaMin decimal.Decimal `gorm:"column:preco_venda_min"`
		PrecoVendaMax decimal.Decimal `gorm:"column:preco_venda_max"`
	}
	res := r.db.WithContext(ctx).
		Raw(`SELECT
		         TRIM(cp.au_ite)               AS codigo,
		         TRIM(COALESCE(cp.ab_ite, '')) AS descricao,
		         COALESCE(pa.precovendamin, 0) AS preco_venda_min,
		         COALESCE(pa.precovendamax, 0) AS preco_venda_max
		     FROM ce_produto cp
		     LEFT JOIN ce_produtos_adicionais pa ON cp.au_ite = pa.codreduzido
		     WHERE TRIM(COALESCE(cp.bo_ite, '')) = ? OR cp.au_ite = ?
		     LIMIT 1`, codigoBarras, codigoBarras).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.ConsultaPreco{
		Codigo:        row.Codigo,
		Descricao:     row.Descricao,
		PrecoVendaMin: row.PrecoVendaMin,
		PrecoVendaMax: row.PrecoVendaMax,
	}, nil
}

const queryAtualizarPreco = `
	UPDATE ce_produtos_adicionais
	SET precovendamin = ?, precovendamax = ?
	WHERE codreduzido = ?`

// A linha de auditoria replica o lançamento manual do ERP: preço novo nos dois
// limites, origem '0', empresa '02', operação ALTERACAO.
const queryVariacaoPreco = `
	INSERT INTO ge_variacao_precosvenda (
		data_vpv, hora_vpv, usuario_vpv, produto_vpv,
		vlr_minimo_vpv, vlr_maximo_vpv, vlr_promocional_vpv, vlr_tabelado_vpv,
		origempreco_vpv, codigoorigem_vpv, empresa_vpv, operacao_vpv
	) VALUES (CURRENT_DATE, CURRENT_TIME, ?, ?, ?, ?, 0, 0, '0', ?, '02', 'ALTERACAO')`

func (r *produtoRepo) GravarPrecos(ctx context.Context, itens []dto.ItemEditado, usuario string) (int, error) {
	atualizados := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range itens {
			if err := tx.Exec(queryAtualizarPreco, item.PrecoNovo, item.PrecoNovo, item.Codigo).Error; err != nil {
				return err
			}
			if err := tx.Exec(queryVariacaoPreco, usuario, item.Codigo, item.PrecoNovo, item.PrecoNovo, item.Codigo).Error; err != nil {
				return err
			}
			atualizados++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return atualizados, nil
}

func (r *produtoRepo) DB() *gorm.DB { return r.db }
