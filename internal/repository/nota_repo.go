package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/luisfd3v/ajusta-preco/internal/model"
)

// NotaRepository lista cabeçalhos de notas de entrada e verifica existência.
type NotaRepository interface {
	BuscarTodas(ctx context.Context, limite int) ([]model.Nota, error)
	Existe(ctx context.Context, numeroNota string) (bool, error)
}

type notaRepo struct{ db *gorm.DB }

func NewNotaRepository(db *gorm.DB) NotaRepository { return &notaRepo{db: db} }

type notaRow struct {
	Emissao          time.Time       `gorm:"column:emissao"`
	Numero           string          `gorm:"column:numero"`
	Serie            string          `gorm:"column:serie"`
	CodigoFornecedor string          `gorm:"column:codigo_fornecedor"`
	TipoEntrada      string          `gorm:"column:tipo_entrada"`
	CNPJ             string          `gorm:"column:cnpj"`
	Fornecedor       string          `gorm:"column:fornecedor"`
	Entrada          time.Time       `gorm:"column:entrada"`
	Valor            decimal.Decimal `gorm:"column:valor"`
	Status           string          `gorm:"column:status"`
	Emitente         string          `gorm:"column:emitente"`
	ChaveNFE         string          `gorm:"column:chave_nfe"`
}

// O status numérico do ERP vira rótulo de exibição já na consulta; o tipo de
// entrada fica restrito a '01' (compras de mercadoria).
const queryNotas = `
	SELECT
		n.ad_nen                        AS emissao,
		TRIM(n.ab_nen)                  AS numero,
		TRIM(n.ac_nen)                  AS serie,
		TRIM(n.aa_nen)                  AS codigo_fornecedor,
		TRIM(COALESCE(t.ab_tip, ''))    AS tipo_entrada,
		TRIM(COALESCE(f.cgccpf_for,'')) AS cnpj,
		TRIM(COALESCE(f.nome_for, ''))  AS fornecedor,
		n.ae_nen                        AS entrada,
		COALESCE(n.af_nen, 0)           AS valor,
		COALESCE(CASE n.be_nen
			WHEN '1' THEN 'Nota Digitada'
			WHEN '2' THEN 'Nota Com Erro de Cálculo'
			WHEN '3' THEN 'Nota Cálculo Ok'
			WHEN '4' THEN 'Nota Impressa Ok'
			WHEN '5' THEN 'Nota Com Atualização Iniciada'
			WHEN '6' THEN 'Nota Atualizada Ok'
			WHEN '7' THEN 'Nota Emitida Pelo Sistema'
			WHEN '9' THEN 'Nota Cancelada'
		END, '')                        AS status,
		COALESCE(CASE n.br_nen
			WHEN 'P' THEN 'Próprio'
			WHEN 'T' THEN 'Terceiros'
		END, '')                        AS emitente,
		TRIM(COALESCE(n.chvnfe_nen,'')) AS chave_nfe
	FROM anotence n
	LEFT JOIN afornege f  ON f.codigo_for = n.aa_nen
	INNER JOIN atipnfce t ON t.aa_tip = n.bd_nen
	WHERE t.aa_tip = '01'
	ORDER BY n.ad_nen DESC, n.ab_nen DESC
	LIMIT ?`

func (r *notaRepo) BuscarTodas(ctx context.Context, limite int) ([]model.Nota, error) {
	if limite < 1 {
		limite = 1000
	}

	var rows []notaRow
	if err := r.db.WithContext(ctx).Raw(queryNotas, limite).Scan(&rows).Error; err != nil {
		return nil, err
	}

	notas := make([]model.Nota, 0, len(rows))
	for _, row := range rows {
		notas = append(notas, model.Nota{
			Emissao:          row.Emissao,
			Numero:           row.Numero,
			Serie:            row.Serie,
			CodigoFornecedor: row.CodigoFornecedor,
			TipoEntrada:      row.TipoEntrada,
			CNPJ:             row.CNPJ,
			Fornecedor:       row.Fornecedor,
			Entrada:          row.Entrada,
			Valor:            row.Valor,
			Status:           row.Status,
			Emitente:         row.Emitente,
			ChaveNFE:         row.ChaveNFE,
		})
	}
	return notas, nil
}

func (r *notaRepo) Existe(ctx context.Context, numeroNota string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM apecence WHERE ab_pen = ?`, zfill(numeroNota, 6)).
		Scan(&total).Error
	if err != nil {
		return false, err
	}
	return total > 0, nil
}
