package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/luisfd3v/ajusta-preco/internal/model"
)

// FornecedorRepository consulta o cadastro de fornecedores.
type FornecedorRepository interface {
	BuscarPorCodigo(ctx context.Context, codigo string) (*model.Fornecedor, error)
}

type fornecedorRepo struct{ db *gorm.DB }

func NewFornecedorRepository(db *gorm.DB) FornecedorRepository { return &fornecedorRepo{db: db} }

func (r *fornecedorRepo) BuscarPorCodigo(ctx context.Context, codigo string) (*model.Fornecedor, error) {
	var row struct {
		Codigo        string `gorm:"column:codigo"`
		Nome          string `gorm:"column:nome"`
		CNPJ          string `gorm:"column:cnpj"`
		Estado        string `gorm:"column:estado"`
		Classificacao string `gorm:"column:classificacao"`
	}
	res := r.db.WithContext(ctx).
		Raw(`SELECT
		         TRIM(codigo_for)               AS codigo,
		         TRIM(COALESCE(nome_for, ''))   AS nome,
		         TRIM(COALESCE(cgccpf_for, '')) AS cnpj,
		         TRIM(COALESCE(estado_for, '')) AS estado,
		         TRIM(COALESCE(classi_for, '')) AS classificacao
		     FROM afornege
		     WHERE codigo_for = ?`, zfill(codigo, 5)).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Fornecedor{
		Codigo:        row.Codigo,
		Nome:          row.Nome,
		CNPJ:          row.CNPJ,
		Estado:        row.Estado,
		Classificacao: row.Classificacao,
	}, nil
}
