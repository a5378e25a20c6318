package repository

import (
	"context"

	"gorm.io/gorm"
)

// EmpresaRepository lê os dados cadastrais da empresa no ERP.
type EmpresaRepository interface {
	BuscarNome(ctx context.Context) (string, error)
	// BuscarRegimeTributario retorna o código do regime (3 = Regime Normal;
	// demais códigos = Simples Nacional).
	BuscarRegimeTributario(ctx context.Context) (int, error)
}

type empresaRepo struct{ db *gorm.DB }

func NewEmpresaRepository(db *gorm.DB) EmpresaRepository { return &empresaRepo{db: db} }

func (r *empresaRepo) BuscarNome(ctx context.Context) (string, error) {
	var nome string
	err := r.db.WithContext(ctx).
		Raw(`SELECT TRIM(COALESCE(bc_emp, '')) FROM aemprege LIMIT 1`).
		Scan(&nome).Error
	if err != nil {
		return "", err
	}
	return nome, nil
}

func (r *empresaRepo) BuscarRegimeTributario(ctx context.Context) (int, error) {
	var regime int
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(codrgt_emp, 0) FROM aemprege LIMIT 1`).
		Scan(&regime).Error
	if err != nil {
		return 0, err
	}
	return regime, nil
}
