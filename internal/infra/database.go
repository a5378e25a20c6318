package infra

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase abre a conexão com o banco do ERP. O schema pertence ao ERP e
// nunca é migrado daqui — este serviço só lê linhas de nota e grava preços.
//
// O pool fica limitado a uma conexão: a ferramenta é de operador único e o
// contrato do coordenador exige no máximo uma transação em voo por vez.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return db, nil
}
