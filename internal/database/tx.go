package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Tx interface para transações
type Tx interface {
	Commit() error
	Rollback() error
}

// GormTx implementa a interface Tx sobre uma transação do GORM
type GormTx struct {
	db       *gorm.DB
	finished bool
}

// Begin inicia uma nova transação
func Begin(ctx context.Context, db *gorm.DB) (*GormTx, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &GormTx{db: tx}, nil
}

func (t *GormTx) Commit() error {
	if t.finished {
		return errors.New("transaction already finished")
	}
	t.finished = true
	return t.db.Commit().Error
}

// Rollback desfaz a transação. Depois de um Commit não faz nada, então pode
// ser usado com defer logo após o Begin.
func (t *GormTx) Rollback() error {
	if t.finished {
		return nil
	}
	t.finished = true
	return t.db.Rollback().Error
}

// Conn devolve o handle a ser usado pelo repositório: o da transação quando
// tx não é nil, ou db com o contexto da chamada.
func Conn(ctx context.Context, db *gorm.DB, tx Tx) *gorm.DB {
	if tx == nil {
		return db.WithContext(ctx)
	}
	return tx.(*GormTx).db.WithContext(ctx)
}
