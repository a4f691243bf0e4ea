package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Keavors/MyFanBoard/internal/domain/repository"
)

// TxManager реализует repository.TxManager поверх gorm-транзакций.
// Внутри fn все репозитории работают через один *gorm.DB транзакции,
// поэтому изменения коммитятся или откатываются как единое целое.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager создает новый менеджер транзакций
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Do выполняет fn в рамках одной транзакции
func (m *TxManager) Do(ctx context.Context, fn func(r *repository.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository.Repositories{
			Users:    NewUserRepo(tx),
			Profiles: NewUserProfileRepo(tx),
			Codes:    NewOneTimeCodeRepo(tx),
		})
	})
}
