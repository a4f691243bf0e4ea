package repository

import "context"

// Repositories объединяет репозитории, доступные внутри одной транзакции.
type Repositories struct {
	Users    UserRepository
	Profiles UserProfileRepository
	Codes    OneTimeCodeRepository
}

// TxManager выполняет функцию в рамках одной транзакции базы данных.
// Если fn возвращает ошибку, все изменения откатываются.
type TxManager interface {
	Do(ctx context.Context, fn func(r *Repositories) error) error
}
