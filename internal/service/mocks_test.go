package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	"github.com/Keavors/MyFanBoard/internal/domain/repository"
)

// ============================================================================
// Моки репозиториев, общие для тестов сервисов
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmailForUpdate(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Activate(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) List(limit, offset int) ([]entity.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) ListNewsletterRecipients() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

// MockUserProfileRepository реализует repository.UserProfileRepository
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) Create(profile *entity.UserProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockUserProfileRepository) GetByUserID(userID uint) (*entity.UserProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) SetNewsletterSubscribed(userID uint, subscribed bool) error {
	args := m.Called(userID, subscribed)
	return args.Error(0)
}

// MockOneTimeCodeRepository реализует repository.OneTimeCodeRepository
type MockOneTimeCodeRepository struct {
	mock.Mock
}

func (m *MockOneTimeCodeRepository) Create(code *entity.OneTimeCode) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockOneTimeCodeRepository) InvalidateOutstanding(userID uint, kind string, now time.Time) error {
	args := m.Called(userID, kind, now)
	return args.Error(0)
}

func (m *MockOneTimeCodeRepository) FindValid(email, code, kind string, now time.Time) (*entity.OneTimeCode, error) {
	args := m.Called(email, code, kind, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OneTimeCode), args.Error(1)
}

func (m *MockOneTimeCodeRepository) MarkUsed(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPendingVerificationRepository реализует repository.PendingVerificationRepository
type MockPendingVerificationRepository struct {
	mock.Mock
}

func (m *MockPendingVerificationRepository) Set(ctx context.Context, flow, sessionID, email string, ttl time.Duration) error {
	args := m.Called(ctx, flow, sessionID, email, ttl)
	return args.Error(0)
}

func (m *MockPendingVerificationRepository) Get(ctx context.Context, flow, sessionID string) (string, error) {
	args := m.Called(ctx, flow, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockPendingVerificationRepository) Clear(ctx context.Context, flow, sessionID string) error {
	args := m.Called(ctx, flow, sessionID)
	return args.Error(0)
}

// MockPostRepository реализует repository.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *entity.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id uint) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) ListByBoard(boardID uint, limit, offset int) ([]entity.Post, error) {
	args := m.Called(boardID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Post), args.Error(1)
}

func (m *MockPostRepository) Update(post *entity.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementViews(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockResponseRepository реализует repository.ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(response *entity.Response) error {
	args := m.Called(response)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByID(id uint) (*entity.Response, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Response), args.Error(1)
}

func (m *MockResponseRepository) ListByPost(postID uint) ([]entity.Response, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Response), args.Error(1)
}

func (m *MockResponseRepository) MarkAccepted(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockResponseRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockNewsletterRepository реализует repository.NewsletterRepository
type MockNewsletterRepository struct {
	mock.Mock
}

func (m *MockNewsletterRepository) Create(newsletter *entity.Newsletter) error {
	args := m.Called(newsletter)
	return args.Error(0)
}

func (m *MockNewsletterRepository) GetByID(id uint) (*entity.Newsletter, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Newsletter), args.Error(1)
}

func (m *MockNewsletterRepository) List(limit, offset int) ([]entity.Newsletter, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Newsletter), args.Error(1)
}

func (m *MockNewsletterRepository) MarkSent(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEmailSender реализует EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendOneTimeCode(ctx context.Context, toEmail, kind, code string) error {
	args := m.Called(ctx, toEmail, kind, code)
	return args.Error(0)
}

func (m *MockEmailSender) SendResponseNotification(ctx context.Context, toEmail, postTitle, responseAuthor, responseContent, postURL string) error {
	args := m.Called(ctx, toEmail, postTitle, responseAuthor, responseContent, postURL)
	return args.Error(0)
}

func (m *MockEmailSender) SendResponseAccepted(ctx context.Context, toEmail, postTitle, postURL string) error {
	args := m.Called(ctx, toEmail, postTitle, postURL)
	return args.Error(0)
}

func (m *MockEmailSender) SendNewsletter(ctx context.Context, toEmail, subject, content string) error {
	args := m.Called(ctx, toEmail, subject, content)
	return args.Error(0)
}

// ============================================================================
// fakeTxManager выполняет fn над переданными моками без настоящей транзакции
// ============================================================================

type fakeTxManager struct {
	repos *repository.Repositories
	// beginErr имитирует ошибку открытия транзакции
	beginErr error
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(r *repository.Repositories) error) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(f.repos)
}
