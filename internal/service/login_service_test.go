package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	"github.com/Keavors/MyFanBoard/internal/domain/repository"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
	"github.com/Keavors/MyFanBoard/pkg/auth"
)

func createTestLoginService(
	userRepo *MockUserRepository,
	codeRepo *MockOneTimeCodeRepository,
	pendingRepo *MockPendingVerificationRepository,
	emailSender *MockEmailSender,
) *LoginService {
	txManager := &fakeTxManager{repos: &repository.Repositories{
		Users: userRepo,
		Codes: codeRepo,
	}}
	jwtService, err := auth.NewJWTService("test-secret", 1)
	if err != nil {
		panic(err)
	}
	svc, err := NewLoginService(txManager, userRepo, pendingRepo, emailSender, jwtService, 15*time.Minute)
	if err != nil {
		panic(err)
	}
	return svc
}

// ============================================================================
// Тесты для LoginService
// ============================================================================

func TestLoginService_RequestCode_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockCodeRepo := new(MockOneTimeCodeRepository)
	mockPendingRepo := new(MockPendingVerificationRepository)
	mockEmailSender := new(MockEmailSender)

	activeUser := &entity.User{ID: 42, Username: "testuser", Email: "test@example.com", IsActive: true}

	mockPendingRepo.On("Set", mock.Anything, repository.PendingFlowLogin,
		mock.AnythingOfType("string"), "test@example.com", 15*time.Minute).Return(nil)
	// Строка пользователя блокируется внутри транзакции
	mockUserRepo.On("GetByEmailForUpdate", "test@example.com").Return(activeUser, nil)
	mockCodeRepo.On("InvalidateOutstanding", uint(42), entity.CodeKindLogin, mock.Anything).Return(nil)
	mockCodeRepo.On("Create", mock.AnythingOfType("*entity.OneTimeCode")).Run(func(args mock.Arguments) {
		code := args.Get(0).(*entity.OneTimeCode)
		assert.Equal(t, entity.CodeKindLogin, code.Kind)
		assert.False(t, code.Used)
	}).Return(nil)
	mockEmailSender.On("SendOneTimeCode", mock.Anything, "test@example.com",
		entity.CodeKindLogin, mock.AnythingOfType("string")).Return(nil)

	svc := createTestLoginService(mockUserRepo, mockCodeRepo, mockPendingRepo, mockEmailSender)

	// Act
	sessionID, err := svc.RequestCode(context.Background(), "test@example.com")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	mockUserRepo.AssertExpectations(t)
	mockCodeRepo.AssertExpectations(t)
	mockEmailSender.AssertExpectations(t)
}

func TestLoginService_RequestCode_InvalidatesBeforeIssuing(t *testing.T) {
	// Arrange: порядок важен — старые коды гасятся до вставки нового
	mockUserRepo := new(MockUserRepository)
	mockCodeRepo := new(MockOneTimeCodeRepository)
	mockPendingRepo := new(MockPendingVerificationRepository)
	mockEmailSender := new(MockEmailSender)

	activeUser := &entity.User{ID: 42, Email: "test@example.com", IsActive: true}
	var callOrder []string

	mockPendingRepo.On("Set", mock.Anything, repository.PendingFlowLogin,
		mock.AnythingOfType("string"), "test@example.com", mock.Anything).Return(nil)
	mockUserRepo.On("GetByEmailForUpdate", "test@example.com").Return(activeUser, nil)
	mockCodeRepo.On("InvalidateOutstanding", uint(42), entity.CodeKindLogin, mock.Anything).
		Run(func(mock.Arguments) { callOrder = append(callOrder, "invalidate") }).Return(nil)
	mockCodeRepo.On("Create", mock.AnythingOfType("*entity.OneTimeCode")).
		Run(func(mock.Arguments) { callOrder = append(callOrder, "create") }).Return(nil)
	mockEmailSender.On("SendOneTimeCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := createTestLoginService(mockUserRepo, mockCodeRepo, mockPendingRepo, mockEmailSender)

	// Act
	_, err := svc.RequestCode(context.Background(), "test@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"invalidate", "create"}, callOrder)
}

func TestLoginService_RequestCode_UnknownAccount(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockPendingRepo := new(MockPendingVerificationRepository)

	mockPendingRepo.On("Set", mock.Anything, repository.PendingFlowLogin,
		mock.AnythingOfType("string"), "ghost@example.com", mock.Anything).Return(nil)
	mockUserRepo.On("GetByEmailForUpdate", "ghost@example.com").Return(nil, apperrors.ErrNotFound)
	mockPendingRepo.On("Clear", mock.Anything, repository.PendingFlowLogin,
		mock.AnythingOfType("string")).Return(nil)

	svc := createTestLoginService(mockUserRepo, new(MockOneTimeCodeRepository),
		mockPendingRepo, new(MockEmailSender))

	// Act
	sessionID, err := svc.RequestCode(context.Background(), "ghost@example.com")

	// Assert
	assert.ErrorIs(t, err, ErrAccountNotFoundOrInactive)
	assert.Empty(t, sessionID)
	mockPendingRepo.AssertExpectations(t)
}

func TestLoginService_RequestCode_InactiveAccount(t *testing.T) {
	// Arrange: неактивный аккаунт дает ту же ошибку, что и несуществующий
	mockUserRepo := new(MockUserRepository)
	mockCodeRepo := new(MockOneTimeCodeRepository)
	mockPendingRepo := new(MockPendingVerificationRepository)

	inactiveUser := &entity.User{ID: 42, Email: "pending@example.com", IsActive: false}

	mockPendingRepo.On("Set", mock.Anything, repository.PendingFlowLogin,
		mock.AnythingOfType("string"), "pending@example.com", mock.Anything).Return(nil)
	mockUserRepo.On("GetByEmailForUpdate", "pending@example.com").Return(inactiveUser, nil)
	mockPendingRepo.On("Clear", mock.Anything, repository.PendingFlowLogin,
		mock.AnythingOfType("string")).Return(nil)

	svc := createTestLoginService(mockUserRepo, mockCodeRepo, mockPendingRepo, new(MockEmailSender))

	// Act
	_, err := svc.RequestCode(context.Background(), "pending@example.com")

	// Assert
	assert.ErrorIs(t, err, ErrAccountNotFoundOrInactive)
	mockCodeRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLoginService_RequestCode_DeliveryFailure(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockCodeRepo := new(MockOneTimeCodeRepository)
	mockPendingRepo := new(MockPendingVerificationRepository)
	mockEmailSender := new(MockEmailSender)

	activeUser := &entity.User{ID: 42, Email: "test@example.com", IsActive: true}

	mockPendingRepo.On("Set", mock.Anything, repository.PendingFlowLogin,
		mock.AnythingOfType("string"), "test@example.com", mock.Anything).Return(nil)
	mockUserRepo.On("GetByEmailForUpdate", "test@example.com").Return(activeUser, nil)
	mockCodeRepo.On("InvalidateOutstanding", uint(42), entity.CodeKindLogin, mock.Anything).Return(nil)
	mockCodeRepo.On("Create", mock.AnythingOfType("*entity.OneTimeCode")).Return(nil)
	mockEmailSender.On("SendOneTimeCode", mock.Anything, "test@example.com",
		entity.CodeKindLogin, mock.AnythingOfType("string")).Return(errors.New("provider unavailable"))

	svc := createTestLoginService(mockUserRepo, mockCodeRepo, mockPendingRepo, mockEmailSender)

	// Act
	sessionID, err := svc.RequestCode(context.Background(), "test@example.com")

	// Assert: выданный код остается действительным, сессия возвращается
	var deliveryErr *DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.NotEmpty(t, sessionID)
	mockPendingRepo.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginService_VerifyCode_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockCodeRepo := new(MockOneTimeCodeRepository)
	mockPendingRepo := new(MockPendingVerificationRepository)

	activeUser := &entity.User{ID: 42, Username: "testuser", Email: "test@example.com", IsActive: true, Role: "user"}
	otc := &entity.OneTimeCode{ID: 9, UserID: 42, Code: "654321", Kind: entity.CodeKindLogin}

	mockPendingRepo.On("Get", mock.Anything, repository.PendingFlowLogin, "login-session").
		Return("test@example.com", nil)
	mockCodeRepo.On("FindValid", "test@example.com", "654321", entity.CodeKindLogin, mock.Anything).
		Return(otc, nil)
	mockCodeRepo.On("MarkUsed", uint(9)).Return(nil)
	mockUserRepo.On("GetByID", uint(42)).Return(activeUser, nil)
	mockPendingRepo.On("Clear", mock.Anything, repository.PendingFlowLogin, "login-session").Return(nil)

	svc := createTestLoginService(mockUserRepo, mockCodeRepo, mockPendingRepo, new(MockEmailSender))

	// Act
	user, token, err := svc.VerifyCode(context.Background(), "login-session", "654321")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uint(42), user.ID)
	assert.NotEmpty(t, token, "После подтверждения кода должен быть выпущен access-токен")
	mockCodeRepo.AssertExpectations(t)
	mockPendingRepo.AssertExpectations(t)
}

func TestLoginService_VerifyCode_WrongKindIsMiss(t *testing.T) {
	// Arrange: код регистрации не подходит для входа — репозиторий ищет
	// строго по kind, и любой промах дает ErrNotFound
	mockCodeRepo := new(MockOneTimeCodeRepository)
	mockPendingRepo := new(MockPendingVerificationRepository)

	mockPendingRepo.On("Get", mock.Anything, repository.PendingFlowLogin, "login-session").
		Return("test@example.com", nil)
	mockCodeRepo.On("FindValid", "test@example.com", "123456", entity.CodeKindLogin, mock.Anything).
		Return(nil, apperrors.ErrNotFound)

	svc := createTestLoginService(new(MockUserRepository), mockCodeRepo, mockPendingRepo, new(MockEmailSender))

	// Act
	user, token, err := svc.VerifyCode(context.Background(), "login-session", "123456")

	// Assert
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestLoginService_VerifyCode_MissingSession(t *testing.T) {
	// Arrange
	mockPendingRepo := new(MockPendingVerificationRepository)
	mockPendingRepo.On("Get", mock.Anything, repository.PendingFlowLogin, "gone").
		Return("", apperrors.ErrNotFound)

	svc := createTestLoginService(new(MockUserRepository), new(MockOneTimeCodeRepository),
		mockPendingRepo, new(MockEmailSender))

	// Act
	_, _, err := svc.VerifyCode(context.Background(), "gone", "654321")

	// Assert
	assert.ErrorIs(t, err, ErrMissingSession)
}

func TestLoginService_VerifyCode_ConcurrentConsumption(t *testing.T) {
	// Arrange: CAS-обновление проиграно конкурирующему запросу
	mockUserRepo := new(MockUserRepository)
	mockCodeRepo := new(MockOneTimeCodeRepository)
	mockPendingRepo := new(MockPendingVerificationRepository)

	otc := &entity.OneTimeCode{ID: 9, UserID: 42, Code: "654321", Kind: entity.CodeKindLogin}

	mockPendingRepo.On("Get", mock.Anything, repository.PendingFlowLogin, "login-session").
		Return("test@example.com", nil)
	mockCodeRepo.On("FindValid", "test@example.com", "654321", entity.CodeKindLogin, mock.Anything).
		Return(otc, nil)
	mockCodeRepo.On("MarkUsed", uint(9)).Return(apperrors.ErrNotFound)

	svc := createTestLoginService(mockUserRepo, mockCodeRepo, mockPendingRepo, new(MockEmailSender))

	// Act
	user, token, err := svc.VerifyCode(context.Background(), "login-session", "654321")

	// Assert
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
	assert.Nil(t, user)
	assert.Empty(t, token)
	mockUserRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}
