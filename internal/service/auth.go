package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"slotbook/config"
	"slotbook/internal/domain"
	"slotbook/internal/repository"
	"slotbook/pkg/auth"
	"slotbook/pkg/validator"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

type AuthServiceImpl struct {
	userRepo  repository.UserRepository
	directory *directoryCache
	jwtConfig config.JWTConfig
	logger    *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, directory *directoryCache, jwtConfig config.JWTConfig, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		directory: directory,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

func validateRegistration(dto domain.RegisterRequest) (*domain.User, error) {
	name := validator.SanitizeString(dto.Name)
	if name == "" {
		return nil, domain.ValidationError("имя обязательно")
	}

	email := validator.NormalizeEmail(dto.Email)
	if !validator.ValidateEmail(email) {
		return nil, domain.ValidationError("некорректный email")
	}

	if !validator.ValidatePassword(dto.Password) {
		return nil, domain.ValidationError(fmt.Sprintf("пароль должен содержать не менее %d символов", validator.MinPasswordLength))
	}

	if !dto.UserType.IsValid() {
		return nil, domain.ValidationError("тип пользователя должен быть member или specialist")
	}

	phone := strings.TrimSpace(dto.Phone)
	if phone != "" && !validator.ValidatePhone(phone) {
		return nil, domain.ValidationError("некорректный номер телефона")
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		UserType: dto.UserType,
		Phone:    phone,
	}

	if dto.UserType == domain.UserRoleSpecialist {
		if !dto.Category.IsValid() {
			return nil, domain.ValidationError("специалист должен указать категорию из списка")
		}
		specialization := validator.SanitizeString(dto.Specialization)
		if specialization == "" {
			return nil, domain.ValidationError("специалист должен указать специализацию")
		}
		user.Category = dto.Category
		user.Specialization = specialization
	}

	return user, nil
}

func (s *AuthServiceImpl) Register(ctx context.Context, dto domain.RegisterRequest) (*domain.AuthResult, error) {
	user, err := validateRegistration(dto)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return nil, fmt.Errorf("ошибка при регистрации пользователя: %w", err)
	}

	now := time.Now()
	user.ID = uuid.New().String()
	user.PasswordHash = hash
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		s.logger.Error("ошибка при создании пользователя", zap.String("email", user.Email), zap.Error(err))
		return nil, storeError(err)
	}

	if user.IsSpecialist() {
		s.directory.invalidate(ctx)
	}

	token, err := s.generateToken(user.ID, user.UserType)
	if err != nil {
		s.logger.Error("ошибка генерации токена", zap.Error(err))
		return nil, err
	}

	s.logger.Info("пользователь зарегистрирован", zap.String("userId", user.ID), zap.String("role", string(user.UserType)))

	return &domain.AuthResult{User: user, Token: token}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginRequest) (*domain.AuthResult, error) {
	email := validator.NormalizeEmail(dto.Email)
	if email == "" || dto.Password == "" {
		return nil, domain.ValidationError("email и пароль обязательны")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error("ошибка получения пользователя", zap.String("email", email), zap.Error(err))
		return nil, storeError(err)
	}

	ok, err := auth.VerifyPassword(dto.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("ошибка проверки пароля", zap.String("userId", user.ID), zap.Error(err))
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		s.logger.Warn("неверный пароль", zap.String("userId", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID, user.UserType)
	if err != nil {
		s.logger.Error("ошибка генерации токена", zap.Error(err))
		return nil, err
	}

	return &domain.AuthResult{User: user, Token: token}, nil
}

func (s *AuthServiceImpl) ParseToken(ctx context.Context, tokenString string) (string, domain.UserRole, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	})

	if err != nil {
		return "", "", fmt.Errorf("%w: недействительный токен", domain.ErrAuthentication)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", "", fmt.Errorf("%w: недействительный токен", domain.ErrAuthentication)
	}

	return claims.UserID, claims.Role, nil
}

func (s *AuthServiceImpl) generateToken(userID string, role domain.UserRole) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи access token: %w", err)
	}

	return signed, nil
}
