package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"slotbook/internal/domain"
	"slotbook/internal/repository"
	"slotbook/internal/storage"
	"slotbook/pkg/validator"
)

type UserServiceImpl struct {
	repo      repository.UserRepository
	photos    storage.PhotoStorage
	directory *directoryCache
	logger    *zap.Logger
}

func NewUserService(repo repository.UserRepository, photos storage.PhotoStorage, directory *directoryCache, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:      repo,
		photos:    photos,
		directory: directory,
		logger:    logger,
	}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id string, dto domain.UpdateProfileDTO) (*domain.User, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	update := domain.UpdateProfileDTO{
		Name:  validator.SanitizeString(dto.Name),
		Phone: strings.TrimSpace(dto.Phone),
	}

	if update.Phone != "" && !validator.ValidatePhone(update.Phone) {
		return nil, domain.ValidationError("некорректный номер телефона")
	}

	if strings.TrimSpace(dto.ProfilePhoto) != "" {
		photo, err := s.storePhoto(ctx, id, dto.ProfilePhoto)
		if err != nil {
			return nil, err
		}
		update.ProfilePhoto = photo
	}

	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		s.logger.Error("ошибка обновления профиля", zap.String("userId", id), zap.Error(err))
		return nil, storeError(err)
	}

	if update.ProfilePhoto != "" && current.ProfilePhoto != update.ProfilePhoto {
		s.removePhoto(ctx, current.ProfilePhoto)
	}

	if user.IsSpecialist() {
		s.directory.invalidate(ctx)
	}

	return user, nil
}

// storePhoto возвращает значение для поля profilePhoto. Ссылки http(s) сохраняются
// как есть, base64 и data URL загружаются в хранилище или остаются в записи.
func (s *UserServiceImpl) storePhoto(ctx context.Context, userID, value string) (string, error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value, nil
	}

	photo, err := storage.DecodePhoto(value)
	if err != nil {
		return "", err
	}

	if s.photos == nil {
		return photo.DataURL(), nil
	}

	url, err := s.photos.Upload(ctx, userID, photo)
	if err != nil {
		s.logger.Error("ошибка загрузки фото профиля", zap.String("userId", userID), zap.Error(err))
		return "", storeError(err)
	}

	return url, nil
}

func (s *UserServiceImpl) removePhoto(ctx context.Context, url string) {
	if s.photos == nil || url == "" || !s.photos.Owns(url) {
		return
	}
	if err := s.photos.Delete(ctx, url); err != nil {
		s.logger.Warn("не удалось удалить старое фото профиля", zap.String("url", url), zap.Error(err))
	}
}

func (s *UserServiceImpl) SearchSpecialists(ctx context.Context, filter domain.SpecialistFilter) ([]domain.User, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, domain.ValidationError("неизвестная категория")
	}

	if users, ok := s.directory.get(ctx, filter); ok {
		return users, nil
	}

	users, err := s.repo.SearchSpecialists(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка поиска специалистов", zap.String("query", filter.Query), zap.Error(err))
		return nil, storeError(err)
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	s.directory.put(ctx, filter, users)

	return users, nil
}
