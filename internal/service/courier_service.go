package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MinPasswordLength минимальная длина пароля при создании учётной записи
const MinPasswordLength = 6

// LinkCodes проверяет коды привязки чата, выданные ботом
type LinkCodes interface {
	ParseLinkCode(code string) (int64, error)
}

type CourierService struct {
	profileRepo  ProfileStore
	identityRepo IdentityStore
	linkCodes    LinkCodes
	logger       *zap.Logger
}

func NewCourierService(profileRepo ProfileStore, identityRepo IdentityStore, linkCodes LinkCodes, logger *zap.Logger) *CourierService {
	return &CourierService{
		profileRepo:  profileRepo,
		identityRepo: identityRepo,
		linkCodes:    linkCodes,
		logger:       logger,
	}
}

// NewCourier данные новой учётной записи курьера
type NewCourier struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ListCouriers все профили, отсортированные по имени
func (s *CourierService) ListCouriers(ctx context.Context, adminID uuid.UUID) ([]*model.Profile, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return nil, err
	}
	return s.profileRepo.List(ctx)
}

// Rename меняет отображаемое имя курьера. Пустое имя сбрасывается.
func (s *CourierService) Rename(ctx context.Context, adminID, courierID uuid.UUID, name string) (*model.Profile, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return nil, err
	}

	var newName *string
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		newName = &trimmed
	}

	if err := s.profileRepo.UpdateName(ctx, courierID, newName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("update courier name: %w", err)
	}

	profile, err := s.profileRepo.GetByID(ctx, courierID)
	if err != nil {
		return nil, fmt.Errorf("get renamed courier: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	s.logger.Info("Courier renamed",
		zap.String("courier_id", courierID.String()),
		zap.String("admin_id", adminID.String()),
	)

	return profile, nil
}

// LinkTelegram привязывает к своему профилю чат, для которого бот выдал code; nil отвязывает
func (s *CourierService) LinkTelegram(ctx context.Context, userID uuid.UUID, code *string) (*model.Profile, error) {
	var chatID *int64
	if code != nil {
		trimmed := strings.TrimSpace(*code)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: empty link code", ErrInvalidInput)
		}
		id, err := s.linkCodes.ParseLinkCode(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLinkCode, err)
		}
		chatID = &id
	}

	if err := s.profileRepo.SetTelegramChatID(ctx, userID, chatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		if errors.Is(err, repository.ErrChatTaken) {
			return nil, ErrChatLinked
		}
		return nil, fmt.Errorf("link telegram: %w", err)
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	s.logger.Info("Telegram linked",
		zap.String("user_id", userID.String()),
		zap.Bool("linked", chatID != nil),
	)

	return profile, nil
}

// ByTelegramChat профиль, привязанный к чату; (nil, nil) если чат не привязан
func (s *CourierService) ByTelegramChat(ctx context.Context, chatID int64) (*model.Profile, error) {
	return s.profileRepo.GetByTelegramChatID(ctx, chatID)
}

// Create заводит учётную запись и профиль курьера от имени куратора
func (s *CourierService) Create(ctx context.Context, adminID uuid.UUID, in NewCourier) (*model.Profile, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return nil, err
	}

	profile, err := s.createAccount(ctx, in, model.RoleCourier)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Courier created",
		zap.String("courier_id", profile.ID.String()),
		zap.String("admin_id", adminID.String()),
	)

	return profile, nil
}

// CreateAdmin заводит первого куратора из командной строки
func (s *CourierService) CreateAdmin(ctx context.Context, in NewCourier) (*model.Profile, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	profile, err := s.createAccount(ctx, in, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin created", zap.String("admin_id", profile.ID.String()))
	return profile, nil
}

func (s *CourierService) createAccount(ctx context.Context, in NewCourier, role model.Role) (*model.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Var(email, "email"); err != nil {
		return nil, ErrInvalidEmail
	}
	if len([]rune(in.Password)) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	var name *string
	if trimmed := strings.TrimSpace(in.Name); trimmed != "" {
		name = &trimmed
	}

	profile, err := s.identityRepo.CreateWithProfile(ctx, email, hash, name, role)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrIdentityExists
		}
		s.logger.Error("Failed to create account",
			zap.String("email", email),
			zap.Error(err))
		return nil, fmt.Errorf("create account: %w", err)
	}

	return profile, nil
}
