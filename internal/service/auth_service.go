package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/courier_scheduler/internal/auth"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer выпуск и проверка токенов доступа
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role string) (string, error)
	ParseToken(token string) (*auth.Claims, error)
}

type AuthService struct {
	identityRepo IdentityStore
	profileRepo  ProfileStore
	tokens       TokenIssuer
	logger       *zap.Logger
}

func NewAuthService(identityRepo IdentityStore, profileRepo ProfileStore, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		tokens:       tokens,
		logger:       logger,
	}
}

// Session результат входа
type Session struct {
	Token   string         `json:"token"`
	Profile *model.Profile `json:"profile"`
}

// Login проверяет пароль и выдаёт токен
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	identity, err := s.identityRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}
	if identity == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("Failed login attempt", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profileRepo.GetByID(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	token, err := s.tokens.GenerateToken(profile.ID, string(profile.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("User logged in",
		zap.String("user_id", profile.ID.String()),
		zap.String("role", string(profile.Role)),
	)

	return &Session{Token: token, Profile: profile}, nil
}

// CurrentUser профиль по токену; (nil, nil) если токен не принят или профиля нет
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.Profile, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse token: %w", err)
	}

	profile, err := s.profileRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
