package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flock/internal/core/apperr"
	userEntity "flock/internal/core/user"
	userPort "flock/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "flock"

// UserService سرویس مدیریت کاربران
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
	tokenTTL       time.Duration
	logger         *zap.Logger
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, tokenTTL time.Duration, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
		tokenTTL:       tokenTTL,
		logger:         logger,
	}
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, handle, name, password string) (*userPort.UserDTO, error) {
	handle = strings.TrimSpace(handle)

	existing, err := s.UserRepository.FindByHandle(ctx, handle)
	if err == nil && existing != nil {
		return nil, apperr.Conflict("handle already taken")
	}
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("lookup handle: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &userEntity.User{
		ID:        uuid.Must(uuid.NewV7()),
		Handle:    handle,
		Name:      strings.TrimSpace(name),
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.UserRepository.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("userID", u.ID.String()), zap.String("handle", u.Handle))
	dto := userPort.NewUserDTO(u)
	return &dto, nil
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, handle, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByHandle(ctx, strings.TrimSpace(handle))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthenticated("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Debug("password mismatch", zap.String("handle", u.Handle))
		return nil, apperr.Unauthenticated("invalid credentials")
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := GenerateToken(s.jwtKey, u.ID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// ResolveHandle returns the user behind a public handle.
func (s *UserService) ResolveHandle(ctx context.Context, handle string) (*userEntity.User, error) {
	return s.UserRepository.FindByHandle(ctx, strings.TrimSpace(handle))
}

func (s *UserService) GetProfile(ctx context.Context, handle string) (*userPort.UserDTO, error) {
	u, err := s.ResolveHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	dto := userPort.NewUserDTO(u)
	return &dto, nil
}

// UpdateProfile changes the display name and avatar. Nil fields are left as they are.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, avatarURL *string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperr.BadInput("name must not be empty")
		}
		u.Name = trimmed
	}
	if avatarURL != nil {
		u.AvatarURL = strings.TrimSpace(*avatarURL)
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.UserRepository.Update(ctx, u); err != nil {
		return nil, err
	}
	dto := userPort.NewUserDTO(u)
	return &dto, nil
}

// GenerateToken signs an HS256 token whose subject is the user id.
func GenerateToken(key []byte, userID uuid.UUID, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   userID.String(),
		Issuer:    issuer,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseToken validates a token and returns the user id in its subject.
func ParseToken(key []byte, tokenStr string) (uuid.UUID, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperr.Unauthenticated("invalid token")
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, apperr.Unauthenticated("invalid token subject")
	}
	return id, nil
}
