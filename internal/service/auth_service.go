package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"educhat-backend/internal/cache"
	"educhat-backend/internal/config"
	"educhat-backend/internal/domain"
	"educhat-backend/internal/dto"
	"educhat-backend/internal/logger"
	"educhat-backend/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// RefreshTokenStore abstracts the live-refresh-token registry so the service
// can be tested without Redis. cache.RefreshTokenStore is the production
// implementation.
type RefreshTokenStore interface {
	Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error
	Get(ctx context.Context, tokenID string) (int64, error)
	Delete(ctx context.Context, tokenID string) error
}

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserProfileResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error)
}

type authServiceImpl struct {
	userRepo   domain.UserRepository
	tokenStore RefreshTokenStore
	appConfig  *config.Config
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, tokenStore RefreshTokenStore, appConfig *config.Config) (AuthService, error) {
	if len(appConfig.JWT.SecretKey) < 32 {
		return nil, errors.New("jwt secret key must be at least 32 bytes long")
	}
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenStore: tokenStore,
		appConfig:  appConfig,
	}, nil
}

// Register creates a new user with a bcrypt-hashed password.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserProfileResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, domain.NewInvalidInputError("username, email and password are required")
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, domain.NewDuplicateUserError("username")
	}
	existing, err = s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, domain.NewDuplicateUserError("email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(req.Username, req.Email, string(hashed))
	user.FullName = req.FullName
	if err := user.Validate(); err != nil {
		return nil, err
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		// The repository maps unique violations to DuplicateUser; pass
		// domain errors through untouched.
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Get().Info("User registered", zap.Int64("userID", created.ID), zap.String("username", created.Username))

	return &dto.UserProfileResponse{
		ID:        created.ID,
		Username:  created.Username,
		Email:     created.Email,
		FullName:  created.FullName,
		CreatedAt: created.CreatedAt,
		IsActive:  created.IsActive,
	}, nil
}

// Login verifies the password and issues an access/refresh token pair.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user for login: %w", err)
	}
	if user == nil {
		return nil, domain.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, domain.NewInvalidCredentialsError()
	}
	if !user.IsActive {
		return nil, domain.NewUserInactiveError()
	}

	return s.issueTokenPair(ctx, user.ID)
}

// RefreshTokens rotates a refresh token: the presented token must be of type
// refresh and its id must still be live in the store. The old id is revoked
// before a new pair is issued.
func (s *authServiceImpl) RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.ValidateJWT(ctx, refreshToken)
	if err != nil {
		return nil, domain.NewUnauthorizedError("invalid refresh token")
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, domain.NewUnauthorizedError("token is not a refresh token")
	}

	userID, err := s.tokenStore.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, cache.ErrTokenNotFound) {
			return nil, domain.NewUnauthorizedError("refresh token has been revoked")
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if userID != claims.UserID {
		return nil, domain.NewUnauthorizedError("refresh token does not match user")
	}

	if err := s.tokenStore.Delete(ctx, claims.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	return s.issueTokenPair(ctx, claims.UserID)
}

// Logout revokes the presented refresh token. Access tokens simply expire.
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.ValidateJWT(ctx, refreshToken)
	if err != nil {
		return domain.NewUnauthorizedError("invalid refresh token")
	}
	if claims.TokenType != tokenTypeRefresh {
		return domain.NewUnauthorizedError("token is not a refresh token")
	}
	if err := s.tokenStore.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	logger.Get().Info("User logged out", zap.Int64("userID", claims.UserID))
	return nil
}

// ValidateJWT parses and verifies a token signed with the configured secret.
func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}

// GetCurrentUser resolves the caller identity behind a validated token.
// Missing or deactivated users are an authentication failure, not a lookup
// miss.
func (s *authServiceImpl) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("user no longer exists")
	}
	if !user.IsActive {
		return nil, domain.NewUserInactiveError()
	}
	return user, nil
}

func (s *authServiceImpl) issueTokenPair(ctx context.Context, userID int64) (*dto.TokenResponse, error) {
	accessToken, _, err := s.createJWT(userID, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshID, err := s.createJWT(userID, s.appConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := s.tokenStore.Save(ctx, refreshID, userID, s.appConfig.JWT.RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authServiceImpl) createJWT(userID int64, ttl time.Duration, tokenType string) (string, string, error) {
	now := time.Now()
	tokenID := util.NewULID()
	claims := &dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.appConfig.JWT.SecretKey))
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}
