package service

import (
	"context"
	"errors"
	"os"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// DTOs for Request validation
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	EmployeeID string `json:"employee_id" binding:"required"`
	Department string `json:"department" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

// AuthService defines the interface for registration, login and token handling
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*model.RegistrationRequest, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	regRepo   repository.RegistrationRepository
	tokenRepo repository.TokenRepository
	now       func() time.Time
}

// NewAuthService returns a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	regRepo repository.RegistrationRepository,
	tokenRepo repository.TokenRepository,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		regRepo:   regRepo,
		tokenRepo: tokenRepo,
		now:       time.Now,
	}
}

// Register files a registration request for manager review. No account is
// created until a manager approves.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*model.RegistrationRequest, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}
	if _, err := s.userRepo.GetByEmployeeID(ctx, req.EmployeeID); err == nil {
		return nil, ErrEmployeeIDTaken
	}
	pending, err := s.regRepo.PendingExists(ctx, req.Email, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrPendingRequest
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	request := &model.RegistrationRequest{
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		EmployeeID: req.EmployeeID,
		Department: req.Department,
		Status:     model.ReviewPending,
	}
	if err := s.regRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the refresh token and issues a fresh access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if stored.ExpiresAt.Before(s.now()) {
		_ = s.tokenRepo.DeleteByToken(ctx, refreshToken)
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if err := s.tokenRepo.DeleteByToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokenRepo.DeleteByToken(ctx, refreshToken)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*AuthResponse, error) {
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	})
	accessToken, err := token.SignedString([]byte(jwtSecret()))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, refresh); err != nil {
		return nil, err
	}

	// Opportunistic cleanup of stale tokens.
	_ = s.tokenRepo.DeleteExpired(ctx, now)

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
	}, nil
}

// jwtSecret uses the same fallback strategy as the auth middleware.
func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}
	return secret
}
