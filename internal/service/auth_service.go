package service

import (
	"context"
	"time"

	"study-stream-be/internal/dto"
	"study-stream-be/internal/entity"
	"study-stream-be/internal/pkg/logger"
	"study-stream-be/internal/pkg/serverutils"
	"study-stream-be/internal/repository/specification"
	"study-stream-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func signToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"name":    user.Name,
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret, err := serverutils.JwtSecret()
	if err != nil {
		return "", err
	}
	return token.SignedString(secret)
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, serverutils.NewValidationError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, serverutils.NewInternalError("failed to hash password")
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hashStr,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		s.logger.Error("AuthService", "Failed to create user", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		return nil, serverutils.NewInternalError("failed to create user")
	}

	signedToken, err := signToken(user)
	if err != nil {
		return nil, serverutils.NewInternalError("failed to sign token")
	}

	return &dto.AuthResponse{
		Token: signedToken,
		User: dto.UserResponse{
			Id:    user.Id,
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return nil, serverutils.NewUnauthorizedError("invalid credentials")
	}

	if user.PasswordHash == nil {
		return nil, serverutils.NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, serverutils.NewUnauthorizedError("invalid credentials")
	}

	signedToken, err := signToken(user)
	if err != nil {
		return nil, serverutils.NewInternalError("failed to sign token")
	}

	return &dto.AuthResponse{
		Token: signedToken,
		User: dto.UserResponse{
			Id:    user.Id,
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, serverutils.NewInternalError("failed to fetch user")
	}
	if user == nil {
		return nil, serverutils.NewNotFoundError("user not found")
	}

	return &dto.UserResponse{
		Id:    user.Id,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}
