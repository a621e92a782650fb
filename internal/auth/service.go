package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/model"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db                *gorm.DB
	accountRepository *AccountRepository
	tokenManager      token.Manager
}

func NewAuthService(db *gorm.DB, accountRepository *AccountRepository, tokenManager token.Manager) *AuthService {
	return &AuthService{
		db:                db,
		accountRepository: accountRepository,
		tokenManager:      tokenManager,
	}
}

func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	// 1. Find account by email
	account, err := a.accountRepository.FindByEmail(ctx, a.db, request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("로그인 실패 - account email not found", "email", logger.MaskEmail(request.Email))
			return nil, fmt.Errorf("error %w", ErrInCorrectEmailPassword) // Security: don't reveal if email exists
		}
		log.Error("로그인 실패 - 알 수 없는 오류", "error", err)
		return nil, fmt.Errorf("로그인 실패: %w", err)
	}

	// 2. Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(request.Password)); err != nil {
		log.Warn("로그인 실패 - invalid password", "email", logger.MaskEmail(request.Email))
		return nil, fmt.Errorf("error %w", ErrInCorrectEmailPassword)
	}

	// 3. Generate JWT tokens
	accountID := strconv.FormatUint(uint64(account.ID), 10)
	accessToken, err := a.tokenManager.GenerateAccessToken(accountID, account.Email)
	if err != nil {
		log.Error("access token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := a.tokenManager.GenerateRefreshToken(accountID, account.Email)
	if err != nil {
		log.Error("refresh token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	log.Info("로그인 성공", "email", logger.MaskEmail(request.Email))

	return &LoginResponse{
		TokenType:    "Bearer",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *AuthService) Signup(ctx context.Context, request *SignupRequest) error {
	log := logger.FromContext(ctx)
	return database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		exists, err := a.accountRepository.IsExist(ctx, tx, request.Email)
		if err != nil {
			log.Error("Failed to check account existence", "error", err)
			return fmt.Errorf("check account existence: %w", err)
		}
		if exists {
			log.Warn("Account already exists", "email", logger.MaskEmail(request.Email))
			return fmt.Errorf("error %w", ErrAccountAlreadyExists)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", "error", err)
			return fmt.Errorf("hash password: %w", err)
		}

		account := model.NewAccount(request.Name, request.Email, string(hashedPassword))
		if err := a.accountRepository.Create(ctx, tx, account); err != nil {
			log.Error("Failed to create account", "error", err)
			return fmt.Errorf("create account: %w", err)
		}

		log.Info("Account created successfully", "email", logger.MaskEmail(request.Email))
		return nil
	})
}
