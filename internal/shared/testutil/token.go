package testutil

import (
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/token"
)

// MockAccessToken is the only token the default ValidateToken accepts
const MockAccessToken = "mock-access-token"

// MockTokenManager is a mock implementation of token.Manager for testing
type MockTokenManager struct {
	GenerateAccessTokenFunc  func(accountID, email string) (string, error)
	GenerateRefreshTokenFunc func(accountID, email string) (string, error)
	ValidateTokenFunc        func(tokenString string) (*token.Claims, error)
}

func (m *MockTokenManager) GenerateAccessToken(accountID, email string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(accountID, email)
	}
	return MockAccessToken, nil
}

func (m *MockTokenManager) GenerateRefreshToken(accountID, email string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(accountID, email)
	}
	return "mock-refresh-token", nil
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	if tokenString != MockAccessToken {
		return nil, token.ErrInvalidToken
	}
	return &token.Claims{AccountID: "1", Email: "operator@example.com", TokenType: token.ACCESS}, nil
}

// Ensure MockTokenManager implements token.Manager
var _ token.Manager = (*MockTokenManager)(nil)

// NewMockTokenManager creates a new mock token manager with default behavior
func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}
