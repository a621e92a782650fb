package error_test

import (
	"fmt"
	"net/http"
	"testing"

	sharedError "github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/error"
	"github.com/stretchr/testify/assert"
)

func TestResolveDomainError(t *testing.T) {
	errRange := sharedError.NewDomainError("TEST_RESOLVE")
	sharedError.RegisterDomainErrorResponse("TEST_RESOLVE", sharedError.ErrorResponse{
		Status: http.StatusConflict, Code: "TEST-001", Message: "test",
	})

	resp, ok := sharedError.ResolveDomainError(fmt.Errorf("ageGoe=40 ageLoe=10 %w", errRange))
	assert.True(t, ok)
	assert.Equal(t, "TEST-001", resp.Code)

	_, ok = sharedError.ResolveDomainError(fmt.Errorf("plain: %w", assert.AnError))
	assert.False(t, ok)

	_, ok = sharedError.ResolveDomainError(sharedError.NewDomainError("TEST_UNREGISTERED"))
	assert.False(t, ok)

	_, ok = sharedError.ResolveDomainError(nil)
	assert.False(t, ok)
}

func TestRegisterDomainErrorResponse_DuplicatePanics(t *testing.T) {
	resp := sharedError.ErrorResponse{Status: http.StatusBadRequest, Code: "TEST-002"}
	sharedError.RegisterDomainErrorResponse("TEST_DUPLICATE", resp)

	assert.Panics(t, func() {
		sharedError.RegisterDomainErrorResponse("TEST_DUPLICATE", resp)
	})
}
