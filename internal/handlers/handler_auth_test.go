package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/document_reception_app/internal/apperrors"
	portssvc "github.com/SscSPs/document_reception_app/internal/core/ports/services"
	"github.com/SscSPs/document_reception_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestLogin_Success() {
	expiresAt := time.Now().Add(8 * time.Hour).UTC().Truncate(time.Second)
	suite.mockAuthService.On("Login", mock.Anything, "senior-1", "secret1").
		Return(&portssvc.LoginResult{Token: "tok", ExpiresAt: expiresAt, User: suite.senior}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", nil, dto.LoginRequest{Username: "senior-1", Password: "secret1"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.decodeData(w, &resp)
	suite.Equal("tok", resp.Token)
	suite.True(expiresAt.Equal(resp.ExpiresAt))
	suite.Equal("SENIOR", string(resp.User.Role))
	suite.NotContains(w.Body.String(), "password")
}

func (suite *HandlerTestSuite) TestLogin_DisabledAccount() {
	suite.mockAuthService.On("Login", mock.Anything, "gone", "secret1").
		Return(nil, apperrors.NewUnauthorizedError("account is disabled")).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", nil, dto.LoginRequest{Username: "gone", Password: "secret1"})

	suite.assertError(w, http.StatusUnauthorized, "UNAUTHORIZED")
	suite.Contains(w.Body.String(), "account is disabled")
}

func (suite *HandlerTestSuite) TestLogin_MissingFields() {
	w := suite.do(http.MethodPost, "/api/v1/auth/login", nil, map[string]string{"username": "x"})
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	suite.mockAuthService.On("Login", mock.Anything, "x", "y").
		Return(nil, apperrors.NewUnauthorizedError("invalid username or password")).Times(3)

	for i := 0; i < 3; i++ {
		w := suite.do(http.MethodPost, "/api/v1/auth/login", nil, dto.LoginRequest{Username: "x", Password: "y"})
		suite.Equal(http.StatusUnauthorized, w.Code)
	}
	w := suite.do(http.MethodPost, "/api/v1/auth/login", nil, dto.LoginRequest{Username: "x", Password: "y"})
	suite.assertError(w, http.StatusTooManyRequests, "RATE_LIMITED")
}

func (suite *HandlerTestSuite) TestMe() {
	w := suite.do(http.MethodGet, "/api/v1/auth/me", suite.general, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.decodeData(w, &resp)
	suite.Equal(suite.general.UserID, resp.UserID)
	suite.Equal(suite.deptA, *resp.DepartmentID)
}

func (suite *HandlerTestSuite) TestLogout() {
	w := suite.do(http.MethodPost, "/api/v1/auth/logout", suite.general, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/logout", nil, nil)
	suite.assertError(w, http.StatusUnauthorized, "UNAUTHORIZED")
}

func (suite *HandlerTestSuite) TestChangePassword() {
	suite.mockAuthService.On("ChangePassword", mock.Anything, suite.general.UserID, "old-pass", "new-pass").Return(nil).Once()
	suite.mockAuthService.On("ChangePassword", mock.Anything, suite.general.UserID, "wrong", "new-pass").
		Return(apperrors.NewValidationFailedError("current password is incorrect")).Once()

	w := suite.do(http.MethodPut, "/api/v1/auth/password", suite.general,
		dto.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPut, "/api/v1/auth/password", suite.general,
		dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "new-pass"})
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = suite.do(http.MethodPut, "/api/v1/auth/password", suite.general,
		dto.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "abc"})
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR")
}
