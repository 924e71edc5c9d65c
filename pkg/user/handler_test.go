package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	internalHandler "github.com/apartment-life/backend/internal/handler"
	"github.com/apartment-life/backend/pkg/model"
	"github.com/apartment-life/backend/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_SignUp(t *testing.T) {
	require.NoError(t, internalHandler.RegisterValidation())

	userService := &mockUserService{}
	user := &model.User{ID: 1, Email: "resident@example.com", Name: "Alex", ApartmentNumber: "42"}
	userService.
		On("SignUp", mock.Anything, "resident@example.com", "averylongpassword", "Alex", "42").
		Return(user, nil)
	handler := newTestHandler(userService, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/users", &SignUpRequest{
		Email:           "resident@example.com",
		Password:        "averylongpassword",
		Name:            "Alex",
		ApartmentNumber: "42",
	})

	handler.SignUp(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	userService.AssertExpectations(t)
}

func TestHandler_SignUp_InvalidApartmentNumber(t *testing.T) {
	require.NoError(t, internalHandler.RegisterValidation())

	userService := &mockUserService{}
	handler := newTestHandler(userService, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/users", &SignUpRequest{
		Email:           "resident@example.com",
		Password:        "averylongpassword",
		Name:            "Alex",
		ApartmentNumber: "4b",
	})

	handler.SignUp(c)

	require.Len(t, c.Errors.Errors(), 1)
	userService.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_RefreshToken(t *testing.T) {
	userService := &mockUserService{}
	user := &model.User{ID: 123}
	userService.
		On("FindById", mock.Anything, uint(123)).
		Return(user, nil)
	tokenService := &mockTokenService{}
	id := uuid.New()
	refreshTokenData := &token.RefreshTokenData{
		SignedToken: "signed-token",
		ID:          id,
		UserId:      123,
	}
	tokenService.
		On("ValidateRefreshToken", mock.Anything, "token").
		Return(refreshTokenData, nil)
	tokens := &token.Tokens{
		AccessToken:  "accessToken",
		TokenType:    "bearer",
		RefreshToken: "refreshToken",
		ExpiresIn:    312,
	}
	tokenService.
		On("GetTokens", user, id.String()).
		Return(tokens, nil)
	handler := newTestHandler(userService, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/refresh", &RefreshTokenRequest{RefreshToken: "token"})

	handler.RefreshToken(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	cookies := recorder.Result().Cookies()
	assert.Len(t, cookies, 2)
	assert.Equal(t, "accessToken", cookies[0].Name)
	assert.Equal(t, "refreshToken", cookies[1].Name)
	tokenService.AssertExpectations(t)
	userService.AssertExpectations(t)
}

func TestHandler_UpdateRole_InvalidRole(t *testing.T) {
	userService := &mockUserService{}
	handler := newTestHandler(userService, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.AddParam("id", "1")
	c.Request = newPost(t, "/users/1/role", &UpdateRoleRequest{Role: "landlord"})

	handler.UpdateRole(c)

	require.Len(t, c.Errors.Errors(), 1)
	userService.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func newTestHandler(userService userService, tokenService tokenService) Handler {
	return NewHandler("hostname", 312, 3600, http.SameSiteStrictMode, userService, tokenService)
}

func newPost(t *testing.T, path string, body any) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(http.MethodPost, path, reader)
	request.Header.Set("Content-Type", "application/json")
	return request
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) SignUp(ctx context.Context, email, password, name, apartmentNumber string) (*model.User, error) {
	args := m.Called(ctx, email, password, name, apartmentNumber)
	var user *model.User
	if args.Get(0) != nil {
		user = args.Get(0).(*model.User)
	}
	return user, args.Error(1)
}

func (m *mockUserService) ValidateEmail(ctx context.Context, token uuid.UUID) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockUserService) FindById(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	var user *model.User
	if args.Get(0) != nil {
		user = args.Get(0).(*model.User)
	}
	return user, args.Error(1)
}

func (m *mockUserService) FindAll(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *mockUserService) UpdateApartmentNumber(ctx context.Context, id uint, apartmentNumber string) (*model.User, error) {
	args := m.Called(ctx, id, apartmentNumber)
	var user *model.User
	if args.Get(0) != nil {
		user = args.Get(0).(*model.User)
	}
	return user, args.Error(1)
}

func (m *mockUserService) UpdateRole(ctx context.Context, id uint, role string) (*model.User, error) {
	args := m.Called(ctx, id, role)
	var user *model.User
	if args.Get(0) != nil {
		user = args.Get(0).(*model.User)
	}
	return user, args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) GetTokens(user *model.User, previousTokenId string) (*token.Tokens, error) {
	args := m.Called(user, previousTokenId)
	var tokens *token.Tokens
	if args.Get(0) != nil {
		tokens = args.Get(0).(*token.Tokens)
	}
	return tokens, args.Error(1)
}

func (m *mockTokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*token.RefreshTokenData, error) {
	args := m.Called(ctx, tokenString)
	var data *token.RefreshTokenData
	if args.Get(0) != nil {
		data = args.Get(0).(*token.RefreshTokenData)
	}
	return data, args.Error(1)
}

func (m *mockTokenService) SignOut(userId uint) error {
	return m.Called(userId).Error(0)
}
