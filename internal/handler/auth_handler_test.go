package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/handler"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func setupAuthTest(t *testing.T) (*gin.Engine, *MockUserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mockRepo := new(MockUserStore)
	authHandler := handler.NewAuthHandler(mockRepo, 24)

	r.POST("/api/v1/auth/register", authHandler.Register)
	r.POST("/api/v1/auth/login", authHandler.Login)

	t.Setenv("JWT_SECRET", "test-secret")
	return r, mockRepo
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	assert.NoError(t, err)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegister_Success(t *testing.T) {
	router, mockRepo := setupAuthTest(t)

	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	resp := postJSON(t, router, "/api/v1/auth/register", map[string]string{
		"name":     "Test User",
		"email":    "Test@Example.com", // addresses normalize to lower case
		"password": "password123",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "test@example.com", body["email"])
	assert.Equal(t, "Test User", body["name"])

	mockRepo.AssertExpectations(t)
}

func TestRegister_UserAlreadyExists(t *testing.T) {
	router, mockRepo := setupAuthTest(t)

	existing := &model.User{
		ID:             uuid.New(),
		Email:          "existing@example.com",
		HashedPassword: "hashed_password",
		Name:           "Existing User",
	}
	mockRepo.On("FindByEmail", mock.Anything, "existing@example.com").Return(existing, nil)

	resp := postJSON(t, router, "/api/v1/auth/register", map[string]string{
		"name":     "Test User",
		"email":    "existing@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	router, mockRepo := setupAuthTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	userID := uuid.New()
	user := &model.User{
		ID:             userID,
		Email:          "test@example.com",
		HashedPassword: string(hash),
		Name:           "Test User",
	}
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)

	resp := postJSON(t, router, "/api/v1/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expiresIn"`
		UserID    string `json:"userId"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, 24*3600, body.ExpiresIn)
	assert.Equal(t, userID.String(), body.UserID)

	mockRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	router, mockRepo := setupAuthTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := &model.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: string(hash),
	}
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)

	resp := postJSON(t, router, "/api/v1/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestLogin_UnknownEmail(t *testing.T) {
	router, mockRepo := setupAuthTest(t)

	mockRepo.On("FindByEmail", mock.Anything, "missing@example.com").Return(nil, nil)

	resp := postJSON(t, router, "/api/v1/auth/login", map[string]string{
		"email":    "missing@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockRepo.AssertExpectations(t)
}
