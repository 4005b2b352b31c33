package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"educhat-backend/internal/dto"
	"educhat-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupUserApp(mockSvc *MockUserService, userID int64) *fiber.App {
	app := newTestApp()
	h := NewUserHandler(mockSvc)
	app.Get("/api/users/me", injectUser(userID), h.GetMyProfile)
	return app
}

func TestGetMyProfileEndpoint(t *testing.T) {
	mockSvc := new(MockUserService)
	app := setupUserApp(mockSvc, 10)

	mockSvc.On("GetUserProfile", mock.Anything, int64(10)).Return(&dto.UserProfileResponse{
		ID:        10,
		Username:  "student1",
		Email:     "student1@example.com",
		FullName:  "Student One",
		CreatedAt: time.Now(),
		IsActive:  true,
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/users/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var profile dto.UserProfileResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, int64(10), profile.ID)
	assert.Equal(t, "student1", profile.Username)
	mockSvc.AssertExpectations(t)
}

func TestGetMyProfileEndpointNotFound(t *testing.T) {
	mockSvc := new(MockUserService)
	app := setupUserApp(mockSvc, 99)

	mockSvc.On("GetUserProfile", mock.Anything, int64(99)).
		Return(nil, service.ErrUserProfileNotFound).Once()

	req := httptest.NewRequest("GET", "/api/users/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetMyProfileEndpointMissingUserContext(t *testing.T) {
	mockSvc := new(MockUserService)
	app := newTestApp()
	h := NewUserHandler(mockSvc)
	app.Get("/api/users/me", h.GetMyProfile)

	req := httptest.NewRequest("GET", "/api/users/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	mockSvc.AssertNotCalled(t, "GetUserProfile", mock.Anything, mock.Anything)
}
