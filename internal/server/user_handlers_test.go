package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wisdomwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByID", mock.Anything, uint(7)).
		Return(nil, models.NewNotFoundError("User", uint(7)))

	s := newTestServer(mockRepo)
	app := protectedApp(s)

	token, err := s.tokens.Issue(7, "laozi")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateMyProfile(t *testing.T) {
	tests := []struct {
		name           string
		bio            string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			bio:  "student of the way",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("UpdateBio", mock.Anything, uint(7), "student of the way").
					Return(&models.User{ID: 7, Username: "laozi", Bio: "student of the way"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Bio too long",
			bio:            string(bytes.Repeat([]byte("x"), 501)),
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "User vanished",
			bio:  "student of the way",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("UpdateBio", mock.Anything, uint(7), "student of the way").
					Return(nil, models.NewNotFoundError("User", uint(7)))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			s := newTestServer(mockRepo)
			app := fiber.New()
			app.Put("/profile", s.AuthRequired(), s.UpdateMyProfile)

			token, err := s.tokens.Issue(7, "laozi")
			require.NoError(t, err)

			payload, err := json.Marshal(map[string]string{"bio": tt.bio})
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPut, "/profile", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, resp)
				assert.Equal(t, tt.bio, body["bio"])
				assert.Equal(t, "laozi", body["username"])
			} else {
				_ = resp.Body.Close()
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUpdateMyProfile_ClearBio(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("UpdateBio", mock.Anything, uint(7), "").
		Return(&models.User{ID: 7, Username: "laozi", Bio: ""}, nil)

	s := newTestServer(mockRepo)
	app := fiber.New()
	app.Put("/profile", s.AuthRequired(), s.UpdateMyProfile)

	token, err := s.tokens.Issue(7, "laozi")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/profile", bytes.NewReader([]byte(`{"bio":""}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", decodeBody(t, resp)["bio"])
}
