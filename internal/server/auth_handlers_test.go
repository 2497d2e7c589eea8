package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wisdomwell/internal/auth"
	"wisdomwell/internal/config"
	"wisdomwell/internal/models"
	"wisdomwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateBio(ctx context.Context, id uint, bio string) (*models.User, error) {
	args := m.Called(ctx, id, bio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// newTestServer wires a Server around mocked repositories with a fast hasher
// and a fixed signing secret.
func newTestServer(userRepo *MockUserRepository) *Server {
	s := &Server{
		config:   &config.Config{JWTSecret: "test-secret-at-least-32-characters!!", Env: "test"},
		userRepo: userRepo,
		hasher:   auth.NewPasswordHasher(bcrypt.MinCost),
		tokens:   auth.NewTokenService("test-secret-at-least-32-characters!!", time.Hour),
	}
	s.profileService = service.NewProfileService(userRepo)
	return s
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]string) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "laozi",
				"password": "dao-de-jing",
				"bio":      "keeper of the way",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate username",
			body: map[string]string{
				"username": "laozi",
				"password": "dao-de-jing",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.Anything).
					Return(models.NewDuplicateError("Username already exists"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Username too short",
			body: map[string]string{
				"username": "ab",
				"password": "dao-de-jing",
			},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Password too short",
			body: map[string]string{
				"username": "laozi",
				"password": "dao",
			},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Username with spaces",
			body: map[string]string{
				"username": "lao zi",
				"password": "dao-de-jing",
			},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Storage failure is opaque",
			body: map[string]string{
				"username": "laozi",
				"password": "dao-de-jing",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.Anything).
					Return(models.NewInternalError(assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			s := newTestServer(mockRepo)
			app := fiber.New()
			app.Post("/register", s.Register)

			resp := postJSON(t, app, "/register", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRegister_PasswordNeverStoredInPlaintext(t *testing.T) {
	mockRepo := new(MockUserRepository)
	var stored *models.User
	mockRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.User)
		}).
		Return(nil)

	s := newTestServer(mockRepo)
	app := fiber.New()
	app.Post("/register", s.Register)

	resp := postJSON(t, app, "/register", map[string]string{
		"username": "laozi",
		"password": "dao-de-jing",
	})
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, stored)
	assert.NotEqual(t, "dao-de-jing", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("dao-de-jing")))
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("dao-de-jing"), bcrypt.MinCost)
	require.NoError(t, err)
	existing := &models.User{ID: 1, Username: "laozi", Password: string(hashed)}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
		wantToken      bool
	}{
		{
			name: "Success",
			body: map[string]string{"username": "laozi", "password": "dao-de-jing"},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "laozi").Return(existing, nil)
			},
			expectedStatus: http.StatusOK,
			wantToken:      true,
		},
		{
			name: "Wrong password",
			body: map[string]string{"username": "laozi", "password": "not-the-way"},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "laozi").Return(existing, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown user",
			body: map[string]string{"username": "nobody", "password": "dao-de-jing"},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "nobody").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing fields",
			body:           map[string]string{"username": "laozi"},
			mockSetup:      func(repo *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			s := newTestServer(mockRepo)
			app := fiber.New()
			app.Post("/login", s.Login)

			resp := postJSON(t, app, "/login", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body := decodeBody(t, resp)
			if tt.wantToken {
				assert.NotEmpty(t, body["accessToken"])
			} else {
				assert.Empty(t, body["accessToken"])
			}
		})
	}
}

func TestLogin_UniformFailureResponses(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("dao-de-jing"), bcrypt.MinCost)
	require.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByUsername", mock.Anything, "laozi").
		Return(&models.User{ID: 1, Username: "laozi", Password: string(hashed)}, nil)
	mockRepo.On("GetByUsername", mock.Anything, "nobody").Return(nil, nil)

	s := newTestServer(mockRepo)
	app := fiber.New()
	app.Post("/login", s.Login)

	wrongPassword := postJSON(t, app, "/login", map[string]string{
		"username": "laozi", "password": "not-the-way",
	})
	unknownUser := postJSON(t, app, "/login", map[string]string{
		"username": "nobody", "password": "dao-de-jing",
	})

	// Identical status and body for both failure modes: no username enumeration.
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)
	assert.Equal(t, decodeBody(t, wrongPassword), decodeBody(t, unknownUser))
}
