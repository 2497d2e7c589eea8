package server

import (
	"log/slog"

	"wisdomwell/internal/middleware"
	"wisdomwell/internal/models"
	"wisdomwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /register
// @Summary Register a new account
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string,bio=string} true "Registration request"
// @Success 201 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		middleware.RegisterAttempts.WithLabelValues("bad_request").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Validate input before touching storage
	if err := validation.ValidateUsername(req.Username); err != nil {
		middleware.RegisterAttempts.WithLabelValues("bad_request").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		middleware.RegisterAttempts.WithLabelValues("bad_request").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateBio(req.Bio); err != nil {
		middleware.RegisterAttempts.WithLabelValues("bad_request").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		middleware.RegisterAttempts.WithLabelValues("internal_error").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Password: hashedPassword,
		Bio:      req.Bio,
	}

	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		if appErr, ok := createErr.(*models.AppError); ok && appErr.Code == "DUPLICATE" {
			middleware.RegisterAttempts.WithLabelValues("duplicate").Inc()
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
		// Storage detail stays in the server log; the client gets an opaque body.
		middleware.Logger.ErrorContext(c.UserContext(), "user creation failed",
			slog.String("error", createErr.Error()))
		middleware.RegisterAttempts.WithLabelValues("internal_error").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(createErr))
	}

	middleware.RegisterAttempts.WithLabelValues("success").Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
	})
}

// Login handles POST /login
// @Summary Authenticate and receive a bearer token
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{accessToken=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		middleware.LoginAttempts.WithLabelValues("bad_request").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		middleware.LoginAttempts.WithLabelValues("bad_request").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		middleware.LoginAttempts.WithLabelValues("internal_error").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Unknown user and wrong password return identical responses so the
	// endpoint cannot be used to enumerate usernames.
	if user == nil || !s.hasher.Verify(req.Password, user.Password) {
		middleware.LoginAttempts.WithLabelValues("unauthorized").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		middleware.LoginAttempts.WithLabelValues("internal_error").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.LoginAttempts.WithLabelValues("success").Inc()
	return c.JSON(fiber.Map{
		"accessToken": token,
	})
}
