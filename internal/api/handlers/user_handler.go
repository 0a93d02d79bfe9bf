package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
	"github.com/taskflow-dev/taskflow/pkg/security/auth"
)

var log = logrus.New()

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	service    user.Service
	jwtService *auth.JWTService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(service user.Service, jwtService *auth.JWTService) *UserHandler {
	return &UserHandler{service: service, jwtService: jwtService}
}

func userErrorStatus(err error) int {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrEmailTaken), errors.Is(err, user.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrPasswordNeedsDigit),
		errors.Is(err, auth.ErrPasswordNeedsUpper):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateUser godoc
// @Summary Create a new user
// @Description Register a new user with a unique email and username
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User creation request"
// @Success 201 {object} dto.UserResponse "User created successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Email or username already taken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	validatedModel, exists := c.Get("validated_model")

	if exists {
		if validatedPtr, ok := validatedModel.(*dto.CreateUserRequest); ok {
			req = *validatedPtr
		} else {
			log.Errorf("Invalid model type: %T, expected *dto.CreateUserRequest", validatedModel)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	created, err := h.service.CreateUser(c.Request.Context(), user.CreateUserInput{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		c.JSON(userErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": UserToResponse(created)})
}

// Login godoc
// @Summary Authenticate a user
// @Description Verify credentials and return a signed access token
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Access token and user details"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /api/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	validatedModel, exists := c.Get("validated_model")

	if exists {
		if validatedPtr, ok := validatedModel.(*dto.LoginRequest); ok {
			req = *validatedPtr
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	usr, err := h.service.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		log.Errorf("Authentication failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process login"})
		return
	}

	token, err := h.jwtService.GenerateUserToken(usr.ID, usr.Email, usr.Username)
	if err != nil {
		log.Errorf("Failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.jwtService.TokenDuration()),
		User:      *UserToResponse(usr),
	}})
}

// Logout godoc
// @Summary Log out the current user
// @Description Invalidate the presented access token
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Logged out"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	tokenString := c.GetString("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
		return
	}

	claims, err := h.jwtService.ValidateUserToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	auth.GetTokenBlacklist().AddToBlacklist(tokenString, claims.ExpiresAt.Time)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "logged out"}})
}

// RefreshToken godoc
// @Summary Refresh an access token
// @Description Return a new token when the presented one is close to expiry
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.RefreshResponse "Refreshed token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/users/refresh [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	tokenString := c.GetString("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
		return
	}

	refreshed, err := h.jwtService.RefreshToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.RefreshResponse{Token: refreshed}})
}

// GetUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID" format(uuid)
// @Success 200 {object} dto.UserResponse "User details"
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	usr, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(userErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": UserToResponse(usr)})
}

// GetUserByEmail godoc
// @Summary Get a user by email address
// @Tags users
// @Produce json
// @Param email path string true "Email address"
// @Success 200 {object} dto.UserResponse "User details"
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/users/email/{email} [get]
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	usr, err := h.service.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(userErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": UserToResponse(usr)})
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number (0-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.UserListResponse "Paginated users"
// @Router /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))

	users, total, err := h.service.ListUsers(c.Request.Context(), user.UserFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.UserListResponse{
		Users:      make([]dto.UserResponse, 0, len(users)),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}
	for i := range users {
		resp.Users = append(resp.Users, *UserToResponse(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ListActiveUsers godoc
// @Summary List active users
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserListResponse "Active users"
// @Router /api/users/list/active [get]
func (h *UserHandler) ListActiveUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))

	users, total, err := h.service.ListActiveUsers(c.Request.Context(), user.UserFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.UserListResponse{
		Users:      make([]dto.UserResponse, 0, len(users)),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}
	for i := range users {
		resp.Users = append(resp.Users, *UserToResponse(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// UpdateUser godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID" format(uuid)
// @Param user body dto.UpdateUserRequest true "User update request"
// @Success 200 {object} dto.UserResponse "Updated user"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 409 {object} map[string]string "Email or username already taken"
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	var req dto.UpdateUserRequest
	validatedModel, exists := c.Get("validated_model")
	if exists {
		if validatedPtr, ok := validatedModel.(*dto.UpdateUserRequest); ok {
			req = *validatedPtr
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	updated, err := h.service.UpdateUser(c.Request.Context(), id, user.UpdateUserInput{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		IsActive: req.IsActive,
	})
	if err != nil {
		c.JSON(userErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": UserToResponse(updated)})
}

// DeactivateUser godoc
// @Summary Deactivate a user
// @Description Mark the user inactive without deleting the record
// @Tags users
// @Produce json
// @Param id path string true "User ID" format(uuid)
// @Success 200 {object} dto.UserResponse "Deactivated user"
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/users/{id}/deactivate [patch]
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	usr, err := h.service.DeactivateUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(userErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": UserToResponse(usr)})
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path string true "User ID" format(uuid)
// @Success 204 "User deleted"
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		c.JSON(userErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
