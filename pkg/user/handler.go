package user

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/apartment-life/backend/pkg/model"

	"github.com/apartment-life/backend/internal/errdef"
	"github.com/apartment-life/backend/internal/handler"
	"github.com/apartment-life/backend/internal/util"

	"github.com/apartment-life/backend/pkg/token"
	"github.com/gin-gonic/gin"
)

func NewHandler(hostname string, accessTokenExpirationSeconds, refreshTokenExpirationSeconds int, sameSiteMode http.SameSite, userService userService, tokenService tokenService) Handler {
	return Handler{
		hostname:                      hostname,
		accessTokenExpirationSeconds:  accessTokenExpirationSeconds,
		refreshTokenExpirationSeconds: refreshTokenExpirationSeconds,
		sameSiteMode:                  sameSiteMode,
		userService:                   userService,
		tokenService:                  tokenService,
	}
}

type Handler struct {
	hostname                      string
	accessTokenExpirationSeconds  int
	refreshTokenExpirationSeconds int
	sameSiteMode                  http.SameSite
	userService                   userService
	tokenService                  tokenService
}

type userService interface {
	SignUp(ctx context.Context, email, password, name, apartmentNumber string) (*model.User, error)
	ValidateEmail(ctx context.Context, token uuid.UUID) error
	FindById(ctx context.Context, id uint) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	UpdateApartmentNumber(ctx context.Context, id uint, apartmentNumber string) (*model.User, error)
	UpdateRole(ctx context.Context, id uint, role string) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

type tokenService interface {
	GetTokens(user *model.User, previousTokenId string) (*token.Tokens, error)
	ValidateRefreshToken(ctx context.Context, tokenString string) (*token.RefreshTokenData, error)
	SignOut(userId uint) error
}

type SignUpRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,gte=8,lte=128"`
	Name            string `json:"name" binding:"required"`
	ApartmentNumber string `json:"apartmentNumber" binding:"required,apartmentNumber"`
}

// SignUp user
func (h Handler) SignUp(c *gin.Context) {
	// swagger:route POST /users signUp
	//
	// SignUp user
	//
	// Sign up a resident. The account has to be validated via the emailed link
	// before signing in.
	//
	// responses:
	//   201: User
	//   400: Error
	//   409: Error
	//   415: Error
	var request SignUpRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.SignUp(c.Request.Context(), request.Email, request.Password, request.Name, request.ApartmentNumber)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ValidateEmail user
func (h Handler) ValidateEmail(c *gin.Context) {
	// swagger:route GET /users/validate/{token} validateEmail
	//
	// Validate email
	//
	// Validate a resident's email address using the token from the welcome
	// email.
	//
	// responses:
	//   200:
	//   400: Error
	//   404: Error
	emailToken, err := uuid.Parse(c.Param("token"))
	if err != nil {
		_ = c.Error(errdef.NewBadRequest("invalid email token"))
		return
	}

	if err := h.userService.ValidateEmail(c.Request.Context(), emailToken); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusOK)
}

// SignIn user
func (h Handler) SignIn(c *gin.Context) {
	// swagger:route POST /tokens signIn
	//
	// Sign in
	//
	// Sign in using basic authentication and get a token pair. The tokens are
	// also set as cookies.
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   201: Tokens
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	tokens, err := h.tokenService.GetTokens(user, "")
	if err != nil {
		_ = c.Error(err)
		return
	}

	util.SetCookies(c, tokens, h.sameSiteMode, h.hostname, h.accessTokenExpirationSeconds, h.refreshTokenExpirationSeconds)

	c.JSON(http.StatusCreated, tokens)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken user
func (h Handler) RefreshToken(c *gin.Context) {
	// swagger:route POST /refresh refreshToken
	//
	// Refresh tokens
	//
	// Exchange a refresh token for a new token pair. The previous refresh token
	// is invalidated.
	//
	// responses:
	//   201: Tokens
	//   400: Error
	//   401: Error
	//   415: Error
	var request RefreshTokenRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	refreshToken, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), request.RefreshToken)
	if err != nil {
		_ = c.AbortWithError(http.StatusUnauthorized, err)
		return
	}

	user, err := h.userService.FindById(c.Request.Context(), refreshToken.UserId)
	if err != nil {
		if errdef.IsNotFound(err) {
			_ = c.AbortWithError(http.StatusUnauthorized, err)
		} else {
			_ = c.Error(err)
		}
		return
	}

	tokens, err := h.tokenService.GetTokens(user, refreshToken.ID.String())
	if err != nil {
		_ = c.Error(err)
		return
	}

	util.SetCookies(c, tokens, h.sameSiteMode, h.hostname, h.accessTokenExpirationSeconds, h.refreshTokenExpirationSeconds)

	c.JSON(http.StatusCreated, tokens)
}

// Me user
func (h Handler) Me(c *gin.Context) {
	// swagger:route GET /me me
	//
	// User details
	//
	// Current user details
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: User
	//   401: Error
	//   404: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	current, err := h.userService.FindById(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, current)
}

// SignOut user
func (h Handler) SignOut(c *gin.Context) {
	// swagger:route DELETE /users signOut
	//
	// Sign out
	//
	// Sign out the current user. The access token stays technically valid until
	// it expires but can no longer be refreshed.
	//
	// security:
	//	oauth2:
	//
	// responses:
	//	200:
	//	401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.tokenService.SignOut(user.ID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusOK)
}

type UpdateApartmentNumberRequest struct {
	ApartmentNumber string `json:"apartmentNumber" binding:"required,apartmentNumber"`
}

// UpdateApartmentNumber user
func (h Handler) UpdateApartmentNumber(c *gin.Context) {
	// swagger:route PUT /me/apartment-number updateApartmentNumber
	//
	// Update apartment number
	//
	// Update the current user's apartment number. Digits only, at most five
	// characters.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: User
	//   400: Error
	//   401: Error
	//   415: Error
	var request UpdateApartmentNumberRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	updated, err := h.userService.UpdateApartmentNumber(c.Request.Context(), user.ID, request.ApartmentNumber)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=tenant editor admin"`
}

// UpdateRole user
func (h Handler) UpdateRole(c *gin.Context) {
	// swagger:route PUT /users/{id}/role updateUserRole
	//
	// Update role
	//
	// Change a user's role. Only administrators can change roles.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: User
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateRoleRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), id, request.Role)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// FindById user
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /users/{id} findUserById
	//
	// Find user
	//
	// Find a user by its id
	//
	// security:
	//	oauth2:
	//
	// responses:
	//	200: User
	//	400: Error
	//	401: Error
	//	403: Error
	//	404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// FindAll user
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /users findAllUsers
	//
	// Find users
	//
	// Find all users. Only administrators can list users.
	//
	// security:
	//	oauth2:
	//
	// responses:
	//	200: []User
	//	401: Error
	//	403: Error
	users, err := h.userService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Delete user
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /users/{id} deleteUser
	//
	// Delete user
	//
	// Delete user by id
	//
	// Security:
	//	oauth2:
	//
	// Responses:
	//	202:
	//	400: Error
	//	401: Error
	//	403: Error
	//	404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if user.ID == id {
		_ = c.Error(errdef.NewBadRequest("cannot delete the current user"))
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusAccepted)
}
