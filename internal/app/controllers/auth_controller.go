package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/services"
	"github.com/yigit/schoolhub/internal/middleware"
	"github.com/yigit/schoolhub/internal/pkg/auth"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService   services.AuthService
	secureCookies bool
	logger        zerolog.Logger
}

// NewAuthController creates a new AuthController. secureCookies marks the auth cookies HTTPS-only.
func NewAuthController(authService services.AuthService, secureCookies bool, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:   authService,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

func (c *AuthController) setAuthCookies(ctx *gin.Context, tokens *auth.TokenPair) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.AccessTokenCookie, tokens.AccessToken, tokens.ExpiresIn, "/", "", c.secureCookies, true)
	ctx.SetCookie(middleware.RefreshTokenCookie, tokens.RefreshToken, tokens.RefreshExpiresIn, "/", "", c.secureCookies, true)
}

func (c *AuthController) clearAuthCookies(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", c.secureCookies, true)
	ctx.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", c.secureCookies, true)
}

func authResponse(result *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Success:      true,
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		ExpiresIn:    result.Tokens.ExpiresIn,
	}
}

// Login handles user login
// @Summary Log in
// @Description Authenticates a user and sets the access_token and refresh_token cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account suspended"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), &req, ctx.ClientIP())
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setAuthCookies(ctx, result.Tokens)
	ctx.JSON(http.StatusOK, authResponse(result))
}

// RefreshToken handles refresh token rotation
// @Summary Refresh tokens
// @Description Reads the refresh token from the cookie or the body, revokes it and issues a new pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh token when no cookie is sent"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse "Missing, revoked, expired or unknown refresh token"
// @Failure 403 {object} dto.ErrorResponse "Account suspended"
// @Router /refresh-token [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	token, _ := ctx.Cookie(middleware.RefreshTokenCookie)
	if token == "" {
		var req dto.RefreshTokenRequest
		// an empty or missing body just leaves the token empty
		_ = ctx.ShouldBindJSON(&req)
		token = req.RefreshToken
	}

	result, err := c.authService.RefreshToken(ctx.Request.Context(), token)
	if err != nil {
		c.clearAuthCookies(ctx)
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setAuthCookies(ctx, result.Tokens)
	ctx.JSON(http.StatusOK, authResponse(result))
}

// Logout handles user logout
// @Summary Log out
// @Description Revokes the presented refresh token and clears both cookies
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	token, _ := ctx.Cookie(middleware.RefreshTokenCookie)

	if err := c.authService.Logout(ctx.Request.Context(), middleware.CurrentActor(ctx), token); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.clearAuthCookies(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Logged out successfully"))
}

// Me returns the authenticated user's profile
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.authService.GetProfile(ctx.Request.Context(), middleware.CurrentActor(ctx).UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UserResponse{Success: true, User: user})
}

// Register handles account creation by an administrator
// @Summary Register a user
// @Description Creates a login account of any role
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterRequest true "Account information"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	ctx.JSON(http.StatusCreated, dto.UserResponse{
		Success: true,
		Message: "User registered successfully",
		User:    user,
	})
}

// ChangePassword handles changing the caller's password
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid new password"
// @Failure 401 {object} dto.ErrorResponse "Wrong current password"
// @Router /change-password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), middleware.CurrentActor(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Password changed successfully"))
}
