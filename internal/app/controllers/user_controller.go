package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/services"
	"github.com/yigit/schoolhub/internal/middleware"
	"github.com/yigit/schoolhub/internal/pkg/helpers"
)

// UserController handles login account administration
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

// ListUsers handles the account listing
// @Summary List login accounts
// @Description Returns one page of accounts ordered by email
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role"
// @Param isActive query bool false "Only active or only suspended accounts"
// @Param search query string false "Matches part of the email"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.UserListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var query dto.ListUsersQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	page, limit := helpers.ParsePaginationParams(ctx, helpers.DefaultPageSize)

	users, pagination, err := c.userService.ListUsers(ctx.Request.Context(), query, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UserListResponse{
		Success:    true,
		Users:      users,
		Pagination: pagination,
	})
}

// GetUser retrieves one account by ID
// @Summary Get a login account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /user/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UserResponse{Success: true, User: user})
}

// UpdateUserStatus suspends or reactivates an account
// @Summary Suspend or reactivate a login account
// @Description Suspending an account revokes its refresh tokens. Callers cannot change their own status.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserStatusRequest true "New status"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Own account or missing isActive"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /update-user-status/{id} [put]
func (c *UserController) UpdateUserStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.SetUserStatus(ctx.Request.Context(), middleware.CurrentActor(ctx), id, *req.IsActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "User activated successfully"
	if !user.IsActive {
		message = "User suspended successfully"
		c.logger.Info().Int64("userId", user.ID).Msg("Account suspended")
	}
	ctx.JSON(http.StatusOK, dto.UserResponse{Success: true, Message: message, User: user})
}
