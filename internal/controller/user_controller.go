package controller

import (
	"errors"

	"quizzer_backend/internal/service"
	"quizzer_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

func (c *UserController) List(ctx *gin.Context) {
	users, err := c.UserService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

func (c *UserController) Get(ctx *gin.Context) {
	user, err := c.UserService.Get(ctx.Param("user_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "User not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

func (c *UserController) Create(ctx *gin.Context) {
	var req service.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.Create(req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, util.ErrEmailRegistered.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, user)
}

type UpsertUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Image string `json:"image"`
}

// Upsert backs the sign-in flow: unknown emails become USER accounts,
// known ones get their profile refreshed.
func (c *UserController) Upsert(ctx *gin.Context) {
	var req UpsertUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpsertByEmail(req.Name, req.Email, req.Image)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

func (c *UserController) Update(ctx *gin.Context) {
	var req service.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.Update(ctx.Param("user_id"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "User not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

func (c *UserController) Delete(ctx *gin.Context) {
	user, err := c.UserService.Delete(ctx.Param("user_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "User not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}
