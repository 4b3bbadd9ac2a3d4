package controller

import (
	"errors"

	"quizzer_backend/internal/service"
	"quizzer_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ConvocatoryController struct {
	ConvocatoryService *service.ConvocatoryService
}

func NewConvocatoryController(convocatoryService *service.ConvocatoryService) *ConvocatoryController {
	return &ConvocatoryController{ConvocatoryService: convocatoryService}
}

func (c *ConvocatoryController) List(ctx *gin.Context) {
	convocatories, err := c.ConvocatoryService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, convocatories)
}

func (c *ConvocatoryController) Get(ctx *gin.Context) {
	convocatory, err := c.ConvocatoryService.Get(ctx.Param("convocatory_id"))
	if err != nil {
		convocatoryError(ctx, err)
		return
	}
	util.Success(ctx, convocatory)
}

func (c *ConvocatoryController) Create(ctx *gin.Context) {
	var req service.CreateConvocatoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	convocatory, err := c.ConvocatoryService.Create(req)
	if err != nil {
		convocatoryError(ctx, err)
		return
	}
	util.Created(ctx, convocatory)
}

func (c *ConvocatoryController) Update(ctx *gin.Context) {
	var req service.UpdateConvocatoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	convocatory, err := c.ConvocatoryService.Update(ctx.Param("convocatory_id"), req)
	if err != nil {
		convocatoryError(ctx, err)
		return
	}
	util.Success(ctx, convocatory)
}

func (c *ConvocatoryController) Delete(ctx *gin.Context) {
	convocatory, err := c.ConvocatoryService.Delete(ctx.Param("convocatory_id"))
	if err != nil {
		convocatoryError(ctx, err)
		return
	}
	util.Success(ctx, convocatory)
}

func (c *ConvocatoryController) ListSubmissions(ctx *gin.Context) {
	submissions, err := c.ConvocatoryService.ListSubmissions(ctx.Param("convocatory_id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

func (c *ConvocatoryController) GetSubmission(ctx *gin.Context) {
	submission, err := c.ConvocatoryService.GetSubmission(ctx.Param("submission_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "Submission not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submission)
}

func (c *ConvocatoryController) DeleteSubmission(ctx *gin.Context) {
	submission, err := c.ConvocatoryService.DeleteSubmission(ctx.Param("submission_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "Submission not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submission)
}

func convocatoryError(ctx *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx, "Convocatory not found")
		return
	}
	util.LogInternalError(ctx, err)
}
