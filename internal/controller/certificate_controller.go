package controller

import (
	"errors"

	"quizzer_backend/internal/service"
	"quizzer_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

func (c *CertificateController) ListByConvocatory(ctx *gin.Context) {
	certificates, err := c.CertificateService.ListByConvocatory(ctx.Param("convocatory_id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certificates)
}

func (c *CertificateController) Get(ctx *gin.Context) {
	certificate, err := c.CertificateService.Get(ctx.Param("certificate_id"))
	if err != nil {
		certificateError(ctx, err)
		return
	}
	util.Success(ctx, certificate)
}

func (c *CertificateController) Grant(ctx *gin.Context) {
	var req service.GrantCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	certificate, err := c.CertificateService.Grant(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, certificate)
}

func (c *CertificateController) Revoke(ctx *gin.Context) {
	certificate, err := c.CertificateService.Revoke(ctx.Param("certificate_id"))
	if err != nil {
		certificateError(ctx, err)
		return
	}
	util.Success(ctx, certificate)
}

// GetPublic serves the unauthenticated verification page data.
func (c *CertificateController) GetPublic(ctx *gin.Context) {
	certificate, err := c.CertificateService.GetPublic(ctx.Request.Context(), ctx.Param("certificate_id"))
	if err != nil {
		certificateError(ctx, err)
		return
	}
	util.Success(ctx, certificate)
}

func certificateError(ctx *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx, "Certificate not found")
		return
	}
	util.LogInternalError(ctx, err)
}
