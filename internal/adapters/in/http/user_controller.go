package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/his-appointment-scheduler/internal/config"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/in"
)

type UserController struct {
	useCase in.UserUseCase
	cfg     *config.Config
}

func NewUserController(useCase in.UserUseCase, cfg *config.Config) *UserController {
	return &UserController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *UserController) RegisterRoutes(router *gin.Engine) {
	// Управление пользователями доступно только регистратуре
	api := router.Group("/api/v1")
	api.Use(basicAuth(c.cfg), requireTechnician())
	{
		api.POST("/doctors", c.registerDoctor)
		api.DELETE("/doctors/:id", c.removeDoctor)
		api.POST("/patients", c.registerPatient)
		api.DELETE("/patients/:id", c.removePatient)
	}
}

type RegisterUserRequest struct {
	FullName string `json:"fullName" binding:"required"`
}

func (c *UserController) registerDoctor(ctx *gin.Context) {
	var req RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	doctor, err := c.useCase.RegisterDoctor(ctx.Request.Context(), req.FullName)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondResult(ctx, doctor)
}

func (c *UserController) registerPatient(ctx *gin.Context) {
	var req RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	patient, err := c.useCase.RegisterPatient(ctx.Request.Context(), req.FullName)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondResult(ctx, patient)
}

func (c *UserController) removeDoctor(ctx *gin.Context) {
	confirmation, err := c.useCase.RemoveDoctor(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondResult(ctx, confirmation)
}

func (c *UserController) removePatient(ctx *gin.Context) {
	confirmation, err := c.useCase.RemovePatient(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondResult(ctx, confirmation)
}
