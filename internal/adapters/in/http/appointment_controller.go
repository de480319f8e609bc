package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/his-appointment-scheduler/internal/config"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/in"
	"github.com/suchimauz/his-appointment-scheduler/internal/utils"
)

type AppointmentController struct {
	useCase in.AppointmentUseCase
	cfg     *config.Config
}

func NewAppointmentController(useCase in.AppointmentUseCase, cfg *config.Config) *AppointmentController {
	return &AppointmentController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *AppointmentController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(basicAuth(c.cfg))
	{
		api.POST("/appointments/generate", c.generateAppointments)
		api.GET("/appointments", c.listAppointments)
		api.GET("/appointments/period", c.listAppointmentsInPeriod)
		api.GET("/appointments/:id", c.getAppointment)
		api.POST("/appointments/schedule", c.scheduleAppointment)
		api.PUT("/appointments/:id", c.updateAppointment)
		api.POST("/appointments/:id/complete", c.completeAppointment)
		api.DELETE("/appointments/:id", c.deleteAppointment)
	}
}

type GenerateAppointmentsRequest struct {
	DoctorID    string `json:"doctorId" binding:"required"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
	Duration    int    `json:"duration" binding:"required"`
	HoursPerDay int    `json:"hoursPerDay" binding:"required"`
}

type ScheduleAppointmentRequest struct {
	AppointmentID int64  `json:"appointmentId" binding:"required"`
	PatientID     string `json:"patientId"`
	Note          string `json:"note"`
}

type UpdateAppointmentRequest struct {
	Note      string  `json:"note"`
	PatientID *string `json:"patientId"`
}

type CompleteAppointmentRequest struct {
	Note string `json:"note"`
}

type PeriodRequest struct {
	UserID    string `form:"userId"`
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

func (c *AppointmentController) appointmentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid appointment ID format."}})
		return 0, false
	}
	return id, true
}

func (c *AppointmentController) generateAppointments(ctx *gin.Context) {
	var req GenerateAppointmentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	startDate, err := utils.ParseDate(req.StartDate, c.cfg.Location())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid start date format."}})
		return
	}
	endDate, err := utils.ParseDate(req.EndDate, c.cfg.Location())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid end date format."}})
		return
	}

	result, err := c.useCase.CreateAppointments(ctx.Request.Context(), in.GenerateAppointmentsRequest{
		DoctorID:    req.DoctorID,
		StartDate:   startDate,
		EndDate:     endDate,
		Duration:    req.Duration,
		HoursPerDay: req.HoursPerDay,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	// Единственный ответ, где результат и конфликты сосуществуют
	ctx.JSON(http.StatusOK, gin.H{
		"result":    result.Appointments,
		"conflicts": result.Conflicts,
	})
}

func (c *AppointmentController) getAppointment(ctx *gin.Context) {
	id, ok := c.appointmentID(ctx)
	if !ok {
		return
	}

	appointment, err := c.useCase.GetAppointment(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondResult(ctx, appointment)
}

func (c *AppointmentController) listAppointments(ctx *gin.Context) {
	appointments, err := c.useCase.ListAppointments(ctx.Request.Context(), callerRole(ctx), callerID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondResult(ctx, appointments)
}

func (c *AppointmentController) listAppointmentsInPeriod(ctx *gin.Context) {
	var req PeriodRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	startDate, err := utils.ParseDate(req.StartDate, c.cfg.Location())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid start date format."}})
		return
	}
	endDate, err := utils.ParseDate(req.EndDate, c.cfg.Location())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid end date format."}})
		return
	}

	appointments, err := c.useCase.ListAppointmentsInPeriod(ctx.Request.Context(), in.AppointmentFilter{
		UserID:    req.UserID,
		StartDate: startDate,
		EndDate:   endDate,
	}, callerRole(ctx), callerID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondResult(ctx, appointments)
}

func (c *AppointmentController) scheduleAppointment(ctx *gin.Context) {
	var req ScheduleAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	appointment, err := c.useCase.ScheduleAppointment(ctx.Request.Context(), in.ScheduleAppointmentRequest{
		AppointmentID: req.AppointmentID,
		PatientID:     req.PatientID,
		Note:          req.Note,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondResult(ctx, appointment)
}

func (c *AppointmentController) updateAppointment(ctx *gin.Context) {
	id, ok := c.appointmentID(ctx)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	appointment, err := c.useCase.UpdateAppointment(ctx.Request.Context(), in.UpdateAppointmentRequest{
		AppointmentID: id,
		Note:          req.Note,
		PatientID:     req.PatientID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondResult(ctx, appointment)
}

func (c *AppointmentController) completeAppointment(ctx *gin.Context) {
	id, ok := c.appointmentID(ctx)
	if !ok {
		return
	}

	var req CompleteAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	appointment, err := c.useCase.CompleteAppointment(ctx.Request.Context(), in.CompleteAppointmentRequest{
		AppointmentID: id,
		Note:          req.Note,
	}, callerID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondResult(ctx, appointment)
}

func (c *AppointmentController) deleteAppointment(ctx *gin.Context) {
	id, ok := c.appointmentID(ctx)
	if !ok {
		return
	}

	confirmation, err := c.useCase.DeleteAppointment(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondResult(ctx, confirmation)
}
