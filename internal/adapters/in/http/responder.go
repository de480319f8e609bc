package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
)

// Коды доменных ошибок к HTTP-статусам
var errorStatuses = map[domain.ErrorCode]int{
	domain.ErrInvalidRequest:          http.StatusBadRequest,
	domain.ErrInvalidRange:            http.StatusBadRequest,
	domain.ErrNoRole:                  http.StatusBadRequest,
	domain.ErrNoPatientSelected:       http.StatusBadRequest,
	domain.ErrAlreadyOnBreak:          http.StatusBadRequest,
	domain.ErrDoctorNotFound:          http.StatusNotFound,
	domain.ErrPatientNotFound:         http.StatusNotFound,
	domain.ErrAppointmentNotFound:     http.StatusNotFound,
	domain.ErrNoAppointmentsGenerated: http.StatusNotFound,
	domain.ErrNoAppointmentsFound:     http.StatusNotFound,
	domain.ErrNotOwner:                http.StatusForbidden,
}

// respondError превращает ошибку в конверт со списком сообщений.
// Неожиданные сбои хранилища наружу не протекают
func respondError(ctx *gin.Context, err error) {
	if domainErr, ok := domain.AsDomainError(err); ok {
		status, exists := errorStatuses[domainErr.Code]
		if !exists {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"errors": []string{domainErr.Message}})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{"errors": []string{"Internal server error."}})
}

func respondResult(ctx *gin.Context, result interface{}) {
	ctx.JSON(http.StatusOK, gin.H{"result": result})
}
