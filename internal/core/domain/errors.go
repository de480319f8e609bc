package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrInvalidRequest          ErrorCode = "invalid_request"
	ErrDoctorNotFound          ErrorCode = "doctor_not_found"
	ErrPatientNotFound         ErrorCode = "patient_not_found"
	ErrAppointmentNotFound     ErrorCode = "appointment_not_found"
	ErrNoAppointmentsGenerated ErrorCode = "no_appointments_generated"
	ErrNoAppointmentsFound     ErrorCode = "no_appointments_found"
	ErrAlreadyOnBreak          ErrorCode = "already_on_break"
	ErrNoPatientSelected       ErrorCode = "no_patient_selected"
	ErrNotOwner                ErrorCode = "not_owner"
	ErrInvalidRange            ErrorCode = "invalid_range"
	ErrNoRole                  ErrorCode = "no_role"
)

// Error - доменная ошибка с кодом и человекочитаемым сообщением.
// Все ошибки бизнес-логики возвращаются в таком виде, транспортный слой
// превращает их в ответ с списком сообщений
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// AsDomainError извлекает доменную ошибку из цепочки ошибок
func AsDomainError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
