package domain

import "time"

// Note-значение, которым помечаются слоты перерыва. Слот с таким note
// не может быть назначен пациенту.
const CoffeeBreakNote = "Coffee Break"

type Appointment struct {
	ID        int64     `json:"id"`
	Note      string    `json:"note"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Completed bool      `json:"completed"`
	DoctorID  string    `json:"doctorId"`
	PatientID *string   `json:"patientId"`
}

// IsBreak проверяет, является ли слот перерывом
func (a Appointment) IsBreak() bool {
	return a.Note == CoffeeBreakNote
}

// IsScheduled проверяет, назначен ли слот пациенту
func (a Appointment) IsScheduled() bool {
	return a.PatientID != nil && *a.PatientID != ""
}

// CandidateSlot - кандидат на слот, произведенный генератором до сверки
// с существующими записями
type CandidateSlot struct {
	DoctorID  string
	StartTime time.Time
	EndTime   time.Time
	Break     bool
}

// GenerationResult - результат одной генерации: итоговый список слотов
// (новые + уже существующие в порядке генерации) и отчет о конфликтах.
// Единственный случай, когда результат и ошибки сосуществуют
type GenerationResult struct {
	Appointments []Appointment `json:"appointments"`
	Conflicts    []string      `json:"conflicts"`
}
