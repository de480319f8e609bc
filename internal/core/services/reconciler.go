package services

import (
	"fmt"
	"time"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
)

// reconcileResult - итог сверки кандидатов с существующими слотами.
// ordered хранит указатели: после фиксации в хранилище вставленные слоты
// получают ID, и итоговый список это видит
type reconcileResult struct {
	inserts   []*domain.Appointment
	updates   []domain.Appointment
	ordered   []*domain.Appointment
	conflicts []string
}

// reconcile сверяет окна-кандидаты с существующими слотами врача.
// Для каждого кандидата в порядке времени:
//   - время свободно - создаем новый слот;
//   - время занято и кандидат перерыв, а слот без пациента - идемпотентно
//     помечаем существующий слот перерывом;
//   - иначе слот не трогаем и пишем конфликт, существующий слот все равно
//     попадает в итоговый список
func reconcile(candidates []domain.CandidateSlot, existing []domain.Appointment, now time.Time) reconcileResult {
	result := reconcileResult{
		inserts:   make([]*domain.Appointment, 0, len(candidates)),
		updates:   make([]domain.Appointment, 0),
		ordered:   make([]*domain.Appointment, 0, len(candidates)),
		conflicts: make([]string, 0),
	}

	// Существующие слоты ищем по точному времени начала: уникальность
	// (doctorId, startTime) гарантируется хранилищем
	existingByStart := make(map[int64]*domain.Appointment, len(existing))
	for i := range existing {
		existingByStart[existing[i].StartTime.UnixNano()] = &existing[i]
	}

	for _, candidate := range candidates {
		occupied, exists := existingByStart[candidate.StartTime.UnixNano()]
		if !exists {
			note := ""
			if candidate.Break {
				note = domain.CoffeeBreakNote
			}
			appointment := &domain.Appointment{
				Note:      note,
				Date:      now,
				StartTime: candidate.StartTime,
				EndTime:   candidate.EndTime,
				DoctorID:  candidate.DoctorID,
			}
			result.inserts = append(result.inserts, appointment)
			result.ordered = append(result.ordered, appointment)
			continue
		}

		if candidate.Break && !occupied.IsScheduled() {
			// Идемпотентное повышение до перерыва, дубликат не создаем
			occupied.Note = domain.CoffeeBreakNote
			result.updates = append(result.updates, *occupied)
		} else {
			result.conflicts = append(result.conflicts, fmt.Sprintf(
				"Couldn't add appointment with id: %d and startTime: %s because another appointment is already created with same start time.",
				occupied.ID, occupied.StartTime.Format("2006-01-02 15:04:05"),
			))
		}
		result.ordered = append(result.ordered, occupied)
	}

	return result
}
