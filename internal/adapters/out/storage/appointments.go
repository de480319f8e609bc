package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/out"
)

const appointmentColumns = `id, note, date, start_time, end_time, completed, doctor_id, patient_id`

func scanAppointment(row interface{ Scan(...interface{}) error }) (*domain.Appointment, error) {
	var (
		appointment domain.Appointment
		date        string
		startTime   string
		endTime     string
		patientID   sql.NullString
	)

	err := row.Scan(
		&appointment.ID,
		&appointment.Note,
		&date,
		&startTime,
		&endTime,
		&appointment.Completed,
		&appointment.DoctorID,
		&patientID,
	)
	if err != nil {
		return nil, err
	}

	if appointment.Date, err = time.Parse(time.RFC3339, date); err != nil {
		return nil, fmt.Errorf("storage.appointment.bad_date: %w", err)
	}
	if appointment.StartTime, err = time.Parse(time.RFC3339, startTime); err != nil {
		return nil, fmt.Errorf("storage.appointment.bad_start_time: %w", err)
	}
	if appointment.EndTime, err = time.Parse(time.RFC3339, endTime); err != nil {
		return nil, fmt.Errorf("storage.appointment.bad_end_time: %w", err)
	}
	if patientID.Valid {
		appointment.PatientID = &patientID.String
	}

	return &appointment, nil
}

func appointmentArgs(appointment domain.Appointment) []interface{} {
	var patientID sql.NullString
	if appointment.PatientID != nil {
		patientID.String = *appointment.PatientID
		patientID.Valid = true
	}

	return []interface{}{
		appointment.Note,
		appointment.Date.Format(time.RFC3339),
		appointment.StartTime.Format(time.RFC3339),
		appointment.EndTime.Format(time.RFC3339),
		appointment.Completed,
		appointment.DoctorID,
		patientID,
	}
}

func (a *SqliteAdapter) queryAppointments(ctx context.Context, query string, args ...interface{}) ([]domain.Appointment, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage.appointments.query_failed: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *appointment)
	}

	return appointments, rows.Err()
}

func (a *SqliteAdapter) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)

	appointment, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return appointment, err
}

func (a *SqliteAdapter) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return a.queryAppointments(ctx,
		`SELECT `+appointmentColumns+` FROM appointments ORDER BY start_time`)
}

func (a *SqliteAdapter) ListDoctorAppointments(ctx context.Context, doctorID string) ([]domain.Appointment, error) {
	return a.queryAppointments(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE doctor_id = ? ORDER BY start_time`, doctorID)
}

func (a *SqliteAdapter) SaveAppointment(ctx context.Context, appointment *domain.Appointment) error {
	result, err := a.db.ExecContext(ctx,
		`INSERT INTO appointments (note, date, start_time, end_time, completed, doctor_id, patient_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		appointmentArgs(*appointment)...)
	if err != nil {
		return fmt.Errorf("storage.appointment.insert_failed: %w", err)
	}

	// Идентификатор присваивает хранилище
	appointment.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("storage.appointment.last_id_failed: %w", err)
	}
	return nil
}

func (a *SqliteAdapter) UpdateAppointment(ctx context.Context, appointment domain.Appointment) error {
	args := append(appointmentArgs(appointment), appointment.ID)
	_, err := a.db.ExecContext(ctx,
		`UPDATE appointments
		 SET note = ?, date = ?, start_time = ?, end_time = ?, completed = ?, doctor_id = ?, patient_id = ?
		 WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("storage.appointment.update_failed: %w", err)
	}
	return nil
}

func (a *SqliteAdapter) DeleteAppointment(ctx context.Context, id int64) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("storage.appointment.delete_failed: %w", err)
	}
	return nil
}

// CommitGeneration применяет пакет генерации одной транзакцией.
// При любой ошибке откатывается весь пакет
func (a *SqliteAdapter) CommitGeneration(ctx context.Context, inserts []*domain.Appointment, updates []domain.Appointment) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.generation.begin_failed: %w", err)
	}
	defer tx.Rollback()

	for _, appointment := range inserts {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO appointments (note, date, start_time, end_time, completed, doctor_id, patient_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			appointmentArgs(*appointment)...)
		if err != nil {
			return fmt.Errorf("storage.generation.insert_failed: %w", err)
		}
		if appointment.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("storage.generation.last_id_failed: %w", err)
		}
	}

	for _, appointment := range updates {
		args := append(appointmentArgs(appointment), appointment.ID)
		if _, err := tx.ExecContext(ctx,
			`UPDATE appointments
			 SET note = ?, date = ?, start_time = ?, end_time = ?, completed = ?, doctor_id = ?, patient_id = ?
			 WHERE id = ?`, args...); err != nil {
			return fmt.Errorf("storage.generation.update_failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.generation.commit_failed: %w", err)
	}

	a.logger.Debug("storage.generation.committed", out.LogFields{
		"inserted": len(inserts),
		"updated":  len(updates),
	})

	return nil
}

func (a *SqliteAdapter) DeleteIncompleteByDoctor(ctx context.Context, doctorID string) error {
	_, err := a.db.ExecContext(ctx,
		`DELETE FROM appointments WHERE doctor_id = ? AND completed = 0`, doctorID)
	if err != nil {
		return fmt.Errorf("storage.appointments.cascade_doctor_failed: %w", err)
	}
	return nil
}

func (a *SqliteAdapter) DeleteIncompleteByPatient(ctx context.Context, patientID string) error {
	_, err := a.db.ExecContext(ctx,
		`DELETE FROM appointments WHERE patient_id = ? AND completed = 0`, patientID)
	if err != nil {
		return fmt.Errorf("storage.appointments.cascade_patient_failed: %w", err)
	}
	return nil
}
