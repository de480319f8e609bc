package utils

import (
	"fmt"
	"time"
)

// StartCurrentDay возвращает дату с временем 00:00 в той же таймзоне
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает начало следующего дня в той же таймзоне
func StartNextDay(t time.Time) time.Time {
	return StartCurrentDay(t.AddDate(0, 0, 1))
}

// ParseDate парсит дату из строки в формате RFC3339, если не удается, то
// пробует дату со временем без таймзоны, затем дату без времени.
// Для строк без таймзоны используется переданная локация
func ParseDate(str string, location *time.Location) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err != nil {
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, location)
		if err != nil {
			parsedDate, err = time.ParseInLocation("2006-01-02", str, location)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
			}
		}
	}

	return parsedDate, nil
}
