package services

import (
	"strings"
	"time"

	"pawBack/internal/models"
)

// NormalizeScheduleFields folds the deprecated start_time / scheduled_date
// input fields into the availability schedule. Older clients still send the
// start/end-time representation; the persisted row only ever carries the
// schedule structure. Isolated here so the shim can be deleted once no
// deprecated clients remain.
func NormalizeScheduleFields(base *models.AvailabilitySchedule, startTime, scheduledDate string) models.AvailabilitySchedule {
	var schedule models.AvailabilitySchedule
	if base != nil {
		schedule = *base
	}

	date := scheduledDate
	if date == "" {
		date = startTime
	}
	if date == "" {
		return schedule
	}

	schedule.ScheduledDate = date

	note := "Scheduled for " + humanDate(date)
	if schedule.Notes == "" {
		schedule.Notes = note
	} else if !strings.Contains(schedule.Notes, note) {
		schedule.Notes = schedule.Notes + "; " + note
	}
	return schedule
}

func humanDate(value string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("January 2, 2006 at 15:04")
		}
	}
	return value
}
