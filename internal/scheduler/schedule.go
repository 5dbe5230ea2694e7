package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
)

// parser accepts standard 5-field expressions and descriptors such as
// "@daily" or "@every 24h".
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule checks that schedule is a cron expression the scheduler can run.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// NextRunTime returns the first activation of schedule after from.
func NextRunTime(schedule string, from time.Time) (*time.Time, error) {
	sched, err := parser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(from)
	return &next, nil
}
