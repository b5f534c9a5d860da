package service

import (
	"time"

	"github.com/Andrics/Beyond-Earth/pkg/model"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Countdown decomposes the interval from now until target into whole days,
// hours, minutes and seconds, computed over milliseconds. A nil target or a
// target at or before now yields all zeros.
func Countdown(now time.Time, target *time.Time) model.CountdownParts {
	if target == nil {
		return model.CountdownParts{}
	}

	diff := target.Sub(now).Milliseconds()
	if diff <= 0 {
		return model.CountdownParts{}
	}

	return model.CountdownParts{
		Days:    diff / msPerDay,
		Hours:   (diff % msPerDay) / msPerHour,
		Minutes: (diff % msPerHour) / msPerMinute,
		Seconds: (diff % msPerMinute) / msPerSecond,
	}
}
