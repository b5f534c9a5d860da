package service

import (
	"time"

	"github.com/Andrics/Beyond-Earth/pkg/config"
	"github.com/Andrics/Beyond-Earth/pkg/model"
)

// Evaluate returns the subscription as it should read at the given instant
// and whether the stored record needs to be rewritten. The stored is_active
// flag can go stale because nothing flips it when the end date passes, so
// every read goes through here. Evaluating an already-correct record is a
// no-op, which keeps lazy persistence safe to repeat.
func Evaluate(sub model.Subscription, now time.Time) (model.Subscription, bool) {
	effective := sub.Plan != config.PlanNone &&
		sub.Plan != "" &&
		sub.IsActive &&
		!now.After(sub.EndDate)

	if sub.IsActive == effective {
		return sub, false
	}

	sub.IsActive = effective
	return sub, true
}

// PlanEnd computes the expiry for a plan starting at the given time. Calendar
// arithmetic follows time.AddDate, so a January 31st monthly start normalizes
// past February.
func PlanEnd(plan string, start time.Time) time.Time {
	switch plan {
	case config.PlanMonthly:
		return start.AddDate(0, 1, 0)
	case config.PlanYearly, config.PlanPremium:
		return start.AddDate(1, 0, 0)
	default:
		return start
	}
}
