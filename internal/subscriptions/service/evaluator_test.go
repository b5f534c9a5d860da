package service

import (
	"testing"
	"time"

	"github.com/Andrics/Beyond-Earth/pkg/config"
	"github.com/Andrics/Beyond-Earth/pkg/model"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		sub         model.Subscription
		wantActive  bool
		wantChanged bool
	}{
		{
			name: "active within window",
			sub: model.Subscription{
				Plan:      config.PlanMonthly,
				StartDate: now.AddDate(0, 0, -10),
				EndDate:   now.AddDate(0, 0, 20),
				IsActive:  true,
			},
			wantActive:  true,
			wantChanged: false,
		},
		{
			name: "expired but still flagged active",
			sub: model.Subscription{
				Plan:      config.PlanYearly,
				StartDate: now.AddDate(-2, 0, 0),
				EndDate:   now.AddDate(-1, 0, 0),
				IsActive:  true,
			},
			wantActive:  false,
			wantChanged: true,
		},
		{
			name: "plan none flagged active",
			sub: model.Subscription{
				Plan:     config.PlanNone,
				IsActive: true,
			},
			wantActive:  false,
			wantChanged: true,
		},
		{
			name: "valid window but flagged inactive",
			sub: model.Subscription{
				Plan:      config.PlanPremium,
				StartDate: now.AddDate(0, -1, 0),
				EndDate:   now.AddDate(0, 11, 0),
				IsActive:  false,
			},
			wantActive:  false,
			wantChanged: false,
		},
		{
			name: "end date exactly now still active",
			sub: model.Subscription{
				Plan:      config.PlanMonthly,
				StartDate: now.AddDate(0, -1, 0),
				EndDate:   now,
				IsActive:  true,
			},
			wantActive:  true,
			wantChanged: false,
		},
		{
			name:        "zero value subscription",
			sub:         model.Subscription{},
			wantActive:  false,
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Evaluate(tt.sub, now)
			if got.IsActive != tt.wantActive {
				t.Errorf("IsActive = %v, want %v", got.IsActive, tt.wantActive)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}

			// A second evaluation of the corrected record is a no-op.
			again, changedAgain := Evaluate(got, now)
			if changedAgain {
				t.Error("re-evaluating a corrected record should not change it")
			}
			if again != got {
				t.Errorf("re-evaluation altered the record: %+v vs %+v", again, got)
			}
		})
	}
}

func TestPlanEnd(t *testing.T) {
	tests := []struct {
		name  string
		plan  string
		start time.Time
		want  time.Time
	}{
		{
			name:  "monthly adds one month",
			plan:  config.PlanMonthly,
			start: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "monthly from january 31st normalizes",
			plan:  config.PlanMonthly,
			start: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "yearly adds one year",
			plan:  config.PlanYearly,
			start: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "premium adds one year",
			plan:  config.PlanPremium,
			start: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "unknown plan does not extend",
			plan:  "weekly",
			start: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlanEnd(tt.plan, tt.start); !got.Equal(tt.want) {
				t.Errorf("PlanEnd(%s, %v) = %v, want %v", tt.plan, tt.start, got, tt.want)
			}
		})
	}
}
