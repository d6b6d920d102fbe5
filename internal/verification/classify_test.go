package verification

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"supportdir/internal/directory/models"
)

var classifyTime = time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)

func orgModified(daysAgo float64, verified bool) *models.Organisation {
	return &models.Organisation{
		ID:                    uuid.New(),
		Name:                  "Test Org",
		IsVerified:            verified,
		LastSubstantiveUpdate: classifyTime.Add(-time.Duration(daysAgo * 24 * float64(time.Hour))),
		Administrators: []models.Administrator{
			{Name: "Ada", Email: "ada@example.org", IsSelected: true},
		},
	}
}

func TestElapsedDays(t *testing.T) {
	tests := []struct {
		name string
		last time.Time
		want int
	}{
		{"same instant", classifyTime, 0},
		{"just under one day", classifyTime.Add(-24*time.Hour + time.Millisecond), 0},
		{"exactly one day", classifyTime.Add(-24 * time.Hour), 1},
		{"89.9 days is day 89", classifyTime.Add(-time.Duration(89.9 * 24 * float64(time.Hour))), 89},
		{"exactly 90 days", classifyTime.Add(-90 * 24 * time.Hour), 90},
		{"90 days across zones", classifyTime.Add(-90 * 24 * time.Hour).In(time.FixedZone("X", 5*3600)), 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ElapsedDays(classifyTime, tt.last))
		})
	}
}

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		daysAgo  float64
		verified bool
		remind   bool
		unverify bool
	}{
		{"fresh listing", 0, true, false, false},
		{"day 89", 89, true, false, false},
		{"day 90 exact", 90, true, true, false},
		{"day 90.5 still day 90", 90.5, true, true, false},
		{"day 91", 91, true, false, false},
		{"day 99", 99, true, false, false},
		{"day 100 verified", 100, true, false, true},
		{"day 105 verified", 105, true, false, true},
		{"day 105 already unverified", 105, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(orgModified(tt.daysAgo, tt.verified), classifyTime, 90, 100)
			assert.False(t, d.Skipped)
			assert.Equal(t, tt.remind, d.Remind, "remind")
			assert.Equal(t, tt.unverify, d.Unverify, "unverify")
		})
	}
}

func TestClassify_SkipsWithoutRecipient(t *testing.T) {
	t.Run("no selected administrator", func(t *testing.T) {
		org := orgModified(105, true)
		org.Administrators = []models.Administrator{
			{Name: "Ada", Email: "ada@example.org"},
			{Name: "Ben", Email: "ben@example.org"},
		}
		d := Classify(org, classifyTime, 90, 100)
		assert.True(t, d.Skipped)
		assert.False(t, d.Remind)
		assert.False(t, d.Unverify)
	})

	t.Run("selected administrator without email", func(t *testing.T) {
		org := orgModified(90, true)
		org.Administrators = []models.Administrator{{Name: "Ada", Email: "  ", IsSelected: true}}
		d := Classify(org, classifyTime, 90, 100)
		assert.True(t, d.Skipped)
	})
}

func TestDecision_Action(t *testing.T) {
	assert.Equal(t, ActionNone, Decision{}.Action())
	assert.Equal(t, ActionRemind, Decision{Remind: true}.Action())
	assert.Equal(t, ActionUnverify, Decision{Unverify: true}.Action())
	assert.Equal(t, ActionUnverify, Decision{Remind: true, Unverify: true}.Action())
}
