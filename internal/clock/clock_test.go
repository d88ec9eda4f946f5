package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceDayRollsMonthsAndYears(t *testing.T) {
	c := New(1, 2024)
	require.Equal(t, GameDate{Day: 1, Month: 1, Year: 2024}, c.Now())

	// January has 31 days; the 31st advance crosses into February.
	for i := 0; i < 30; i++ {
		assert.False(t, c.AdvanceDay())
	}
	assert.True(t, c.AdvanceDay())
	assert.Equal(t, GameDate{Day: 1, Month: 2, Year: 2024}, c.Now())
	assert.Equal(t, 31, c.TotalDaysElapsed)
	assert.Equal(t, 1, c.TotalMonthsElapsed)
}

func TestAdvanceDayLeapFebruary(t *testing.T) {
	c := New(2, 2024)
	for i := 0; i < 28; i++ {
		require.False(t, c.AdvanceDay(), "2024 February has 29 days")
	}
	require.Equal(t, 29, c.CurrentDay)
	require.True(t, c.AdvanceDay())
	require.Equal(t, GameDate{Day: 1, Month: 3, Year: 2024}, c.Now())
}

func TestAdvanceDayNonLeapFebruary(t *testing.T) {
	c := New(2, 2023)
	for i := 0; i < 27; i++ {
		require.False(t, c.AdvanceDay())
	}
	require.Equal(t, 28, c.CurrentDay)
	require.True(t, c.AdvanceDay())
	require.Equal(t, GameDate{Day: 1, Month: 3, Year: 2023}, c.Now())
}

func TestAdvanceDayYearBoundary(t *testing.T) {
	c := New(12, 2023)
	c.CurrentDay = 31
	require.True(t, c.AdvanceDay())
	assert.Equal(t, GameDate{Day: 1, Month: 1, Year: 2024}, c.Now())
	assert.Equal(t, 1, c.YearsElapsed())
}

func TestAddMonthsClampsDay(t *testing.T) {
	// Jan 31 plus one month lands on Feb 29 in a leap year.
	d := GameDate{Day: 31, Month: 1, Year: 2024}
	assert.Equal(t, GameDate{Day: 29, Month: 2, Year: 2024}, d.AddMonths(1))

	d = GameDate{Day: 31, Month: 1, Year: 2023}
	assert.Equal(t, GameDate{Day: 28, Month: 2, Year: 2023}, d.AddMonths(1))

	d = GameDate{Day: 15, Month: 11, Year: 2023}
	assert.Equal(t, GameDate{Day: 15, Month: 2, Year: 2024}, d.AddMonths(3))
}

func TestMonthsBetween(t *testing.T) {
	from := GameDate{Day: 1, Month: 3, Year: 2023}
	to := GameDate{Day: 20, Month: 7, Year: 2024}
	assert.Equal(t, 16, MonthsBetween(from, to))
	assert.Equal(t, -16, MonthsBetween(to, from))
}

func TestDeadlinePressureBuckets(t *testing.T) {
	cases := []struct {
		name     string
		days     int
		severity DeadlineSeverity
		want     int
	}{
		{"past due critical", -5, SeverityCritical, 100},
		{"week out critical", 5, SeverityCritical, 90},
		{"month out critical", 20, SeverityCritical, 70},
		{"quarter out critical", 60, SeverityCritical, 40},
		{"distant critical", 200, SeverityCritical, 10},
		{"week out major", 5, SeverityMajor, 72},
		{"week out minor", 5, SeverityMinor, 45},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(6, 2024)
			date := c.Now()
			for i := 0; i < tc.days; i++ {
				date = nextDay(date)
			}
			if tc.days < 0 {
				// Back up past the current date.
				date = GameDate{Day: 10, Month: 5, Year: 2024}
			}
			c.AddDeadline(Deadline{ID: "d", Label: "test", Date: date, Severity: tc.severity})
			assert.Equal(t, tc.want, c.UpdateDeadlinePressure())
		})
	}
}

func TestDeadlinePressureTakesWorstDeadline(t *testing.T) {
	c := New(6, 2024)
	c.AddDeadline(Deadline{ID: "far", Date: GameDate{Day: 1, Month: 6, Year: 2025}, Severity: SeverityCritical})
	c.AddDeadline(Deadline{ID: "near", Date: GameDate{Day: 3, Month: 6, Year: 2024}, Severity: SeverityCritical})
	assert.Equal(t, 90, c.UpdateDeadlinePressure())

	c.RemoveDeadline("near")
	assert.Equal(t, 10, c.UpdateDeadlinePressure())
}

func TestNoDeadlinesZeroPressure(t *testing.T) {
	c := New(1, 2024)
	assert.Equal(t, 0, c.UpdateDeadlinePressure())
}

func TestEffectiveTickInterval(t *testing.T) {
	c := New(1, 2024)
	base := 3 * time.Second

	assert.Equal(t, 3*time.Second, c.EffectiveTickInterval(base))

	c.SetSpeed(Speed2x)
	assert.Equal(t, 1500*time.Millisecond, c.EffectiveTickInterval(base))

	// High pressure stretches the interval.
	c.SetSpeed(Speed1x)
	c.DeadlinePressure = 60
	assert.Equal(t, 4500*time.Millisecond, c.EffectiveTickInterval(base))

	c.DeadlinePressure = 90
	assert.Equal(t, 9*time.Second, c.EffectiveTickInterval(base))
}

func TestPauseResumeKeepsSpeed(t *testing.T) {
	c := New(1, 2024)
	c.SetSpeed(Speed4x)
	c.Resume()
	assert.Equal(t, FlowFaster, c.Mode)

	c.Pause()
	assert.True(t, c.Paused())

	c.TogglePause()
	assert.Equal(t, FlowFaster, c.Mode)
}

func TestQuietPeriod(t *testing.T) {
	c := New(3, 2024)
	c.StartQuietPeriod(45)
	require.True(t, c.QuietPeriod)
	require.Equal(t, 45, c.QuietPeriodDays)
	require.NotNil(t, c.QuietPeriodStart)

	c.EndQuietPeriod()
	assert.False(t, c.QuietPeriod)
	assert.Nil(t, c.QuietPeriodStart)
}
