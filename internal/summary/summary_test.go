package summary

import (
	"testing"
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)

func daysAgo(n int) string {
	return refNow.AddDate(0, 0, -n).Format(domain.DateLayout)
}

func TestSummarize_ExcludesEntriesOlderThanAWeek(t *testing.T) {
	entries := []domain.TaskLog{
		{Date: daysAgo(2), Time: "10:00:00", Task: "recent", Duration: 15},
		{Date: daysAgo(10), Time: "10:00:00", Task: "old", Duration: 30},
	}

	got := Summarize(entries, refNow)

	assert.Equal(t, 15, got.TotalMinutes)
	assert.Equal(t, domain.WeeklyTotal{Hours: 0, Minutes: 15}, got.Weekly)
	// The list itself is not windowed.
	assert.Len(t, got.Entries, 2)
	assert.Equal(t, "recent", got.Entries[0].Task)
}

func TestSummarize_EmptyLog(t *testing.T) {
	got := Summarize(nil, refNow)

	assert.Equal(t, domain.WeeklyTotal{}, got.Weekly)
	assert.Equal(t, 0, got.TotalMinutes)
	require.NotNil(t, got.Entries)
	assert.Empty(t, got.Entries)
}

func TestSummarize_WindowBoundaries(t *testing.T) {
	entries := []domain.TaskLog{
		{Date: daysAgo(0), Duration: 1},
		{Date: daysAgo(6), Duration: 10},
		{Date: daysAgo(7), Duration: 100},
		{Date: refNow.AddDate(0, 0, 1).Format(domain.DateLayout), Duration: 1000},
	}

	got := Summarize(entries, refNow)

	assert.Equal(t, 11, got.TotalMinutes, "today and six days back count, day seven and the future do not")
}

func TestSummarize_MissingOrNegativeDurationCountsAsZero(t *testing.T) {
	entries := []domain.TaskLog{
		{Date: daysAgo(1), Task: "no duration"},
		{Date: daysAgo(1), Task: "negative", Duration: -20},
		{Date: daysAgo(1), Task: "real", Duration: 95},
	}

	got := Summarize(entries, refNow)

	assert.Equal(t, domain.WeeklyTotal{Hours: 1, Minutes: 35}, got.Weekly)
}

func TestSummarize_GarbageDatesIgnored(t *testing.T) {
	entries := []domain.TaskLog{
		{Date: "", Duration: 40},
		{Date: "yesterday", Duration: 40},
		{Date: daysAgo(3), Duration: 5},
	}

	got := Summarize(entries, refNow)

	assert.Equal(t, 5, got.TotalMinutes)
}

func TestDaily_BucketsByDateOldestFirst(t *testing.T) {
	entries := []domain.TaskLog{
		{Date: daysAgo(0), Duration: 25},
		{Date: daysAgo(0), Duration: 25},
		{Date: daysAgo(2), Duration: 50},
		{Date: daysAgo(9), Duration: 500},
	}

	got := Daily(entries, refNow, 7)

	require.Len(t, got, 7)
	assert.Equal(t, daysAgo(6), got[0].Date)
	assert.Equal(t, daysAgo(0), got[6].Date)
	assert.Equal(t, 50, got[6].Minutes)
	assert.Equal(t, 2, got[6].Count)
	assert.Equal(t, 50, got[4].Minutes)
	assert.Equal(t, 0, got[5].Minutes)
}

func TestDaily_NonPositiveDays(t *testing.T) {
	assert.Nil(t, Daily(nil, refNow, 0))
}

func TestRecent_FiltersButKeepsOrder(t *testing.T) {
	entries := []domain.TaskLog{
		{Date: daysAgo(0), Task: "a"},
		{Date: daysAgo(4), Task: "b"},
		{Date: daysAgo(1), Task: "c"},
	}

	got := Recent(entries, refNow, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Task)
	assert.Equal(t, "c", got[1].Task)
	assert.Len(t, Recent(entries, refNow, 0), 3)
}
