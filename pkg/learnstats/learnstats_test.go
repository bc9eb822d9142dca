package learnstats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 14, 18, 30, 0, 0, time.UTC)

func daysAgo(n int, hour int) time.Time {
	d := now.AddDate(0, 0, -n)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func TestDailyTotals(t *testing.T) {
	sessions := []Session{
		{Date: daysAgo(0, 9), Duration: 30 * time.Minute, QuestionsAsked: 2},
		{Date: daysAgo(0, 14), Duration: 15 * time.Minute, QuestionsAsked: 1},
		{Date: daysAgo(3, 10), Duration: 45 * time.Minute},
		{Date: daysAgo(20, 10), Duration: time.Hour},
	}

	points := DailyTotals(sessions, now, 14)
	require.Len(t, points, 14)

	assert.Equal(t, "2024-03-01", points[0].Date)
	last := points[13]
	assert.Equal(t, "2024-03-14", last.Date)
	assert.Equal(t, 45, last.Minutes)
	assert.Equal(t, 3, last.Questions)
	assert.Equal(t, 2, last.Sessions)

	assert.Equal(t, 45, points[10].Minutes)
	assert.Equal(t, 0, points[11].Minutes)
}

func TestDailyTotalsNoDays(t *testing.T) {
	assert.Empty(t, DailyTotals(nil, now, 0))
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name    string
		days    []int
		current int
		longest int
	}{
		{"empty", nil, 0, 0},
		{"today only", []int{0}, 1, 1},
		{"yesterday run", []int{1, 2, 3}, 3, 3},
		{"broken before yesterday", []int{2, 3, 4, 5}, 0, 4},
		{"today and older run", []int{0, 1, 5, 6, 7, 8}, 2, 4},
		{"duplicates count once", []int{0, 0, 1, 1}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sessions []Session
			for _, d := range tt.days {
				sessions = append(sessions, Session{Date: daysAgo(d, 12), Duration: time.Minute})
			}
			got := Streaks(sessions, now)
			assert.Equal(t, tt.current, got.Current)
			assert.Equal(t, tt.longest, got.Longest)
		})
	}
}

func TestStreaksAcrossMonthBoundary(t *testing.T) {
	sessions := []Session{
		{Date: time.Date(2024, time.February, 28, 8, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, time.February, 29, 8, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)},
	}
	at := time.Date(2024, time.March, 1, 20, 0, 0, 0, time.UTC)
	got := Streaks(sessions, at)
	assert.Equal(t, StreakInfo{Current: 3, Longest: 3}, got)
}

func TestHourlyDistribution(t *testing.T) {
	sessions := []Session{
		{Date: daysAgo(0, 9)},
		{Date: daysAgo(1, 9)},
		{Date: daysAgo(2, 23)},
	}
	hours := HourlyDistribution(sessions, time.UTC)
	assert.Equal(t, 2, hours[9])
	assert.Equal(t, 1, hours[23])
	assert.Equal(t, 0, hours[0])
}

func TestWeeklyTopicProgress(t *testing.T) {
	sessions := []Session{
		{Date: daysAgo(0, 9), Duration: 60 * time.Minute, Topic: "html"},
		{Date: daysAgo(0, 10), Duration: 90 * time.Minute, Topic: "html"},
		{Date: daysAgo(0, 11), Duration: 30 * time.Minute, Topic: "css"},
		{Date: daysAgo(0, 12), Duration: 12 * time.Minute},
	}

	weeks := WeeklyTopicProgress(sessions, now, 2, 120)
	require.Len(t, weeks, 2)
	assert.Empty(t, weeks[0].Topics)

	current := weeks[1]
	assert.Equal(t, "2024-11", current.Week)
	require.Len(t, current.Topics, 3)
	assert.Equal(t, TopicProgress{Topic: "css", Minutes: 30, Progress: 25}, current.Topics[0])
	assert.Equal(t, TopicProgress{Topic: "general", Minutes: 12, Progress: 10}, current.Topics[1])
	assert.Equal(t, TopicProgress{Topic: "html", Minutes: 150, Progress: 100}, current.Topics[2])
}

func TestSummarize(t *testing.T) {
	sessions := []Session{
		{Date: daysAgo(0, 9), Duration: 20 * time.Minute, QuestionsAsked: 1},
		{Date: daysAgo(1, 9), Duration: 40 * time.Minute, QuestionsAsked: 3},
	}
	d := Summarize(sessions, now)
	assert.Equal(t, 2, d.TotalSessions)
	assert.Equal(t, 60, d.TotalMinutes)
	assert.Equal(t, 30, d.AverageMinutes)
	assert.Equal(t, 4, d.TotalQuestions)
	assert.Equal(t, 2, d.ActiveDays)
	assert.Len(t, d.Daily, DefaultDays)
	assert.Len(t, d.WeeklyTopics, DefaultWeeks)
	assert.Equal(t, StreakInfo{Current: 2, Longest: 2}, d.Streaks)
}
