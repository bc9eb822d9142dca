// Package learnstats turns recorded learning sessions into dashboard chart data.
// Everything is recomputed from the full session list on each call.
package learnstats

import (
	"fmt"
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// Session is one recorded stretch of study.
type Session struct {
	Date           time.Time
	Duration       time.Duration
	Topic          string
	QuestionsAsked int
}

type DailyPoint struct {
	Date      string `json:"date"`
	Minutes   int    `json:"minutes"`
	Questions int    `json:"questions"`
	Sessions  int    `json:"sessions"`
}

type TopicProgress struct {
	Topic    string `json:"topic"`
	Minutes  int    `json:"minutes"`
	Progress int    `json:"progress"`
}

// TopicWeek holds derived per-topic progress for one ISO week. The percentages
// are time-based estimates, not completion records.
type TopicWeek struct {
	Week   string          `json:"week"`
	Topics []TopicProgress `json:"topics"`
}

type StreakInfo struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type Dashboard struct {
	TotalSessions  int          `json:"totalSessions"`
	TotalMinutes   int          `json:"totalMinutes"`
	TotalQuestions int          `json:"totalQuestions"`
	AverageMinutes int          `json:"averageMinutes"`
	ActiveDays     int          `json:"activeDays"`
	Daily          []DailyPoint `json:"daily"`
	WeeklyTopics   []TopicWeek  `json:"weeklyTopics"`
	Hourly         [24]int      `json:"hourly"`
	Streaks        StreakInfo   `json:"streaks"`
	GeneratedAt    time.Time    `json:"generatedAt"`
}

const (
	DefaultDays               = 14
	DefaultWeeks              = 4
	DefaultWeeklyTopicMinutes = 120
)

// DailyTotals returns one point per calendar day for the last days days
// ending today, oldest first. Days without sessions are zero.
func DailyTotals(sessions []Session, now time.Time, days int) []DailyPoint {
	if days <= 0 {
		return []DailyPoint{}
	}

	type acc struct {
		dur       time.Duration
		questions int
		count     int
	}
	byDay := make(map[string]*acc)
	for _, s := range sessions {
		key := dayKey(s.Date, now.Location())
		a, ok := byDay[key]
		if !ok {
			a = &acc{}
			byDay[key] = a
		}
		a.dur += s.Duration
		a.questions += s.QuestionsAsked
		a.count++
	}

	today := startOfDay(now)
	points := make([]DailyPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(dayLayout)
		p := DailyPoint{Date: key}
		if a, ok := byDay[key]; ok {
			p.Minutes = int(a.dur.Minutes())
			p.Questions = a.questions
			p.Sessions = a.count
		}
		points = append(points, p)
	}
	return points
}

// WeeklyTopicProgress derives per-topic progress for the last weeks ISO weeks,
// oldest first. Progress is minutes spent against targetMinutes, capped at 100.
func WeeklyTopicProgress(sessions []Session, now time.Time, weeks, targetMinutes int) []TopicWeek {
	if weeks <= 0 {
		return []TopicWeek{}
	}
	if targetMinutes <= 0 {
		targetMinutes = DefaultWeeklyTopicMinutes
	}

	byWeek := make(map[string]map[string]time.Duration)
	for _, s := range sessions {
		key := weekKey(s.Date.In(now.Location()))
		topics, ok := byWeek[key]
		if !ok {
			topics = make(map[string]time.Duration)
			byWeek[key] = topics
		}
		topic := s.Topic
		if topic == "" {
			topic = "general"
		}
		topics[topic] += s.Duration
	}

	today := startOfDay(now)
	result := make([]TopicWeek, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		key := weekKey(today.AddDate(0, 0, -7*i))
		tw := TopicWeek{Week: key, Topics: []TopicProgress{}}
		for topic, dur := range byWeek[key] {
			minutes := int(dur.Minutes())
			tw.Topics = append(tw.Topics, TopicProgress{
				Topic:    topic,
				Minutes:  minutes,
				Progress: min(100, minutes*100/targetMinutes),
			})
		}
		sort.Slice(tw.Topics, func(a, b int) bool { return tw.Topics[a].Topic < tw.Topics[b].Topic })
		result = append(result, tw)
	}
	return result
}

// HourlyDistribution counts sessions by the hour they started.
func HourlyDistribution(sessions []Session, loc *time.Location) [24]int {
	var hours [24]int
	for _, s := range sessions {
		hours[s.Date.In(loc).Hour()]++
	}
	return hours
}

// Streaks computes the longest run of consecutive calendar days with at least
// one session, and the run that ends today or yesterday. A learner who has not
// studied since before yesterday has a current streak of 0.
func Streaks(sessions []Session, now time.Time) StreakInfo {
	loc := now.Location()
	days := activeDays(sessions, loc)
	if len(days) == 0 {
		return StreakInfo{}
	}

	sorted := make([]time.Time, 0, len(days))
	for _, d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sameDay(sorted[i-1].AddDate(0, 0, 1), sorted[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	today := startOfDay(now)
	anchor := today
	if _, ok := days[today.Format(dayLayout)]; !ok {
		anchor = today.AddDate(0, 0, -1)
		if _, ok := days[anchor.Format(dayLayout)]; !ok {
			return StreakInfo{Current: 0, Longest: longest}
		}
	}

	current := 0
	for d := anchor; ; d = d.AddDate(0, 0, -1) {
		if _, ok := days[d.Format(dayLayout)]; !ok {
			break
		}
		current++
	}

	return StreakInfo{Current: current, Longest: longest}
}

// Summarize builds the full dashboard with default windows.
func Summarize(sessions []Session, now time.Time) Dashboard {
	d := Dashboard{
		TotalSessions: len(sessions),
		Daily:         DailyTotals(sessions, now, DefaultDays),
		WeeklyTopics:  WeeklyTopicProgress(sessions, now, DefaultWeeks, DefaultWeeklyTopicMinutes),
		Hourly:        HourlyDistribution(sessions, now.Location()),
		Streaks:       Streaks(sessions, now),
		ActiveDays:    len(activeDays(sessions, now.Location())),
		GeneratedAt:   now,
	}

	var total time.Duration
	for _, s := range sessions {
		total += s.Duration
		d.TotalQuestions += s.QuestionsAsked
	}
	d.TotalMinutes = int(total.Minutes())
	if len(sessions) > 0 {
		d.AverageMinutes = d.TotalMinutes / len(sessions)
	}
	return d
}

func activeDays(sessions []Session, loc *time.Location) map[string]time.Time {
	days := make(map[string]time.Time)
	for _, s := range sessions {
		d := startOfDay(s.Date.In(loc))
		days[d.Format(dayLayout)] = d
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", year, week)
}
