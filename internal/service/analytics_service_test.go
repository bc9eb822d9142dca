package service

import (
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/util"
	"aura_edu_backend/pkg/cache"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyEvaluator struct {
	calls []uint
}

func (s *spyEvaluator) EvaluateQuietly(_ context.Context, userID uint) []model.Achievement {
	s.calls = append(s.calls, userID)
	return nil
}

func newAnalyticsFixture(now *time.Time) (*AnalyticsService, *fakeSessions, cache.Store, *spyEvaluator) {
	sessions := &fakeSessions{}
	store := cache.NewMemoryStore()
	spy := &spyEvaluator{}
	svc := NewAnalyticsService(sessions, store, spy, time.UTC, 30*time.Minute)
	svc.now = func() time.Time { return *now }
	return svc, sessions, store, spy
}

func TestStartAndEndSession(t *testing.T) {
	now := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	svc, _, _, spy := newAnalyticsFixture(&now)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, 1, StartSessionRequest{Topic: " forms "})
	require.NoError(t, err)
	assert.Equal(t, "forms", session.Topic)
	assert.Nil(t, session.EndTime)

	now = now.Add(25 * time.Minute)
	ended, err := svc.EndSession(ctx, 1, session.ID, EndSessionRequest{QuestionsAsked: 3})
	require.NoError(t, err)
	assert.Equal(t, 25*60, ended.Duration)
	assert.Equal(t, 3, ended.QuestionsAsked)
	require.NotNil(t, ended.EndTime)

	_, err = svc.EndSession(ctx, 1, session.ID, EndSessionRequest{})
	assert.ErrorIs(t, err, util.ErrSessionEnded)

	_, err = svc.EndSession(ctx, 2, session.ID, EndSessionRequest{})
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	assert.Equal(t, []uint{1, 1}, spy.calls)
}

func TestRecordSessionValidation(t *testing.T) {
	now := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	svc, _, _, _ := newAnalyticsFixture(&now)

	_, err := svc.RecordSession(context.Background(), 1, RecordSessionRequest{Date: now, DurationSeconds: 0})
	assert.ErrorIs(t, err, util.ErrInvalidDuration)
}

func TestDashboardServesSnapshotUntilChange(t *testing.T) {
	now := time.Date(2024, 3, 14, 18, 0, 0, 0, time.UTC)
	svc, sessions, store, _ := newAnalyticsFixture(&now)
	ctx := context.Background()

	_, err := svc.RecordSession(ctx, 1, RecordSessionRequest{
		Date: now.Add(-2 * time.Hour), DurationSeconds: 1800, Topic: "tables", QuestionsAsked: 2,
	})
	require.NoError(t, err)

	_, err = store.Get(ctx, "learningAnalytics_1")
	require.NoError(t, err)

	d, err := svc.Dashboard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalSessions)
	assert.Equal(t, 30, d.TotalMinutes)
	assert.Equal(t, 2, d.TotalQuestions)
	assert.Equal(t, 1, d.Streaks.Current)

	// rows written behind the service's back are not visible until the next change
	sessions.Create(ctx, &model.LearningSession{UserID: 1, StartTime: now.Add(-time.Hour), Duration: 600})
	d, err = svc.Dashboard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalSessions)

	_, err = svc.RecordSession(ctx, 1, RecordSessionRequest{Date: now.Add(-30 * time.Minute), DurationSeconds: 600})
	require.NoError(t, err)
	d, err = svc.Dashboard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalSessions)
	assert.Equal(t, 50, d.TotalMinutes)
}

func TestDashboardRecomputesAfterInvalidate(t *testing.T) {
	now := time.Date(2024, 3, 14, 18, 0, 0, 0, time.UTC)
	svc, sessions, _, _ := newAnalyticsFixture(&now)
	ctx := context.Background()

	d, err := svc.Dashboard(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, d.TotalSessions)
	assert.Len(t, d.Daily, 14)

	sessions.Create(ctx, &model.LearningSession{UserID: 1, StartTime: now.AddDate(0, 0, -1), Duration: 1200})
	require.NoError(t, svc.Invalidate(ctx, 1))

	d, err = svc.Dashboard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalSessions)
	assert.Equal(t, 1, d.Streaks.Current)
}
