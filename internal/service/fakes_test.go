package service

import (
	"aura_edu_backend/internal/model"
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newFakeUsers(users ...model.User) *fakeUsers {
	f := &fakeUsers{users: map[uint]*model.User{}}
	for i := range users {
		u := users[i]
		f.Create(context.Background(), &u)
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	} else if user.ID > f.nextID {
		f.nextID = user.ID
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) Update(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUsers) AddXP(_ context.Context, userID uint, xp int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.XP += xp
	}
	return nil
}

func (f *fakeUsers) FindTopByXP(_ context.Context, limit int) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []model.User
	for _, u := range f.users {
		if u.Role == model.Student && !u.Disabled {
			list = append(list, *u)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].XP != list[j].XP {
			return list[i].XP > list[j].XP
		}
		return list[i].ID < list[j].ID
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeUsers) UpdateSettings(_ context.Context, userID uint, settings datatypes.JSON) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.Settings = settings
	}
	return nil
}

func (f *fakeUsers) List(_ context.Context, role, search string, page, limit int) ([]model.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []model.User
	for _, u := range f.users {
		if role != "" && string(u.Role) != role {
			continue
		}
		if search != "" && !strings.Contains(u.Name, search) && !strings.Contains(u.Email, search) {
			continue
		}
		list = append(list, *u)
	}
	return list, int64(len(list)), nil
}

type fakeActivities struct {
	items map[uint]*model.Activity
}

func newFakeActivities(list ...model.Activity) *fakeActivities {
	f := &fakeActivities{items: map[uint]*model.Activity{}}
	for i := range list {
		a := list[i]
		f.items[a.ID] = &a
	}
	return f
}

func (f *fakeActivities) Create(_ context.Context, a *model.Activity) error {
	a.ID = uint(len(f.items) + 1)
	f.items[a.ID] = a
	return nil
}

func (f *fakeActivities) FindByID(_ context.Context, id uint) (*model.Activity, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeActivities) Update(_ context.Context, a *model.Activity) error {
	f.items[a.ID] = a
	return nil
}

func (f *fakeActivities) Delete(_ context.Context, id uint) error {
	if _, ok := f.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeActivities) ListByLesson(_ context.Context, lessonID uint) ([]model.Activity, error) {
	var list []model.Activity
	for _, a := range f.items {
		if a.LessonID == lessonID {
			list = append(list, *a)
		}
	}
	return list, nil
}

type fakeSubmissions struct {
	list      []model.Submission
	seq       int
	completed map[[2]uint]time.Time
}

func (f *fakeSubmissions) Create(_ context.Context, s *model.Submission) error {
	f.seq++
	if s.ID == "" {
		s.ID = model.NewID()
	}
	s.CreatedAt = time.Unix(int64(f.seq), 0)
	f.list = append(f.list, *s)
	return nil
}

func (f *fakeSubmissions) FindByID(_ context.Context, id string) (*model.Submission, error) {
	for i := range f.list {
		if f.list[i].ID == id {
			cp := f.list[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubmissions) ListByUserAndActivity(_ context.Context, userID, activityID uint) ([]model.Submission, error) {
	var out []model.Submission
	for i := len(f.list) - 1; i >= 0; i-- {
		s := f.list[i]
		if s.UserID == userID && s.ActivityID == activityID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissions) ListByActivity(_ context.Context, activityID uint, page, limit int) ([]model.Submission, int64, error) {
	var out []model.Submission
	for _, s := range f.list {
		if s.ActivityID == activityID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeSubmissions) MarkCompleted(_ context.Context, userID, activityID uint, at time.Time) (bool, error) {
	if f.completed == nil {
		f.completed = map[[2]uint]time.Time{}
	}
	key := [2]uint{userID, activityID}
	if _, ok := f.completed[key]; ok {
		return false, nil
	}
	f.completed[key] = at
	return true, nil
}

func (f *fakeSubmissions) countDistinct(userID uint, keep func(model.Submission) bool) int64 {
	seen := map[uint]bool{}
	for _, s := range f.list {
		if s.UserID == userID && keep(s) {
			seen[s.ActivityID] = true
		}
	}
	return int64(len(seen))
}

func (f *fakeSubmissions) CountCompletedActivities(_ context.Context, userID uint) (int64, error) {
	return f.countDistinct(userID, func(s model.Submission) bool { return s.IsCompleted }), nil
}

func (f *fakeSubmissions) CountPerfectActivities(_ context.Context, userID uint) (int64, error) {
	return f.countDistinct(userID, func(s model.Submission) bool { return s.IsCompleted && s.Score == 100 }), nil
}

func (f *fakeSubmissions) ListByUser(_ context.Context, userID uint) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range f.list {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissions) CountByUser(ctx context.Context, userID uint) (int64, error) {
	out, _ := f.ListByUser(ctx, userID)
	return int64(len(out)), nil
}

func (f *fakeSubmissions) DeleteByUser(_ context.Context, userID uint) error {
	kept := f.list[:0]
	for _, s := range f.list {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	f.list = kept
	return nil
}

type fakeAchievements struct {
	catalogue []model.Achievement
	earned    []model.UserAchievement
}

func newFakeAchievements() *fakeAchievements {
	f := &fakeAchievements{}
	for i, a := range model.DefaultAchievements {
		a.ID = uint(i + 1)
		f.catalogue = append(f.catalogue, a)
	}
	return f
}

func (f *fakeAchievements) ListAll(context.Context) ([]model.Achievement, error) {
	return f.catalogue, nil
}

func (f *fakeAchievements) ListEarned(_ context.Context, userID uint) ([]model.UserAchievement, error) {
	var out []model.UserAchievement
	for _, ua := range f.earned {
		if ua.UserID == userID {
			out = append(out, ua)
		}
	}
	return out, nil
}

func (f *fakeAchievements) Award(_ context.Context, userID, achievementID uint, at time.Time) (bool, error) {
	for _, ua := range f.earned {
		if ua.UserID == userID && ua.AchievementID == achievementID {
			return false, nil
		}
	}
	f.earned = append(f.earned, model.UserAchievement{ID: uint(len(f.earned) + 1), UserID: userID, AchievementID: achievementID, EarnedAt: at})
	return true, nil
}

func (f *fakeAchievements) DeleteByUser(_ context.Context, userID uint) error {
	kept := f.earned[:0]
	for _, ua := range f.earned {
		if ua.UserID != userID {
			kept = append(kept, ua)
		}
	}
	f.earned = kept
	return nil
}

type fakeSessions struct {
	list []model.LearningSession
}

func (f *fakeSessions) Create(_ context.Context, s *model.LearningSession) error {
	s.ID = uint(len(f.list) + 1)
	f.list = append(f.list, *s)
	return nil
}

func (f *fakeSessions) FindByIDAndUserID(_ context.Context, sessionID, userID uint) (*model.LearningSession, error) {
	for i := range f.list {
		if f.list[i].ID == sessionID && f.list[i].UserID == userID {
			cp := f.list[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSessions) Update(_ context.Context, s *model.LearningSession) error {
	for i := range f.list {
		if f.list[i].ID == s.ID {
			f.list[i] = *s
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeSessions) ListByUser(_ context.Context, userID uint, since time.Time) ([]model.LearningSession, error) {
	var out []model.LearningSession
	for _, s := range f.list {
		if s.UserID == userID && (since.IsZero() || !s.StartTime.Before(since)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessions) CountByUser(ctx context.Context, userID uint) (int64, error) {
	out, _ := f.ListByUser(ctx, userID, time.Time{})
	return int64(len(out)), nil
}

func (f *fakeSessions) DeleteByUser(_ context.Context, userID uint) error {
	kept := f.list[:0]
	for _, s := range f.list {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	f.list = kept
	return nil
}

type fakeAuraBot struct {
	list []model.AuraBotMessage
}

func (f *fakeAuraBot) Create(_ context.Context, msg *model.AuraBotMessage) error {
	msg.ID = uint(len(f.list) + 1)
	f.list = append(f.list, *msg)
	return nil
}

func (f *fakeAuraBot) ListBySession(_ context.Context, userID uint, sessionID string, limit int) ([]model.AuraBotMessage, error) {
	var out []model.AuraBotMessage
	for _, m := range f.list {
		if m.UserID == userID && m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeAuraBot) ListByUser(_ context.Context, userID uint) ([]model.AuraBotMessage, error) {
	var out []model.AuraBotMessage
	for _, m := range f.list {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeAuraBot) CountByUser(ctx context.Context, userID uint) (int64, error) {
	out, _ := f.ListByUser(ctx, userID)
	return int64(len(out)), nil
}

func (f *fakeAuraBot) DeleteByUser(_ context.Context, userID uint) error {
	kept := f.list[:0]
	for _, m := range f.list {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	f.list = kept
	return nil
}

type fakeAI struct {
	answer string
	err    error
	calls  int
	last   []AIChatMessage
}

func (f *fakeAI) Chat(_ context.Context, messages []AIChatMessage) (string, error) {
	f.calls++
	f.last = messages
	return f.answer, f.err
}

type fakeUploader struct {
	files map[string][]byte
}

func (f *fakeUploader) Upload(_ context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if f.files == nil {
		f.files = map[string][]byte{}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", err
	}
	f.files[filename] = buf.Bytes()
	return "/uploads/" + filename, nil
}
