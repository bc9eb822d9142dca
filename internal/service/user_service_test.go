package service

import (
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/util"
	"aura_edu_backend/pkg/cache"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userFixture struct {
	svc         *UserService
	users       *fakeUsers
	submissions *fakeSubmissions
	sessions    *fakeSessions
	messages    *fakeAuraBot
	uploader    *fakeUploader
	store       cache.Store
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:       newFakeUsers(model.User{Name: "Ada", Email: "ada@example.com", Role: model.Student}),
		submissions: &fakeSubmissions{},
		sessions:    &fakeSessions{},
		messages:    &fakeAuraBot{},
		uploader:    &fakeUploader{},
		store:       cache.NewMemoryStore(),
	}
	f.svc = NewUserService(f.users, f.submissions, f.sessions, f.messages, newFakeAchievements(), f.uploader, f.store)
	f.svc.now = func() time.Time { return time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *userFixture) seed(ctx context.Context) {
	f.submissions.Create(ctx, &model.Submission{UserID: 1, ActivityID: 1, Code: "<p>hi</p>", CompletionStatus: model.StatusFailed})
	f.sessions.Create(ctx, &model.LearningSession{UserID: 1, Topic: "forms", Duration: 60})
	f.messages.Create(ctx, &model.AuraBotMessage{UserID: 1, SessionID: "s", Question: "q", Answer: "a"})
	f.store.Set(ctx, "learningAnalytics_1", []byte("{}"), time.Hour)
}

func TestSettings(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	settings, err := f.svc.GetSettings(ctx, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(settings))

	_, err = f.svc.UpdateSettings(ctx, 1, json.RawMessage(`[1,2]`))
	assert.ErrorIs(t, err, util.ErrInvalidSettings)

	_, err = f.svc.UpdateSettings(ctx, 1, json.RawMessage(`{"theme":"dark","autoSave":true}`))
	require.NoError(t, err)

	settings, err = f.svc.GetSettings(ctx, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark","autoSave":true}`, string(settings))

	_, err = f.svc.GetSettings(ctx, 42)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestStorageUsage(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.seed(ctx)

	usage, err := f.svc.StorageUsage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), usage.Submissions)
	assert.Equal(t, int64(1), usage.Sessions)
	assert.Equal(t, int64(1), usage.AssistantMessages)
	assert.Positive(t, usage.ApproxBytes)
}

func TestExportUploadsJSON(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.seed(ctx)

	res, err := f.svc.Export(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "exports/user_1_20240314120000.json", res.Filename)
	assert.Equal(t, "/uploads/exports/user_1_20240314120000.json", res.URL)

	raw := f.uploader.files[res.Filename]
	require.NotEmpty(t, raw)
	assert.Equal(t, len(raw), res.Bytes)

	var export UserExport
	require.NoError(t, json.Unmarshal(raw, &export))
	assert.Len(t, export.Submissions, 1)
	assert.Len(t, export.Sessions, 1)
	assert.Len(t, export.Messages, 1)
	assert.Equal(t, "ada@example.com", export.User.Email)
}

func TestClearData(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.seed(ctx)
	f.submissions.Create(ctx, &model.Submission{UserID: 2, ActivityID: 1, CompletionStatus: model.StatusFailed})

	require.NoError(t, f.svc.ClearData(ctx, 1))

	assert.Len(t, f.submissions.list, 1)
	assert.Empty(t, f.sessions.list)
	assert.Empty(t, f.messages.list)
	_, err := f.store.Get(ctx, "learningAnalytics_1")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestAdminUpdateUser(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	disabled := true

	user, err := f.svc.UpdateUser(ctx, 1, AdminUpdateUserRequest{Role: model.Admin, Disabled: &disabled})
	require.NoError(t, err)
	assert.Equal(t, model.Admin, user.Role)
	assert.True(t, user.Disabled)
	assert.Equal(t, "Ada", user.Name)

	_, err = f.svc.UpdateUser(ctx, 1, AdminUpdateUserRequest{Role: "owner"})
	assert.ErrorIs(t, err, util.ErrInvalidRole)

	assert.ErrorIs(t, f.svc.DeleteUser(ctx, 99), util.ErrUserNotFound)
}

func TestResetPassword(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	temp, err := f.svc.ResetPassword(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, temp, 16)

	user, _ := f.users.FindByID(ctx, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(temp)))
}
