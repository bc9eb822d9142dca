package service

import (
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/util"
	"aura_edu_backend/pkg/cache"
	"aura_edu_backend/pkg/logger"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Uploader 是导出功能所需的存储能力
type Uploader interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

// UserService 处理用户设置、数据导出与后台用户管理
type UserService struct {
	UserRepo        UserStore
	SubmissionRepo  SubmissionStore
	SessionRepo     SessionStore
	AuraBotRepo     AuraBotStore
	AchievementRepo AchievementStore
	Storage         Uploader
	Cache           cache.Store

	now func() time.Time
}

func NewUserService(
	userRepo UserStore,
	submissionRepo SubmissionStore,
	sessionRepo SessionStore,
	auraBotRepo AuraBotStore,
	achievementRepo AchievementStore,
	storage Uploader,
	store cache.Store,
) *UserService {
	return &UserService{
		UserRepo:        userRepo,
		SubmissionRepo:  submissionRepo,
		SessionRepo:     sessionRepo,
		AuraBotRepo:     auraBotRepo,
		AchievementRepo: achievementRepo,
		Storage:         storage,
		Cache:           store,
		now:             time.Now,
	}
}

type StorageUsage struct {
	Submissions       int64 `json:"submissions"`
	Sessions          int64 `json:"sessions"`
	AssistantMessages int64 `json:"assistantMessages"`
	SettingsBytes     int   `json:"settingsBytes"`
	ApproxBytes       int64 `json:"approxBytes"`
}

type ExportResult struct {
	URL         string    `json:"url"`
	Filename    string    `json:"filename"`
	Bytes       int       `json:"bytes"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type UserExport struct {
	User         *model.User             `json:"user"`
	Submissions  []model.Submission      `json:"submissions"`
	Sessions     []model.LearningSession `json:"sessions"`
	Messages     []model.AuraBotMessage  `json:"assistantMessages"`
	Achievements []model.UserAchievement `json:"achievements"`
	ExportedAt   time.Time               `json:"exportedAt"`
}

// swagger:model AdminUpdateUserRequest
type AdminUpdateUserRequest struct {
	Name     string         `json:"name"`
	Role     model.UserRole `json:"role"`
	Disabled *bool          `json:"disabled"`
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) GetSettings(ctx context.Context, userID uint) (datatypes.JSON, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Settings) == 0 {
		return datatypes.JSON("{}"), nil
	}
	return user.Settings, nil
}

// UpdateSettings 整体替换设置，要求是 JSON 对象
func (s *UserService) UpdateSettings(ctx context.Context, userID uint, raw json.RawMessage) (datatypes.JSON, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, util.ErrInvalidSettings
	}
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	settings := datatypes.JSON(raw)
	if err := s.UserRepo.UpdateSettings(ctx, userID, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *UserService) StorageUsage(ctx context.Context, userID uint) (*StorageUsage, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	export, err := s.collect(ctx, user)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(export)
	if err != nil {
		return nil, err
	}
	return &StorageUsage{
		Submissions:       int64(len(export.Submissions)),
		Sessions:          int64(len(export.Sessions)),
		AssistantMessages: int64(len(export.Messages)),
		SettingsBytes:     len(user.Settings),
		ApproxBytes:       int64(len(raw)),
	}, nil
}

// Export 将用户全部学习数据打包为 JSON 并上传到存储
func (s *UserService) Export(ctx context.Context, userID uint) (*ExportResult, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	export, err := s.collect(ctx, user)
	if err != nil {
		return nil, err
	}
	raw, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("exports/user_%d_%s.json", userID, export.ExportedAt.Format("20060102150405"))
	url, err := s.Storage.Upload(ctx, filename, bytes.NewReader(raw), int64(len(raw)), util.MimeJSON)
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	logger.Log.Info("User data exported", zap.Uint("userID", userID), zap.String("file", filename))
	return &ExportResult{URL: url, Filename: filename, Bytes: len(raw), GeneratedAt: export.ExportedAt}, nil
}

// ClearData 删除学习记录、助手历史和分析快照，保留账号、经验和徽章
func (s *UserService) ClearData(ctx context.Context, userID uint) error {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return err
	}
	if err := s.SessionRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	if err := s.SubmissionRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("clear submissions: %w", err)
	}
	if err := s.AuraBotRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("clear assistant history: %w", err)
	}
	if err := s.Cache.Delete(ctx, analyticsKey(userID)); err != nil {
		logger.Log.Warn("Failed to drop analytics snapshot", zap.Uint("userID", userID), zap.Error(err))
	}
	logger.Log.Info("User data cleared", zap.Uint("userID", userID))
	return nil
}

func (s *UserService) collect(ctx context.Context, user *model.User) (*UserExport, error) {
	submissions, err := s.SubmissionRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.SessionRepo.ListByUser(ctx, user.ID, time.Time{})
	if err != nil {
		return nil, err
	}
	messages, err := s.AuraBotRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	achievements, err := s.AchievementRepo.ListEarned(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &UserExport{
		User:         user,
		Submissions:  submissions,
		Sessions:     sessions,
		Messages:     messages,
		Achievements: achievements,
		ExportedAt:   s.now(),
	}, nil
}

// ---- 后台用户管理 ----

func (s *UserService) ListUsers(ctx context.Context, role, search string, page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(ctx, role, search, page, limit)
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, req AdminUpdateUserRequest) (*model.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	switch req.Role {
	case "":
	case model.Student, model.Admin:
		user.Role = req.Role
	default:
		return nil, fmt.Errorf("%w %q", util.ErrInvalidRole, req.Role)
	}
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}
	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword 重置用户密码并返回临时密码
func (s *UserService) ResetPassword(ctx context.Context, id uint) (string, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return "", err
	}

	tempPassword := generateTempPassword()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.Password = string(hashedPassword)
	if err := s.UserRepo.Update(ctx, user); err != nil {
		return "", err
	}
	return tempPassword, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return notFound(s.UserRepo.Delete(ctx, id), util.ErrUserNotFound)
}

func generateTempPassword() string {
	return "tmp-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
