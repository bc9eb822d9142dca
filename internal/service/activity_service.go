package service

import (
	"aura_edu_backend/internal/config"
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/util"
	"aura_edu_backend/pkg/htmldiff"
	"aura_edu_backend/pkg/htmllint"
	"aura_edu_backend/pkg/logger"
	"aura_edu_backend/pkg/monitoring"
	"aura_edu_backend/pkg/tracing"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	feedbackDiffLines = 3
	maxHints          = 3
)

// AchievementChecker 返回本次新解锁的徽章
type AchievementChecker interface {
	Evaluate(ctx context.Context, userID uint) ([]model.Achievement, error)
}

type ActivityService struct {
	ActivityRepo   ActivityStore
	SubmissionRepo SubmissionStore
	UserRepo       UserStore
	Achievements   AchievementChecker
	Cfg            config.ActivityConfig
}

func NewActivityService(activityRepo ActivityStore, submissionRepo SubmissionStore, userRepo UserStore, achievements AchievementChecker, cfg config.ActivityConfig) *ActivityService {
	return &ActivityService{
		ActivityRepo:   activityRepo,
		SubmissionRepo: submissionRepo,
		UserRepo:       userRepo,
		Achievements:   achievements,
		Cfg:            cfg,
	}
}

type CodeRequest struct {
	Code string `json:"code"`
}

type LintResult struct {
	Issues   []htmllint.Issue `json:"issues"`
	Blocking []htmllint.Issue `json:"blocking"`
}

type SubmitResult struct {
	Submission       *model.Submission      `json:"submission"`
	Score            int                    `json:"score"`
	PassThreshold    int                    `json:"passThreshold"`
	IsCompleted      bool                   `json:"is_completed"`
	CompletionStatus model.CompletionStatus `json:"completion_status"`
	FirstCompletion  bool                   `json:"firstCompletion"`
	XPAwarded        int                    `json:"xpAwarded"`
	Feedback         string                 `json:"feedback"`
	Hints            []string               `json:"hints"`
	Differences      []htmldiff.LineDiff    `json:"differences"`
	LintErrors       []htmllint.Issue       `json:"lintErrors"`
	NewAchievements  []model.Achievement    `json:"newAchievements"`
}

type ActivityStatus struct {
	ActivityID       uint                   `json:"activityId"`
	Attempts         int                    `json:"attempts"`
	BestScore        int                    `json:"bestScore"`
	IsCompleted      bool                   `json:"is_completed"`
	CompletionStatus model.CompletionStatus `json:"completion_status,omitempty"`
	BestSubmission   *model.Submission      `json:"bestSubmission,omitempty"`
	LastSubmission   *model.Submission      `json:"lastSubmission,omitempty"`
}

func (s *ActivityService) Lint(code string) LintResult {
	issues := htmllint.Lint(code)
	return LintResult{Issues: issues, Blocking: htmllint.Blocking(issues)}
}

func (s *ActivityService) GetActivity(ctx context.Context, id uint) (*model.Activity, error) {
	activity, err := s.ActivityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrActivityNotFound)
	}
	return activity, nil
}

func (s *ActivityService) threshold(a *model.Activity) int {
	if a.PassThreshold > 0 {
		return a.PassThreshold
	}
	return s.Cfg.PassThreshold
}

func (s *ActivityService) xpFor(a *model.Activity) int {
	if a.XP > 0 {
		return a.XP
	}
	return s.Cfg.DefaultXP
}

// Submit 评分一次提交：相似度即得分，达到阈值即完成；lint 结果只作为提示返回。
// 完成状态总是显式写入，首次完成（activity_completions 新插入一行）时发放经验并检查徽章。
func (s *ActivityService) Submit(ctx context.Context, userID, activityID uint, code string) (*SubmitResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, util.ErrEmptySubmission
	}
	if len(code) > util.MaxSubmissionBytes {
		return nil, util.ErrSubmissionTooLarge
	}

	ctx, span := tracing.StartSpan(ctx, "activity.submit",
		attribute.Int("activity.id", int(activityID)),
		attribute.Int("user.id", int(userID)))
	defer span.End()

	activity, err := s.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	if err := checkComparable(activity.ExpectedHTML, code); err != nil {
		return nil, err
	}

	lint := s.Lint(code)
	score := htmldiff.Similarity(activity.ExpectedHTML, code)
	threshold := s.threshold(activity)
	completed := score >= threshold

	status := model.StatusFailed
	if completed {
		status = model.StatusCompleted
	}

	diffs := htmldiff.DiffLines(activity.ExpectedHTML, code)
	lintJSON, err := json.Marshal(lint.Blocking)
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{
		ActivityID:       activityID,
		UserID:           userID,
		Code:             code,
		Score:            score,
		IsCompleted:      completed,
		CompletionStatus: status,
		Feedback:         buildFeedback(score, threshold, completed, diffs, lint.Blocking),
		LintErrors:       datatypes.JSON(lintJSON),
	}
	if err := s.SubmissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("save submission: %w", err)
	}

	span.SetAttributes(attribute.Int("submission.score", score), attribute.Bool("submission.completed", completed))
	monitoring.ObserveSubmission(string(status), score)

	result := &SubmitResult{
		Submission:       submission,
		Score:            score,
		PassThreshold:    threshold,
		IsCompleted:      completed,
		CompletionStatus: status,
		Feedback:         submission.Feedback,
		Hints:            buildHints(diffs, lint.Blocking),
		Differences:      diffs,
		LintErrors:       lint.Blocking,
		NewAchievements:  []model.Achievement{},
	}

	firstCompletion := false
	if completed {
		firstCompletion, err = s.SubmissionRepo.MarkCompleted(ctx, userID, activityID, submission.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("record completion: %w", err)
		}
	}

	if firstCompletion {
		result.FirstCompletion = true
		result.XPAwarded = s.xpFor(activity)
		if err := s.UserRepo.AddXP(ctx, userID, result.XPAwarded); err != nil {
			return nil, fmt.Errorf("add activity xp: %w", err)
		}
		if s.Achievements != nil {
			awarded, err := s.Achievements.Evaluate(ctx, userID)
			if err != nil {
				logger.Log.Warn("Achievement evaluation failed", zap.Uint("userID", userID), zap.Error(err))
			}
			if len(awarded) > 0 {
				result.NewAchievements = awarded
			}
		}
	}

	logger.Log.Info("Activity submitted",
		zap.Uint("userID", userID),
		zap.Uint("activityID", activityID),
		zap.Int("score", score),
		zap.String("status", string(status)))
	return result, nil
}

// Status 汇总用户在某个练习上的全部尝试
func (s *ActivityService) Status(ctx context.Context, userID, activityID uint) (*ActivityStatus, error) {
	if _, err := s.GetActivity(ctx, activityID); err != nil {
		return nil, err
	}
	list, err := s.SubmissionRepo.ListByUserAndActivity(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}

	status := &ActivityStatus{ActivityID: activityID, Attempts: len(list)}
	if len(list) == 0 {
		return status, nil
	}

	status.LastSubmission = &list[0]
	best := &list[0]
	for i := range list {
		sub := &list[i]
		if sub.IsCompleted {
			status.IsCompleted = true
		}
		// 已完成的提交优先，其次按分数
		if (sub.IsCompleted && !best.IsCompleted) || (sub.IsCompleted == best.IsCompleted && sub.Score > best.Score) {
			best = sub
		}
	}
	status.BestSubmission = best
	status.BestScore = best.Score
	status.CompletionStatus = model.StatusFailed
	if status.IsCompleted {
		status.CompletionStatus = model.StatusCompleted
	}
	return status, nil
}

func (s *ActivityService) ListSubmissions(ctx context.Context, activityID uint, page, limit int) ([]model.Submission, int64, error) {
	return s.SubmissionRepo.ListByActivity(ctx, activityID, page, limit)
}

// checkComparable 限制编辑距离矩阵的规模，超出按提交过大处理
func checkComparable(expected, actual string) error {
	if htmldiff.Cells(expected, actual) > util.MaxCompareCells {
		return util.ErrSubmissionTooLarge
	}
	return nil
}

func buildFeedback(score, threshold int, completed bool, diffs []htmldiff.LineDiff, blocking []htmllint.Issue) string {
	var b strings.Builder
	if completed {
		fmt.Fprintf(&b, "Great work! Your output matches the expected result at %d%%.", score)
		return b.String()
	}

	fmt.Fprintf(&b, "Your output matches the expected result at %d%%; %d%% is needed to pass.", score, threshold)
	if len(blocking) > 0 {
		fmt.Fprintf(&b, " The editor also flagged %d possible syntax problem(s).", len(blocking))
	}
	for i, d := range diffs {
		if i == feedbackDiffLines {
			fmt.Fprintf(&b, "\n...and %d more differing line(s).", len(diffs)-feedbackDiffLines)
			break
		}
		fmt.Fprintf(&b, "\nLine %d: expected %q, got %q.", d.LineNumber, d.ExpectedLine, d.ActualLine)
	}
	return b.String()
}

func buildHints(diffs []htmldiff.LineDiff, blocking []htmllint.Issue) []string {
	hints := []string{}
	for _, issue := range blocking {
		if len(hints) == maxHints {
			return hints
		}
		hints = append(hints, fmt.Sprintf("Line %d: %s", issue.Line, issue.Message))
	}
	for _, d := range diffs {
		if len(hints) == maxHints {
			break
		}
		switch d.Kind {
		case htmldiff.KindAdded:
			hints = append(hints, fmt.Sprintf("Line %d is missing: %s", d.LineNumber, strings.TrimSpace(d.ExpectedLine)))
		case htmldiff.KindRemoved:
			hints = append(hints, fmt.Sprintf("Line %d is not expected, try removing it", d.LineNumber))
		default:
			hints = append(hints, fmt.Sprintf("Check line %d against the expected output", d.LineNumber))
		}
	}
	return hints
}
