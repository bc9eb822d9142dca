package service

import (
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/util"
	"aura_edu_backend/pkg/cache"
	"aura_edu_backend/pkg/logger"
	"aura_edu_backend/pkg/monitoring"
	"aura_edu_backend/pkg/tracing"
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const quotaKeyPrefix = "aurabot:quota:"

type AuraBotService struct {
	Repo         AuraBotStore
	AI           ChatCompleter
	Cache        cache.Store
	Prompts      *AuraBotPrompts
	Achievements AchievementEvaluator

	quota    atomic.Int64
	quotaTTL time.Duration
}

func NewAuraBotService(repo AuraBotStore, ai ChatCompleter, store cache.Store, prompts *AuraBotPrompts, achievements AchievementEvaluator, quota int, quotaTTL time.Duration) *AuraBotService {
	if prompts == nil {
		prompts = DefaultAuraBotPrompts()
	}
	s := &AuraBotService{
		Repo:         repo,
		AI:           ai,
		Cache:        store,
		Prompts:      prompts,
		Achievements: achievements,
		quotaTTL:     quotaTTL,
	}
	s.SetQuota(quota)
	return s
}

type AskRequest struct {
	SessionID    string `json:"sessionId"`
	Question     string `json:"question" binding:"required"`
	HTML         string `json:"html"`
	Instructions string `json:"instructions"`
	Feedback     string `json:"feedback"`
}

type AskResponse struct {
	Answer             string `json:"answer,omitempty"`
	RemainingQuestions int    `json:"remainingQuestions"`
	Quota              int    `json:"quota"`
	SessionID          string `json:"sessionId"`
}

type QuotaStatus struct {
	SessionID string `json:"sessionId"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
	Quota     int    `json:"quota"`
}

// SetQuota 支持配置热更新，非正数被忽略
func (s *AuraBotService) SetQuota(n int) {
	if n > 0 {
		s.quota.Store(int64(n))
	}
}

func (s *AuraBotService) Quota() int {
	return int(s.quota.Load())
}

// quotaKey 按用户隔离，知道别人的会话ID也无法占用其配额
func quotaKey(userID uint, sessionID string) string {
	return fmt.Sprintf("%s%d:%s", quotaKeyPrefix, userID, sessionID)
}

// Ask 先原子地占用一次配额，超额直接拒绝且不调用上游；上游失败时归还配额
func (s *AuraBotService) Ask(ctx context.Context, userID uint, req AskRequest) (*AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, util.ErrEmptyQuestion
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	quota := s.Quota()
	resp := &AskResponse{Quota: quota, SessionID: sessionID}

	ctx, span := tracing.StartSpan(ctx, "aurabot.ask", attribute.String("aurabot.session", sessionID))
	defer span.End()

	used, err := s.Cache.Incr(ctx, quotaKey(userID, sessionID), s.quotaTTL)
	if err != nil {
		return nil, fmt.Errorf("reserve quota: %w", err)
	}
	if used > int64(quota) {
		s.release(ctx, userID, sessionID)
		monitoring.ObserveQuestion("quota_exceeded")
		resp.RemainingQuestions = 0
		return resp, util.ErrQuotaExceeded
	}

	messages, err := s.buildMessages(ctx, userID, sessionID, question, req)
	if err != nil {
		s.release(ctx, userID, sessionID)
		return nil, err
	}

	answer, err := s.AI.Chat(ctx, messages)
	if err != nil {
		s.release(ctx, userID, sessionID)
		monitoring.ObserveQuestion("error")
		logger.Log.Error("AuraBot upstream failed", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", util.ErrAssistantFailed, err)
	}

	msg := &model.AuraBotMessage{
		UserID:      userID,
		SessionID:   sessionID,
		Question:    question,
		Answer:      answer,
		HadHTML:     strings.TrimSpace(req.HTML) != "",
		HadFeedback: strings.TrimSpace(req.Feedback) != "",
	}
	if err := s.Repo.Create(ctx, msg); err != nil {
		logger.Log.Warn("Failed to store AuraBot message", zap.Error(err))
	}

	monitoring.ObserveQuestion("answered")
	if s.Achievements != nil {
		s.Achievements.EvaluateQuietly(ctx, userID)
	}

	resp.Answer = answer
	resp.RemainingQuestions = max(0, quota-int(used))
	return resp, nil
}

func (s *AuraBotService) QuotaStatus(ctx context.Context, userID uint, sessionID string) (*QuotaStatus, error) {
	used, err := s.Cache.Count(ctx, quotaKey(userID, sessionID))
	if err != nil {
		return nil, err
	}
	quota := s.Quota()
	return &QuotaStatus{
		SessionID: sessionID,
		Used:      min(int(used), quota),
		Remaining: max(0, quota-int(used)),
		Quota:     quota,
	}, nil
}

func (s *AuraBotService) History(ctx context.Context, userID uint, sessionID string, limit int) ([]model.AuraBotMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Repo.ListBySession(ctx, userID, sessionID, limit)
}

func (s *AuraBotService) buildMessages(ctx context.Context, userID uint, sessionID, question string, req AskRequest) ([]AIChatMessage, error) {
	messages := []AIChatMessage{{Role: "system", Content: s.Prompts.System()}}

	history, err := s.Repo.ListBySession(ctx, userID, sessionID, s.Prompts.HistoryTurns)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	for _, h := range history {
		messages = append(messages,
			AIChatMessage{Role: "user", Content: h.Question},
			AIChatMessage{Role: "assistant", Content: h.Answer})
	}

	messages = append(messages, AIChatMessage{
		Role:    "user",
		Content: s.Prompts.UserMessage(question, req.HTML, req.Instructions, req.Feedback),
	})
	return messages, nil
}

func (s *AuraBotService) release(ctx context.Context, userID uint, sessionID string) {
	if _, err := s.Cache.Decr(context.WithoutCancel(ctx), quotaKey(userID, sessionID)); err != nil {
		logger.Log.Warn("Failed to release AuraBot quota", zap.String("sessionID", sessionID), zap.Error(err))
	}
}
