package service

import (
	"aura_edu_backend/internal/util"
	"aura_edu_backend/pkg/htmldiff"
	"context"
)

// ComparisonService 为后台提供期望输出与实际输出的对比报告
type ComparisonService struct {
	SubmissionRepo SubmissionStore
	ActivityRepo   ActivityStore
}

func NewComparisonService(submissionRepo SubmissionStore, activityRepo ActivityStore) *ComparisonService {
	return &ComparisonService{SubmissionRepo: submissionRepo, ActivityRepo: activityRepo}
}

type CompareRequest struct {
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

type SubmissionComparison struct {
	SubmissionID string          `json:"submissionId"`
	ActivityID   uint            `json:"activityId"`
	UserID       uint            `json:"userId"`
	StoredScore  int             `json:"storedScore"`
	Report       htmldiff.Report `json:"report"`
}

func (s *ComparisonService) Compare(req CompareRequest) (htmldiff.Report, error) {
	if err := checkComparable(req.Expected, req.Actual); err != nil {
		return htmldiff.Report{}, err
	}
	return htmldiff.Compare(req.Expected, req.Actual), nil
}

func (s *ComparisonService) CompareSubmission(ctx context.Context, submissionID string) (*SubmissionComparison, error) {
	sub, err := s.SubmissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		return nil, notFound(err, util.ErrSubmissionNotFound)
	}
	activity, err := s.ActivityRepo.FindByID(ctx, sub.ActivityID)
	if err != nil {
		return nil, notFound(err, util.ErrActivityNotFound)
	}
	if err := checkComparable(activity.ExpectedHTML, sub.Code); err != nil {
		return nil, err
	}
	return &SubmissionComparison{
		SubmissionID: sub.ID,
		ActivityID:   sub.ActivityID,
		UserID:       sub.UserID,
		StoredScore:  sub.Score,
		Report:       htmldiff.Compare(activity.ExpectedHTML, sub.Code),
	}, nil
}
