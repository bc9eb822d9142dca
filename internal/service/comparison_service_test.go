package service

import (
	"aura_edu_backend/internal/model"
	"aura_edu_backend/internal/util"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareSubmission(t *testing.T) {
	a := model.Activity{ExpectedHTML: "<ul>\n<li>a</li>\n</ul>"}
	a.ID = 3
	subs := &fakeSubmissions{}
	ctx := context.Background()
	sub := &model.Submission{ActivityID: 3, UserID: 1, Code: "<ul>\n<li>b</li>\n</ul>", Score: 90}
	subs.Create(ctx, sub)

	svc := NewComparisonService(subs, newFakeActivities(a))
	cmp, err := svc.CompareSubmission(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, cmp.SubmissionID)
	assert.Equal(t, 90, cmp.StoredScore)
	assert.True(t, cmp.Report.StructureMatch)
	require.Len(t, cmp.Report.Differences, 1)
	assert.Equal(t, 2, cmp.Report.Differences[0].LineNumber)

	_, err = svc.CompareSubmission(ctx, "missing")
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}

func TestCompareRaw(t *testing.T) {
	svc := NewComparisonService(&fakeSubmissions{}, newFakeActivities())
	report, err := svc.Compare(CompareRequest{Expected: "<p>x</p>", Actual: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, 100, report.Similarity)
	assert.Empty(t, report.Differences)
}

func TestCompareRejectsOversizedMatrix(t *testing.T) {
	svc := NewComparisonService(&fakeSubmissions{}, newFakeActivities())

	// 1000 x 60000 runes would need about 60M cells
	_, err := svc.Compare(CompareRequest{
		Expected: strings.Repeat("<p>x</p>", 125),
		Actual:   strings.Repeat("a", 60000),
	})
	assert.ErrorIs(t, err, util.ErrSubmissionTooLarge)
}
