package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMacroTestService() (*MacroService, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewMacroService(repo)
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func TestCalculateCalories(t *testing.T) {
	assert.Equal(t, 1770, CalculateCalories(180, 150, 50))
	assert.Equal(t, 0, CalculateCalories(0, 0, 0))
	assert.Equal(t, 4, CalculateCalories(1, 0, 0))
	assert.Equal(t, 9, CalculateCalories(0, 0, 1))
	// Rounds, not truncates.
	assert.Equal(t, 5, CalculateCalories(1.1, 0, 0))
}

func TestMacroTargets(t *testing.T) {
	svc, _ := newMacroTestService()
	ctx := context.Background()

	var validation *ValidationError
	_, err := svc.SetTargets(ctx, testUser, 0, 200, 70)
	require.ErrorAs(t, err, &validation)
	_, err = svc.SetTargets(ctx, testUser, 150, -1, 70)
	require.ErrorAs(t, err, &validation)

	// Update before any target exists is a not-found.
	var nf *NotFoundError
	_, err = svc.UpdateTargets(ctx, testUser, 150, 200, 70)
	require.ErrorAs(t, err, &nf)

	target, err := svc.SetTargets(ctx, testUser, 150, 200, 70)
	require.NoError(t, err)
	assert.Equal(t, float64(150), target.Protein)

	target, err = svc.UpdateTargets(ctx, testUser, 160, 180, 60)
	require.NoError(t, err)
	assert.Equal(t, float64(160), target.Protein)

	got, err := svc.GetTargets(ctx, testUser)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, float64(180), got.Carbs)
}

func TestMacroEntryLifecycle(t *testing.T) {
	svc, _ := newMacroTestService()
	ctx := context.Background()

	var validation *ValidationError
	_, err := svc.AddEntry(ctx, testUser, MacroEntryInput{Protein: -1})
	require.ErrorAs(t, err, &validation)
	_, err = svc.AddEntry(ctx, testUser, MacroEntryInput{})
	require.ErrorAs(t, err, &validation)

	entry, err := svc.AddEntry(ctx, testUser, MacroEntryInput{Protein: 40, Carbs: 50, Fats: 10})
	require.NoError(t, err)
	assert.Equal(t, CalculateCalories(40, 50, 10), entry.Calories)
	assert.Equal(t, "2026-08-30", entry.DayKey)

	updated, err := svc.UpdateEntry(ctx, entry.ID, MacroEntryInput{Protein: 50, Carbs: 50, Fats: 10})
	require.NoError(t, err)
	assert.Equal(t, CalculateCalories(50, 50, 10), updated.Calories)

	var nf *NotFoundError
	_, err = svc.UpdateEntry(ctx, 9999, MacroEntryInput{Protein: 1})
	require.ErrorAs(t, err, &nf)

	require.NoError(t, svc.DeleteEntry(ctx, entry.ID))
	require.ErrorAs(t, svc.DeleteEntry(ctx, entry.ID), &nf)
}

func TestMacroDayTotals(t *testing.T) {
	svc, _ := newMacroTestService()
	ctx := context.Background()

	_, err := svc.SetTargets(ctx, testUser, 180, 150, 50)
	require.NoError(t, err)

	_, err = svc.AddEntry(ctx, testUser, MacroEntryInput{Protein: 40, Carbs: 60, Fats: 15})
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, testUser, MacroEntryInput{Protein: 35, Carbs: 40, Fats: 10})
	require.NoError(t, err)

	// An entry on another day must not leak into the totals.
	yesterday := testNow.AddDate(0, 0, -1)
	_, err = svc.AddEntry(ctx, testUser, MacroEntryInput{Protein: 100, RecordedAt: &yesterday})
	require.NoError(t, err)

	totals, err := svc.GetDayTotals(ctx, testUser, "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, float64(75), totals.Protein)
	assert.Equal(t, float64(100), totals.Carbs)
	assert.Equal(t, float64(25), totals.Fats)
	assert.Equal(t, CalculateCalories(75, 100, 25), totals.Calories)
	assert.Len(t, totals.Entries, 2)
	require.NotNil(t, totals.Target)
	assert.Equal(t, float64(180), totals.Target.Protein)

	_, err = svc.GetDayTotals(ctx, testUser, "not-a-day")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}
