package service

import (
	"context"
	"testing"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalProgressScenario(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	g := models.Goal{
		TargetAmount:  dec("1000"),
		CurrentAmount: dec("500"),
		Deadline:      now.AddDate(0, 0, 100),
		InterestRate:  dec("0"),
	}
	p := computeProgress(g, now)

	assert.True(t, p.ProgressPercentage.Equal(dec("50")), "progress: %s", p.ProgressPercentage)
	assert.True(t, p.RemainingAmount.Equal(dec("500")), "remaining: %s", p.RemainingAmount)
	assert.Equal(t, 100, p.DaysRemaining)
	assert.True(t, p.ProjectedAmount.Equal(dec("500")), "no interest, no growth")
	assert.False(t, p.IsOnTrack)
}

func TestGoalProjectionCompounds(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	g := models.Goal{
		TargetAmount:  dec("1100"),
		CurrentAmount: dec("1000"),
		Deadline:      now.AddDate(1, 0, 0), // 365 days
		InterestRate:  dec("10"),
	}
	p := computeProgress(g, now)

	// 1000 * 1.1^(365/365.25) is just under 1100
	assert.True(t, p.ProjectedAmount.GreaterThan(dec("1099")), "projected: %s", p.ProjectedAmount)
	assert.True(t, p.ProjectedAmount.LessThan(dec("1100")), "projected: %s", p.ProjectedAmount)
	assert.False(t, p.IsOnTrack)
}

func TestGoalProjectionOnTrack(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	g := models.Goal{
		TargetAmount:  dec("1050"),
		CurrentAmount: dec("1000"),
		Deadline:      now.AddDate(2, 0, 0),
		InterestRate:  dec("10"),
	}
	p := computeProgress(g, now)
	assert.True(t, p.IsOnTrack)
	assert.True(t, p.ProjectedProgress.Equal(dec("100")), "capped at 100: %s", p.ProjectedProgress)
}

func TestGoalPastDeadlineDaysNegative(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	g := models.Goal{
		TargetAmount:  dec("100"),
		CurrentAmount: dec("10"),
		Deadline:      now.AddDate(0, 0, -5),
		InterestRate:  dec("10"),
	}
	p := computeProgress(g, now)
	assert.Equal(t, -5, p.DaysRemaining)
	assert.True(t, p.ProjectedAmount.Equal(dec("10")), "no projection past deadline")
}

func TestGoalValidation(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	withFrozenTime(t, now)

	ctx := context.Background()
	svc := NewGoalService(repository.NewMemoryStore())

	valid := CreateGoalInput{
		Name:          "Vacation",
		TargetAmount:  dec("1000"),
		CurrentAmount: dec("100"),
		Deadline:      now.AddDate(0, 6, 0),
		InterestRate:  dec("5"),
	}

	overfunded := valid
	overfunded.CurrentAmount = dec("1001")
	_, err := svc.Create(ctx, "u1", overfunded)
	assert.True(t, IsValidation(err), "current above target must fail")

	past := valid
	past.Deadline = now.AddDate(0, 0, -1)
	_, err = svc.Create(ctx, "u1", past)
	assert.True(t, IsValidation(err), "past deadline must fail")

	atNow := valid
	atNow.Deadline = now
	_, err = svc.Create(ctx, "u1", atNow)
	assert.True(t, IsValidation(err), "deadline equal to now must fail")

	g, err := svc.Create(ctx, "u1", valid)
	require.NoError(t, err)

	// updates re-check the combined invariant
	tooMuch := dec("2000")
	_, err = svc.Update(ctx, "u1", g.ID, UpdateGoalInput{CurrentAmount: &tooMuch})
	assert.True(t, IsValidation(err))

	higherTarget := dec("3000")
	updated, err := svc.Update(ctx, "u1", g.ID, UpdateGoalInput{TargetAmount: &higherTarget, CurrentAmount: &tooMuch})
	require.NoError(t, err)
	assert.True(t, updated.CurrentAmount.Equal(dec("2000")))
}
