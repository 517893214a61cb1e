package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lancei-admin/internal/application/jobs"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/internal/testutil/fakes"
)

var now = time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)

func onTrial(id string, started time.Time) entity.Company {
	tier := entity.PlanTierTrial
	return entity.Company{ID: id, Status: entity.CompanyStatusActive, PlanTier: &tier, TrialStartedAt: &started}
}

func TestTrialSweep_ExpiresOnlyEligible(t *testing.T) {
	repo := fakes.NewCompanies()
	repo.Put(onTrial("seven-days", now.Add(-7*24*time.Hour)))
	repo.Put(onTrial("almost", now.Add(-(6*24+23)*time.Hour)))
	repo.Put(onTrial("long-ago", now.Add(-30*24*time.Hour)))
	repo.Put(entity.Company{ID: "paid", Status: entity.CompanyStatusActive})

	updated, err := jobs.NewTrialSweep(repo).Run(context.Background(), now)

	require.NoError(t, err)
	ids := map[string]bool{}
	for _, c := range updated {
		ids[c.ID] = true
		assert.True(t, c.TrialExpired())
	}
	assert.Equal(t, map[string]bool{"seven-days": true, "long-ago": true}, ids)

	almost, _ := repo.GetByID(context.Background(), "almost")
	assert.True(t, almost.OnTrial())
}

func TestTrialSweep_SecondRunSameDayIsNoop(t *testing.T) {
	repo := fakes.NewCompanies()
	repo.Put(onTrial("c1", now.Add(-8*24*time.Hour)))
	sweep := jobs.NewTrialSweep(repo)

	first, err := sweep.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := sweep.Run(context.Background(), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, 1, repo.Calls("MarkTrialExpired"))
}

func TestTrialSweep_SkipsTrialWithoutStartDate(t *testing.T) {
	repo := fakes.NewCompanies()
	tier := entity.PlanTierTrial
	repo.Put(entity.Company{ID: "c1", PlanTier: &tier})

	updated, err := jobs.NewTrialSweep(repo).Run(context.Background(), now)

	require.NoError(t, err)
	assert.Empty(t, updated)
}
