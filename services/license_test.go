package services

import (
	"regexp"
	"testing"
	"time"

	"firmanager-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLicenseKeyFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^FIRM(-[0-9A-F]{4}){4}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := GenerateLicenseKey()
		assert.Regexp(t, pattern, key)
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestDefaultFeaturesForTier(t *testing.T) {
	trial := DefaultFeaturesForTier(models.TierTrial)
	assert.True(t, trial.HMSEnabled)
	assert.False(t, trial.MultiUser)
	assert.Equal(t, 50, trial.MaxCustomers)

	free := DefaultFeaturesForTier(models.TierFree)
	assert.False(t, free.HMSEnabled)
	assert.Equal(t, 20, free.MaxCustomers)

	pro := DefaultFeaturesForTier(models.TierPro)
	assert.True(t, pro.MultiUser)
	assert.Equal(t, -1, pro.MaxCustomers)

	ent := DefaultFeaturesForTier(models.TierEnterprise)
	assert.Equal(t, -1, ent.MaxProducts)

	// Unknown tiers degrade to free.
	assert.Equal(t, free, DefaultFeaturesForTier("nonsense"))
}

func TestNewTrialLicense(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	lic, err := NewTrialLicense("org-1", now)
	require.NoError(t, err)

	assert.Equal(t, "org-1", lic.OrganizationId)
	assert.Equal(t, models.TierTrial, lic.Tier)
	assert.Equal(t, models.LicenseActive, lic.Status)
	assert.Equal(t, 1, lic.MaxUsers)
	require.NotNil(t, lic.ExpiresAt)
	assert.Equal(t, now.AddDate(0, 0, TrialDays), lic.ExpiresAt.UTC())

	features := lic.ParseFeatures()
	assert.True(t, features.HMSEnabled)
	assert.Equal(t, 50, features.MaxCustomers)

	assert.False(t, lic.IsExpired(now))
	assert.True(t, lic.IsExpired(now.AddDate(0, 0, TrialDays+1)))
	assert.Equal(t, TrialDays, lic.DaysRemaining(now))
}
