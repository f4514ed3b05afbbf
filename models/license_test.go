package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func licenseWith(t *testing.T, f LicenseFeatures) *License {
	t.Helper()
	lic := &License{Tier: TierPro, Status: LicenseActive}
	require.NoError(t, lic.SetFeatures(f))
	return lic
}

func TestHasFeature(t *testing.T) {
	lic := licenseWith(t, LicenseFeatures{
		HMSEnabled:   true,
		MultiUser:    false,
		MaxCustomers: -1,
		MaxRoutes:    10,
	})

	assert.True(t, lic.HasFeature("hms"))
	assert.False(t, lic.HasFeature("multi_user"))
	assert.True(t, lic.HasFeature("unlimited_customers"))
	assert.False(t, lic.HasFeature("unlimited_routes"))
	assert.False(t, lic.HasFeature("no_such_feature"))
}

func TestHasFeatureWithoutFeatureBlock(t *testing.T) {
	lic := &License{}
	assert.False(t, lic.HasFeature("hms"))
	assert.False(t, lic.HasFeature("unlimited_customers"))
}

func TestCanAddMore(t *testing.T) {
	lic := licenseWith(t, LicenseFeatures{MaxCustomers: 2, MaxRoutes: -1})

	assert.True(t, lic.CanAddMore("customers", 0))
	assert.True(t, lic.CanAddMore("customers", 1))
	assert.False(t, lic.CanAddMore("customers", 2))
	assert.True(t, lic.CanAddMore("routes", 1_000_000))
	assert.False(t, lic.CanAddMore("widgets", 0))
}

func TestIsExpiredAndDaysRemaining(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	perpetual := &License{}
	assert.False(t, perpetual.IsExpired(now))
	assert.Equal(t, -1, perpetual.DaysRemaining(now))

	in36h := now.Add(36 * time.Hour)
	lic := &License{ExpiresAt: &in36h}
	assert.False(t, lic.IsExpired(now))
	assert.Equal(t, 2, lic.DaysRemaining(now)) // partial days round up

	past := now.Add(-time.Hour)
	expired := &License{ExpiresAt: &past}
	assert.True(t, expired.IsExpired(now))
	assert.Equal(t, 0, expired.DaysRemaining(now))
}
