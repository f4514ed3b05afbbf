package models

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TierTrial      = "trial"
	TierFree       = "free"
	TierPro        = "pro"
	TierEnterprise = "enterprise"

	LicenseActive  = "active"
	LicenseExpired = "expired"
	LicenseRevoked = "revoked"
)

// LicenseFeatures is the feature-flag/limit block stored on a license.
// A limit of -1 means unlimited.
type LicenseFeatures struct {
	HMSEnabled   bool `json:"hms_enabled"`
	MultiUser    bool `json:"multi_user"`
	MaxCustomers int  `json:"max_customers"`
	MaxRoutes    int  `json:"max_routes"`
	MaxProducts  int  `json:"max_products"`
}

// License gates an organization's access: subscription tier, seat count,
// expiry and per-feature flags/limits. Lives in the public schema.
type License struct {
	Id             string         `json:"id" gorm:"primaryKey"`
	Key            string         `json:"license_key" gorm:"size:64;uniqueIndex"`
	OrganizationId string         `json:"organization_id" gorm:"index"`
	Tier           string         `json:"subscription_tier" gorm:"size:20"`
	Status         string         `json:"status" gorm:"size:20;default:active"`
	MaxUsers       int            `json:"max_users"`
	Features       datatypes.JSON `json:"features" gorm:"type:jsonb"`
	ExpiresAt      *time.Time     `json:"expires_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (l *License) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	l.Id = uuid.NewString()
	return
}

// ParseFeatures decodes the JSON feature block; a license without one gets
// zero-valued features (everything off, all limits 0).
func (l *License) ParseFeatures() LicenseFeatures {
	var f LicenseFeatures
	if len(l.Features) > 0 {
		_ = json.Unmarshal(l.Features, &f)
	}
	return f
}

func (l *License) SetFeatures(f LicenseFeatures) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	l.Features = datatypes.JSON(raw)
	return nil
}

// IsExpired reports whether the license's expiry has passed. Licenses without
// an expiry never expire.
func (l *License) IsExpired(now time.Time) bool {
	if l.ExpiresAt == nil {
		return false
	}
	return now.After(*l.ExpiresAt)
}

// DaysRemaining returns whole days until expiry, 0 when already expired, and
// -1 for licenses that never expire.
func (l *License) DaysRemaining(now time.Time) int {
	if l.ExpiresAt == nil {
		return -1
	}
	diff := l.ExpiresAt.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// HasFeature answers the named feature checks the client performs.
func (l *License) HasFeature(feature string) bool {
	f := l.ParseFeatures()
	switch feature {
	case "hms":
		return f.HMSEnabled
	case "multi_user":
		return f.MultiUser
	case "unlimited_customers":
		return f.MaxCustomers == -1
	case "unlimited_routes":
		return f.MaxRoutes == -1
	case "unlimited_products":
		return f.MaxProducts == -1
	default:
		return false
	}
}

// CanAddMore checks a record limit against the current count. -1 is
// unlimited.
func (l *License) CanAddMore(recordType string, currentCount int64) bool {
	f := l.ParseFeatures()
	var limit int
	switch recordType {
	case "customers":
		limit = f.MaxCustomers
	case "routes":
		limit = f.MaxRoutes
	case "products":
		limit = f.MaxProducts
	default:
		return false
	}
	if limit == -1 {
		return true
	}
	return currentCount < int64(limit)
}
