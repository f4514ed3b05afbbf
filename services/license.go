package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"firmanager-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const TrialDays = 14

var (
	ErrLicenseNotFound = errors.New("license key not found")
	ErrLicenseRevoked  = errors.New("license key has been revoked")
	ErrLicenseExpired  = errors.New("license key has expired")
	ErrLicenseBound    = errors.New("license key is bound to another organization")
)

// GenerateLicenseKey mints a key in the form FIRM-XXXX-XXXX-XXXX-XXXX.
// The groups are drawn from a v4 UUID, so keys are unguessable and the
// unique index on licenses.key makes accidental collisions a create error
// rather than a silent overwrite.
func GenerateLicenseKey() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("FIRM-%s-%s-%s-%s", raw[0:4], raw[4:8], raw[8:12], raw[12:16])
}

// DefaultFeaturesForTier returns the feature block each subscription tier
// ships with. -1 means unlimited.
func DefaultFeaturesForTier(tier string) models.LicenseFeatures {
	switch tier {
	case models.TierEnterprise:
		return models.LicenseFeatures{
			HMSEnabled:   true,
			MultiUser:    true,
			MaxCustomers: -1,
			MaxRoutes:    -1,
			MaxProducts:  -1,
		}
	case models.TierPro:
		return models.LicenseFeatures{
			HMSEnabled:   true,
			MultiUser:    true,
			MaxCustomers: -1,
			MaxRoutes:    -1,
			MaxProducts:  -1,
		}
	case models.TierTrial:
		return models.LicenseFeatures{
			HMSEnabled:   true,
			MultiUser:    false,
			MaxCustomers: 50,
			MaxRoutes:    20,
			MaxProducts:  50,
		}
	default: // free
		return models.LicenseFeatures{
			HMSEnabled:   false,
			MultiUser:    false,
			MaxCustomers: 20,
			MaxRoutes:    5,
			MaxProducts:  20,
		}
	}
}

// MaxUsersForTier returns the seat count per tier. -1 means unlimited.
func MaxUsersForTier(tier string) int {
	switch tier {
	case models.TierEnterprise:
		return -1
	case models.TierPro:
		return 10
	default:
		return 1
	}
}

// NewTrialLicense builds the 14-day trial created at registration. The
// caller persists it.
func NewTrialLicense(orgID string, now time.Time) (models.License, error) {
	expires := now.Add(TrialDays * 24 * time.Hour)
	lic := models.License{
		Key:            GenerateLicenseKey(),
		OrganizationId: orgID,
		Tier:           models.TierTrial,
		Status:         models.LicenseActive,
		MaxUsers:       MaxUsersForTier(models.TierTrial),
		ExpiresAt:      &expires,
	}
	if err := lic.SetFeatures(DefaultFeaturesForTier(models.TierTrial)); err != nil {
		return models.License{}, err
	}
	return lic, nil
}

// LicenseService owns license lookups against the public schema and the
// daily expiry sweep.
type LicenseService struct {
	db   *gorm.DB
	cron *cron.Cron
}

func NewLicenseService(db *gorm.DB) *LicenseService {
	return &LicenseService{db: db}
}

// StartScheduler runs one expiry sweep immediately, then every day at 03:00.
func (s *LicenseService) StartScheduler() {
	s.ExpireOverdue()

	s.cron = cron.New()
	if _, err := s.cron.AddFunc("0 3 * * *", s.ExpireOverdue); err != nil {
		log.Printf("license scheduler setup failed: %v", err)
		return
	}
	s.cron.Start()
	log.Println("License expiry scheduler started (daily at 03:00)")
}

// Stop halts the scheduler. Safe to call when it never started.
func (s *LicenseService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// ExpireOverdue flips every active license past its expiry to expired.
// Middleware already treats overdue licenses as expired per request; the
// sweep keeps the stored status honest for reporting.
func (s *LicenseService) ExpireOverdue() {
	res := s.db.Model(&models.License{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.LicenseActive, time.Now()).
		Update("status", models.LicenseExpired)
	if res.Error != nil {
		log.Printf("license expiry sweep failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("license expiry sweep: %d license(s) expired", res.RowsAffected)
	}
}

// Generate mints and stores a license for an organization. An empty orgID
// produces an unbound key that binds on first validation.
func (s *LicenseService) Generate(orgID, tier string, expiresAt *time.Time) (*models.License, error) {
	lic := models.License{
		Key:            GenerateLicenseKey(),
		OrganizationId: orgID,
		Tier:           tier,
		Status:         models.LicenseActive,
		MaxUsers:       MaxUsersForTier(tier),
		ExpiresAt:      expiresAt,
	}
	if err := lic.SetFeatures(DefaultFeaturesForTier(tier)); err != nil {
		return nil, err
	}
	if err := s.db.Create(&lic).Error; err != nil {
		return nil, err
	}
	return &lic, nil
}

// Validate checks a key on behalf of an organization and activates it for
// them. Unbound keys bind to the validating organization; keys bound
// elsewhere are rejected.
func (s *LicenseService) Validate(key, orgID string) (*models.License, error) {
	var lic models.License
	if err := s.db.Where("key = ?", key).First(&lic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, err
	}

	if lic.Status == models.LicenseRevoked {
		return nil, ErrLicenseRevoked
	}
	if lic.IsExpired(time.Now()) {
		if lic.Status == models.LicenseActive {
			_ = s.db.Model(&lic).Update("status", models.LicenseExpired).Error
		}
		return nil, ErrLicenseExpired
	}
	if lic.OrganizationId != "" && lic.OrganizationId != orgID {
		return nil, ErrLicenseBound
	}

	if lic.OrganizationId == "" {
		lic.OrganizationId = orgID
		if err := s.db.Model(&lic).Update("organization_id", orgID).Error; err != nil {
			return nil, err
		}
	}
	return &lic, nil
}

// Current returns an organization's newest non-revoked license, or nil when
// they have none.
func (s *LicenseService) Current(orgID string) (*models.License, error) {
	var lic models.License
	err := s.db.
		Where("organization_id = ? AND status <> ?", orgID, models.LicenseRevoked).
		Order("created_at DESC").
		First(&lic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lic, nil
}
