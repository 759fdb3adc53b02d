package service

import (
	"context"

	"github.com/shopspring/decimal"

	"mokha/internal/domain"
	"mokha/internal/repository"
)

// SettingsService reads and replaces the back-office configuration.
type SettingsService struct {
	settings repository.SettingsRepository
}

func NewSettingsService(settings repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

func (s *SettingsService) Get(ctx context.Context) (domain.AppSettings, error) {
	return s.settings.Get(ctx)
}

var one = decimal.NewFromInt(1)

// Update replaces the whole settings document after validation. The tax
// rate is a fraction, shipping methods must use known ids with non-negative
// costs, and the loyalty rates must be non-negative.
func (s *SettingsService) Update(ctx context.Context, settings domain.AppSettings) error {
	if settings.TaxRate.IsNegative() || settings.TaxRate.GreaterThanOrEqual(one) {
		return ErrInvalidInput
	}
	for _, m := range settings.ShippingMethods {
		switch m.ID {
		case domain.ShippingStandard, domain.ShippingFree, domain.ShippingCustom:
		default:
			return ErrInvalidInput
		}
		if m.Cost.IsNegative() {
			return ErrInvalidInput
		}
		if m.Threshold != nil && m.Threshold.IsNegative() {
			return ErrInvalidInput
		}
	}
	if settings.LoyaltySettings.PointsPerDollar.IsNegative() || settings.LoyaltySettings.DollarsPerPoint.IsNegative() {
		return ErrInvalidInput
	}
	return s.settings.Update(ctx, settings)
}
