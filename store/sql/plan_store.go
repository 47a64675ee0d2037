package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/catalyst-wireless/activation/core"
)

// PlanStore serves the business internet plan list and the per-business-type
// carrier bearer paths.
type PlanStore struct {
	db *bun.DB
}

func NewPlanStore(db *bun.DB) (*PlanStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &PlanStore{db: db}, nil
}

func (s *PlanStore) BusinessInternetPlans(ctx context.Context) ([]core.BusinessPlan, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: plan store is not configured")
	}
	var records []businessPlanRecord
	err := s.db.NewSelect().
		Model(&records).
		Order("plan_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.BusinessPlan, 0, len(records))
	for _, record := range records {
		out = append(out, core.BusinessPlan{
			PlanID:              record.PlanID,
			WHPlanID:            record.WHPlanID,
			PlanDescription:     record.PlanDescription,
			PlanDescriptionFull: record.PlanDescriptionFull,
			Carrier:             record.Carrier,
		})
	}
	return out, nil
}

func (s *PlanStore) CarrierBearerPaths(ctx context.Context, businessType core.BusinessType) ([]core.CarrierBearerPath, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: plan store is not configured")
	}
	var records []bearerPathRecord
	err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.business_type = ?", strings.TrimSpace(string(businessType))).
		Order("carrier_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.CarrierBearerPath, 0, len(records))
	for _, record := range records {
		out = append(out, core.CarrierBearerPath{
			CarrierName: record.CarrierName,
			BearerPath:  record.BearerPath,
		})
	}
	return out, nil
}
