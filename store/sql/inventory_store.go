package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/catalyst-wireless/activation/core"
)

// InventoryStore serves the three inventory lookup strategies from their
// dedicated tables.
type InventoryStore struct {
	db *bun.DB
}

func NewInventoryStore(db *bun.DB) (*InventoryStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &InventoryStore{db: db}, nil
}

func (s *InventoryStore) CombinedInventory(ctx context.Context, carrier core.CarrierID, businessType core.BusinessType) (core.InventoryRecord, error) {
	if s == nil || s.db == nil {
		return core.InventoryRecord{}, fmt.Errorf("sqlstore: inventory store is not configured")
	}
	record := new(inventoryRecord)
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.carrier = ?", strings.TrimSpace(string(carrier))).
		Where("?TableAlias.business_type = ?", strings.TrimSpace(string(businessType))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.InventoryRecord{}, core.ErrInventoryRecordNotFound
		}
		return core.InventoryRecord{}, err
	}
	return core.InventoryRecord{
		SKU:                   record.SKU,
		PlanID:                record.PlanID,
		EastIPPool:            record.EastIPPool,
		WestIPPool:            record.WestIPPool,
		EastCommunicationPlan: record.EastCommunicationPlan,
		WestCommunicationPlan: record.WestCommunicationPlan,
	}, nil
}

func (s *InventoryStore) ThirdPartyInventory(ctx context.Context, carrier core.CarrierID) (core.InventoryRecord, error) {
	if s == nil || s.db == nil {
		return core.InventoryRecord{}, fmt.Errorf("sqlstore: inventory store is not configured")
	}
	record := new(thirdPartyInventoryRecord)
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.carrier = ?", strings.TrimSpace(string(carrier))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.InventoryRecord{}, core.ErrInventoryRecordNotFound
		}
		return core.InventoryRecord{}, err
	}
	return core.InventoryRecord{
		SKU:                   record.SKU,
		PlanID:                record.PlanID,
		EastIPPool:            record.EastIPPool,
		WestIPPool:            record.WestIPPool,
		EastCommunicationPlan: record.EastCommunicationPlan,
		WestCommunicationPlan: record.WestCommunicationPlan,
		SubTypes:              splitCSV(record.SubTypes),
	}, nil
}

func (s *InventoryStore) PrivateWirelessInventory(ctx context.Context, carrier core.CarrierID) (core.InventoryRecord, error) {
	if s == nil || s.db == nil {
		return core.InventoryRecord{}, fmt.Errorf("sqlstore: inventory store is not configured")
	}
	record := new(privateInventoryRecord)
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.carrier = ?", strings.TrimSpace(string(carrier))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.InventoryRecord{}, core.ErrInventoryRecordNotFound
		}
		return core.InventoryRecord{}, err
	}
	return core.InventoryRecord{PlanID: record.PlanID}, nil
}
