package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/catalyst-wireless/activation/core"
)

// CarrierListStore backs the activation carrier pickers from the carrier
// catalog table.
type CarrierListStore struct {
	db *bun.DB
}

func NewCarrierListStore(db *bun.DB) (*CarrierListStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &CarrierListStore{db: db}, nil
}

func (s *CarrierListStore) CarrierList(ctx context.Context, businessType core.BusinessType, includeVerizonBI bool, esimOnly bool) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: carrier list store is not configured")
	}
	query := s.db.NewSelect().
		Model((*carrierListRecord)(nil)).
		Column("display_name").
		Where("?TableAlias.private_wireless = ?", false).
		Where("?TableAlias.business_types LIKE ?", "%"+strings.TrimSpace(string(businessType))+"%").
		Order("sort_order ASC", "display_name ASC")
	if !includeVerizonBI {
		query = query.Where("?TableAlias.verizon_bi = ?", false)
	}
	if esimOnly {
		query = query.Where("?TableAlias.esim_enabled = ?", true)
	}
	var names []string
	if err := query.Scan(ctx, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (s *CarrierListStore) FirstResponderCarrierList(ctx context.Context, includeVerizonBI bool) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: carrier list store is not configured")
	}
	query := s.db.NewSelect().
		Model((*carrierListRecord)(nil)).
		Column("display_name").
		Where("?TableAlias.first_responder = ?", true).
		Order("sort_order ASC", "display_name ASC")
	if !includeVerizonBI {
		query = query.Where("?TableAlias.verizon_bi = ?", false)
	}
	var names []string
	if err := query.Scan(ctx, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (s *CarrierListStore) PrivateWirelessCarrierList(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: carrier list store is not configured")
	}
	var names []string
	err := s.db.NewSelect().
		Model((*carrierListRecord)(nil)).
		Column("display_name").
		Where("?TableAlias.private_wireless = ?", true).
		Order("sort_order ASC", "display_name ASC").
		Scan(ctx, &names)
	if err != nil {
		return nil, err
	}
	return names, nil
}
