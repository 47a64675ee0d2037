package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/catalyst-wireless/activation/core"
)

// defaultESimMaxBatch caps a single eSIM activation batch regardless of how
// much inventory is on hand.
const defaultESimMaxBatch = 100

// ESimStore reserves and releases eSIM inventory units.
type ESimStore struct {
	db       *bun.DB
	maxBatch int
}

func NewESimStore(db *bun.DB) (*ESimStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &ESimStore{db: db, maxBatch: defaultESimMaxBatch}, nil
}

// SetMaxBatch overrides the per-request allocation ceiling.
func (s *ESimStore) SetMaxBatch(max int) {
	if s == nil || max <= 0 {
		return
	}
	s.maxBatch = max
}

func (s *ESimStore) AvailableCount(ctx context.Context, carrier core.CarrierID, corpID string) (core.ESimInventoryCount, error) {
	if s == nil || s.db == nil {
		return core.ESimInventoryCount{}, fmt.Errorf("sqlstore: esim store is not configured")
	}
	count, err := s.db.NewSelect().
		Model((*esimInventoryRecord)(nil)).
		Where("?TableAlias.carrier = ?", strings.TrimSpace(string(carrier))).
		Where("?TableAlias.corp_id = ?", strings.TrimSpace(corpID)).
		Where("?TableAlias.status = ?", esimStatusAvailable).
		Count(ctx)
	if err != nil {
		return core.ESimInventoryCount{}, err
	}
	return core.ESimInventoryCount{
		TotalAvailable:  count,
		MaxDefaultCount: s.maxBatch,
	}, nil
}

// Allocate reserves count units inside one transaction. It returns fewer
// units than requested when inventory ran out between the count and the
// reservation; the caller decides whether that is fatal.
func (s *ESimStore) Allocate(ctx context.Context, carrier core.CarrierID, corpID string, count int) ([]core.AllocatedUnit, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: esim store is not configured")
	}
	if count <= 0 {
		return nil, fmt.Errorf("sqlstore: allocation count must be positive")
	}

	var units []core.AllocatedUnit
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var records []esimInventoryRecord
		err := tx.NewSelect().
			Model(&records).
			Where("?TableAlias.carrier = ?", strings.TrimSpace(string(carrier))).
			Where("?TableAlias.corp_id = ?", strings.TrimSpace(corpID)).
			Where("?TableAlias.status = ?", esimStatusAvailable).
			Order("iccid ASC").
			Limit(count).
			Scan(ctx)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}

		ids := make([]string, 0, len(records))
		for _, record := range records {
			ids = append(ids, record.ID)
		}
		_, err = tx.NewUpdate().
			Model((*esimInventoryRecord)(nil)).
			Set("status = ?", esimStatusAllocated).
			Set("updated_at = ?", time.Now().UTC()).
			Where("id IN (?)", bun.In(ids)).
			Where("status = ?", esimStatusAvailable).
			Exec(ctx)
		if err != nil {
			return err
		}

		units = make([]core.AllocatedUnit, 0, len(records))
		for _, record := range records {
			units = append(units, core.AllocatedUnit{ICCID: record.ICCID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return units, nil
}

// Release returns one unit to inventory. Releasing an already-available unit
// is a no-op, which keeps compensating releases idempotent.
func (s *ESimStore) Release(ctx context.Context, iccid string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: esim store is not configured")
	}
	_, err := s.db.NewUpdate().
		Model((*esimInventoryRecord)(nil)).
		Set("status = ?", esimStatusAvailable).
		Set("updated_at = ?", time.Now().UTC()).
		Where("iccid = ?", strings.TrimSpace(iccid)).
		Where("status = ?", esimStatusAllocated).
		Exec(ctx)
	return err
}
