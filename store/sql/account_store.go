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

// AccountStore resolves carrier account registrations per corp.
type AccountStore struct {
	db *bun.DB
}

func NewAccountStore(db *bun.DB) (*AccountStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &AccountStore{db: db}, nil
}

// CarrierAccountID returns the registered account id, or "" when the corp has
// no registration for the carrier.
func (s *AccountStore) CarrierAccountID(ctx context.Context, corpID string, carrier core.CarrierID) (string, error) {
	if s == nil || s.db == nil {
		return "", fmt.Errorf("sqlstore: account store is not configured")
	}
	record := new(carrierAccountRecord)
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.corp_id = ?", strings.TrimSpace(corpID)).
		Where("?TableAlias.carrier = ?", strings.TrimSpace(string(carrier))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return record.AccountID, nil
}
