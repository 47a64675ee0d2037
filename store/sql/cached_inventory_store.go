package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/catalyst-wireless/activation/core"
)

const inventoryCacheKeyPrefix = "activation::inventory::v1"

// CachedInventoryStore caches inventory rows in front of a base catalog.
// Inventory rows change rarely and are read on every activation, so the hot
// path stays off the database.
type CachedInventoryStore struct {
	base  core.InventoryCatalog
	cache repositorycache.CacheService
}

func NewCachedInventoryStore(base core.InventoryCatalog, cacheService repositorycache.CacheService) (*CachedInventoryStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base inventory catalog is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: inventory cache service is required")
	}
	return &CachedInventoryStore{base: base, cache: cacheService}, nil
}

// InventoryCacheKey returns the deterministic cache key for one lookup:
// activation::inventory::v1::<strategy>::<carrier>::<business_type> with each
// segment URL-path escaped.
func InventoryCacheKey(strategy core.InventoryStrategy, carrier core.CarrierID, businessType core.BusinessType) string {
	segments := []string{
		string(strategy),
		strings.TrimSpace(string(carrier)),
		strings.TrimSpace(string(businessType)),
	}
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(append([]string{inventoryCacheKeyPrefix}, segments...), "::")
}

func (s *CachedInventoryStore) CombinedInventory(ctx context.Context, carrier core.CarrierID, businessType core.BusinessType) (core.InventoryRecord, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.InventoryRecord{}, fmt.Errorf("sqlstore: cached inventory store is not configured")
	}
	key := InventoryCacheKey(core.StrategyStandard, carrier, businessType)
	return repositorycache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) (core.InventoryRecord, error) {
		return s.base.CombinedInventory(ctx, carrier, businessType)
	})
}

func (s *CachedInventoryStore) ThirdPartyInventory(ctx context.Context, carrier core.CarrierID) (core.InventoryRecord, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.InventoryRecord{}, fmt.Errorf("sqlstore: cached inventory store is not configured")
	}
	key := InventoryCacheKey(core.StrategyThirdParty, carrier, "")
	return repositorycache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) (core.InventoryRecord, error) {
		return s.base.ThirdPartyInventory(ctx, carrier)
	})
}

func (s *CachedInventoryStore) PrivateWirelessInventory(ctx context.Context, carrier core.CarrierID) (core.InventoryRecord, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.InventoryRecord{}, fmt.Errorf("sqlstore: cached inventory store is not configured")
	}
	key := InventoryCacheKey(core.StrategyPrivateWireless, carrier, "")
	return repositorycache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) (core.InventoryRecord, error) {
		return s.base.PrivateWirelessInventory(ctx, carrier)
	})
}

// Invalidate drops every cached variant for one carrier.
func (s *CachedInventoryStore) Invalidate(ctx context.Context, carrier core.CarrierID, businessType core.BusinessType) error {
	if s == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached inventory store is not configured")
	}
	keys := []string{
		InventoryCacheKey(core.StrategyStandard, carrier, businessType),
		InventoryCacheKey(core.StrategyThirdParty, carrier, ""),
		InventoryCacheKey(core.StrategyPrivateWireless, carrier, ""),
	}
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
