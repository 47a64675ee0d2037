package sqlstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/catalyst-wireless/activation/core"
)

type stubInventoryCatalog struct {
	mu              sync.Mutex
	combined        core.InventoryRecord
	combinedCalls   int
	thirdParty      core.InventoryRecord
	thirdPartyCalls int
	private         core.InventoryRecord
	privateCalls    int
	err             error
}

func (s *stubInventoryCatalog) CombinedInventory(context.Context, core.CarrierID, core.BusinessType) (core.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.combinedCalls++
	if s.err != nil {
		return core.InventoryRecord{}, s.err
	}
	return s.combined, nil
}

func (s *stubInventoryCatalog) ThirdPartyInventory(context.Context, core.CarrierID) (core.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thirdPartyCalls++
	if s.err != nil {
		return core.InventoryRecord{}, s.err
	}
	return s.thirdParty, nil
}

func (s *stubInventoryCatalog) PrivateWirelessInventory(context.Context, core.CarrierID) (core.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.privateCalls++
	if s.err != nil {
		return core.InventoryRecord{}, s.err
	}
	return s.private, nil
}

func newTestInventoryCacheService(t *testing.T) repositorycache.CacheService {
	t.Helper()
	config := repositorycache.DefaultConfig()
	config.TTL = time.Minute
	service, err := repositorycache.NewCacheService(config)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	return service
}

func TestCachedInventoryStore_MissFetchThenHit(t *testing.T) {
	base := &stubInventoryCatalog{
		combined: core.InventoryRecord{SKU: "SKU-EDU", PlanID: "PLAN-EDU"},
	}
	store, err := NewCachedInventoryStore(base, newTestInventoryCacheService(t))
	if err != nil {
		t.Fatalf("new cached inventory store: %v", err)
	}

	record, err := store.CombinedInventory(context.Background(), core.CarrierVerizon, core.BusinessTypeEducation)
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if record.SKU != "SKU-EDU" {
		t.Fatalf("unexpected record %+v", record)
	}
	if base.combinedCalls != 1 {
		t.Fatalf("expected one base read, got %d", base.combinedCalls)
	}

	if _, err := store.CombinedInventory(context.Background(), core.CarrierVerizon, core.BusinessTypeEducation); err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if base.combinedCalls != 1 {
		t.Fatalf("expected cache hit, base calls=%d", base.combinedCalls)
	}
}

func TestCachedInventoryStore_StrategiesUseDistinctEntries(t *testing.T) {
	base := &stubInventoryCatalog{
		combined:   core.InventoryRecord{SKU: "SKU-STD"},
		thirdParty: core.InventoryRecord{SKU: "SKU-3P"},
		private:    core.InventoryRecord{PlanID: "PLAN-PW"},
	}
	store, err := NewCachedInventoryStore(base, newTestInventoryCacheService(t))
	if err != nil {
		t.Fatalf("new cached inventory store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.CombinedInventory(ctx, core.CarrierVerizon, core.BusinessTypeEducation); err != nil {
		t.Fatalf("combined lookup: %v", err)
	}
	if _, err := store.ThirdPartyInventory(ctx, core.CarrierVerizon); err != nil {
		t.Fatalf("third party lookup: %v", err)
	}
	if _, err := store.PrivateWirelessInventory(ctx, core.CarrierVerizon); err != nil {
		t.Fatalf("private lookup: %v", err)
	}
	if base.combinedCalls != 1 || base.thirdPartyCalls != 1 || base.privateCalls != 1 {
		t.Fatalf("each strategy must fetch once: %d %d %d", base.combinedCalls, base.thirdPartyCalls, base.privateCalls)
	}
}

func TestCachedInventoryStore_InvalidateForcesRefetch(t *testing.T) {
	base := &stubInventoryCatalog{
		combined: core.InventoryRecord{SKU: "SKU-V1"},
	}
	store, err := NewCachedInventoryStore(base, newTestInventoryCacheService(t))
	if err != nil {
		t.Fatalf("new cached inventory store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.CombinedInventory(ctx, core.CarrierVerizon, core.BusinessTypeEducation); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	base.mu.Lock()
	base.combined.SKU = "SKU-V2"
	base.mu.Unlock()

	if err := store.Invalidate(ctx, core.CarrierVerizon, core.BusinessTypeEducation); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	record, err := store.CombinedInventory(ctx, core.CarrierVerizon, core.BusinessTypeEducation)
	if err != nil {
		t.Fatalf("lookup after invalidate: %v", err)
	}
	if base.combinedCalls != 2 {
		t.Fatalf("expected refetch after invalidate, base calls=%d", base.combinedCalls)
	}
	if record.SKU != "SKU-V2" {
		t.Fatalf("expected refreshed record, got %+v", record)
	}
}

func TestCachedInventoryStore_PropagatesBaseErrors(t *testing.T) {
	base := &stubInventoryCatalog{err: core.ErrInventoryRecordNotFound}
	store, err := NewCachedInventoryStore(base, newTestInventoryCacheService(t))
	if err != nil {
		t.Fatalf("new cached inventory store: %v", err)
	}

	_, err = store.CombinedInventory(context.Background(), core.CarrierVerizon, core.BusinessTypeEducation)
	if !errors.Is(err, core.ErrInventoryRecordNotFound) {
		t.Fatalf("expected base error propagation, got %v", err)
	}
}

func TestInventoryCacheKey_Contract(t *testing.T) {
	key := InventoryCacheKey(core.StrategyStandard, " verizon ", "education")
	const expected = "activation::inventory::v1::standard::verizon::education"
	if key != expected {
		t.Fatalf("unexpected cache key contract: got %q want %q", key, expected)
	}

	escaped := InventoryCacheKey(core.StrategyThirdParty, "att firstnet", "")
	const expectedEscaped = "activation::inventory::v1::third_party::att%20firstnet::"
	if escaped != expectedEscaped {
		t.Fatalf("unexpected escaped key: got %q want %q", escaped, expectedEscaped)
	}
}

func TestNewCachedInventoryStoreRequiresCollaborators(t *testing.T) {
	if _, err := NewCachedInventoryStore(nil, newTestInventoryCacheService(t)); err == nil {
		t.Fatalf("expected rejection of a nil base catalog")
	}
	if _, err := NewCachedInventoryStore(&stubInventoryCatalog{}, nil); err == nil {
		t.Fatalf("expected rejection of a nil cache service")
	}
}
