package core

import (
	"context"
	"strings"
)

// resolveContext is the second pipeline stage. It selects the inventory lookup
// strategy, loads the inventory row, and derives everything else the builder
// needs: ip pool, sku, lead id, custom rate plan, and the carrier instance.
// All lookups are request-scoped; nothing here varies per line.
func (e *Engine) resolveContext(
	ctx context.Context,
	req *ActivationRequest,
	profile CarrierProfile,
	businessType BusinessType,
) (InventoryRecord, ResolvedContext, error) {
	resolved := ResolvedContext{BusinessType: businessType}

	settings, err := e.organizations.CorpSettings(ctx, req.DeviceGroup)
	if err != nil {
		return InventoryRecord{}, resolved, err
	}

	firstResponder, err := e.resolveFirstResponderFlag(ctx, req.DeviceGroup, settings)
	if err != nil {
		return InventoryRecord{}, resolved, err
	}

	resolved.Strategy = selectStrategy(profile, firstResponder)

	inv, err := e.lookupInventory(ctx, req.Carrier, businessType, resolved.Strategy)
	if err != nil {
		return InventoryRecord{}, resolved, err
	}

	if isFirstNetCarrier(profile.ID()) && len(inv.SubTypes) > 0 {
		if !inv.AllowsSubType(req.SubType) {
			return InventoryRecord{}, resolved, validationError("Invalid Subtype!")
		}
	}

	if pool := strings.TrimSpace(settings.CarrierIPPool); pool != "" {
		resolved.CarrierIPPool = pool
	} else {
		resolved.CarrierIPPool = e.configuredIPPool(profile.ID(), businessType)
	}

	if err := e.resolveSKU(ctx, req.DeviceGroup, profile.ID(), &resolved); err != nil {
		return InventoryRecord{}, resolved, err
	}

	if err := e.resolveLeadID(ctx, req.DeviceGroup, profile.ID(), &resolved); err != nil {
		return InventoryRecord{}, resolved, err
	}

	instance, err := profile.ResolveInstance(ctx, e.organizations, req.DeviceGroup)
	if err != nil {
		return InventoryRecord{}, resolved, err
	}
	resolved.TMOInstance = instance

	plan, err := profile.RatePlan(ctx, e.ratePlans, req.DeviceGroup, resolved)
	if err != nil {
		return InventoryRecord{}, resolved, err
	}
	resolved.CustomCorpRatePlan = plan

	return inv, resolved, nil
}

// resolveFirstResponderFlag returns the corp's effective first-responder flag,
// walking the hierarchy when the corp-level value is inherit.
func (e *Engine) resolveFirstResponderFlag(ctx context.Context, corpID string, settings CorpSettings) (string, error) {
	flag := strings.TrimSpace(settings.FirstResponder)
	if !strings.EqualFold(flag, FirstResponderInherit) {
		return flag, nil
	}
	return e.organizations.FirstResponderByHierarchy(ctx, corpID)
}

// selectStrategy routes the inventory lookup. Only an explicit "N" flag keeps
// the standard pool; blank or any other value goes to the third-party pool.
func selectStrategy(profile CarrierProfile, firstResponder string) InventoryStrategy {
	if profile.InventoryStrategy() == StrategyPrivateWireless {
		return StrategyPrivateWireless
	}
	if strings.EqualFold(firstResponder, FirstResponderNo) {
		return StrategyStandard
	}
	return StrategyThirdParty
}

func isFirstNetCarrier(id CarrierID) bool {
	return id == CarrierATTFirstNet || id == CarrierATTFirstNetExtPrimary
}

func (e *Engine) lookupInventory(ctx context.Context, carrier CarrierID, businessType BusinessType, strategy InventoryStrategy) (InventoryRecord, error) {
	switch strategy {
	case StrategyPrivateWireless:
		return e.catalog.PrivateWirelessInventory(ctx, carrier)
	case StrategyThirdParty:
		return e.catalog.ThirdPartyInventory(ctx, carrier)
	case StrategyStandard:
		return e.catalog.CombinedInventory(ctx, carrier, businessType)
	default:
		return InventoryRecord{}, ErrInvalidInventoryLookup
	}
}

// configuredIPPool returns the business-type pool from config. The Verizon BI
// carrier has its own pool pair; everything else shares the common table.
func (e *Engine) configuredIPPool(carrier CarrierID, businessType BusinessType) string {
	if carrier == CarrierVerizonBI {
		if businessType == BusinessTypeEducation {
			return e.config.VerizonBIPools.Education
		}
		return e.config.VerizonBIPools.Enterprise
	}
	return e.config.IPPools.ForBusinessType(businessType)
}

// resolveSKU applies the hierarchy sku override, then the per-carrier config
// default. Only the Verizon family submits a sku; the private-wireless network
// carriers never carry one.
func (e *Engine) resolveSKU(ctx context.Context, corpID string, carrier CarrierID, resolved *ResolvedContext) error {
	switch carrier {
	case CarrierCiscoNetwork, CarrierPenteNetwork:
		return nil
	}

	sku, err := e.organizations.HierarchySKU(ctx, corpID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(sku) != "" {
		resolved.SKU = sku
		return nil
	}

	switch carrier {
	case CarrierVerizon, CarrierVerizonBI:
		resolved.SKU = e.config.SKUs.VerizonDefault
	case CarrierVerizonPriority:
		resolved.SKU = e.config.SKUs.VerizonPriorityDefault
	}
	return nil
}

// resolveLeadID populates the PRM lead id for the Verizon carriers when the
// hierarchy has PRM activation enabled.
func (e *Engine) resolveLeadID(ctx context.Context, corpID string, carrier CarrierID, resolved *ResolvedContext) error {
	if carrier != CarrierVerizon && carrier != CarrierVerizonBI {
		return nil
	}
	entry, err := e.organizations.PRMAccessControlByHierarchy(ctx, corpID)
	if err != nil {
		return err
	}
	if !entry.Enabled {
		return nil
	}
	leadID, err := e.organizations.LeadID(ctx, entry.CorpID)
	if err != nil {
		return err
	}
	resolved.LeadID = leadID
	return nil
}
