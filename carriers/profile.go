package carriers

import (
	"context"
	"fmt"
	"strings"

	"github.com/catalyst-wireless/activation/core"
)

// Config declares one carrier variant. Only ID, DisplayName, and MapLine are
// required; everything else has a neutral default so simple carriers stay
// declarative.
type Config struct {
	ID             core.CarrierID
	DisplayName    string
	RequiredFields core.RequiredFields
	Strategy       core.InventoryStrategy

	// Channel is the fixed gateway channel. ChannelFunc overrides it for
	// carrier families that branch on the resolved context.
	Channel     core.Channel
	ChannelFunc func(resolved core.ResolvedContext) core.Channel

	Instance func(ctx context.Context, dir core.OrganizationDirectory, corpID string) (string, error)
	RatePlan func(ctx context.Context, dir core.RatePlanDirectory, corpID string, resolved core.ResolvedContext) (string, error)
	Prepare  func(ctx context.Context, deps core.BuildDependencies, req *core.ActivationRequest, resolved *core.ResolvedContext) error
	MapLine  func(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord, resolved core.ResolvedContext) core.ActivationLineDetail
}

// Profile is the declarative core.CarrierProfile implementation every carrier
// package builds on.
type Profile struct {
	cfg Config
}

func New(cfg Config) (*Profile, error) {
	cfg.ID = core.CarrierID(strings.TrimSpace(strings.ToLower(string(cfg.ID))))
	if cfg.ID == "" {
		return nil, fmt.Errorf("carriers: carrier id is required")
	}
	if strings.TrimSpace(cfg.DisplayName) == "" {
		return nil, fmt.Errorf("carriers: display name is required for carrier %q", cfg.ID)
	}
	if cfg.MapLine == nil {
		return nil, fmt.Errorf("carriers: line mapper is required for carrier %q", cfg.ID)
	}
	if cfg.Strategy == "" {
		cfg.Strategy = core.StrategyStandard
	}
	if cfg.ChannelFunc == nil && cfg.Channel == "" {
		return nil, fmt.Errorf("carriers: gateway channel is required for carrier %q", cfg.ID)
	}
	return &Profile{cfg: cfg}, nil
}

func (p *Profile) ID() core.CarrierID {
	if p == nil {
		return ""
	}
	return p.cfg.ID
}

func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	return p.cfg.DisplayName
}

func (p *Profile) RequiredFields() core.RequiredFields {
	if p == nil {
		return core.RequiredFields{}
	}
	return p.cfg.RequiredFields
}

func (p *Profile) InventoryStrategy() core.InventoryStrategy {
	if p == nil {
		return core.StrategyStandard
	}
	return p.cfg.Strategy
}

func (p *Profile) Channel(resolved core.ResolvedContext) core.Channel {
	if p == nil {
		return ""
	}
	if p.cfg.ChannelFunc != nil {
		return p.cfg.ChannelFunc(resolved)
	}
	return p.cfg.Channel
}

func (p *Profile) ResolveInstance(ctx context.Context, dir core.OrganizationDirectory, corpID string) (string, error) {
	if p == nil || p.cfg.Instance == nil {
		return "", nil
	}
	return p.cfg.Instance(ctx, dir, corpID)
}

func (p *Profile) RatePlan(ctx context.Context, dir core.RatePlanDirectory, corpID string, resolved core.ResolvedContext) (string, error) {
	if p == nil || p.cfg.RatePlan == nil {
		return "", nil
	}
	return p.cfg.RatePlan(ctx, dir, corpID, resolved)
}

func (p *Profile) Prepare(ctx context.Context, deps core.BuildDependencies, req *core.ActivationRequest, resolved *core.ResolvedContext) error {
	if p == nil || p.cfg.Prepare == nil {
		return nil
	}
	return p.cfg.Prepare(ctx, deps, req, resolved)
}

func (p *Profile) MapLine(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord, resolved core.ResolvedContext) core.ActivationLineDetail {
	if p == nil || p.cfg.MapLine == nil {
		return core.ActivationLineDetail{}
	}
	return p.cfg.MapLine(line, req, inv, resolved)
}

// BaseDetail carries the fields every carrier mapping shares. The imei item
// id always comes from the inventory row's sku.
func BaseDetail(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord) core.ActivationLineDetail {
	return core.ActivationLineDetail{
		ICCID:       line.ICCID,
		IMEI:        line.IMEI,
		Nickname:    line.Nickname,
		FilterGroup: req.FilterGroup,
		DeviceGroup: req.DeviceGroup,
		IMEIItemID:  inv.SKU,
	}
}
