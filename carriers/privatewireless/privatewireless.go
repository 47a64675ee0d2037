package privatewireless

import (
	"context"
	"strings"

	"github.com/catalyst-wireless/activation/carriers"
	"github.com/catalyst-wireless/activation/core"
)

const (
	PrivateLTEDisplayName = "Private LTE"
	CiscoDisplayName      = "Cisco Network"
	PenteDisplayName      = "Pente Network"
)

// NewPrivateLTE builds the standard private wireless profile. Its rate plan
// comes from the corp hierarchy like the public carriers.
func NewPrivateLTE() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:          core.CarrierPrivateLTE,
		DisplayName: PrivateLTEDisplayName,
		Strategy:    core.StrategyPrivateWireless,
		Channel:     core.ChannelPrivateWireless,
		RatePlan: func(ctx context.Context, dir core.RatePlanDirectory, corpID string, _ core.ResolvedContext) (string, error) {
			return dir.PrivateWirelessRatePlan(ctx, corpID)
		},
		MapLine: mapNetworkLine(core.CarrierPrivateLTE),
	})
}

// NewCisco builds the Cisco partner network profile with its fixed rate plan.
func NewCisco() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:          core.CarrierCiscoNetwork,
		DisplayName: CiscoDisplayName,
		Strategy:    core.StrategyPrivateWireless,
		Channel:     core.ChannelPrivateWireless,
		RatePlan: func(context.Context, core.RatePlanDirectory, string, core.ResolvedContext) (string, error) {
			return core.CiscoNetworkRatePlan, nil
		},
		MapLine: mapNetworkLine(core.CarrierCiscoNetwork),
	})
}

// NewPente builds the Pente partner network profile with its fixed rate plan.
func NewPente() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:          core.CarrierPenteNetwork,
		DisplayName: PenteDisplayName,
		Strategy:    core.StrategyPrivateWireless,
		Channel:     core.ChannelPrivateWireless,
		RatePlan: func(context.Context, core.RatePlanDirectory, string, core.ResolvedContext) (string, error) {
			return core.PenteNetworkRatePlan, nil
		},
		MapLine: mapNetworkLine(core.CarrierPenteNetwork),
	})
}

// mapNetworkLine stamps the network tag and overwrites the outbound carrier
// label; private networks never carry a public plan id, the rate plan travels
// in the BSS field.
func mapNetworkLine(id core.CarrierID) func(core.ActivationLine, *core.ActivationRequest, core.InventoryRecord, core.ResolvedContext) core.ActivationLineDetail {
	network := strings.ToUpper(string(id))
	return func(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord, resolved core.ResolvedContext) core.ActivationLineDetail {
		detail := carriers.BaseDetail(line, req, inv)
		detail.Network = network
		detail.Carrier = network
		detail.PlanID = ""
		detail.BSSRatePlanID = resolved.CustomCorpRatePlan
		return detail
	}
}
