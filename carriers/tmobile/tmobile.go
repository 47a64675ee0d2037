package tmobile

import (
	"context"
	"strings"

	"github.com/catalyst-wireless/activation/carriers"
	"github.com/catalyst-wireless/activation/core"
)

const DisplayName = "T-Mobile"

// New builds the T-Mobile profile. The corp hierarchy's master settings pick
// the provisioning instance: ControlCenter activations go to the Control
// Center channel under a fixed shared account and never carry a custom corp
// plan; everything else goes to Netcracker.
func New() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:             core.CarrierTMobile,
		DisplayName:    DisplayName,
		RequiredFields: core.RequiredFields{ZipCode: true},
		ChannelFunc: func(resolved core.ResolvedContext) core.Channel {
			if isControlCenter(resolved.TMOInstance) {
				return core.ChannelTMOControlCenter
			}
			return core.ChannelTMONetcracker
		},
		Instance: resolveInstance,
		RatePlan: func(ctx context.Context, dir core.RatePlanDirectory, corpID string, resolved core.ResolvedContext) (string, error) {
			if isControlCenter(resolved.TMOInstance) {
				return "", nil
			}
			return dir.TMORatePlan(ctx, corpID)
		},
		MapLine: mapLine,
	})
}

// resolveInstance reads the instance selector from the top-level corp's
// settings. A blank selector defaults to Netcracker.
func resolveInstance(ctx context.Context, dir core.OrganizationDirectory, corpID string) (string, error) {
	top, err := dir.TopLevelOrganization(ctx, corpID)
	if err != nil {
		return "", err
	}
	settings, err := dir.CorpSettings(ctx, top.CorpID)
	if err != nil {
		return "", err
	}
	instance := strings.TrimSpace(settings.TMOInstance)
	if instance == "" {
		return core.TMOInstanceNetcracker, nil
	}
	return instance, nil
}

func mapLine(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord, resolved core.ResolvedContext) core.ActivationLineDetail {
	detail := carriers.BaseDetail(line, req, inv)
	detail.ZipCode = req.ServiceZipCode
	if isControlCenter(resolved.TMOInstance) {
		detail.CarrierAccountNo = core.TMOControlCenterAccountNo
		return detail
	}
	detail.PlanID = resolved.CustomCorpRatePlan
	return detail
}

func isControlCenter(instance string) bool {
	return strings.EqualFold(strings.TrimSpace(instance), core.TMOInstanceControlCenter)
}
