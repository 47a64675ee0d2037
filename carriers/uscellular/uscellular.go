package uscellular

import (
	"context"

	"github.com/catalyst-wireless/activation/carriers"
	"github.com/catalyst-wireless/activation/core"
)

const DisplayName = "US Cellular"

func New() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:          core.CarrierUSCellular,
		DisplayName: DisplayName,
		Channel:     core.ChannelUSCellular,
		RatePlan: func(ctx context.Context, dir core.RatePlanDirectory, corpID string, _ core.ResolvedContext) (string, error) {
			return dir.USCellularRatePlan(ctx, corpID)
		},
		MapLine: func(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord, resolved core.ResolvedContext) core.ActivationLineDetail {
			detail := carriers.BaseDetail(line, req, inv)
			detail.PlanID = resolved.CustomCorpRatePlan
			return detail
		},
	})
}
