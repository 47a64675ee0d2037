package bellcanada

import (
	"context"

	"github.com/catalyst-wireless/activation/carriers"
	"github.com/catalyst-wireless/activation/core"
)

const DisplayName = "Bell Canada"

func New() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:          core.CarrierBellCanada,
		DisplayName: DisplayName,
		Channel:     core.ChannelBellCanada,
		RatePlan: func(ctx context.Context, dir core.RatePlanDirectory, corpID string, _ core.ResolvedContext) (string, error) {
			return dir.BellCanadaRatePlan(ctx, corpID)
		},
		MapLine: func(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord, resolved core.ResolvedContext) core.ActivationLineDetail {
			detail := carriers.BaseDetail(line, req, inv)
			detail.PlanID = resolved.CustomCorpRatePlan
			return detail
		},
	})
}
