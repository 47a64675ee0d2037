package sqlstore

import "github.com/catalyst-wireless/activation/core"

var (
	_ core.InventoryCatalog     = (*InventoryStore)(nil)
	_ core.InventoryCatalog     = (*CachedInventoryStore)(nil)
	_ core.CarrierAccountReader = (*AccountStore)(nil)
	_ core.BusinessPlanReader   = (*PlanStore)(nil)
	_ core.BearerPathReader     = (*PlanStore)(nil)
	_ core.CarrierListReader    = (*CarrierListStore)(nil)
	_ core.InventoryAllocator   = (*ESimStore)(nil)
	_ core.CarrierGateway       = (*ProcGateway)(nil)
)
