package query

import (
	"github.com/catalyst-wireless/activation/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[ListCarriersMessage, []string]                           = (*ListCarriersQuery)(nil)
	_ gocmd.Querier[ListESimCarriersMessage, []string]                       = (*ListESimCarriersQuery)(nil)
	_ gocmd.Querier[ResolveFirstResponderMessage, string]                    = (*ResolveFirstResponderQuery)(nil)
	_ gocmd.Querier[RecentTransactionsMessage, []core.ActivationTransaction] = (*RecentTransactionsQuery)(nil)
	_ gocmd.Querier[TransactionDetailsMessage, []core.ActivationTransaction] = (*TransactionDetailsQuery)(nil)
	_ gocmd.Querier[CountTransactionsMessage, int]                           = (*CountTransactionsQuery)(nil)
	_ gocmd.Querier[ListBusinessPlansMessage, []core.BusinessPlan]           = (*ListBusinessPlansQuery)(nil)
	_ gocmd.Querier[ListCarrierBearerPathsMessage, []core.CarrierBearerPath] = (*ListCarrierBearerPathsQuery)(nil)
)
