package query

import (
	"context"

	"github.com/catalyst-wireless/activation/core"
)

type CarrierCatalogService interface {
	CarrierList(ctx context.Context, principal core.Principal) ([]string, error)
	CarriersForESim(ctx context.Context, principal core.Principal) ([]string, error)
	ResolveFirstResponder(ctx context.Context, corpID string) (string, error)
}

type TransactionHistoryReader interface {
	RecentTransactions(ctx context.Context, corpID string, timezone string, limit int) ([]core.ActivationTransaction, error)
	TransactionDetails(ctx context.Context, transactionID string) ([]core.ActivationTransaction, error)
	TransactionCount(ctx context.Context, corpID string) (int, error)
}

type ListCarriersQuery struct {
	service CarrierCatalogService
}

func NewListCarriersQuery(service CarrierCatalogService) *ListCarriersQuery {
	return &ListCarriersQuery{service: service}
}

func (q *ListCarriersQuery) Query(ctx context.Context, msg ListCarriersMessage) ([]string, error) {
	if q == nil || q.service == nil {
		return nil, queryDependencyError("query: carrier catalog service is required")
	}
	return q.service.CarrierList(ctx, msg.Principal)
}

type ListESimCarriersQuery struct {
	service CarrierCatalogService
}

func NewListESimCarriersQuery(service CarrierCatalogService) *ListESimCarriersQuery {
	return &ListESimCarriersQuery{service: service}
}

func (q *ListESimCarriersQuery) Query(ctx context.Context, msg ListESimCarriersMessage) ([]string, error) {
	if q == nil || q.service == nil {
		return nil, queryDependencyError("query: carrier catalog service is required")
	}
	return q.service.CarriersForESim(ctx, msg.Principal)
}

type ResolveFirstResponderQuery struct {
	service CarrierCatalogService
}

func NewResolveFirstResponderQuery(service CarrierCatalogService) *ResolveFirstResponderQuery {
	return &ResolveFirstResponderQuery{service: service}
}

func (q *ResolveFirstResponderQuery) Query(ctx context.Context, msg ResolveFirstResponderMessage) (string, error) {
	if q == nil || q.service == nil {
		return "", queryDependencyError("query: carrier catalog service is required")
	}
	return q.service.ResolveFirstResponder(ctx, msg.CorpID)
}

type RecentTransactionsQuery struct {
	reader TransactionHistoryReader
}

func NewRecentTransactionsQuery(reader TransactionHistoryReader) *RecentTransactionsQuery {
	return &RecentTransactionsQuery{reader: reader}
}

func (q *RecentTransactionsQuery) Query(
	ctx context.Context,
	msg RecentTransactionsMessage,
) ([]core.ActivationTransaction, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: transaction history reader is required")
	}
	return q.reader.RecentTransactions(ctx, msg.CorpID, msg.Timezone, msg.Limit)
}

type TransactionDetailsQuery struct {
	reader TransactionHistoryReader
}

func NewTransactionDetailsQuery(reader TransactionHistoryReader) *TransactionDetailsQuery {
	return &TransactionDetailsQuery{reader: reader}
}

func (q *TransactionDetailsQuery) Query(
	ctx context.Context,
	msg TransactionDetailsMessage,
) ([]core.ActivationTransaction, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: transaction history reader is required")
	}
	return q.reader.TransactionDetails(ctx, msg.TransactionID)
}

type CountTransactionsQuery struct {
	reader TransactionHistoryReader
}

func NewCountTransactionsQuery(reader TransactionHistoryReader) *CountTransactionsQuery {
	return &CountTransactionsQuery{reader: reader}
}

func (q *CountTransactionsQuery) Query(ctx context.Context, msg CountTransactionsMessage) (int, error) {
	if q == nil || q.reader == nil {
		return 0, queryDependencyError("query: transaction history reader is required")
	}
	return q.reader.TransactionCount(ctx, msg.CorpID)
}

type ListBusinessPlansQuery struct {
	reader core.BusinessPlanReader
}

func NewListBusinessPlansQuery(reader core.BusinessPlanReader) *ListBusinessPlansQuery {
	return &ListBusinessPlansQuery{reader: reader}
}

func (q *ListBusinessPlansQuery) Query(ctx context.Context, msg ListBusinessPlansMessage) ([]core.BusinessPlan, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: business plan reader is required")
	}
	return q.reader.BusinessInternetPlans(ctx)
}

type ListCarrierBearerPathsQuery struct {
	reader core.BearerPathReader
}

func NewListCarrierBearerPathsQuery(reader core.BearerPathReader) *ListCarrierBearerPathsQuery {
	return &ListCarrierBearerPathsQuery{reader: reader}
}

func (q *ListCarrierBearerPathsQuery) Query(
	ctx context.Context,
	msg ListCarrierBearerPathsMessage,
) ([]core.CarrierBearerPath, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: bearer path reader is required")
	}
	return q.reader.CarrierBearerPaths(ctx, msg.BusinessType)
}
