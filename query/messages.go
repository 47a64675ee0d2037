package query

import (
	"fmt"
	"strings"

	"github.com/catalyst-wireless/activation/core"
)

const (
	TypeListCarriers           = "activation.query.carriers.list"
	TypeListESimCarriers       = "activation.query.carriers.esim.list"
	TypeRecentTransactions     = "activation.query.transactions.recent"
	TypeTransactionDetails     = "activation.query.transaction.details"
	TypeCountTransactions      = "activation.query.transactions.count"
	TypeListBusinessPlans      = "activation.query.business_plans.list"
	TypeResolveFirstResponder  = "activation.query.first_responder.resolve"
	TypeListCarrierBearerPaths = "activation.query.bearer_paths.list"
)

type ListCarriersMessage struct {
	Principal core.Principal
}

func (ListCarriersMessage) Type() string { return TypeListCarriers }

func (m ListCarriersMessage) Validate() error {
	return validatePrincipal(m.Principal)
}

type ListESimCarriersMessage struct {
	Principal core.Principal
}

func (ListESimCarriersMessage) Type() string { return TypeListESimCarriers }

func (m ListESimCarriersMessage) Validate() error {
	return validatePrincipal(m.Principal)
}

type RecentTransactionsMessage struct {
	CorpID   string
	Timezone string
	Limit    int
}

func (RecentTransactionsMessage) Type() string { return TypeRecentTransactions }

func (m RecentTransactionsMessage) Validate() error {
	if strings.TrimSpace(m.CorpID) == "" {
		return fmt.Errorf("query: corp id is required")
	}
	if m.Limit < 0 {
		return fmt.Errorf("query: limit must be >= 0")
	}
	return nil
}

type TransactionDetailsMessage struct {
	TransactionID string
}

func (TransactionDetailsMessage) Type() string { return TypeTransactionDetails }

func (m TransactionDetailsMessage) Validate() error {
	if strings.TrimSpace(m.TransactionID) == "" {
		return fmt.Errorf("query: transaction id is required")
	}
	return nil
}

type CountTransactionsMessage struct {
	CorpID string
}

func (CountTransactionsMessage) Type() string { return TypeCountTransactions }

func (m CountTransactionsMessage) Validate() error {
	if strings.TrimSpace(m.CorpID) == "" {
		return fmt.Errorf("query: corp id is required")
	}
	return nil
}

type ListBusinessPlansMessage struct{}

func (ListBusinessPlansMessage) Type() string { return TypeListBusinessPlans }

func (ListBusinessPlansMessage) Validate() error { return nil }

type ResolveFirstResponderMessage struct {
	CorpID string
}

func (ResolveFirstResponderMessage) Type() string { return TypeResolveFirstResponder }

func (m ResolveFirstResponderMessage) Validate() error {
	if strings.TrimSpace(m.CorpID) == "" {
		return fmt.Errorf("query: corp id is required")
	}
	return nil
}

type ListCarrierBearerPathsMessage struct {
	BusinessType core.BusinessType
}

func (ListCarrierBearerPathsMessage) Type() string { return TypeListCarrierBearerPaths }

func (m ListCarrierBearerPathsMessage) Validate() error {
	if strings.TrimSpace(string(m.BusinessType)) == "" {
		return fmt.Errorf("query: business type is required")
	}
	return nil
}

func validatePrincipal(p core.Principal) error {
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("query: user id is required")
	}
	if strings.TrimSpace(p.CorpID) == "" {
		return fmt.Errorf("query: corp id is required")
	}
	return nil
}
