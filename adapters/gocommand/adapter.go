package gocommand

import (
	"context"
	"fmt"
	"strings"

	gocmd "github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/catalyst-wireless/activation/command"
	"github.com/catalyst-wireless/activation/core"
	"github.com/catalyst-wireless/activation/query"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := gocmd.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(gocmd.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *gocmd.Registry
}

func NewRegistryAdapter(registry *gocmd.Registry) *RegistryAdapter {
	if registry == nil {
		registry = gocmd.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *gocmd.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) RegisterCommand(cmd any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(cmd)
}

func (a *RegistryAdapter) RegisterQuery(qry any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(qry)
}

func (a *RegistryAdapter) AddResolver(key string, resolver gocmd.Resolver) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.AddResolver(strings.TrimSpace(key), resolver)
}

func (a *RegistryAdapter) HasResolver(key string) bool {
	if a == nil || a.registry == nil {
		return false
	}
	return a.registry.HasResolver(strings.TrimSpace(key))
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.Initialize()
}

func SubscribeCommand[T any](cmd gocmd.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
}

func SubscribeCommandFunc[T any](handler gocmd.CommandFunc[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(handler, runnerOpts...)
}

func SubscribeQuery[T any, R any](qry gocmd.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func SubscribeQueryFunc[T any, R any](qry gocmd.QueryFunc[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

func RegisterAndSubscribe[T any](
	adapter *RegistryAdapter,
	cmd gocmd.Commander[T],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if cmd == nil {
		return nil, fmt.Errorf("gocommand: command is required")
	}
	subscription := SubscribeCommand(cmd, runnerOpts...)
	if err := adapter.RegisterCommand(cmd); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

func RegisterAndSubscribeQuery[T any, R any](
	adapter *RegistryAdapter,
	qry gocmd.Querier[T, R],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}
	if qry == nil {
		return nil, fmt.Errorf("gocommand: query is required")
	}
	subscription := SubscribeQuery(qry, runnerOpts...)
	if err := adapter.RegisterQuery(qry); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

// ActivationHandlers carries the collaborators the message handlers delegate to.
type ActivationHandlers struct {
	Service ActivationFacade
	History query.TransactionHistoryReader
	Plans   core.BusinessPlanReader
	Bearers core.BearerPathReader
}

// ActivationFacade is the engine surface the handlers need.
type ActivationFacade interface {
	command.ActivationService
	query.CarrierCatalogService
}

// RegisterActivationHandlers subscribes every activation command and query
// handler on the shared dispatcher and registers them with the adapter.
func RegisterActivationHandlers(
	adapter *RegistryAdapter,
	handlers ActivationHandlers,
	runnerOpts ...runner.Option,
) ([]commanddispatcher.Subscription, error) {
	if adapter == nil {
		return nil, fmt.Errorf("gocommand: adapter is required")
	}
	if handlers.Service == nil {
		return nil, fmt.Errorf("gocommand: activation service is required")
	}

	var subscriptions []commanddispatcher.Subscription
	unsubscribeAll := func() {
		for _, sub := range subscriptions {
			if sub != nil {
				sub.Unsubscribe()
			}
		}
	}

	sub, err := RegisterAndSubscribe(adapter, command.NewSubmitActivationCommand(handlers.Service), runnerOpts...)
	if err != nil {
		unsubscribeAll()
		return nil, err
	}
	subscriptions = append(subscriptions, sub)

	sub, err = RegisterAndSubscribe(adapter, command.NewSubmitESimActivationCommand(handlers.Service), runnerOpts...)
	if err != nil {
		unsubscribeAll()
		return nil, err
	}
	subscriptions = append(subscriptions, sub)

	sub, err = RegisterAndSubscribe(adapter, command.NewSubmitSmartSimActivationCommand(handlers.Service), runnerOpts...)
	if err != nil {
		unsubscribeAll()
		return nil, err
	}
	subscriptions = append(subscriptions, sub)

	sub, err = RegisterAndSubscribeQuery(adapter, query.NewListCarriersQuery(handlers.Service), runnerOpts...)
	if err != nil {
		unsubscribeAll()
		return nil, err
	}
	subscriptions = append(subscriptions, sub)

	sub, err = RegisterAndSubscribeQuery(adapter, query.NewListESimCarriersQuery(handlers.Service), runnerOpts...)
	if err != nil {
		unsubscribeAll()
		return nil, err
	}
	subscriptions = append(subscriptions, sub)

	sub, err = RegisterAndSubscribeQuery(adapter, query.NewResolveFirstResponderQuery(handlers.Service), runnerOpts...)
	if err != nil {
		unsubscribeAll()
		return nil, err
	}
	subscriptions = append(subscriptions, sub)

	if handlers.History != nil {
		sub, err = RegisterAndSubscribeQuery(adapter, query.NewRecentTransactionsQuery(handlers.History), runnerOpts...)
		if err != nil {
			unsubscribeAll()
			return nil, err
		}
		subscriptions = append(subscriptions, sub)

		sub, err = RegisterAndSubscribeQuery(adapter, query.NewTransactionDetailsQuery(handlers.History), runnerOpts...)
		if err != nil {
			unsubscribeAll()
			return nil, err
		}
		subscriptions = append(subscriptions, sub)

		sub, err = RegisterAndSubscribeQuery(adapter, query.NewCountTransactionsQuery(handlers.History), runnerOpts...)
		if err != nil {
			unsubscribeAll()
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}

	if handlers.Plans != nil {
		sub, err = RegisterAndSubscribeQuery(adapter, query.NewListBusinessPlansQuery(handlers.Plans), runnerOpts...)
		if err != nil {
			unsubscribeAll()
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}

	if handlers.Bearers != nil {
		sub, err = RegisterAndSubscribeQuery(adapter, query.NewListCarrierBearerPathsQuery(handlers.Bearers), runnerOpts...)
		if err != nil {
			unsubscribeAll()
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}

	return subscriptions, nil
}
