package command

import (
	"context"

	"github.com/catalyst-wireless/activation/core"
	gocmd "github.com/goliatone/go-command"
)

type ActivationService interface {
	SubmitActivation(ctx context.Context, req *core.ActivationRequest, principal core.Principal) (int64, error)
	SubmitESimActivation(ctx context.Context, req *core.ActivationRequest, principal core.Principal) (int64, error)
	SubmitSmartSimActivation(ctx context.Context, req *core.SmartSimActivationRequest, principal core.Principal) (string, error)
}

type SubmitActivationCommand struct {
	service ActivationService
}

func NewSubmitActivationCommand(service ActivationService) *SubmitActivationCommand {
	return &SubmitActivationCommand{service: service}
}

func (c *SubmitActivationCommand) Execute(ctx context.Context, msg SubmitActivationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: activation service is required")
	}
	txID, err := c.service.SubmitActivation(ctx, msg.Request, msg.Principal)
	if err != nil {
		return err
	}
	storeResult(ctx, txID)
	return nil
}

type SubmitESimActivationCommand struct {
	service ActivationService
}

func NewSubmitESimActivationCommand(service ActivationService) *SubmitESimActivationCommand {
	return &SubmitESimActivationCommand{service: service}
}

func (c *SubmitESimActivationCommand) Execute(ctx context.Context, msg SubmitESimActivationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: activation service is required")
	}
	txID, err := c.service.SubmitESimActivation(ctx, msg.Request, msg.Principal)
	if err != nil {
		return err
	}
	storeResult(ctx, txID)
	return nil
}

type SubmitSmartSimActivationCommand struct {
	service ActivationService
}

func NewSubmitSmartSimActivationCommand(service ActivationService) *SubmitSmartSimActivationCommand {
	return &SubmitSmartSimActivationCommand{service: service}
}

func (c *SubmitSmartSimActivationCommand) Execute(ctx context.Context, msg SubmitSmartSimActivationMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: provisioning service is required")
	}
	transactionID, err := c.service.SubmitSmartSimActivation(ctx, msg.Request, msg.Principal)
	if err != nil {
		return err
	}
	storeResult(ctx, transactionID)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
