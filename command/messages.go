package command

import (
	"fmt"
	"strings"

	"github.com/catalyst-wireless/activation/core"
)

const (
	TypeSubmitActivation         = "activation.command.activation.submit"
	TypeSubmitESimActivation     = "activation.command.esim.submit"
	TypeSubmitSmartSimActivation = "activation.command.smartsim.submit"
)

type SubmitActivationMessage struct {
	Request   *core.ActivationRequest
	Principal core.Principal
}

func (SubmitActivationMessage) Type() string { return TypeSubmitActivation }

func (m SubmitActivationMessage) Validate() error {
	if m.Request == nil {
		return fmt.Errorf("command: activation request is required")
	}
	if strings.TrimSpace(string(m.Request.Carrier)) == "" {
		return fmt.Errorf("command: carrier is required")
	}
	return validatePrincipal(m.Principal)
}

type SubmitESimActivationMessage struct {
	Request   *core.ActivationRequest
	Principal core.Principal
}

func (SubmitESimActivationMessage) Type() string { return TypeSubmitESimActivation }

func (m SubmitESimActivationMessage) Validate() error {
	if m.Request == nil {
		return fmt.Errorf("command: activation request is required")
	}
	if strings.TrimSpace(string(m.Request.Carrier)) == "" {
		return fmt.Errorf("command: carrier is required")
	}
	if len(m.Request.Lines) == 0 {
		return fmt.Errorf("command: activation lines are required")
	}
	return validatePrincipal(m.Principal)
}

type SubmitSmartSimActivationMessage struct {
	Request   *core.SmartSimActivationRequest
	Principal core.Principal
}

func (SubmitSmartSimActivationMessage) Type() string { return TypeSubmitSmartSimActivation }

func (m SubmitSmartSimActivationMessage) Validate() error {
	if m.Request == nil {
		return fmt.Errorf("command: provisioning request is required")
	}
	if len(m.Request.Lines) == 0 {
		return fmt.Errorf("command: provisioning lines are required")
	}
	return validatePrincipal(m.Principal)
}

func validatePrincipal(p core.Principal) error {
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("command: user id is required")
	}
	if strings.TrimSpace(p.CorpID) == "" {
		return fmt.Errorf("command: corp id is required")
	}
	return nil
}
