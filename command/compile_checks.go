package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[SubmitActivationMessage]         = (*SubmitActivationCommand)(nil)
	_ gocmd.Commander[SubmitESimActivationMessage]     = (*SubmitESimActivationCommand)(nil)
	_ gocmd.Commander[SubmitSmartSimActivationMessage] = (*SubmitSmartSimActivationCommand)(nil)
)
