package core

import (
	"context"
	"strings"
	"time"
)

// Short SIM ids carry no embedded carrier discriminator, so the request must
// name a known carrier explicitly.
const smartSimFullIDLength = 19

const defaultOCAVersion = 2

// SubmitSmartSimActivation validates and forwards a SmartSIM provisioning
// request. Each line is checked independently; the first failure aborts the
// whole request before anything reaches the provisioning gateway.
func (e *Engine) SubmitSmartSimActivation(ctx context.Context, req *SmartSimActivationRequest, principal Principal) (transactionID string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"corp_id": principal.CorpID,
		"user_id": principal.UserID,
	}
	if req != nil {
		fields["line_count"] = len(req.Lines)
	}
	defer func() {
		e.observeOperation(ctx, startedAt, "submit_smartsim_activation", err, fields)
	}()

	if err = principal.Validate(); err != nil {
		err = e.mapError(err)
		return "", err
	}
	if req == nil || len(req.Lines) == 0 {
		err = validationError("Activation lines list is empty")
		return "", err
	}
	if e.provisioning == nil {
		err = systemError("provisioning gateway is not configured")
		return "", err
	}

	for i := range req.Lines {
		if err = e.validateSmartSimLine(ctx, req.Lines[i], principal); err != nil {
			err = e.mapError(err)
			return "", err
		}
	}

	stamped := *req
	stamped.Lines = make([]SmartSimActivationLine, len(req.Lines))
	copy(stamped.Lines, req.Lines)
	if stamped.OCAVersion == 0 {
		stamped.OCAVersion = defaultOCAVersion
	}
	stamped.DBKey = principal.CorpID
	stamped.KeyUserID = principal.UserID
	stamped.KeyDeviceGroup = stamped.Lines[0].ServiceDetails.DeviceGroup
	for i := range stamped.Lines {
		stamped.Lines[i].Version = stamped.OCAVersion
	}

	resp, err := e.provisioning.SubmitSmartSim(ctx, stamped)
	if err != nil {
		err = e.mapError(gatewayError("smartsim provisioning submission failed", err))
		return "", err
	}
	if strings.TrimSpace(resp.TransactionID) == "" {
		err = systemError(internalErrorMessage)
		return "", err
	}
	return resp.TransactionID, nil
}

func (e *Engine) validateSmartSimLine(ctx context.Context, line SmartSimActivationLine, principal Principal) error {
	if line.ServiceDetails == nil {
		return validationError("Service details are required")
	}
	if strings.TrimSpace(line.SimID) == "" {
		return validationError("SIM id is required")
	}
	if len(strings.TrimSpace(line.SimID)) < smartSimFullIDLength {
		if !e.knownCarrierName(line.ServiceDetails.Carrier) {
			return validationError("Invalid Carrier!")
		}
	}

	deviceGroup := strings.TrimSpace(line.ServiceDetails.DeviceGroup)
	if deviceGroup == "" {
		return validationError("Device group is required")
	}
	if err := e.access.CheckCorpExistsAndAllowed(ctx, deviceGroup); err != nil {
		return err
	}
	if err := e.access.CheckCorpBelongsToUser(ctx, deviceGroup, principal); err != nil {
		return err
	}
	if !strings.EqualFold(deviceGroup, principal.CorpID) {
		if err := e.access.CheckFeatureAccess(ctx, principal.ForCorp(deviceGroup), FeatureActivation); err != nil {
			return err
		}
	}

	if err := e.validateFilterGroup(ctx, principal, line.ServiceDetails.FilterGroup); err != nil {
		return err
	}

	if line.ServiceDetails.ServiceAddress == nil {
		return validationError("Zipcode is Mandatory")
	}
	return validateUSZipCode(line.ServiceDetails.ServiceAddress.ServiceZipCode)
}

// knownCarrierName matches a display name against the registered profiles.
func (e *Engine) knownCarrierName(name string) bool {
	if e == nil || e.registry == nil {
		return false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, profile := range e.registry.List() {
		if strings.EqualFold(profile.DisplayName(), name) {
			return true
		}
	}
	return false
}
