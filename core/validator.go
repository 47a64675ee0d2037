package core

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var zipCodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

const maxBillingFieldLength = 50

// validateRequest is the first pipeline stage. It performs structural and
// business validation against the carrier profile and collaborators, resolves
// the corp's business type, and returns the surviving lines after iccid/imei
// dedup, preserving input order. Structural and line-count checks run before
// any collaborator call.
func (e *Engine) validateRequest(
	ctx context.Context,
	req *ActivationRequest,
	principal Principal,
	profile CarrierProfile,
) (BusinessType, []ActivationLine, error) {
	if err := principal.Validate(); err != nil {
		return "", nil, validationError(err.Error())
	}
	if req == nil || len(req.Lines) == 0 {
		return "", nil, validationError("Activation lines list is empty")
	}
	if len(req.Lines) > e.config.MaxActivationLines {
		return "", nil, validationError(fmt.Sprintf("Max limit of rows %d exceeded.", e.config.MaxActivationLines))
	}

	if err := e.access.CheckCorpExistsAndAllowed(ctx, req.DeviceGroup); err != nil {
		return "", nil, err
	}
	if err := e.access.CheckCorpBelongsToUser(ctx, req.DeviceGroup, principal); err != nil {
		return "", nil, err
	}
	if !strings.EqualFold(req.DeviceGroup, principal.CorpID) {
		if err := e.access.CheckFeatureAccess(ctx, principal.ForCorp(req.DeviceGroup), FeatureActivation); err != nil {
			return "", nil, err
		}
	}
	if profile.ID() == CarrierVerizonBI {
		if err := e.access.CheckFeatureAccess(ctx, principal, FeatureVerizonBusinessInternet); err != nil {
			return "", nil, err
		}
	}

	required := profile.RequiredFields()
	if required.ZipCode {
		if err := validateUSZipCode(req.ServiceZipCode); err != nil {
			return "", nil, err
		}
	}
	if required.ExtendedBilling {
		if err := validateExtendedBillingFields(req); err != nil {
			return "", nil, err
		}
	}

	// Pool selection and the non-bearer carrier set key off the caller's
	// corp, not the target device group.
	businessType, err := e.organizations.BusinessType(ctx, principal.CorpID)
	if err != nil {
		return "", nil, err
	}

	enforceFilterGroup, err := e.filterGroupEnforced(ctx, profile, businessType)
	if err != nil {
		return "", nil, err
	}
	if enforceFilterGroup {
		if err := e.validateFilterGroup(ctx, principal, req.FilterGroup); err != nil {
			return "", nil, err
		}
	}

	survivors, err := dedupLines(req.Lines)
	if err != nil {
		return "", nil, err
	}
	return businessType, survivors, nil
}

// filterGroupEnforced reports whether the carrier participates in content
// filtering for the corp's business type. Non-bearer carriers are exempt.
func (e *Engine) filterGroupEnforced(ctx context.Context, profile CarrierProfile, businessType BusinessType) (bool, error) {
	if e.bearerPaths == nil {
		return true, nil
	}
	paths, err := e.bearerPaths.CarrierBearerPaths(ctx, businessType)
	if err != nil {
		return false, err
	}
	for _, path := range paths {
		if path.IsNonBearer() && strings.EqualFold(path.CarrierName, profile.DisplayName()) {
			return false, nil
		}
	}
	return true, nil
}

func (e *Engine) validateFilterGroup(ctx context.Context, principal Principal, filterGroup string) error {
	if strings.TrimSpace(filterGroup) == "" {
		return validationError("Invalid Filter group")
	}
	permitted, err := e.webFilters.PermittedFilterGroups(ctx, principal.UserID)
	if err != nil {
		return err
	}
	for _, group := range permitted {
		if group == filterGroup {
			return nil
		}
	}
	return validationError("Invalid Filter group")
}

func validateUSZipCode(zipCode string) error {
	if strings.TrimSpace(zipCode) == "" {
		return validationError("Zipcode is Mandatory")
	}
	if !zipCodePattern.MatchString(zipCode) {
		return validationError("Invalid Zipcode")
	}
	return nil
}

func validateExtendedBillingFields(req *ActivationRequest) error {
	checks := []struct {
		value   string
		message string
	}{
		{req.AgencyEndUserName, "Invalid Agency End User Name"},
		{req.BillingAddress, "Invalid End Customer Billing Address"},
		{req.BillingCity, "Invalid City"},
		{req.BillingState, "Invalid State"},
		{req.SubType, "Invalid Sub-Type"},
	}
	for _, check := range checks {
		if strings.TrimSpace(check.value) == "" || len(check.value) > maxBillingFieldLength {
			return validationError(check.message)
		}
	}
	return nil
}

// dedupLines validates line identifiers and collapses duplicates. A repeated
// iccid with the same imei is a benign duplicate and is dropped; a repeated
// iccid with a different imei, or a repeated non-blank imei on a different
// iccid, is a hard duplicate error.
func dedupLines(lines []ActivationLine) ([]ActivationLine, error) {
	iccidToIMEI := make(map[string]string, len(lines))
	seenIMEI := make(map[string]struct{}, len(lines))
	survivors := make([]ActivationLine, 0, len(lines))

	for _, line := range lines {
		if err := ValidateIMEI(line.IMEI); err != nil {
			return nil, err
		}
		if err := ValidateICCID(line.ICCID); err != nil {
			return nil, err
		}

		if storedIMEI, seen := iccidToIMEI[line.ICCID]; seen {
			if storedIMEI == line.IMEI {
				// same sim, ignoring
				continue
			}
			return nil, duplicateLineError("Duplicate ICCID: " + line.ICCID)
		}
		if strings.TrimSpace(line.IMEI) != "" {
			if _, seen := seenIMEI[line.IMEI]; seen {
				return nil, duplicateLineError("Duplicate IMEI: " + line.IMEI)
			}
			seenIMEI[line.IMEI] = struct{}{}
		}

		iccidToIMEI[line.ICCID] = line.IMEI
		survivors = append(survivors, line)
	}
	return survivors, nil
}
