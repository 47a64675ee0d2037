package att

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/catalyst-wireless/activation/carriers"
	"github.com/catalyst-wireless/activation/core"
)

const (
	DisplayName                        = "AT&T"
	FirstNetDisplayName                = "AT&T - FirstNet"
	FirstNetExtendedPrimaryDisplayName = "AT&T - FirstNet Extended Primary"

	// fallbackNetsweeperGroup is submitted when filter-group registration
	// with the content filter failed; the group is reconciled later.
	fallbackNetsweeperGroup = "preset"
)

// New builds the standard AT&T profile. It only carries the custom corp rate
// plan; everything else rides the line basics.
func New() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:          core.CarrierATT,
		DisplayName: DisplayName,
		Channel:     core.ChannelATT,
		RatePlan: func(ctx context.Context, dir core.RatePlanDirectory, corpID string, _ core.ResolvedContext) (string, error) {
			return dir.ATTRatePlan(ctx, corpID)
		},
		MapLine: mapStandardLine,
	})
}

// NewFirstNet builds the AT&T FirstNet profile. Zip validation applies only
// to the Extended Primary variant; the plain FirstNet carrier accepts a blank
// service zip.
func NewFirstNet() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:             core.CarrierATTFirstNet,
		DisplayName:    FirstNetDisplayName,
		RequiredFields: core.RequiredFields{ExtendedBilling: true},
		Channel:        core.ChannelATTFirstNet,
		RatePlan: func(ctx context.Context, dir core.RatePlanDirectory, corpID string, _ core.ResolvedContext) (string, error) {
			return dir.ATTFirstNetRatePlan(ctx, corpID)
		},
		Prepare: prepareFirstNet(core.CarrierATTFirstNet),
		MapLine: mapFirstNetLine,
	})
}

// NewFirstNetExtendedPrimary builds the FirstNet Extended Primary variant. It
// shares the FirstNet mapping and differs only in carrier id, channel, and
// rate-plan lookup.
func NewFirstNetExtendedPrimary() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:             core.CarrierATTFirstNetExtPrimary,
		DisplayName:    FirstNetExtendedPrimaryDisplayName,
		RequiredFields: core.RequiredFields{ZipCode: true, ExtendedBilling: true},
		Channel:        core.ChannelATTFirstNetExtended,
		RatePlan: func(ctx context.Context, dir core.RatePlanDirectory, corpID string, _ core.ResolvedContext) (string, error) {
			return dir.ATTFirstNetExtendedPrimaryRatePlan(ctx, corpID)
		},
		Prepare: prepareFirstNet(core.CarrierATTFirstNetExtPrimary),
		MapLine: mapFirstNetLine,
	})
}

func mapStandardLine(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord, resolved core.ResolvedContext) core.ActivationLineDetail {
	detail := carriers.BaseDetail(line, req, inv)
	detail.PlanID = resolved.CustomCorpRatePlan
	return detail
}

// mapFirstNetLine carries the shared billing fields plus their
// FirstNet-prefixed duplicates; the downstream document reads both.
func mapFirstNetLine(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord, resolved core.ResolvedContext) core.ActivationLineDetail {
	detail := carriers.BaseDetail(line, req, inv)
	detail.CarrierAccountID = resolved.CarrierAccountID
	detail.SKUNumber = resolved.SKU
	detail.AgencyEndUserName = req.AgencyEndUserName
	detail.BillingAddress = req.BillingAddress
	detail.BillingCity = req.BillingCity
	detail.BillingState = req.BillingState
	detail.SubType = req.SubType
	detail.ZipCode = req.ServiceZipCode
	detail.FirstNetAgencyEndUserName = req.AgencyEndUserName
	detail.FirstNetAddress = req.BillingAddress
	detail.FirstNetCity = req.BillingCity
	detail.FirstNetState = req.BillingState
	detail.FirstNetSubType = req.SubType
	detail.FirstNetZipCode = req.ServiceZipCode
	detail.BSSRatePlanID = resolved.CustomCorpRatePlan

	detail.NetsweeperGroupID = req.FilterGroup
	if !resolved.FilterGroupRegistered {
		detail.NetsweeperGroupID = fallbackNetsweeperGroup
	}

	detail.CommunicationPlanID = inv.EastCommunicationPlan
	if core.LocationWest.Matches(req.ActivationLocation) {
		detail.CommunicationPlanID = inv.WestCommunicationPlan
	}
	return detail
}

// prepareFirstNet resolves the top-level-organization carrier account and
// registers the filter group with the content filter. A failed registration
// is not fatal; the mapping falls back to the preset netsweeper group.
func prepareFirstNet(carrier core.CarrierID) func(context.Context, core.BuildDependencies, *core.ActivationRequest, *core.ResolvedContext) error {
	return func(ctx context.Context, deps core.BuildDependencies, req *core.ActivationRequest, resolved *core.ResolvedContext) error {
		top, err := deps.Organizations.TopLevelOrganization(ctx, req.DeviceGroup)
		if err != nil {
			return err
		}
		accountID, err := deps.Accounts.CarrierAccountID(ctx, top.CorpID, carrier)
		if err != nil {
			return err
		}
		if strings.TrimSpace(accountID) == "" {
			return goerrors.New(
				fmt.Sprintf("no carrier account registered for %s", carrier),
				goerrors.CategoryInternal,
			).WithCode(http.StatusInternalServerError).WithTextCode(core.ActivationErrorInternal)
		}
		resolved.CarrierAccountID = accountID

		resolved.FilterGroupRegistered = true
		if registerErr := deps.Organizations.RegisterFilterGroup(ctx, req.FilterGroup); registerErr != nil {
			resolved.FilterGroupRegistered = false
			if deps.Logger != nil {
				deps.Logger.Warn("filter group registration failed",
					"filter_group", req.FilterGroup,
					"error", registerErr.Error(),
				)
			}
		}
		return nil
	}
}
