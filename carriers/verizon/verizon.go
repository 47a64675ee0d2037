package verizon

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
	DisplayName                 = "Verizon"
	PriorityDisplayName         = "Verizon - Priority"
	BusinessInternetDisplayName = "Verizon - Business Internet"
)

// New builds the standard Verizon profile.
func New() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:             core.CarrierVerizon,
		DisplayName:    DisplayName,
		RequiredFields: core.RequiredFields{ZipCode: true},
		Channel:        core.ChannelVerizon,
		RatePlan: func(ctx context.Context, dir core.RatePlanDirectory, corpID string, _ core.ResolvedContext) (string, error) {
			return dir.VerizonRatePlan(ctx, corpID)
		},
		MapLine: mapStandardLine,
	})
}

// NewPriority builds the Verizon Priority (first responder) profile. It
// carries the hierarchy carrier account plus the shared billing fields and
// picks the east or west IP pool from the inventory row by activation
// location.
func NewPriority() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:             core.CarrierVerizonPriority,
		DisplayName:    PriorityDisplayName,
		RequiredFields: core.RequiredFields{ZipCode: true, ExtendedBilling: true},
		Channel:        core.ChannelVerizonPriority,
		RatePlan: func(ctx context.Context, dir core.RatePlanDirectory, corpID string, _ core.ResolvedContext) (string, error) {
			return dir.VerizonPriorityRatePlan(ctx, corpID)
		},
		Prepare: prepareHierarchyAccount(core.CarrierVerizonPriority),
		MapLine: mapPriorityLine,
	})
}

// NewBusinessInternet builds the Verizon Business Internet profile. The
// caller-selected plan is validated against the tagged business plan list and
// the shared "ALL CORPS" carrier account is attached. Batches ride the
// Verizon Priority gateway channel.
func NewBusinessInternet() (core.CarrierProfile, error) {
	return carriers.New(carriers.Config{
		ID:             core.CarrierVerizonBI,
		DisplayName:    BusinessInternetDisplayName,
		RequiredFields: core.RequiredFields{ZipCode: true},
		Channel:        core.ChannelVerizonPriority,
		Prepare:        prepareBusinessInternet,
		MapLine:        mapBusinessInternetLine,
	})
}

func mapStandardLine(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord, resolved core.ResolvedContext) core.ActivationLineDetail {
	detail := carriers.BaseDetail(line, req, inv)
	detail.WHPlanID = inv.PlanID
	if strings.TrimSpace(resolved.CustomCorpRatePlan) != "" {
		detail.WHPlanID = resolved.CustomCorpRatePlan
	}
	detail.CarrierIPPool = resolved.CarrierIPPool
	detail.ZipCode = req.ServiceZipCode
	detail.LeadID = resolved.LeadID
	detail.SKUNumber = resolved.SKU
	return detail
}

func mapPriorityLine(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord, resolved core.ResolvedContext) core.ActivationLineDetail {
	detail := carriers.BaseDetail(line, req, inv)
	detail.CarrierAccountID = resolved.CarrierAccountID
	detail.SKUNumber = resolved.SKU
	detail.AgencyEndUserName = req.AgencyEndUserName
	detail.BillingAddress = req.BillingAddress
	detail.BillingCity = req.BillingCity
	detail.BillingState = req.BillingState
	detail.SubType = req.SubType
	detail.ZipCode = req.ServiceZipCode
	detail.PlanID = resolved.CustomCorpRatePlan
	detail.CarrierIPPool = inv.EastIPPool
	if core.LocationWest.Matches(req.ActivationLocation) {
		detail.CarrierIPPool = inv.WestIPPool
	}
	return detail
}

func mapBusinessInternetLine(line core.ActivationLine, req *core.ActivationRequest, inv core.InventoryRecord, resolved core.ResolvedContext) core.ActivationLineDetail {
	detail := carriers.BaseDetail(line, req, inv)
	detail.PlanID = resolved.ValidatedPlanID
	detail.WHPlanID = resolved.ValidatedPlanID
	detail.CarrierAccountID = resolved.CarrierAccountID
	detail.CarrierIPPool = resolved.CarrierIPPool
	detail.ZipCode = req.ServiceZipCode
	detail.LeadID = resolved.LeadID
	detail.SKUNumber = resolved.SKU
	return detail
}

// prepareBusinessInternet validates the caller plan against the tagged plan
// list and resolves the shared carrier account.
func prepareBusinessInternet(ctx context.Context, deps core.BuildDependencies, req *core.ActivationRequest, resolved *core.ResolvedContext) error {
	planID := strings.TrimSpace(req.PlanID)
	if planID == "" {
		return invalidPlanError()
	}
	plans, err := deps.Plans.BusinessInternetPlans(ctx)
	if err != nil {
		return err
	}
	valid := false
	for _, plan := range plans {
		if !strings.EqualFold(strings.TrimSpace(plan.Carrier), core.VerizonBusinessInternetPlanTag) {
			continue
		}
		if plan.PlanID == planID {
			valid = true
			break
		}
	}
	if !valid {
		return invalidPlanError()
	}
	resolved.ValidatedPlanID = planID

	accountID, err := deps.Accounts.CarrierAccountID(ctx, core.AllCorpsAccountScope, core.CarrierVerizonBI)
	if err != nil {
		return err
	}
	if strings.TrimSpace(accountID) == "" {
		return missingAccountError(core.CarrierVerizonBI)
	}
	resolved.CarrierAccountID = accountID
	return nil
}

// prepareHierarchyAccount resolves the carrier account registered under the
// corp's top-level organization.
func prepareHierarchyAccount(carrier core.CarrierID) func(context.Context, core.BuildDependencies, *core.ActivationRequest, *core.ResolvedContext) error {
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
			return missingAccountError(carrier)
		}
		resolved.CarrierAccountID = accountID
		return nil
	}
}

func invalidPlanError() error {
	return goerrors.New("Invalid Plan!", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.ActivationErrorBadInput)
}

func missingAccountError(carrier core.CarrierID) error {
	return goerrors.New(
		fmt.Sprintf("no carrier account registered for %s", carrier),
		goerrors.CategoryInternal,
	).WithCode(http.StatusInternalServerError).WithTextCode(core.ActivationErrorInternal)
}
