package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

// CarrierProfile is one catalog entry: the full per-carrier behavior record.
// Adding a carrier means registering a new profile, not adding branches.
type CarrierProfile interface {
	ID() CarrierID
	DisplayName() string
	RequiredFields() RequiredFields
	InventoryStrategy() InventoryStrategy

	// Channel picks the downstream gateway channel, given the resolved
	// context (the T-Mobile family branches on its instance selector).
	Channel(resolved ResolvedContext) Channel

	// ResolveInstance resolves the sub-context selector for carrier families
	// that have one; most profiles return "".
	ResolveInstance(ctx context.Context, dir OrganizationDirectory, corpID string) (string, error)

	// RatePlan resolves the hierarchy-scoped custom corp rate plan for this
	// carrier family, or "" when none applies.
	RatePlan(ctx context.Context, dir RatePlanDirectory, corpID string, resolved ResolvedContext) (string, error)

	// Prepare runs once per request before line mapping, resolving any
	// carrier-specific context (account ids, plan validation).
	Prepare(ctx context.Context, deps BuildDependencies, req *ActivationRequest, resolved *ResolvedContext) error

	// MapLine builds the carrier-specific outbound record for one line.
	MapLine(line ActivationLine, req *ActivationRequest, inv InventoryRecord, resolved ResolvedContext) ActivationLineDetail
}

type Registry interface {
	Register(profile CarrierProfile) error
	Get(id CarrierID) (CarrierProfile, bool)
	List() []CarrierProfile
}

// OrganizationDirectory resolves corp hierarchy facts.
type OrganizationDirectory interface {
	BusinessType(ctx context.Context, corpID string) (BusinessType, error)
	TopLevelOrganization(ctx context.Context, corpID string) (Organization, error)
	CorpInfo(ctx context.Context, corpID string) (Organization, error)
	CorpSettings(ctx context.Context, corpID string) (CorpSettings, error)
	HierarchySKU(ctx context.Context, corpID string) (string, error)
	FirstResponderByHierarchy(ctx context.Context, corpID string) (string, error)
	PRMAccessControlByHierarchy(ctx context.Context, corpID string) (AccessControlEntry, error)
	LeadID(ctx context.Context, corpID string) (string, error)
	RegisterFilterGroup(ctx context.Context, filterGroup string) error
}

// RatePlanDirectory exposes the hierarchy-scoped rate-plan overrides, one
// lookup per carrier family.
type RatePlanDirectory interface {
	VerizonRatePlan(ctx context.Context, corpID string) (string, error)
	VerizonPriorityRatePlan(ctx context.Context, corpID string) (string, error)
	ATTRatePlan(ctx context.Context, corpID string) (string, error)
	ATTFirstNetRatePlan(ctx context.Context, corpID string) (string, error)
	ATTFirstNetExtendedPrimaryRatePlan(ctx context.Context, corpID string) (string, error)
	TMORatePlan(ctx context.Context, corpID string) (string, error)
	USCellularRatePlan(ctx context.Context, corpID string) (string, error)
	PrivateWirelessRatePlan(ctx context.Context, corpID string) (string, error)
	BellCanadaRatePlan(ctx context.Context, corpID string) (string, error)
}

// Feature tags gate carrier-specific functionality per principal.
type Feature string

const (
	FeatureActivation              Feature = "ACTIVATION"
	FeatureVerizonBusinessInternet Feature = "VERIZON_BUSINESS_INTERNET_PLAN"
	FeatureESimActivation          Feature = "ESIM_ACTIVATION"
	FeaturePRMActivation           Feature = "PRM_ACTIVATION"
)

// UserSettings is the caller's resolved access set.
type UserSettings struct {
	Features []Feature
}

func (s UserSettings) Has(feature Feature) bool {
	for _, granted := range s.Features {
		if granted == feature {
			return true
		}
	}
	return false
}

type AccessControl interface {
	CheckCorpExistsAndAllowed(ctx context.Context, corpID string) error
	CheckCorpBelongsToUser(ctx context.Context, corpID string, principal Principal) error
	CheckFeatureAccess(ctx context.Context, principal Principal, feature Feature) error
	Settings(ctx context.Context, principal Principal) (UserSettings, error)
}

type WebFilterDirectory interface {
	PermittedFilterGroups(ctx context.Context, userID string) ([]string, error)
}

// InventoryCatalog sources inventory rows per lookup strategy.
type InventoryCatalog interface {
	CombinedInventory(ctx context.Context, carrier CarrierID, businessType BusinessType) (InventoryRecord, error)
	ThirdPartyInventory(ctx context.Context, carrier CarrierID) (InventoryRecord, error)
	PrivateWirelessInventory(ctx context.Context, carrier CarrierID) (InventoryRecord, error)
}

type CarrierAccountReader interface {
	CarrierAccountID(ctx context.Context, corpID string, carrier CarrierID) (string, error)
}

type BusinessPlanReader interface {
	BusinessInternetPlans(ctx context.Context) ([]BusinessPlan, error)
}

type BearerPathReader interface {
	CarrierBearerPaths(ctx context.Context, businessType BusinessType) ([]CarrierBearerPath, error)
}

// CarrierListReader backs the activation UI carrier pickers.
type CarrierListReader interface {
	CarrierList(ctx context.Context, businessType BusinessType, includeVerizonBI bool, esimOnly bool) ([]string, error)
	FirstResponderCarrierList(ctx context.Context, includeVerizonBI bool) ([]string, error)
	PrivateWirelessCarrierList(ctx context.Context) ([]string, error)
}

// CarrierGateway is the downstream submission surface: one named synchronous
// operation per channel, each accepting the serialized line-detail document.
type CarrierGateway interface {
	SubmitVerizon(ctx context.Context, sub Submission) (GatewayResult, error)
	SubmitVerizonPriority(ctx context.Context, sub Submission) (GatewayResult, error)
	SubmitATT(ctx context.Context, sub Submission) (GatewayResult, error)
	SubmitATTFirstNet(ctx context.Context, sub Submission) (GatewayResult, error)
	SubmitATTFirstNetExtendedPrimary(ctx context.Context, sub Submission) (GatewayResult, error)
	SubmitTMONetcracker(ctx context.Context, sub Submission) (GatewayResult, error)
	SubmitTMOControlCenter(ctx context.Context, sub Submission) (GatewayResult, error)
	SubmitUSCellular(ctx context.Context, sub Submission) (GatewayResult, error)
	SubmitPrivateWireless(ctx context.Context, sub Submission) (GatewayResult, error)
	SubmitBellCanada(ctx context.Context, sub Submission) (GatewayResult, error)
}

// InventoryAllocator reserves and releases eSIM inventory units. Release must
// be idempotent: releasing an already-available unit is a no-op.
type InventoryAllocator interface {
	AvailableCount(ctx context.Context, carrier CarrierID, corpID string) (ESimInventoryCount, error)
	Allocate(ctx context.Context, carrier CarrierID, corpID string, count int) ([]AllocatedUnit, error)
	Release(ctx context.Context, iccid string) error
}

type UserDirectory interface {
	UserEmail(ctx context.Context, principal Principal) (string, error)
}

// SpanTagger receives best-effort observability tags after a payload build.
// Implementations must tolerate missing spans; errors are swallowed.
type SpanTagger interface {
	TagActivation(ctx context.Context, tags ActivationSpanTags) error
}

// BuildDependencies are the collaborators a profile's Prepare step may use.
type BuildDependencies struct {
	Organizations OrganizationDirectory
	Accounts      CarrierAccountReader
	Plans         BusinessPlanReader
	Logger        Logger
}

// SmartSIM path types and collaborator.

type SmartSimServiceAddress struct {
	ServiceZipCode string
}

type SmartSimServiceDetails struct {
	Carrier        string
	DeviceGroup    string
	FilterGroup    string
	ServiceAddress *SmartSimServiceAddress
}

type SmartSimActivationLine struct {
	SimID          string
	Version        int
	ServiceDetails *SmartSimServiceDetails
}

type SmartSimActivationRequest struct {
	Lines          []SmartSimActivationLine
	DBKey          string
	KeyUserID      string
	KeyDeviceGroup string
	OCAVersion     int
}

type SmartSimActivationResponse struct {
	TransactionID string
}

type ProvisioningGateway interface {
	SubmitSmartSim(ctx context.Context, req SmartSimActivationRequest) (SmartSimActivationResponse, error)
}
