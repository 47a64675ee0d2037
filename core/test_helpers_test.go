package core

import (
	"context"
	"fmt"
	"sync"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

var (
	errDirectoryDown = fmt.Errorf("directory unavailable")
	errGatewayDown   = fmt.Errorf("connection refused")
)

// Known-good line identifiers for request fixtures.
const (
	testIMEI1 = "356938035643809"
	testIMEI2 = "490154203237518"

	testICCID1 = "8914800000000000002"
	testICCID2 = "8914800000000000010"
)

type testProfile struct {
	id           CarrierID
	displayName  string
	required     RequiredFields
	strategy     InventoryStrategy
	channel      Channel
	channelFn    func(resolved ResolvedContext) Channel
	instance     string
	instanceErr  error
	ratePlan     string
	ratePlanErr  error
	prepareFn    func(ctx context.Context, deps BuildDependencies, req *ActivationRequest, resolved *ResolvedContext) error
	mapLineFn    func(line ActivationLine, req *ActivationRequest, inv InventoryRecord, resolved ResolvedContext) ActivationLineDetail
	prepareCalls int
}

func (p *testProfile) ID() CarrierID { return p.id }

func (p *testProfile) DisplayName() string { return p.displayName }

func (p *testProfile) RequiredFields() RequiredFields { return p.required }

func (p *testProfile) InventoryStrategy() InventoryStrategy { return p.strategy }

func (p *testProfile) Channel(resolved ResolvedContext) Channel {
	if p.channelFn != nil {
		return p.channelFn(resolved)
	}
	return p.channel
}

func (p *testProfile) ResolveInstance(context.Context, OrganizationDirectory, string) (string, error) {
	return p.instance, p.instanceErr
}

func (p *testProfile) RatePlan(context.Context, RatePlanDirectory, string, ResolvedContext) (string, error) {
	return p.ratePlan, p.ratePlanErr
}

func (p *testProfile) Prepare(ctx context.Context, deps BuildDependencies, req *ActivationRequest, resolved *ResolvedContext) error {
	p.prepareCalls++
	if p.prepareFn != nil {
		return p.prepareFn(ctx, deps, req, resolved)
	}
	return nil
}

func (p *testProfile) MapLine(line ActivationLine, req *ActivationRequest, inv InventoryRecord, resolved ResolvedContext) ActivationLineDetail {
	if p.mapLineFn != nil {
		return p.mapLineFn(line, req, inv, resolved)
	}
	return ActivationLineDetail{
		ICCID:       line.ICCID,
		IMEI:        line.IMEI,
		Nickname:    line.Nickname,
		FilterGroup: req.FilterGroup,
		DeviceGroup: req.DeviceGroup,
	}
}

func newVerizonTestProfile() *testProfile {
	return &testProfile{
		id:          CarrierVerizon,
		displayName: "Verizon",
		required:    RequiredFields{ZipCode: true},
		strategy:    StrategyStandard,
		channel:     ChannelVerizon,
	}
}

type stubOrganizations struct {
	businessType     BusinessType
	businessTypeErr  error
	businessTypeFn   func(ctx context.Context, corpID string) (BusinessType, error)
	topLevel         Organization
	corpInfo         Organization
	settings         CorpSettings
	settingsErr      error
	hierarchySKU     string
	firstResponder   string
	prmEntry         AccessControlEntry
	leadID           string
	registerErr      error
	registeredGroups []string

	businessTypeCalls int
}

func (s *stubOrganizations) BusinessType(ctx context.Context, corpID string) (BusinessType, error) {
	s.businessTypeCalls++
	if s.businessTypeFn != nil {
		return s.businessTypeFn(ctx, corpID)
	}
	if s.businessType == "" {
		return BusinessTypeEducation, s.businessTypeErr
	}
	return s.businessType, s.businessTypeErr
}

func (s *stubOrganizations) TopLevelOrganization(_ context.Context, corpID string) (Organization, error) {
	if s.topLevel.CorpID == "" {
		return Organization{CorpID: corpID}, nil
	}
	return s.topLevel, nil
}

func (s *stubOrganizations) CorpInfo(_ context.Context, corpID string) (Organization, error) {
	if s.corpInfo.CorpID == "" {
		return Organization{CorpID: corpID}, nil
	}
	return s.corpInfo, nil
}

func (s *stubOrganizations) CorpSettings(context.Context, string) (CorpSettings, error) {
	return s.settings, s.settingsErr
}

func (s *stubOrganizations) HierarchySKU(context.Context, string) (string, error) {
	return s.hierarchySKU, nil
}

func (s *stubOrganizations) FirstResponderByHierarchy(context.Context, string) (string, error) {
	if s.firstResponder == "" {
		return FirstResponderNo, nil
	}
	return s.firstResponder, nil
}

func (s *stubOrganizations) PRMAccessControlByHierarchy(context.Context, string) (AccessControlEntry, error) {
	return s.prmEntry, nil
}

func (s *stubOrganizations) LeadID(context.Context, string) (string, error) {
	return s.leadID, nil
}

func (s *stubOrganizations) RegisterFilterGroup(_ context.Context, filterGroup string) error {
	if s.registerErr != nil {
		return s.registerErr
	}
	s.registeredGroups = append(s.registeredGroups, filterGroup)
	return nil
}

type stubRatePlans struct {
	verizon         string
	verizonPriority string
	att             string
	attFirstNet     string
	attFirstNetEP   string
	tmo             string
	usCellular      string
	privateWireless string
	bellCanada      string
	err             error
}

func (s stubRatePlans) VerizonRatePlan(context.Context, string) (string, error) {
	return s.verizon, s.err
}

func (s stubRatePlans) VerizonPriorityRatePlan(context.Context, string) (string, error) {
	return s.verizonPriority, s.err
}

func (s stubRatePlans) ATTRatePlan(context.Context, string) (string, error) {
	return s.att, s.err
}

func (s stubRatePlans) ATTFirstNetRatePlan(context.Context, string) (string, error) {
	return s.attFirstNet, s.err
}

func (s stubRatePlans) ATTFirstNetExtendedPrimaryRatePlan(context.Context, string) (string, error) {
	return s.attFirstNetEP, s.err
}

func (s stubRatePlans) TMORatePlan(context.Context, string) (string, error) {
	return s.tmo, s.err
}

func (s stubRatePlans) USCellularRatePlan(context.Context, string) (string, error) {
	return s.usCellular, s.err
}

func (s stubRatePlans) PrivateWirelessRatePlan(context.Context, string) (string, error) {
	return s.privateWireless, s.err
}

func (s stubRatePlans) BellCanadaRatePlan(context.Context, string) (string, error) {
	return s.bellCanada, s.err
}

type stubAccess struct {
	corpExistsErr  error
	corpBelongsErr error
	featureErr     error
	featureFn      func(ctx context.Context, principal Principal, feature Feature) error
	settings       UserSettings
	settingsErr    error

	corpExistsCalls int
	featureChecks   []Feature
}

func (s *stubAccess) CheckCorpExistsAndAllowed(context.Context, string) error {
	s.corpExistsCalls++
	return s.corpExistsErr
}

func (s *stubAccess) CheckCorpBelongsToUser(context.Context, string, Principal) error {
	return s.corpBelongsErr
}

func (s *stubAccess) CheckFeatureAccess(ctx context.Context, principal Principal, feature Feature) error {
	s.featureChecks = append(s.featureChecks, feature)
	if s.featureFn != nil {
		return s.featureFn(ctx, principal, feature)
	}
	return s.featureErr
}

func (s *stubAccess) Settings(context.Context, Principal) (UserSettings, error) {
	return s.settings, s.settingsErr
}

type stubWebFilters struct {
	groups []string
	err    error
}

func (s stubWebFilters) PermittedFilterGroups(context.Context, string) ([]string, error) {
	return s.groups, s.err
}

type stubCatalog struct {
	combined    InventoryRecord
	combinedErr error
	thirdParty  InventoryRecord
	private     InventoryRecord

	lookups []InventoryStrategy
}

func (s *stubCatalog) CombinedInventory(context.Context, CarrierID, BusinessType) (InventoryRecord, error) {
	s.lookups = append(s.lookups, StrategyStandard)
	return s.combined, s.combinedErr
}

func (s *stubCatalog) ThirdPartyInventory(context.Context, CarrierID) (InventoryRecord, error) {
	s.lookups = append(s.lookups, StrategyThirdParty)
	return s.thirdParty, nil
}

func (s *stubCatalog) PrivateWirelessInventory(context.Context, CarrierID) (InventoryRecord, error) {
	s.lookups = append(s.lookups, StrategyPrivateWireless)
	return s.private, nil
}

type stubAccounts struct {
	accountID string
	err       error
}

func (s stubAccounts) CarrierAccountID(context.Context, string, CarrierID) (string, error) {
	return s.accountID, s.err
}

type stubBusinessPlans struct {
	plans []BusinessPlan
	err   error
}

func (s stubBusinessPlans) BusinessInternetPlans(context.Context) ([]BusinessPlan, error) {
	return s.plans, s.err
}

type stubBearerPaths struct {
	paths []CarrierBearerPath
	err   error
}

func (s stubBearerPaths) CarrierBearerPaths(context.Context, BusinessType) ([]CarrierBearerPath, error) {
	return s.paths, s.err
}

type stubCarrierLists struct {
	list           []string
	firstResponder []string
	private        []string
	esimList       []string
	err            error

	listCalls int
	esimCalls int
	frCalls   int
	pwCalls   int
}

func (s *stubCarrierLists) CarrierList(_ context.Context, _ BusinessType, _ bool, esimOnly bool) ([]string, error) {
	if esimOnly {
		s.esimCalls++
		return s.esimList, s.err
	}
	s.listCalls++
	return s.list, s.err
}

func (s *stubCarrierLists) FirstResponderCarrierList(context.Context, bool) ([]string, error) {
	s.frCalls++
	return s.firstResponder, s.err
}

func (s *stubCarrierLists) PrivateWirelessCarrierList(context.Context) ([]string, error) {
	s.pwCalls++
	return s.private, s.err
}

// stubGateway records every submission and the channel it arrived on.
type stubGateway struct {
	mu          sync.Mutex
	result      GatewayResult
	err         error
	channels    []Channel
	submissions []Submission
}

func (s *stubGateway) submit(channel Channel, sub Submission) (GatewayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = append(s.channels, channel)
	s.submissions = append(s.submissions, sub)
	return s.result, s.err
}

func (s *stubGateway) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submissions)
}

func (s *stubGateway) SubmitVerizon(_ context.Context, sub Submission) (GatewayResult, error) {
	return s.submit(ChannelVerizon, sub)
}

func (s *stubGateway) SubmitVerizonPriority(_ context.Context, sub Submission) (GatewayResult, error) {
	return s.submit(ChannelVerizonPriority, sub)
}

func (s *stubGateway) SubmitATT(_ context.Context, sub Submission) (GatewayResult, error) {
	return s.submit(ChannelATT, sub)
}

func (s *stubGateway) SubmitATTFirstNet(_ context.Context, sub Submission) (GatewayResult, error) {
	return s.submit(ChannelATTFirstNet, sub)
}

func (s *stubGateway) SubmitATTFirstNetExtendedPrimary(_ context.Context, sub Submission) (GatewayResult, error) {
	return s.submit(ChannelATTFirstNetExtended, sub)
}

func (s *stubGateway) SubmitTMONetcracker(_ context.Context, sub Submission) (GatewayResult, error) {
	return s.submit(ChannelTMONetcracker, sub)
}

func (s *stubGateway) SubmitTMOControlCenter(_ context.Context, sub Submission) (GatewayResult, error) {
	return s.submit(ChannelTMOControlCenter, sub)
}

func (s *stubGateway) SubmitUSCellular(_ context.Context, sub Submission) (GatewayResult, error) {
	return s.submit(ChannelUSCellular, sub)
}

func (s *stubGateway) SubmitPrivateWireless(_ context.Context, sub Submission) (GatewayResult, error) {
	return s.submit(ChannelPrivateWireless, sub)
}

func (s *stubGateway) SubmitBellCanada(_ context.Context, sub Submission) (GatewayResult, error) {
	return s.submit(ChannelBellCanada, sub)
}

type stubAllocator struct {
	count       ESimInventoryCount
	countErr    error
	units       []AllocatedUnit
	allocateErr error
	releaseErr  error
	released    []string

	countCorpID    string
	allocateCorpID string
}

func (s *stubAllocator) AvailableCount(_ context.Context, _ CarrierID, corpID string) (ESimInventoryCount, error) {
	s.countCorpID = corpID
	return s.count, s.countErr
}

func (s *stubAllocator) Allocate(_ context.Context, _ CarrierID, corpID string, _ int) ([]AllocatedUnit, error) {
	s.allocateCorpID = corpID
	if s.allocateErr != nil {
		return nil, s.allocateErr
	}
	return s.units, nil
}

func (s *stubAllocator) Release(_ context.Context, iccid string) error {
	s.released = append(s.released, iccid)
	return s.releaseErr
}

type stubUsers struct {
	email string
	err   error
}

func (s stubUsers) UserEmail(context.Context, Principal) (string, error) {
	return s.email, s.err
}

type stubProvisioning struct {
	response SmartSimActivationResponse
	err      error
	requests []SmartSimActivationRequest
}

func (s *stubProvisioning) SubmitSmartSim(_ context.Context, req SmartSimActivationRequest) (SmartSimActivationResponse, error) {
	s.requests = append(s.requests, req)
	return s.response, s.err
}

// testCollaborators bundles every stub wired into a test engine so individual
// tests can reach in and adjust or assert.
type testCollaborators struct {
	organizations *stubOrganizations
	ratePlans     stubRatePlans
	access        *stubAccess
	webFilters    stubWebFilters
	catalog       *stubCatalog
	accounts      stubAccounts
	plans         stubBusinessPlans
	bearerPaths   stubBearerPaths
	carrierLists  *stubCarrierLists
	gateway       *stubGateway
	allocator     *stubAllocator
	users         stubUsers
	provisioning  *stubProvisioning
	registry      Registry
}

func defaultTestCollaborators() *testCollaborators {
	return &testCollaborators{
		organizations: &stubOrganizations{
			settings: CorpSettings{FirstResponder: FirstResponderNo},
		},
		access: &stubAccess{
			settings: UserSettings{Features: []Feature{
				FeatureActivation,
				FeatureVerizonBusinessInternet,
				FeatureESimActivation,
			}},
		},
		webFilters:   stubWebFilters{groups: []string{"standard-filter"}},
		catalog:      &stubCatalog{combined: InventoryRecord{SKU: "SKU-STD", PlanID: "PLAN-STD"}},
		carrierLists: &stubCarrierLists{},
		gateway:      &stubGateway{result: GatewayResult{ResultCode: 0, TransactionID: 12345}},
		allocator:    &stubAllocator{},
		users:        stubUsers{email: "user@example.com"},
		provisioning: &stubProvisioning{response: SmartSimActivationResponse{TransactionID: "smart_tx_1"}},
	}
}

func newTestEngine(t *testing.T, deps *testCollaborators, profiles ...CarrierProfile) *Engine {
	t.Helper()

	registry := deps.registry
	if registry == nil {
		registry = NewCarrierRegistry()
		for _, profile := range profiles {
			if err := registry.Register(profile); err != nil {
				t.Fatalf("register profile %s: %v", profile.ID(), err)
			}
		}
	}

	engine, err := NewEngine(Config{},
		WithRegistry(registry),
		WithOrganizationDirectory(deps.organizations),
		WithRatePlanDirectory(deps.ratePlans),
		WithAccessControl(deps.access),
		WithWebFilterDirectory(deps.webFilters),
		WithInventoryCatalog(deps.catalog),
		WithCarrierAccountReader(deps.accounts),
		WithBusinessPlanReader(deps.plans),
		WithBearerPathReader(deps.bearerPaths),
		WithCarrierListReader(deps.carrierLists),
		WithCarrierGateway(deps.gateway),
		WithInventoryAllocator(deps.allocator),
		WithUserDirectory(deps.users),
		WithProvisioningGateway(deps.provisioning),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func validTestRequest() *ActivationRequest {
	return &ActivationRequest{
		Carrier:        CarrierVerizon,
		DeviceGroup:    "corp_1",
		FilterGroup:    "standard-filter",
		ServiceZipCode: "30301",
		Lines: []ActivationLine{
			{IMEI: testIMEI1, ICCID: testICCID1, Nickname: "tablet-1"},
		},
	}
}

func testPrincipal() Principal {
	return Principal{UserID: "u1", CorpID: "corp_1", Email: "fallback@example.com"}
}

func requireErrorMessage(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if got := rootMessage(err); got != want {
		t.Fatalf("expected error %q, got %q", want, got)
	}
}

func rootMessage(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.Message
	}
	return fmt.Sprintf("%v", err)
}
