package core

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestSubmitActivation_SubmitsOnceAndReturnsTransactionID(t *testing.T) {
	deps := defaultTestCollaborators()
	deps.gateway.result = GatewayResult{ResultCode: 0, TransactionID: 777}
	engine := newTestEngine(t, deps, newVerizonTestProfile())

	txID, err := engine.SubmitActivation(context.Background(), validTestRequest(), testPrincipal())
	if err != nil {
		t.Fatalf("submit activation: %v", err)
	}
	if txID != 777 {
		t.Fatalf("expected transaction id 777, got %d", txID)
	}
	if deps.gateway.calls() != 1 {
		t.Fatalf("expected exactly one gateway submission, got %d", deps.gateway.calls())
	}
	if deps.gateway.channels[0] != ChannelVerizon {
		t.Fatalf("expected verizon channel, got %q", deps.gateway.channels[0])
	}
}

func TestSubmitActivation_PayloadEnvelopeAndDisplayName(t *testing.T) {
	deps := defaultTestCollaborators()
	deps.users = stubUsers{email: "ops@catalyst.example"}
	engine := newTestEngine(t, deps, newVerizonTestProfile())

	req := validTestRequest()
	req.Lines = []ActivationLine{
		{IMEI: testIMEI1, ICCID: testICCID1, Nickname: "router-a"},
		{IMEI: testIMEI2, ICCID: testICCID2, Nickname: "router-b"},
	}

	if _, err := engine.SubmitActivation(context.Background(), req, testPrincipal()); err != nil {
		t.Fatalf("submit activation: %v", err)
	}

	sub := deps.gateway.submissions[0]
	if sub.CorpID != "corp_1" || sub.UserID != "u1" {
		t.Fatalf("unexpected submission identity: %#v", sub)
	}
	if sub.DisplayName != "CATALYST_USER (ops@catalyst.example)" {
		t.Fatalf("unexpected display name: %q", sub.DisplayName)
	}

	var payload struct {
		Array []ActivationLineDetail `json:"array"`
	}
	if err := json.Unmarshal([]byte(sub.PayloadJSON), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Array) != 2 {
		t.Fatalf("expected 2 line details, got %d", len(payload.Array))
	}
	if payload.Array[0].ICCID != testICCID1 || payload.Array[1].ICCID != testICCID2 {
		t.Fatalf("line order not preserved: %#v", payload.Array)
	}
}

func TestSubmitActivation_DisplayNameFallsBackToPrincipalEmail(t *testing.T) {
	deps := defaultTestCollaborators()
	deps.users = stubUsers{err: errDirectoryDown}
	engine := newTestEngine(t, deps, newVerizonTestProfile())

	if _, err := engine.SubmitActivation(context.Background(), validTestRequest(), testPrincipal()); err != nil {
		t.Fatalf("submit activation: %v", err)
	}
	if got := deps.gateway.submissions[0].DisplayName; got != "CATALYST_USER (fallback@example.com)" {
		t.Fatalf("unexpected display name: %q", got)
	}
}

func TestSubmitActivation_UnknownCarrier(t *testing.T) {
	deps := defaultTestCollaborators()
	engine := newTestEngine(t, deps, newVerizonTestProfile())

	req := validTestRequest()
	req.Carrier = CarrierID("sprint")

	_, err := engine.SubmitActivation(context.Background(), req, testPrincipal())
	requireErrorMessage(t, err, "Invalid Carrier!")
	if deps.gateway.calls() != 0 {
		t.Fatalf("expected no gateway submission")
	}
}

func TestSubmitActivation_GatewayRejectionReturnsZeroWithoutError(t *testing.T) {
	deps := defaultTestCollaborators()
	deps.gateway.result = GatewayResult{ResultCode: 17, ProblemDescription: "carrier refused batch"}
	engine := newTestEngine(t, deps, newVerizonTestProfile())

	txID, err := engine.SubmitActivation(context.Background(), validTestRequest(), testPrincipal())
	if err != nil {
		t.Fatalf("expected rejection to surface as zero id, got %v", err)
	}
	if txID != 0 {
		t.Fatalf("expected transaction id 0, got %d", txID)
	}
}

func TestSubmitActivation_GatewayFailure(t *testing.T) {
	deps := defaultTestCollaborators()
	deps.gateway.err = errGatewayDown
	engine := newTestEngine(t, deps, newVerizonTestProfile())

	_, err := engine.SubmitActivation(context.Background(), validTestRequest(), testPrincipal())
	if err == nil {
		t.Fatalf("expected gateway error")
	}
	if !strings.Contains(err.Error(), "carrier gateway submission failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSubmitActivation_LineCountCheckedBeforeCollaborators(t *testing.T) {
	deps := defaultTestCollaborators()
	engine := newTestEngine(t, deps, newVerizonTestProfile())

	req := validTestRequest()
	req.Lines = make([]ActivationLine, engine.Config().MaxActivationLines+1)
	for i := range req.Lines {
		req.Lines[i] = ActivationLine{ICCID: testICCID1}
	}

	_, err := engine.SubmitActivation(context.Background(), req, testPrincipal())
	requireErrorMessage(t, err, "Max limit of rows 2000 exceeded.")
	if deps.access.corpExistsCalls != 0 {
		t.Fatalf("expected no access-control calls before count check")
	}
	if deps.organizations.businessTypeCalls != 0 {
		t.Fatalf("expected no organization lookups before count check")
	}
}

func TestSubmitActivation_EmptyRequest(t *testing.T) {
	engine := newTestEngine(t, defaultTestCollaborators(), newVerizonTestProfile())

	_, err := engine.SubmitActivation(context.Background(), nil, testPrincipal())
	requireErrorMessage(t, err, "Activation lines list is empty")
}

func TestCarrierList_ReordersVerizonBIAndAppendsDemoCarriers(t *testing.T) {
	deps := defaultTestCollaborators()
	deps.carrierLists.list = []string{"Verizon", "AT&T", "Verizon - Business Internet", "T-Mobile"}
	registry := NewCarrierRegistry()
	for _, profile := range []*testProfile{
		{id: CarrierVerizonBI, displayName: "Verizon - Business Internet", channel: ChannelVerizon},
		{id: CarrierCiscoNetwork, displayName: "Cisco Network", channel: ChannelPrivateWireless},
		{id: CarrierPenteNetwork, displayName: "Pente Network", channel: ChannelPrivateWireless},
	} {
		if err := registry.Register(profile); err != nil {
			t.Fatalf("register profile: %v", err)
		}
	}
	deps.registry = registry

	engine, err := NewEngine(Config{CiscoDemoCorps: []string{"corp_1"}},
		WithRegistry(registry),
		WithOrganizationDirectory(deps.organizations),
		WithAccessControl(deps.access),
		WithCarrierListReader(deps.carrierLists),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	list, err := engine.CarrierList(context.Background(), testPrincipal())
	if err != nil {
		t.Fatalf("carrier list: %v", err)
	}
	want := []string{"Verizon - Business Internet", "Verizon", "AT&T", "T-Mobile", "Cisco Network"}
	if len(list) != len(want) {
		t.Fatalf("unexpected list: %#v", list)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q (full: %#v)", i, want[i], list[i], list)
		}
	}
}

func TestCarrierList_FirstResponderCorpUsesFirstResponderList(t *testing.T) {
	deps := defaultTestCollaborators()
	deps.organizations.settings = CorpSettings{FirstResponder: FirstResponderYes}
	deps.carrierLists.firstResponder = []string{"AT&T - FirstNet", "Verizon - Priority"}
	engine := newTestEngine(t, deps)

	list, err := engine.CarrierList(context.Background(), testPrincipal())
	if err != nil {
		t.Fatalf("carrier list: %v", err)
	}
	if deps.carrierLists.frCalls != 1 || deps.carrierLists.listCalls != 0 {
		t.Fatalf("expected first-responder list lookup, got fr=%d list=%d", deps.carrierLists.frCalls, deps.carrierLists.listCalls)
	}
	if len(list) != 2 {
		t.Fatalf("unexpected list: %#v", list)
	}
}

func TestCarrierList_InheritedFlagConsultsHierarchy(t *testing.T) {
	deps := defaultTestCollaborators()
	deps.organizations.settings = CorpSettings{FirstResponder: FirstResponderInherit}
	deps.organizations.firstResponder = FirstResponderYes
	deps.carrierLists.firstResponder = []string{"AT&T - FirstNet"}
	engine := newTestEngine(t, deps)

	if _, err := engine.CarrierList(context.Background(), testPrincipal()); err != nil {
		t.Fatalf("carrier list: %v", err)
	}
	if deps.carrierLists.frCalls != 1 {
		t.Fatalf("expected hierarchy flag to route to first-responder list")
	}
}

func TestCarrierList_PrivateWirelessBusinessType(t *testing.T) {
	deps := defaultTestCollaborators()
	deps.organizations.businessType = BusinessTypePrivateWireless
	deps.carrierLists.private = []string{"Private LTE"}
	engine := newTestEngine(t, deps)

	list, err := engine.CarrierList(context.Background(), testPrincipal())
	if err != nil {
		t.Fatalf("carrier list: %v", err)
	}
	if deps.carrierLists.pwCalls != 1 {
		t.Fatalf("expected private wireless list lookup")
	}
	if len(list) != 1 || list[0] != "Private LTE" {
		t.Fatalf("unexpected list: %#v", list)
	}
}

func TestCarriersForESim_RequiresFeature(t *testing.T) {
	deps := defaultTestCollaborators()
	deps.access.settings = UserSettings{Features: []Feature{FeatureActivation}}
	engine := newTestEngine(t, deps)

	_, err := engine.CarriersForESim(context.Background(), testPrincipal())
	requireErrorMessage(t, err, "eSIM activation is not enabled for this user")
}

func TestCarriersForESim_UsesESimOnlyList(t *testing.T) {
	deps := defaultTestCollaborators()
	deps.carrierLists.esimList = []string{"Verizon", "T-Mobile"}
	engine := newTestEngine(t, deps)

	list, err := engine.CarriersForESim(context.Background(), testPrincipal())
	if err != nil {
		t.Fatalf("carriers for esim: %v", err)
	}
	if deps.carrierLists.esimCalls != 1 {
		t.Fatalf("expected esim-only catalog lookup")
	}
	if len(list) != 2 {
		t.Fatalf("unexpected list: %#v", list)
	}
}

func TestNewEngine_AppliesConfigLayers(t *testing.T) {
	engine, err := NewEngine(Config{MaxActivationLines: 50, SubmitterTag: "OPS_USER"})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	cfg := engine.Config()
	if cfg.MaxActivationLines != 50 {
		t.Fatalf("expected runtime override 50, got %d", cfg.MaxActivationLines)
	}
	if cfg.SubmitterTag != "OPS_USER" {
		t.Fatalf("expected runtime submitter tag, got %q", cfg.SubmitterTag)
	}
	if cfg.ServiceName != "activation" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
}
