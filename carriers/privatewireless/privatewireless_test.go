package privatewireless

import (
	"context"
	"testing"

	"github.com/catalyst-wireless/activation/core"
)

type stubRatePlans struct {
	privateWireless string
	pwCalls         int
}

func (s *stubRatePlans) VerizonRatePlan(context.Context, string) (string, error) { return "", nil }

func (s *stubRatePlans) VerizonPriorityRatePlan(context.Context, string) (string, error) {
	return "", nil
}

func (s *stubRatePlans) ATTRatePlan(context.Context, string) (string, error) { return "", nil }

func (s *stubRatePlans) ATTFirstNetRatePlan(context.Context, string) (string, error) {
	return "", nil
}

func (s *stubRatePlans) ATTFirstNetExtendedPrimaryRatePlan(context.Context, string) (string, error) {
	return "", nil
}

func (s *stubRatePlans) TMORatePlan(context.Context, string) (string, error) { return "", nil }

func (s *stubRatePlans) USCellularRatePlan(context.Context, string) (string, error) {
	return "", nil
}

func (s *stubRatePlans) PrivateWirelessRatePlan(context.Context, string) (string, error) {
	s.pwCalls++
	return s.privateWireless, nil
}

func (s *stubRatePlans) BellCanadaRatePlan(context.Context, string) (string, error) {
	return "", nil
}

func testLine() core.ActivationLine {
	return core.ActivationLine{
		IMEI:     "356938035643809",
		ICCID:    "8914800000000000002",
		Nickname: "AP 12",
	}
}

func TestNetworkProfiles(t *testing.T) {
	cases := []struct {
		name        string
		build       func() (core.CarrierProfile, error)
		id          core.CarrierID
		displayName string
	}{
		{"private lte", NewPrivateLTE, core.CarrierPrivateLTE, PrivateLTEDisplayName},
		{"cisco", NewCisco, core.CarrierCiscoNetwork, CiscoDisplayName},
		{"pente", NewPente, core.CarrierPenteNetwork, PenteDisplayName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile, err := tc.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.ID() != tc.id {
				t.Fatalf("unexpected id %q", profile.ID())
			}
			if profile.DisplayName() != tc.displayName {
				t.Fatalf("unexpected display name %q", profile.DisplayName())
			}
			if profile.InventoryStrategy() != core.StrategyPrivateWireless {
				t.Fatalf("unexpected strategy %q", profile.InventoryStrategy())
			}
			if got := profile.Channel(core.ResolvedContext{}); got != core.ChannelPrivateWireless {
				t.Fatalf("unexpected channel %q", got)
			}
			required := profile.RequiredFields()
			if required.ZipCode || required.ExtendedBilling {
				t.Fatalf("network profiles have no billing requirements: %+v", required)
			}
		})
	}
}

func TestPrivateLTERatePlanComesFromHierarchy(t *testing.T) {
	profile, err := NewPrivateLTE()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir := &stubRatePlans{privateWireless: "PW-PLAN"}
	plan, err := profile.RatePlan(context.Background(), dir, "corp_1", core.ResolvedContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan != "PW-PLAN" || dir.pwCalls != 1 {
		t.Fatalf("unexpected plan %q calls %d", plan, dir.pwCalls)
	}
}

func TestPartnerNetworksUseFixedRatePlans(t *testing.T) {
	cisco, err := NewCisco()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pente, err := NewPente()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir := &stubRatePlans{privateWireless: "IGNORED"}

	plan, err := cisco.RatePlan(context.Background(), dir, "corp_1", core.ResolvedContext{})
	if err != nil || plan != core.CiscoNetworkRatePlan {
		t.Fatalf("unexpected cisco plan %q err %v", plan, err)
	}
	plan, err = pente.RatePlan(context.Background(), dir, "corp_1", core.ResolvedContext{})
	if err != nil || plan != core.PenteNetworkRatePlan {
		t.Fatalf("unexpected pente plan %q err %v", plan, err)
	}
	if dir.pwCalls != 0 {
		t.Fatalf("partner networks must not hit the hierarchy, calls %d", dir.pwCalls)
	}
}

func TestNetworkMapLine(t *testing.T) {
	cases := []struct {
		name    string
		build   func() (core.CarrierProfile, error)
		network string
	}{
		{"private lte", NewPrivateLTE, "KJPLTE"},
		{"cisco", NewCisco, "KCN"},
		{"pente", NewPente, "KPN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile, err := tc.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			req := &core.ActivationRequest{
				DeviceGroup: "corp_1",
				FilterGroup: "standard-filter",
			}
			resolved := core.ResolvedContext{CustomCorpRatePlan: "PW-PLAN"}

			detail := profile.MapLine(testLine(), req, core.InventoryRecord{PlanID: "IGNORED"}, resolved)
			if detail.Network != tc.network || detail.Carrier != tc.network {
				t.Fatalf("unexpected network labels %q/%q", detail.Network, detail.Carrier)
			}
			if detail.PlanID != "" {
				t.Fatalf("network lines never carry a public plan: %+v", detail)
			}
			if detail.BSSRatePlanID != "PW-PLAN" {
				t.Fatalf("unexpected bss plan %q", detail.BSSRatePlanID)
			}
			if detail.ICCID != "8914800000000000002" || detail.DeviceGroup != "corp_1" {
				t.Fatalf("base fields not carried: %+v", detail)
			}
		})
	}
}
