package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCarrier          = errors.New("core: unknown carrier")
	ErrInvalidActivationLoc    = errors.New("core: invalid activation location")
	ErrInvalidInventoryLookup  = errors.New("core: invalid inventory lookup strategy")
	ErrCarrierNotRegistered    = errors.New("core: carrier not registered")
	ErrMissingGatewayChannel   = errors.New("core: missing gateway channel")
	ErrEmptyActivationRequest  = errors.New("core: activation request has no lines")
	ErrPrincipalMissingCorp    = errors.New("core: principal has no corp id")
	ErrPrincipalMissingUserID  = errors.New("core: principal has no user id")
	ErrInventoryRecordNotFound = errors.New("core: inventory record not found")
)

// CarrierID identifies one supported carrier variant.
type CarrierID string

const (
	CarrierVerizon               CarrierID = "verizon"
	CarrierVerizonPriority       CarrierID = "verizon_priority"
	CarrierVerizonBI             CarrierID = "verizon_bi"
	CarrierATT                   CarrierID = "att"
	CarrierATTFirstNet           CarrierID = "att_firstnet"
	CarrierATTFirstNetExtPrimary CarrierID = "att_firstnet_extended_primary"
	CarrierTMobile               CarrierID = "tmobile"
	CarrierUSCellular            CarrierID = "us_cellular"
	CarrierPrivateLTE            CarrierID = "kjplte"
	CarrierCiscoNetwork          CarrierID = "kcn"
	CarrierPenteNetwork          CarrierID = "kpn"
	CarrierBellCanada            CarrierID = "bellcanada"
)

const (
	TMOInstanceControlCenter  = "ControlCenter"
	TMOInstanceNetcracker     = "Netcracker"
	TMOControlCenterAccountNo = "TMOCC1"

	CiscoNetworkRatePlan = "KCNCISCO"
	PenteNetworkRatePlan = "KJPENTE"

	VerizonBusinessInternetPlanTag = "VERTSVBI"

	// AllCorpsAccountScope is the pseudo corp id the Verizon BI carrier
	// account is registered under.
	AllCorpsAccountScope = "ALL CORPS"
)

// BusinessType classifies a corp for inventory and pool selection.
type BusinessType string

const (
	BusinessTypeEducation       BusinessType = "education"
	BusinessTypeEnterprise      BusinessType = "enterprise"
	BusinessTypeWBU             BusinessType = "wbu"
	BusinessTypeLOC             BusinessType = "loc"
	BusinessTypePrivateWireless BusinessType = "kpw"
)

func NormalizeBusinessType(raw string) BusinessType {
	return BusinessType(strings.ToLower(strings.TrimSpace(raw)))
}

// ActivationLocation selects east/west plan and pool variants.
type ActivationLocation string

const (
	LocationEast ActivationLocation = "east"
	LocationWest ActivationLocation = "west"
)

func (l ActivationLocation) Matches(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), string(l))
}

// InventoryStrategy tags how inventory rows are sourced for a carrier.
type InventoryStrategy string

const (
	StrategyStandard        InventoryStrategy = "standard"
	StrategyThirdParty      InventoryStrategy = "third_party"
	StrategyPrivateWireless InventoryStrategy = "private_wireless"
)

// Channel names one downstream gateway submission operation.
type Channel string

const (
	ChannelVerizon             Channel = "verizon"
	ChannelVerizonPriority     Channel = "verizon_priority"
	ChannelATT                 Channel = "att"
	ChannelATTFirstNet         Channel = "att_firstnet"
	ChannelATTFirstNetExtended Channel = "att_firstnet_extended_primary"
	ChannelTMONetcracker       Channel = "tmo_netcracker"
	ChannelTMOControlCenter    Channel = "tmo_control_center"
	ChannelUSCellular          Channel = "us_cellular"
	ChannelPrivateWireless     Channel = "private_wireless"
	ChannelBellCanada          Channel = "bell_canada"
)

// FirstResponderFlag values mirror the corp settings column.
const (
	FirstResponderYes     = "Y"
	FirstResponderNo      = "N"
	FirstResponderInherit = "I"
)

type ActivationLine struct {
	IMEI     string
	ICCID    string
	Nickname string
}

// ActivationRequest is the inbound bulk request. It is treated as immutable
// once validation begins; the private-wireless mapping is the one place the
// outbound carrier label diverges from the inbound one, and that label lives
// on the line detail, not here.
type ActivationRequest struct {
	Carrier            CarrierID
	DeviceGroup        string
	FilterGroup        string
	ServiceZipCode     string
	ActivationLocation string
	AgencyEndUserName  string
	BillingAddress     string
	BillingCity        string
	BillingState       string
	SubType            string
	PlanID             string
	Lines              []ActivationLine
}

func (r *ActivationRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("core: activation request is nil")
	}
	if strings.TrimSpace(string(r.Carrier)) == "" {
		return fmt.Errorf("%w: empty carrier", ErrUnknownCarrier)
	}
	if strings.TrimSpace(r.DeviceGroup) == "" {
		return fmt.Errorf("core: device group is required")
	}
	if len(r.Lines) == 0 {
		return ErrEmptyActivationRequest
	}
	return nil
}

// Principal is the authenticated caller.
type Principal struct {
	UserID string
	CorpID string
	Email  string
}

func (p Principal) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrPrincipalMissingUserID
	}
	if strings.TrimSpace(p.CorpID) == "" {
		return ErrPrincipalMissingCorp
	}
	return nil
}

// ForCorp derives a principal acting on a child corp, used for feature-access
// checks when the target device group is not the caller's own corp.
func (p Principal) ForCorp(corpID string) Principal {
	derived := p
	derived.CorpID = strings.TrimSpace(corpID)
	return derived
}

// InventoryRecord is one catalog inventory row. Private-wireless rows carry no
// east/west fields.
type InventoryRecord struct {
	SKU                   string
	PlanID                string
	EastIPPool            string
	WestIPPool            string
	EastCommunicationPlan string
	WestCommunicationPlan string
	SubTypes              []string
}

func (r InventoryRecord) AllowsSubType(subType string) bool {
	for _, allowed := range r.SubTypes {
		if strings.EqualFold(strings.TrimSpace(allowed), strings.TrimSpace(subType)) {
			return true
		}
	}
	return false
}

// ResolvedContext is everything the resolver derives for a request beyond the
// inventory row itself.
type ResolvedContext struct {
	BusinessType          BusinessType
	Strategy              InventoryStrategy
	CarrierIPPool         string
	SKU                   string
	LeadID                string
	CustomCorpRatePlan    string
	TMOInstance           string
	CarrierAccountID      string
	ValidatedPlanID       string
	FilterGroupRegistered bool
}

// ActivationLineDetail is the carrier-specific outbound record for one line.
// Field population is fully determined by (carrier, business type, activation
// location, tmo instance); only iccid/imei/nickname vary per line.
type ActivationLineDetail struct {
	ICCID       string `json:"iccid"`
	IMEI        string `json:"imei"`
	Nickname    string `json:"nickname,omitempty"`
	FilterGroup string `json:"filterGroup"`
	DeviceGroup string `json:"deviceGroup"`
	IMEIItemID  string `json:"imeiItemId,omitempty"`

	PlanID   string `json:"planId,omitempty"`
	WHPlanID string `json:"whPlanId,omitempty"`

	CarrierIPPool string `json:"carrierIpPool,omitempty"`
	ZipCode       string `json:"zipCode,omitempty"`
	LeadID        string `json:"leadId,omitempty"`
	SKUNumber     string `json:"skuNumber,omitempty"`

	CarrierAccountID string `json:"carrierAccountId,omitempty"`
	CarrierAccountNo string `json:"carrierAccountNo,omitempty"`

	AgencyEndUserName string `json:"agencyEndUserName,omitempty"`
	BillingAddress    string `json:"billingAddress,omitempty"`
	BillingCity       string `json:"billingCity,omitempty"`
	BillingState      string `json:"billingState,omitempty"`
	SubType           string `json:"subType,omitempty"`

	FirstNetAgencyEndUserName string `json:"attFirstNetAgencyEndUserName,omitempty"`
	FirstNetAddress           string `json:"attFirstNetAddress,omitempty"`
	FirstNetCity              string `json:"attFirstNetCity,omitempty"`
	FirstNetState             string `json:"attFirstNetState,omitempty"`
	FirstNetSubType           string `json:"attFirstNetSubType,omitempty"`
	FirstNetZipCode           string `json:"attFirstNetZipcode,omitempty"`
	NetsweeperGroupID         string `json:"attFirstNetNetsweeperGroupId,omitempty"`
	CommunicationPlanID       string `json:"attFirstNetCommunicationPlanId,omitempty"`

	BSSRatePlanID string `json:"bssRatePlanId,omitempty"`
	Network       string `json:"network,omitempty"`
	Carrier       string `json:"carrier,omitempty"`
}

// GatewayResult is the raw structured result returned by every gateway channel.
// A zero ResultCode signals acceptance; TransactionID 0 with ResultCode 0 is a
// known ambiguity that callers must treat as failure.
type GatewayResult struct {
	ResultCode         int
	ProblemDescription string
	TransactionID      int64
}

// Submission is the serialized payload handed to a gateway channel.
type Submission struct {
	PayloadJSON string
	CorpID      string
	UserID      string
	DisplayName string
}

// Organization is a node in the corp hierarchy.
type Organization struct {
	CorpID           string
	Description      string
	CorpBusinessType string
	ParentCorpID     string
}

// CorpSettings carries the corp-level activation knobs.
type CorpSettings struct {
	CorpID         string
	FirstResponder string
	CarrierIPPool  string
	TMOInstance    string
}

// AccessControlEntry is one hierarchy-scoped access-control row.
type AccessControlEntry struct {
	CorpID  string
	Enabled bool
}

// CarrierBearerPath classifies whether a carrier participates in filter-group
// enforcement for a business type.
type CarrierBearerPath struct {
	CarrierName string
	BearerPath  string
}

const BearerPathNonBearer = "Non-Bearer"

func (p CarrierBearerPath) IsNonBearer() bool {
	return strings.EqualFold(strings.TrimSpace(p.BearerPath), BearerPathNonBearer)
}

// BusinessPlan is one Verizon business-internet plan row.
type BusinessPlan struct {
	PlanID              string
	WHPlanID            string
	PlanDescription     string
	PlanDescriptionFull string
	Carrier             string
}

// RequiredFields is the catalog's per-carrier validation profile.
type RequiredFields struct {
	ZipCode         bool
	ExtendedBilling bool
}

// ESimInventoryCount reports the allocator's availability for a carrier/corp.
type ESimInventoryCount struct {
	TotalAvailable  int
	MaxDefaultCount int
}

// Allowed returns the effective line-count ceiling for an eSIM request.
func (c ESimInventoryCount) Allowed() int {
	if c.TotalAvailable < c.MaxDefaultCount {
		return c.TotalAvailable
	}
	return c.MaxDefaultCount
}

// AllocatedUnit is one reserved eSIM inventory unit.
type AllocatedUnit struct {
	ICCID string
}

// ActivationTransaction is one row of the activation history projection.
type ActivationTransaction struct {
	TransactionID   string
	Status          string
	StartTimestamp  string
	TotalLines      int
	SuccessLines    int
	FailedLines     int
	PendingLines    int
	Carrier         string
	CorpID          string
	CorpDescription string
	FilterGroup     string
	ZipCode         string
	IMEI            string
	ICCID           string
	MDN             string
	Nickname        string
	IP              string
	LineStatus      string
}

// ActivationSpanTags is the best-effort observability payload attached after a
// payload build.
type ActivationSpanTags struct {
	IMEI               string
	ICCID              string
	Carrier            string
	DeviceGroup        string
	FilterGroup        string
	ActivationLocation string
}
