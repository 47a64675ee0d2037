package sqlstore

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

type inventoryRecord struct {
	bun.BaseModel `bun:"table:carrier_inventory,alias:ci"`

	ID                    string    `bun:"id,pk"`
	Carrier               string    `bun:"carrier,notnull"`
	BusinessType          string    `bun:"business_type,notnull"`
	SKU                   string    `bun:"sku"`
	PlanID                string    `bun:"plan_id"`
	EastIPPool            string    `bun:"east_ip_pool"`
	WestIPPool            string    `bun:"west_ip_pool"`
	EastCommunicationPlan string    `bun:"east_communication_plan"`
	WestCommunicationPlan string    `bun:"west_communication_plan"`
	CreatedAt             time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt             time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type thirdPartyInventoryRecord struct {
	bun.BaseModel `bun:"table:carrier_inventory_3rd_party,alias:ci3"`

	ID                    string    `bun:"id,pk"`
	Carrier               string    `bun:"carrier,notnull"`
	SKU                   string    `bun:"sku"`
	PlanID                string    `bun:"plan_id"`
	EastIPPool            string    `bun:"east_ip_pool"`
	WestIPPool            string    `bun:"west_ip_pool"`
	EastCommunicationPlan string    `bun:"east_communication_plan"`
	WestCommunicationPlan string    `bun:"west_communication_plan"`
	SubTypes              string    `bun:"sub_types"`
	CreatedAt             time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt             time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type privateInventoryRecord struct {
	bun.BaseModel `bun:"table:carrier_inventory_private,alias:cip"`

	ID        string    `bun:"id,pk"`
	Carrier   string    `bun:"carrier,notnull"`
	PlanID    string    `bun:"plan_id"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type carrierAccountRecord struct {
	bun.BaseModel `bun:"table:carrier_accounts,alias:ca"`

	ID        string    `bun:"id,pk"`
	CorpID    string    `bun:"corp_id,notnull"`
	Carrier   string    `bun:"carrier,notnull"`
	AccountID string    `bun:"account_id,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type businessPlanRecord struct {
	bun.BaseModel `bun:"table:business_plans,alias:bp"`

	ID                  string    `bun:"id,pk"`
	PlanID              string    `bun:"plan_id,notnull"`
	WHPlanID            string    `bun:"wh_plan_id"`
	PlanDescription     string    `bun:"plan_description"`
	PlanDescriptionFull string    `bun:"plan_description_full"`
	Carrier             string    `bun:"carrier,notnull"`
	CreatedAt           time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt           time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type bearerPathRecord struct {
	bun.BaseModel `bun:"table:carrier_bearer_paths,alias:cbp"`

	ID           string    `bun:"id,pk"`
	CarrierName  string    `bun:"carrier_name,notnull"`
	BearerPath   string    `bun:"bearer_path,notnull"`
	BusinessType string    `bun:"business_type,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type carrierListRecord struct {
	bun.BaseModel `bun:"table:carrier_catalog,alias:cc"`

	ID              string    `bun:"id,pk"`
	DisplayName     string    `bun:"display_name,notnull"`
	BusinessTypes   string    `bun:"business_types"`
	FirstResponder  bool      `bun:"first_responder,notnull,default:false"`
	PrivateWireless bool      `bun:"private_wireless,notnull,default:false"`
	ESimEnabled     bool      `bun:"esim_enabled,notnull,default:false"`
	VerizonBI       bool      `bun:"verizon_bi,notnull,default:false"`
	SortOrder       int       `bun:"sort_order,notnull,default:0"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type esimInventoryRecord struct {
	bun.BaseModel `bun:"table:esim_inventory,alias:ei"`

	ID        string     `bun:"id,pk"`
	ICCID     string     `bun:"iccid,notnull,unique"`
	Carrier   string     `bun:"carrier,notnull"`
	CorpID    string     `bun:"corp_id,notnull"`
	Status    string     `bun:"status,notnull"`
	MaxBatch  int        `bun:"max_batch,notnull,default:0"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
	DeletedAt *time.Time `bun:"deleted_at,soft_delete"`
}

const (
	esimStatusAvailable = "available"
	esimStatusAllocated = "allocated"
)

type activationTransactionRecord struct {
	bun.BaseModel `bun:"table:activation_transactions,alias:at"`

	ID              string    `bun:"id,pk"`
	TransactionID   string    `bun:"transaction_id,notnull"`
	Status          string    `bun:"status,notnull"`
	StartTimestamp  time.Time `bun:"start_timestamp,nullzero,notnull"`
	TotalLines      int       `bun:"total_lines,notnull,default:0"`
	SuccessLines    int       `bun:"success_lines,notnull,default:0"`
	FailedLines     int       `bun:"failed_lines,notnull,default:0"`
	PendingLines    int       `bun:"pending_lines,notnull,default:0"`
	Carrier         string    `bun:"carrier,notnull"`
	CorpID          string    `bun:"corp_id,notnull"`
	CorpDescription string    `bun:"corp_description"`
	FilterGroup     string    `bun:"filter_group"`
	ZipCode         string    `bun:"zip_code"`
	PayloadJSON     string    `bun:"payload_json"`
	SubmittedBy     string    `bun:"submitted_by"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type activationLineRecord struct {
	bun.BaseModel `bun:"table:activation_transaction_lines,alias:atl"`

	ID            string    `bun:"id,pk"`
	TransactionID string    `bun:"transaction_id,notnull"`
	ICCID         string    `bun:"iccid,notnull"`
	IMEI          string    `bun:"imei"`
	Nickname      string    `bun:"nickname"`
	MDN           string    `bun:"mdn"`
	IP            string    `bun:"ip"`
	LineStatus    string    `bun:"line_status"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
