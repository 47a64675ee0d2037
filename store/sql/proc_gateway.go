package sqlstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/catalyst-wireless/activation/core"
)

// Stored procedure names, one per gateway channel. Each takes the serialized
// line-detail document plus the submitting corp, user id, and display name,
// and returns (result_code, problem_description, transaction_id).
const (
	procVerizon             = "bulk_activate_verizon_kj4_json"
	procVerizonPriority     = "bulk_activate_verizon_ts_3rdp"
	procATT                 = "bulk_activate_kjatt1_json"
	procATTFirstNet         = "bulk_activate_attfn_3rdp"
	procATTFirstNetExtended = "bulk_activate_attfne_3rdp"
	procTMONetcracker       = "bulk_activate_tmo_kj1_json"
	procTMOControlCenter    = "bulk_activate_multi_carrier1_json"
	procUSCellular          = "bulk_activate_usc_json"
	procPrivateWireless     = "bulk_activate_kpw_json"
	procBellCanada          = "bulk_activate_bell_json"
)

// ProcGateway submits activation batches through the billing database's
// stored procedures.
type ProcGateway struct {
	db *bun.DB
}

func NewProcGateway(db *bun.DB) (*ProcGateway, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &ProcGateway{db: db}, nil
}

func (g *ProcGateway) SubmitVerizon(ctx context.Context, sub core.Submission) (core.GatewayResult, error) {
	return g.call(ctx, procVerizon, sub)
}

func (g *ProcGateway) SubmitVerizonPriority(ctx context.Context, sub core.Submission) (core.GatewayResult, error) {
	return g.call(ctx, procVerizonPriority, sub)
}

func (g *ProcGateway) SubmitATT(ctx context.Context, sub core.Submission) (core.GatewayResult, error) {
	return g.call(ctx, procATT, sub)
}

func (g *ProcGateway) SubmitATTFirstNet(ctx context.Context, sub core.Submission) (core.GatewayResult, error) {
	return g.call(ctx, procATTFirstNet, sub)
}

func (g *ProcGateway) SubmitATTFirstNetExtendedPrimary(ctx context.Context, sub core.Submission) (core.GatewayResult, error) {
	return g.call(ctx, procATTFirstNetExtended, sub)
}

func (g *ProcGateway) SubmitTMONetcracker(ctx context.Context, sub core.Submission) (core.GatewayResult, error) {
	return g.call(ctx, procTMONetcracker, sub)
}

func (g *ProcGateway) SubmitTMOControlCenter(ctx context.Context, sub core.Submission) (core.GatewayResult, error) {
	return g.call(ctx, procTMOControlCenter, sub)
}

func (g *ProcGateway) SubmitUSCellular(ctx context.Context, sub core.Submission) (core.GatewayResult, error) {
	return g.call(ctx, procUSCellular, sub)
}

func (g *ProcGateway) SubmitPrivateWireless(ctx context.Context, sub core.Submission) (core.GatewayResult, error) {
	return g.call(ctx, procPrivateWireless, sub)
}

func (g *ProcGateway) SubmitBellCanada(ctx context.Context, sub core.Submission) (core.GatewayResult, error) {
	return g.call(ctx, procBellCanada, sub)
}

func (g *ProcGateway) call(ctx context.Context, proc string, sub core.Submission) (core.GatewayResult, error) {
	if g == nil || g.db == nil {
		return core.GatewayResult{}, fmt.Errorf("sqlstore: proc gateway is not configured")
	}
	var result core.GatewayResult
	err := g.db.NewRaw(
		"SELECT result_code, problem_description, transaction_id FROM ?(?, ?, ?, ?)",
		bun.Safe(proc),
		sub.PayloadJSON,
		sub.CorpID,
		sub.UserID,
		sub.DisplayName,
	).Scan(ctx, &result.ResultCode, &result.ProblemDescription, &result.TransactionID)
	if err != nil {
		return core.GatewayResult{}, fmt.Errorf("sqlstore: %s failed: %w", proc, err)
	}
	return result, nil
}
