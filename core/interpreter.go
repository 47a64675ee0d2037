package core

import "context"

// interpretResult is the final pipeline stage. A non-zero result code is a
// rejection: it is logged and collapsed to transaction id 0, never an error.
// The caller treats 0 as the universal failure signal.
func (e *Engine) interpretResult(ctx context.Context, req *ActivationRequest, result GatewayResult) int64 {
	if result.ResultCode != 0 {
		e.logError(ctx, "activation rejected by carrier gateway", map[string]any{
			"carrier":             string(req.Carrier),
			"corp_id":             req.DeviceGroup,
			"result_code":         result.ResultCode,
			"problem_description": result.ProblemDescription,
		})
		return 0
	}

	e.logInfo(ctx, "activation accepted by carrier gateway", map[string]any{
		"carrier":        string(req.Carrier),
		"corp_id":        req.DeviceGroup,
		"transaction_id": result.TransactionID,
	})
	return result.TransactionID
}
