package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// activationPayload is the wire envelope every gateway channel accepts.
type activationPayload struct {
	Array []ActivationLineDetail `json:"array"`
}

// dispatch is the fourth pipeline stage. It serializes the line details,
// resolves the caller display name, and makes exactly one gateway call on the
// channel the profile selects.
func (e *Engine) dispatch(
	ctx context.Context,
	req *ActivationRequest,
	principal Principal,
	profile CarrierProfile,
	details []ActivationLineDetail,
	resolved ResolvedContext,
) (GatewayResult, error) {
	payload, err := json.Marshal(activationPayload{Array: details})
	if err != nil {
		e.logError(ctx, "activation payload serialization failed", map[string]any{
			"carrier": string(req.Carrier),
			"corp_id": req.DeviceGroup,
			"error":   err.Error(),
		})
		return GatewayResult{}, systemError(internalErrorMessage)
	}

	sub := Submission{
		PayloadJSON: string(payload),
		CorpID:      req.DeviceGroup,
		UserID:      principal.UserID,
		DisplayName: e.callerDisplayName(ctx, principal),
	}

	channel := profile.Channel(resolved)
	submit, ok := e.channelSubmitter(channel)
	if !ok {
		return GatewayResult{}, systemError(fmt.Sprintf("no gateway channel for carrier %s", req.Carrier))
	}

	result, err := submit(ctx, sub)
	if err != nil {
		return GatewayResult{}, gatewayError("carrier gateway submission failed", err)
	}
	return result, nil
}

// callerDisplayName formats the submitter tag with the caller's email, falling
// back to the principal's own email when the directory lookup fails.
func (e *Engine) callerDisplayName(ctx context.Context, principal Principal) string {
	email := principal.Email
	if e.users != nil {
		resolved, err := e.users.UserEmail(ctx, principal)
		if err != nil {
			e.logError(ctx, "caller email lookup failed", map[string]any{
				"user_id": principal.UserID,
				"error":   err.Error(),
			})
		} else if strings.TrimSpace(resolved) != "" {
			email = resolved
		}
	}
	return fmt.Sprintf("%s (%s)", e.config.SubmitterTag, email)
}

type submitFunc func(ctx context.Context, sub Submission) (GatewayResult, error)

func (e *Engine) channelSubmitter(channel Channel) (submitFunc, bool) {
	switch channel {
	case ChannelVerizon:
		return e.gateway.SubmitVerizon, true
	case ChannelVerizonPriority:
		return e.gateway.SubmitVerizonPriority, true
	case ChannelATT:
		return e.gateway.SubmitATT, true
	case ChannelATTFirstNet:
		return e.gateway.SubmitATTFirstNet, true
	case ChannelATTFirstNetExtended:
		return e.gateway.SubmitATTFirstNetExtendedPrimary, true
	case ChannelTMONetcracker:
		return e.gateway.SubmitTMONetcracker, true
	case ChannelTMOControlCenter:
		return e.gateway.SubmitTMOControlCenter, true
	case ChannelUSCellular:
		return e.gateway.SubmitUSCellular, true
	case ChannelPrivateWireless:
		return e.gateway.SubmitPrivateWireless, true
	case ChannelBellCanada:
		return e.gateway.SubmitBellCanada, true
	default:
		return nil, false
	}
}
