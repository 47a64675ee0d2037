package core

import (
	"context"
	"time"
)

const esimExhaustedMessage = "No more eSIMs available at this time. Please contact your administrator for assistance."

// SubmitESimActivation allocates eSIM inventory for every requested line,
// stamps the allocated iccids onto the lines in order, and runs the standard
// pipeline. Any failure after allocation releases every allocated unit; the
// release runs exactly once per unit and release failures are logged, never
// surfaced.
func (e *Engine) SubmitESimActivation(ctx context.Context, req *ActivationRequest, principal Principal) (txID int64, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"corp_id": principal.CorpID,
		"user_id": principal.UserID,
	}
	if req != nil {
		fields["carrier"] = string(req.Carrier)
		fields["device_group"] = req.DeviceGroup
		fields["line_count"] = len(req.Lines)
	}
	defer func() {
		e.observeOperation(ctx, startedAt, "submit_esim_activation", err, fields)
	}()

	if req == nil || len(req.Lines) == 0 {
		err = validationError("Activation lines list is empty")
		return 0, err
	}

	profile, err := e.resolveCarrier(req.Carrier)
	if err != nil {
		return 0, err
	}

	eligible, err := e.CarriersForESim(ctx, principal)
	if err != nil {
		return 0, err
	}
	if !containsFold(eligible, profile.DisplayName()) {
		err = validationError("Invalid Carrier!")
		return 0, err
	}

	// Child corps draw from the master corp's eSIM pool.
	top, err := e.organizations.TopLevelOrganization(ctx, req.DeviceGroup)
	if err != nil {
		err = e.mapError(err)
		return 0, err
	}

	count, err := e.allocator.AvailableCount(ctx, req.Carrier, top.CorpID)
	if err != nil {
		err = e.mapError(err)
		return 0, err
	}
	allowed := count.Allowed()
	if allowed <= 0 || len(req.Lines) > allowed {
		err = validationError(esimExhaustedMessage)
		return 0, err
	}

	units, err := e.allocator.Allocate(ctx, req.Carrier, top.CorpID, len(req.Lines))
	if err != nil {
		err = e.mapError(err)
		return 0, err
	}
	if len(units) < len(req.Lines) {
		e.releaseUnits(ctx, units)
		err = validationError(esimExhaustedMessage)
		return 0, err
	}

	stamped := *req
	stamped.Lines = make([]ActivationLine, len(req.Lines))
	copy(stamped.Lines, req.Lines)
	for i := range stamped.Lines {
		stamped.Lines[i].ICCID = units[i].ICCID
	}

	txID, err = e.SubmitActivation(ctx, &stamped, principal)
	if err != nil || txID == 0 {
		e.releaseUnits(ctx, units)
		return 0, err
	}
	return txID, nil
}

// releaseUnits returns allocated eSIM units to inventory. Release is
// idempotent downstream; failures here are logged and swallowed so the
// original error keeps flowing to the caller.
func (e *Engine) releaseUnits(ctx context.Context, units []AllocatedUnit) {
	for _, unit := range units {
		if releaseErr := e.allocator.Release(ctx, unit.ICCID); releaseErr != nil {
			e.logError(ctx, "esim inventory release failed", map[string]any{
				"iccid": unit.ICCID,
				"error": releaseErr.Error(),
			})
		}
	}
}
