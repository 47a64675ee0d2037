package core

import (
	"context"
)

// buildPayload is the third pipeline stage. It runs the profile's one-shot
// Prepare step, then maps each surviving line to its outbound detail record in
// input order. Span tagging is best effort and never blocks the pipeline.
func (e *Engine) buildPayload(
	ctx context.Context,
	req *ActivationRequest,
	profile CarrierProfile,
	lines []ActivationLine,
	inv InventoryRecord,
	resolved ResolvedContext,
) ([]ActivationLineDetail, error) {
	deps := BuildDependencies{
		Organizations: e.organizations,
		Accounts:      e.accounts,
		Plans:         e.plans,
		Logger:        e.logger,
	}
	if err := profile.Prepare(ctx, deps, req, &resolved); err != nil {
		return nil, err
	}

	details := make([]ActivationLineDetail, 0, len(lines))
	for _, line := range lines {
		details = append(details, profile.MapLine(line, req, inv, resolved))
	}

	e.tagActivationSpan(ctx, req, details)

	return details, nil
}
