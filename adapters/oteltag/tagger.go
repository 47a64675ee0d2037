// Package oteltag tags the active OpenTelemetry span with activation metadata.
package oteltag

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/catalyst-wireless/activation/core"
)

// SpanTagger writes activation attributes onto the span carried by the
// incoming context. A context without a recording span is a no-op.
type SpanTagger struct{}

func New() SpanTagger { return SpanTagger{} }

func (SpanTagger) TagActivation(ctx context.Context, tags core.ActivationSpanTags) error {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return nil
	}
	attrs := make([]attribute.KeyValue, 0, 6)
	if tags.Carrier != "" {
		attrs = append(attrs, attribute.String("activation.carrier", tags.Carrier))
	}
	if tags.DeviceGroup != "" {
		attrs = append(attrs, attribute.String("activation.device_group", tags.DeviceGroup))
	}
	if tags.FilterGroup != "" {
		attrs = append(attrs, attribute.String("activation.filter_group", tags.FilterGroup))
	}
	if tags.ActivationLocation != "" {
		attrs = append(attrs, attribute.String("activation.location", tags.ActivationLocation))
	}
	if tags.IMEI != "" {
		attrs = append(attrs, attribute.String("activation.imei", tags.IMEI))
	}
	if tags.ICCID != "" {
		attrs = append(attrs, attribute.String("activation.iccid", tags.ICCID))
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	return nil
}

var _ core.SpanTagger = SpanTagger{}
