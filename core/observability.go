package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

func (e *Engine) observeOperation(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
) {
	if e == nil {
		return
	}
	operation = normalizeOperation(operation)
	if operation == "" {
		operation = "unknown"
	}
	status := "success"
	if err != nil {
		status = "failure"
	}

	contextFields := cloneFields(fields)
	contextFields["event_type"] = operation
	contextFields["status"] = status
	contextFields["duration_ms"] = time.Since(startedAt).Milliseconds()
	if err != nil {
		contextFields["error"] = err.Error()
	}

	tags := map[string]string{
		"operation": operation,
		"status":    status,
	}
	for _, key := range []string{"carrier", "corp_id", "device_group", "business_type"} {
		if value := strings.TrimSpace(fmt.Sprint(contextFields[key])); value != "" && value != "<nil>" {
			tags[key] = value
		}
	}

	e.recordCounter(ctx, "activation."+operation+".total", 1, tags)
	e.recordHistogram(ctx, "activation."+operation+".duration_ms", float64(time.Since(startedAt).Milliseconds()), tags)

	if err != nil {
		e.logError(ctx, operation+" failed", contextFields)
		return
	}
	e.logInfo(ctx, operation+" succeeded", contextFields)
}

// tagActivationSpan attaches request identifiers on a detached, best-effort
// basis. The goroutine is uncancellable and its failure never affects the
// pipeline outcome.
func (e *Engine) tagActivationSpan(ctx context.Context, req *ActivationRequest, details []ActivationLineDetail) {
	if e == nil || e.spanTagger == nil || req == nil {
		return
	}
	imeis := make([]string, 0, len(details))
	iccids := make([]string, 0, len(details))
	for _, detail := range details {
		imeis = append(imeis, detail.IMEI)
		iccids = append(iccids, detail.ICCID)
	}
	tags := ActivationSpanTags{
		IMEI:               strings.Join(imeis, ","),
		ICCID:              strings.Join(iccids, ","),
		Carrier:            string(req.Carrier),
		DeviceGroup:        req.DeviceGroup,
		FilterGroup:        req.FilterGroup,
		ActivationLocation: req.ActivationLocation,
	}
	tagger := e.spanTagger
	go func() {
		if err := tagger.TagActivation(context.WithoutCancel(ctx), tags); err != nil {
			e.logInfo(context.Background(), "span tagging skipped", map[string]any{
				"carrier": tags.Carrier,
				"reason":  err.Error(),
			})
		}
	}()
}

type NopSpanTagger struct{}

func (NopSpanTagger) TagActivation(context.Context, ActivationSpanTags) error { return nil }

var _ SpanTagger = NopSpanTagger{}

func (e *Engine) logInfo(ctx context.Context, message string, fields map[string]any) {
	e.logWithLevel(ctx, "info", message, fields)
}

func (e *Engine) logError(ctx context.Context, message string, fields map[string]any) {
	e.logWithLevel(ctx, "error", message, fields)
}

func (e *Engine) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if e == nil || e.logger == nil {
		return
	}
	logger := e.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		logger.Error(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (e *Engine) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if e == nil || e.metricsRecorder == nil {
		return
	}
	e.metricsRecorder.IncCounter(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func (e *Engine) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if e == nil || e.metricsRecorder == nil {
		return
	}
	e.metricsRecorder.ObserveHistogram(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func normalizeOperation(operation string) string {
	operation = strings.TrimSpace(strings.ToLower(operation))
	operation = strings.ReplaceAll(operation, " ", "_")
	operation = strings.ReplaceAll(operation, "-", "_")
	return operation
}
