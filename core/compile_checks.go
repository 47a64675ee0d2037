package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ Registry        = (*CarrierRegistry)(nil)
	_ MetricsRecorder = NopMetricsRecorder{}
	_ SpanTagger      = NopSpanTagger{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
