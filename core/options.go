package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
)

type ErrorFactory func(message string, category ...goerrors.Category) *goerrors.Error

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type engineBuilder struct {
	runtimeConfig   Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	registry        Registry
	organizations   OrganizationDirectory
	ratePlans       RatePlanDirectory
	access          AccessControl
	webFilters      WebFilterDirectory
	catalog         InventoryCatalog
	accounts        CarrierAccountReader
	plans           BusinessPlanReader
	bearerPaths     BearerPathReader
	carrierLists    CarrierListReader
	gateway         CarrierGateway
	allocator       InventoryAllocator
	users           UserDirectory
	provisioning    ProvisioningGateway
	spanTagger      SpanTagger
}

type Option func(*engineBuilder)

func WithLogger(logger Logger) Option {
	return func(b *engineBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *engineBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *engineBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorFactory(factory ErrorFactory) Option {
	return func(b *engineBuilder) {
		b.errorFactory = factory
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *engineBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *engineBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *engineBuilder) {
		b.optionsResolver = resolver
	}
}

func WithRegistry(registry Registry) Option {
	return func(b *engineBuilder) {
		b.registry = registry
	}
}

func WithOrganizationDirectory(dir OrganizationDirectory) Option {
	return func(b *engineBuilder) {
		b.organizations = dir
	}
}

func WithRatePlanDirectory(dir RatePlanDirectory) Option {
	return func(b *engineBuilder) {
		b.ratePlans = dir
	}
}

func WithAccessControl(access AccessControl) Option {
	return func(b *engineBuilder) {
		b.access = access
	}
}

func WithWebFilterDirectory(dir WebFilterDirectory) Option {
	return func(b *engineBuilder) {
		b.webFilters = dir
	}
}

func WithInventoryCatalog(catalog InventoryCatalog) Option {
	return func(b *engineBuilder) {
		b.catalog = catalog
	}
}

func WithCarrierAccountReader(reader CarrierAccountReader) Option {
	return func(b *engineBuilder) {
		b.accounts = reader
	}
}

func WithBusinessPlanReader(reader BusinessPlanReader) Option {
	return func(b *engineBuilder) {
		b.plans = reader
	}
}

func WithBearerPathReader(reader BearerPathReader) Option {
	return func(b *engineBuilder) {
		b.bearerPaths = reader
	}
}

func WithCarrierListReader(reader CarrierListReader) Option {
	return func(b *engineBuilder) {
		b.carrierLists = reader
	}
}

func WithCarrierGateway(gateway CarrierGateway) Option {
	return func(b *engineBuilder) {
		b.gateway = gateway
	}
}

func WithInventoryAllocator(allocator InventoryAllocator) Option {
	return func(b *engineBuilder) {
		b.allocator = allocator
	}
}

func WithUserDirectory(users UserDirectory) Option {
	return func(b *engineBuilder) {
		b.users = users
	}
}

func WithProvisioningGateway(gateway ProvisioningGateway) Option {
	return func(b *engineBuilder) {
		b.provisioning = gateway
	}
}

func WithSpanTagger(tagger SpanTagger) Option {
	return func(b *engineBuilder) {
		b.spanTagger = tagger
	}
}

func defaultEngineBuilder(runtime Config) engineBuilder {
	loggerProvider, logger := glog.Resolve("activation", nil, nil)
	return engineBuilder{
		runtimeConfig:   runtime,
		loggerProvider:  loggerProvider,
		logger:          logger,
		metricsRecorder: NopMetricsRecorder{},
		errorFactory:    goerrors.New,
		errorMapper:     defaultErrorMapper,
		configProvider:  NewCfgxConfigProvider(nil),
		optionsResolver: GoOptionsResolver{},
		registry:        NewCarrierRegistry(),
		spanTagger:      NopSpanTagger{},
	}
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	return activationErrorMapper(err)
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.ServiceName) != "" {
		layer["service_name"] = cfg.ServiceName
	}
	if includeZero || cfg.MaxActivationLines > 0 {
		layer["max_activation_lines"] = cfg.MaxActivationLines
	}
	if includeZero || strings.TrimSpace(cfg.SubmitterTag) != "" {
		layer["submitter_tag"] = cfg.SubmitterTag
	}
	if includeZero || cfg.IPPools != (IPPoolConfig{}) {
		layer["ip_pools"] = map[string]any{
			"education":  cfg.IPPools.Education,
			"enterprise": cfg.IPPools.Enterprise,
			"wbu":        cfg.IPPools.WBU,
			"loc":        cfg.IPPools.LOC,
			"default":    cfg.IPPools.Default,
		}
	}
	if includeZero || cfg.VerizonBIPools != (VerizonBIPoolConfig{}) {
		layer["verizon_bi_pools"] = map[string]any{
			"education":  cfg.VerizonBIPools.Education,
			"enterprise": cfg.VerizonBIPools.Enterprise,
		}
	}
	if includeZero || cfg.SKUs != (SKUConfig{}) {
		layer["skus"] = map[string]any{
			"verizon_default":          cfg.SKUs.VerizonDefault,
			"verizon_priority_default": cfg.SKUs.VerizonPriorityDefault,
		}
	}
	if includeZero || len(cfg.CiscoDemoCorps) > 0 {
		layer["cisco_demo_corps"] = append([]string(nil), cfg.CiscoDemoCorps...)
	}
	if includeZero || len(cfg.PenteDemoCorps) > 0 {
		layer["pente_demo_corps"] = append([]string(nil), cfg.PenteDemoCorps...)
	}
	return layer
}
