package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Engine runs the activation pipeline: validate, resolve, build, dispatch,
// interpret. One request produces at most one gateway submission.
type Engine struct {
	config          Config
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

// EngineDependencies exposes the engine's resolved collaborators, mostly for
// wiring inspection in tests and composition roots.
type EngineDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorFactory    ErrorFactory
	ErrorMapper     ErrorMapper
	ConfigProvider  ConfigProvider
	OptionsResolver OptionsResolver
	Registry        Registry
	Organizations   OrganizationDirectory
	RatePlans       RatePlanDirectory
	Access          AccessControl
	WebFilters      WebFilterDirectory
	Catalog         InventoryCatalog
	Accounts        CarrierAccountReader
	Plans           BusinessPlanReader
	BearerPaths     BearerPathReader
	CarrierLists    CarrierListReader
	Gateway         CarrierGateway
	Allocator       InventoryAllocator
	Users           UserDirectory
	Provisioning    ProvisioningGateway
	SpanTagger      SpanTagger
}

func NewEngine(cfg Config, options ...Option) (*Engine, error) {
	builder := defaultEngineBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("activation", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("activation"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		builder.registry = NewCarrierRegistry()
	}
	if builder.spanTagger == nil {
		builder.spanTagger = NopSpanTagger{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &Engine{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		registry:        builder.registry,
		organizations:   builder.organizations,
		ratePlans:       builder.ratePlans,
		access:          builder.access,
		webFilters:      builder.webFilters,
		catalog:         builder.catalog,
		accounts:        builder.accounts,
		plans:           builder.plans,
		bearerPaths:     builder.bearerPaths,
		carrierLists:    builder.carrierLists,
		gateway:         builder.gateway,
		allocator:       builder.allocator,
		users:           builder.users,
		provisioning:    builder.provisioning,
		spanTagger:      builder.spanTagger,
	}, nil
}

func Setup(cfg Config, options ...Option) (*Engine, error) {
	return NewEngine(cfg, options...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (e *Engine) Config() Config {
	if e == nil {
		return Config{}
	}
	return e.config
}

func (e *Engine) Dependencies() EngineDependencies {
	if e == nil {
		return EngineDependencies{}
	}
	return EngineDependencies{
		Logger:          e.logger,
		LoggerProvider:  e.loggerProvider,
		MetricsRecorder: e.metricsRecorder,
		ErrorFactory:    e.errorFactory,
		ErrorMapper:     e.errorMapper,
		ConfigProvider:  e.configProvider,
		OptionsResolver: e.optionsResolver,
		Registry:        e.registry,
		Organizations:   e.organizations,
		RatePlans:       e.ratePlans,
		Access:          e.access,
		WebFilters:      e.webFilters,
		Catalog:         e.catalog,
		Accounts:        e.accounts,
		Plans:           e.plans,
		BearerPaths:     e.bearerPaths,
		CarrierLists:    e.carrierLists,
		Gateway:         e.gateway,
		Allocator:       e.allocator,
		Users:           e.users,
		Provisioning:    e.provisioning,
		SpanTagger:      e.spanTagger,
	}
}

// SubmitActivation runs the full pipeline for one bulk request and returns
// the gateway transaction id, 0 when the gateway rejected the batch.
func (e *Engine) SubmitActivation(ctx context.Context, req *ActivationRequest, principal Principal) (txID int64, err error) {
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
		e.observeOperation(ctx, startedAt, "submit_activation", err, fields)
	}()

	if req == nil {
		err = validationError("Activation lines list is empty")
		return 0, err
	}
	if validateErr := req.Validate(); validateErr != nil {
		err = e.mapError(validateErr)
		return 0, err
	}

	profile, err := e.resolveCarrier(req.Carrier)
	if err != nil {
		return 0, err
	}

	businessType, lines, err := e.validateRequest(ctx, req, principal, profile)
	if err != nil {
		err = e.mapError(err)
		return 0, err
	}
	fields["business_type"] = string(businessType)

	inv, resolved, err := e.resolveContext(ctx, req, profile, businessType)
	if err != nil {
		err = e.mapError(err)
		return 0, err
	}

	details, err := e.buildPayload(ctx, req, profile, lines, inv, resolved)
	if err != nil {
		err = e.mapError(err)
		return 0, err
	}

	result, err := e.dispatch(ctx, req, principal, profile, details, resolved)
	if err != nil {
		err = e.mapError(err)
		return 0, err
	}

	return e.interpretResult(ctx, req, result), nil
}

// CarrierList returns the carriers the caller may activate on, ordered for
// display: the first-responder list when the corp is flagged, Verizon BI
// first when present, demo network carriers appended for demo corps.
func (e *Engine) CarrierList(ctx context.Context, principal Principal) (list []string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"corp_id": principal.CorpID}
	defer func() {
		e.observeOperation(ctx, startedAt, "carrier_list", err, fields)
	}()

	if err = principal.Validate(); err != nil {
		err = e.mapError(err)
		return nil, err
	}

	settings, err := e.access.Settings(ctx, principal)
	if err != nil {
		err = e.mapError(err)
		return nil, err
	}
	includeVerizonBI := settings.Has(FeatureVerizonBusinessInternet)

	firstResponder, err := e.ResolveFirstResponder(ctx, principal.CorpID)
	if err != nil {
		err = e.mapError(err)
		return nil, err
	}

	if firstResponder != "" && !strings.EqualFold(firstResponder, FirstResponderNo) {
		list, err = e.carrierLists.FirstResponderCarrierList(ctx, includeVerizonBI)
	} else {
		var businessType BusinessType
		businessType, err = e.organizations.BusinessType(ctx, principal.CorpID)
		if err != nil {
			err = e.mapError(err)
			return nil, err
		}
		if businessType == BusinessTypePrivateWireless {
			list, err = e.carrierLists.PrivateWirelessCarrierList(ctx)
		} else {
			list, err = e.carrierLists.CarrierList(ctx, businessType, includeVerizonBI, false)
		}
	}
	if err != nil {
		err = e.mapError(err)
		return nil, err
	}

	list = e.reorderCarrierList(list)
	list = e.appendDemoCarriers(list, principal.CorpID)
	return list, nil
}

// CarriersForESim returns the carriers eligible for eSIM activation.
func (e *Engine) CarriersForESim(ctx context.Context, principal Principal) (list []string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"corp_id": principal.CorpID}
	defer func() {
		e.observeOperation(ctx, startedAt, "carriers_for_esim", err, fields)
	}()

	if err = principal.Validate(); err != nil {
		err = e.mapError(err)
		return nil, err
	}

	settings, err := e.access.Settings(ctx, principal)
	if err != nil {
		err = e.mapError(err)
		return nil, err
	}
	if !settings.Has(FeatureESimActivation) {
		err = accessDeniedError("eSIM activation is not enabled for this user")
		return nil, err
	}

	businessType, err := e.organizations.BusinessType(ctx, principal.CorpID)
	if err != nil {
		err = e.mapError(err)
		return nil, err
	}

	list, err = e.carrierLists.CarrierList(ctx, businessType, settings.Has(FeatureVerizonBusinessInternet), true)
	if err != nil {
		err = e.mapError(err)
		return nil, err
	}
	return e.reorderCarrierList(list), nil
}

// ResolveFirstResponder returns the corp's effective first-responder flag,
// consulting the hierarchy when the corp-level value is inherit.
func (e *Engine) ResolveFirstResponder(ctx context.Context, corpID string) (string, error) {
	settings, err := e.organizations.CorpSettings(ctx, corpID)
	if err != nil {
		return "", err
	}
	return e.resolveFirstResponderFlag(ctx, corpID, settings)
}

// reorderCarrierList moves the Verizon Business Internet entry to the front
// when present. Everything else keeps its order.
func (e *Engine) reorderCarrierList(list []string) []string {
	name := e.carrierDisplayName(CarrierVerizonBI)
	if name == "" {
		return list
	}
	for i, entry := range list {
		if strings.EqualFold(entry, name) {
			reordered := make([]string, 0, len(list))
			reordered = append(reordered, entry)
			reordered = append(reordered, list[:i]...)
			reordered = append(reordered, list[i+1:]...)
			return reordered
		}
	}
	return list
}

// appendDemoCarriers adds the private-network demo carriers for corps on the
// configured demo lists.
func (e *Engine) appendDemoCarriers(list []string, corpID string) []string {
	if containsFold(e.config.CiscoDemoCorps, corpID) {
		if name := e.carrierDisplayName(CarrierCiscoNetwork); name != "" && !containsFold(list, name) {
			list = append(list, name)
		}
	}
	if containsFold(e.config.PenteDemoCorps, corpID) {
		if name := e.carrierDisplayName(CarrierPenteNetwork); name != "" && !containsFold(list, name) {
			list = append(list, name)
		}
	}
	return list
}

func (e *Engine) carrierDisplayName(id CarrierID) string {
	if e == nil || e.registry == nil {
		return ""
	}
	profile, ok := e.registry.Get(id)
	if !ok {
		return ""
	}
	return profile.DisplayName()
}

func containsFold(list []string, value string) bool {
	for _, entry := range list {
		if strings.EqualFold(strings.TrimSpace(entry), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}

func (e *Engine) resolveCarrier(id CarrierID) (CarrierProfile, error) {
	if e == nil || e.registry == nil {
		return nil, e.mapError(fmt.Errorf("core: registry unavailable"))
	}
	profile, ok := e.registry.Get(id)
	if ok {
		return profile, nil
	}
	wrapped := e.errorFactory("Invalid Carrier!", goerrors.CategoryBadInput).
		WithTextCode(ActivationErrorBadInput)
	return nil, wrapped.WithMetadata(map[string]any{"carrier": string(id)})
}

func (e *Engine) mapError(err error) error {
	if err == nil {
		return nil
	}
	if e == nil || e.errorMapper == nil {
		return err
	}
	mapped := e.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}
