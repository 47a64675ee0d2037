package activation

import "github.com/catalyst-wireless/activation/core"

type Config = core.Config

type Option = core.Option

type Engine = core.Engine

type EngineDependencies = core.EngineDependencies

type CarrierID = core.CarrierID
type CarrierProfile = core.CarrierProfile
type Registry = core.Registry

type ActivationRequest = core.ActivationRequest
type ActivationLine = core.ActivationLine
type ActivationLineDetail = core.ActivationLineDetail
type Principal = core.Principal
type GatewayResult = core.GatewayResult
type Submission = core.Submission

type OrganizationDirectory = core.OrganizationDirectory
type RatePlanDirectory = core.RatePlanDirectory
type AccessControl = core.AccessControl
type WebFilterDirectory = core.WebFilterDirectory
type InventoryCatalog = core.InventoryCatalog
type CarrierAccountReader = core.CarrierAccountReader
type BusinessPlanReader = core.BusinessPlanReader
type BearerPathReader = core.BearerPathReader
type CarrierListReader = core.CarrierListReader
type CarrierGateway = core.CarrierGateway
type InventoryAllocator = core.InventoryAllocator
type UserDirectory = core.UserDirectory
type ProvisioningGateway = core.ProvisioningGateway
type SpanTagger = core.SpanTagger

var (
	WithLogger                = core.WithLogger
	WithLoggerProvider        = core.WithLoggerProvider
	WithMetricsRecorder       = core.WithMetricsRecorder
	WithErrorFactory          = core.WithErrorFactory
	WithErrorMapper           = core.WithErrorMapper
	WithConfigProvider        = core.WithConfigProvider
	WithOptionsResolver       = core.WithOptionsResolver
	WithRegistry              = core.WithRegistry
	WithOrganizationDirectory = core.WithOrganizationDirectory
	WithRatePlanDirectory     = core.WithRatePlanDirectory
	WithAccessControl         = core.WithAccessControl
	WithWebFilterDirectory    = core.WithWebFilterDirectory
	WithInventoryCatalog      = core.WithInventoryCatalog
	WithCarrierAccountReader  = core.WithCarrierAccountReader
	WithBusinessPlanReader    = core.WithBusinessPlanReader
	WithBearerPathReader      = core.WithBearerPathReader
	WithCarrierListReader     = core.WithCarrierListReader
	WithCarrierGateway        = core.WithCarrierGateway
	WithInventoryAllocator    = core.WithInventoryAllocator
	WithUserDirectory         = core.WithUserDirectory
	WithProvisioningGateway   = core.WithProvisioningGateway
	WithSpanTagger            = core.WithSpanTagger
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	return core.NewEngine(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Engine, error) {
	return core.Setup(cfg, opts...)
}
