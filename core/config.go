package core

import (
	"fmt"
	"strings"
)

// IPPoolConfig maps business types to carrier IP pools.
type IPPoolConfig struct {
	Education  string `koanf:"education" mapstructure:"education"`
	Enterprise string `koanf:"enterprise" mapstructure:"enterprise"`
	WBU        string `koanf:"wbu" mapstructure:"wbu"`
	LOC        string `koanf:"loc" mapstructure:"loc"`
	Default    string `koanf:"default" mapstructure:"default"`
}

func (c IPPoolConfig) ForBusinessType(businessType BusinessType) string {
	switch businessType {
	case BusinessTypeEducation:
		return c.Education
	case BusinessTypeEnterprise:
		return c.Enterprise
	case BusinessTypeWBU:
		return c.WBU
	case BusinessTypeLOC:
		return c.LOC
	default:
		return c.Default
	}
}

// VerizonBIPoolConfig carries the dedicated Verizon Business Internet pools.
type VerizonBIPoolConfig struct {
	Education  string `koanf:"education" mapstructure:"education"`
	Enterprise string `koanf:"enterprise" mapstructure:"enterprise"`
}

// SKUConfig carries the Verizon-family default SKUs used when no hierarchy
// override exists.
type SKUConfig struct {
	VerizonDefault         string `koanf:"verizon_default" mapstructure:"verizon_default"`
	VerizonPriorityDefault string `koanf:"verizon_priority_default" mapstructure:"verizon_priority_default"`
}

type Config struct {
	ServiceName        string              `koanf:"service_name" mapstructure:"service_name"`
	MaxActivationLines int                 `koanf:"max_activation_lines" mapstructure:"max_activation_lines"`
	SubmitterTag       string              `koanf:"submitter_tag" mapstructure:"submitter_tag"`
	IPPools            IPPoolConfig        `koanf:"ip_pools" mapstructure:"ip_pools"`
	VerizonBIPools     VerizonBIPoolConfig `koanf:"verizon_bi_pools" mapstructure:"verizon_bi_pools"`
	SKUs               SKUConfig           `koanf:"skus" mapstructure:"skus"`
	CiscoDemoCorps     []string            `koanf:"cisco_demo_corps" mapstructure:"cisco_demo_corps"`
	PenteDemoCorps     []string            `koanf:"pente_demo_corps" mapstructure:"pente_demo_corps"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:        "activation",
		MaxActivationLines: 2000,
		SubmitterTag:       "CATALYST_USER",
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if c.MaxActivationLines <= 0 {
		return fmt.Errorf("core: max_activation_lines must be positive")
	}
	if strings.TrimSpace(c.SubmitterTag) == "" {
		return fmt.Errorf("core: submitter_tag is required")
	}
	return nil
}
