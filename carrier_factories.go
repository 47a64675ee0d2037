package activation

import (
	"github.com/catalyst-wireless/activation/carriers/att"
	"github.com/catalyst-wireless/activation/carriers/bellcanada"
	"github.com/catalyst-wireless/activation/carriers/privatewireless"
	"github.com/catalyst-wireless/activation/carriers/tmobile"
	"github.com/catalyst-wireless/activation/carriers/uscellular"
	"github.com/catalyst-wireless/activation/carriers/verizon"
	"github.com/catalyst-wireless/activation/core"
)

func VerizonCarrier() (core.CarrierProfile, error) {
	return verizon.New()
}

func VerizonPriorityCarrier() (core.CarrierProfile, error) {
	return verizon.NewPriority()
}

func VerizonBusinessInternetCarrier() (core.CarrierProfile, error) {
	return verizon.NewBusinessInternet()
}

func ATTCarrier() (core.CarrierProfile, error) {
	return att.New()
}

func ATTFirstNetCarrier() (core.CarrierProfile, error) {
	return att.NewFirstNet()
}

func ATTFirstNetExtendedPrimaryCarrier() (core.CarrierProfile, error) {
	return att.NewFirstNetExtendedPrimary()
}

func TMobileCarrier() (core.CarrierProfile, error) {
	return tmobile.New()
}

func USCellularCarrier() (core.CarrierProfile, error) {
	return uscellular.New()
}

func BellCanadaCarrier() (core.CarrierProfile, error) {
	return bellcanada.New()
}

func PrivateLTECarrier() (core.CarrierProfile, error) {
	return privatewireless.NewPrivateLTE()
}

func CiscoNetworkCarrier() (core.CarrierProfile, error) {
	return privatewireless.NewCisco()
}

func PenteNetworkCarrier() (core.CarrierProfile, error) {
	return privatewireless.NewPente()
}

// DefaultRegistry builds a registry with every built-in carrier registered.
func DefaultRegistry() (core.Registry, error) {
	factories := []func() (core.CarrierProfile, error){
		VerizonCarrier,
		VerizonPriorityCarrier,
		VerizonBusinessInternetCarrier,
		ATTCarrier,
		ATTFirstNetCarrier,
		ATTFirstNetExtendedPrimaryCarrier,
		TMobileCarrier,
		USCellularCarrier,
		BellCanadaCarrier,
		PrivateLTECarrier,
		CiscoNetworkCarrier,
		PenteNetworkCarrier,
	}

	registry := core.NewCarrierRegistry()
	for _, factory := range factories {
		profile, err := factory()
		if err != nil {
			return nil, err
		}
		if err := registry.Register(profile); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
