package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type CarrierRegistry struct {
	mu       sync.RWMutex
	profiles map[CarrierID]CarrierProfile
}

func NewCarrierRegistry() *CarrierRegistry {
	return &CarrierRegistry{profiles: make(map[CarrierID]CarrierProfile)}
}

func (r *CarrierRegistry) Register(profile CarrierProfile) error {
	if profile == nil {
		return fmt.Errorf("core: carrier profile is nil")
	}
	id := CarrierID(strings.TrimSpace(string(profile.ID())))
	if id == "" {
		return fmt.Errorf("core: carrier id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[id]; exists {
		return fmt.Errorf("core: carrier already registered: %s", id)
	}
	r.profiles[id] = profile
	return nil
}

func (r *CarrierRegistry) Get(id CarrierID) (CarrierProfile, bool) {
	trimmed := CarrierID(strings.TrimSpace(string(id)))
	if trimmed == "" {
		return nil, false
	}
	r.mu.RLock()
	profile, ok := r.profiles[trimmed]
	r.mu.RUnlock()
	return profile, ok
}

func (r *CarrierRegistry) List() []CarrierProfile {
	r.mu.RLock()
	keys := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		keys = append(keys, string(id))
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	profiles := make([]CarrierProfile, 0, len(keys))
	r.mu.RLock()
	for _, id := range keys {
		profiles = append(profiles, r.profiles[CarrierID(id)])
	}
	r.mu.RUnlock()
	return profiles
}
