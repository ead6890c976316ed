package config

import (
	"sync"

	"github.com/spf13/pflag"
)

// FlagTracker provides thread-safe tracking of explicitly set flags
type FlagTracker struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewFlagTracker creates a new thread-safe flag tracker
func NewFlagTracker() *FlagTracker {
	return &FlagTracker{
		flags: make(map[string]bool),
	}
}

// NewFlagTrackerWithFlags creates a new flag tracker with initial flags.
// Entries mapped to false are not considered set.
func NewFlagTrackerWithFlags(flags map[string]bool) *FlagTracker {
	copied := make(map[string]bool, len(flags))
	for k, v := range flags {
		if v {
			copied[k] = true
		}
	}
	return &FlagTracker{
		flags: copied,
	}
}

// NewFlagTrackerFromFlagSet records every flag the user set on fs
func NewFlagTrackerFromFlagSet(fs *pflag.FlagSet) *FlagTracker {
	ft := NewFlagTracker()
	if fs == nil {
		return ft
	}
	fs.Visit(func(f *pflag.Flag) {
		ft.flags[f.Name] = true
	})
	return ft
}

// Set marks a flag as explicitly set
func (ft *FlagTracker) Set(flagName string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.flags[flagName] = true
}

// WasSet checks if a flag was explicitly set
func (ft *FlagTracker) WasSet(flagName string) bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.flags[flagName]
}

// GetAll returns a copy of all flags
func (ft *FlagTracker) GetAll() map[string]bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()

	result := make(map[string]bool, len(ft.flags))
	for k, v := range ft.flags {
		result[k] = v
	}
	return result
}

// Count returns the number of explicitly set flags
func (ft *FlagTracker) Count() int {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return len(ft.flags)
}

// MergeString returns override when flagName was set, base otherwise
func (ft *FlagTracker) MergeString(base, override, flagName string) string {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeInt returns override when flagName was set, base otherwise
func (ft *FlagTracker) MergeInt(base, override int, flagName string) int {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeBool returns override when flagName was set, base otherwise
func (ft *FlagTracker) MergeBool(base, override bool, flagName string) bool {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeBoolPtr is MergeBool for tri-state options; a nil override keeps base
func (ft *FlagTracker) MergeBoolPtr(base, override *bool, flagName string) *bool {
	if ft.WasSet(flagName) && override != nil {
		return override
	}
	return base
}

// MergeStringSlice returns a non-empty override when flagName was set
func (ft *FlagTracker) MergeStringSlice(base, override []string, flagName string) []string {
	if ft.WasSet(flagName) && len(override) > 0 {
		return override
	}
	return base
}
