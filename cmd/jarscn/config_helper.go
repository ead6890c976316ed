package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jarscn/internal/config"
	"github.com/ludo-technologies/jarscn/service"
)

// newConfigLoader returns a loader that lets only the flags the user set on
// cmd override configuration values
func newConfigLoader(cmd *cobra.Command) *service.JarConfigurationLoaderImpl {
	var tracker *config.FlagTracker
	if cmd != nil {
		tracker = config.NewFlagTrackerFromFlagSet(cmd.Flags())
	}
	return service.NewJarConfigurationLoaderWithFlags(tracker)
}
