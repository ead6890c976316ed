package mcp

import (
	charmlog "github.com/charmbracelet/log"

	"github.com/ludo-technologies/jarscn/app"
	"github.com/ludo-technologies/jarscn/domain"
	"github.com/ludo-technologies/jarscn/internal/logging"
	"github.com/ludo-technologies/jarscn/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.JarFileReader
	configPath string
	logger     *charmlog.Logger
}

// NewDependencies constructs the dependency set. An empty configPath
// discovers .jarscn.toml from each analyzed path.
func NewDependencies(configPath string, logger *charmlog.Logger) *Dependencies {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dependencies{
		fileReader: service.NewFileReader(),
		configPath: configPath,
		logger:     logger,
	}
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildJarUseCase assembles a fresh JarUseCase. Progress bars are disabled
// because stdout carries JSON-RPC.
func (d *Dependencies) BuildJarUseCase() (*app.JarUseCase, error) {
	return app.NewJarUseCaseBuilder().
		WithService(service.NewJarService(nil, d.logger)).
		WithFileReader(d.fileReader).
		WithFormatter(service.NewJarFormatter()).
		WithConfigLoader(service.NewJarConfigurationLoader()).
		Build()
}
