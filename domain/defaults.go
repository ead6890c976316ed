package domain

// Archive selection defaults
const (
	// DefaultEntryIncludePattern selects every class entry of a jar
	DefaultEntryIncludePattern = "**/*.class"

	// DefaultJarDiscoveryPattern selects jars when a directory is given
	DefaultJarDiscoveryPattern = "**/*.jar"

	// JarExtension is matched case-insensitively
	JarExtension = ".jar"

	// DefaultWorkers of 0 means one decode worker per CPU
	DefaultWorkers = 0
)

// Output defaults
const (
	DefaultOutputFormat = OutputFormatText
	DefaultSortBy       = SortByName

	// DefaultTop of 0 lists every class when details are shown
	DefaultTop = 0
)

// Graph export defaults
const (
	DefaultNeo4jURI       = "neo4j://localhost:7687"
	DefaultNeo4jUsername  = "neo4j"
	DefaultNeo4jDatabase  = "neo4j"
	DefaultGraphBatchSize = 500

	// Neo4jPasswordEnv is read when no password is configured
	Neo4jPasswordEnv = "JARSCN_NEO4J_PASSWORD"
)

// ConfigFileName is discovered by walking up from the analyzed path
const ConfigFileName = ".jarscn.toml"

// BoolPtr returns a pointer to b, used for tri-state request options
func BoolPtr(b bool) *bool {
	return &b
}

// BoolValue dereferences b, returning defaultVal when b is nil
func BoolValue(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}
