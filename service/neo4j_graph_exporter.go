package service

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/ludo-technologies/jarscn/domain"
	"github.com/ludo-technologies/jarscn/internal/logging"
	"github.com/ludo-technologies/jarscn/internal/version"
)

const (
	cypherJarIndex   = "CREATE INDEX jar_name IF NOT EXISTS FOR (n:Jar) ON (n.name)"
	cypherClassIndex = "CREATE INDEX jvm_class_key IF NOT EXISTS FOR (n:JvmClass) ON (n.key)"

	cypherClearJar = `MATCH (c:JvmClass {jar: $jar}) DETACH DELETE c`

	cypherUpsertJar = `MERGE (j:Jar {name: $row.name})
		SET j.total_classes = $row.total_classes, j.total_interfaces = $row.total_interfaces,
		    j.max_depth = $row.max_depth, j.average_depth = $row.average_depth,
		    j.abc_magnitude = $row.abc_magnitude,
		    j.average_overridden_methods = $row.average_overridden_methods,
		    j.average_fields_per_class = $row.average_fields_per_class`

	cypherUpsertClasses = `UNWIND $batch AS row
		MERGE (c:JvmClass {key: row.key})
		SET c.name = row.name, c.jar = row.jar, c.interface = row.interface,
		    c.depth = row.depth, c.overridden_methods = row.overrides,
		    c.fields = row.fields, c.methods = row.methods,
		    c.assignments = row.a, c.branches = row.b, c.conditions = row.c,
		    c.abc_magnitude = row.abc
		WITH c, row
		MATCH (j:Jar {name: row.jar})
		MERGE (c)-[:IN_JAR]->(j)`

	cypherExtends = `UNWIND $batch AS row
		MATCH (c:JvmClass {key: row.from}), (s:JvmClass {key: row.to})
		MERGE (c)-[:EXTENDS]->(s)`

	cypherImplements = `UNWIND $batch AS row
		MATCH (c:JvmClass {key: row.from}), (i:JvmClass {key: row.to})
		MERGE (c)-[:IMPLEMENTS]->(i)`
)

// cypherRunner executes one statement
type cypherRunner func(ctx context.Context, cypher string, params map[string]any) error

// Neo4jGraphExporter loads analyzed archives into Neo4j using batched
// UNWIND statements. Classes are keyed by archive and internal name;
// EXTENDS and IMPLEMENTS edges only link types found in the same archive.
type Neo4jGraphExporter struct {
	driver    neo4j.DriverWithContext
	run       cypherRunner
	batchSize int
	clear     bool
	logger    *charmlog.Logger
}

// NewNeo4jGraphExporter connects to Neo4j and verifies the connection
func NewNeo4jGraphExporter(ctx context.Context, req domain.GraphExportRequest, logger *charmlog.Logger) (*Neo4jGraphExporter, error) {
	driver, err := neo4j.NewDriverWithContext(req.URI, neo4j.BasicAuth(req.Username, req.Password, ""),
		func(c *neo4j.Config) { c.UserAgent = version.UserAgent() })
	if err != nil {
		return nil, domain.NewExportError("failed to create neo4j driver", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, domain.NewExportError(fmt.Sprintf("cannot reach neo4j at %s", req.URI), err)
	}

	database := req.Database
	run := func(ctx context.Context, cypher string, params map[string]any) error {
		_, err := neo4j.ExecuteQuery(ctx, driver, cypher, params, neo4j.EagerResultTransformer,
			neo4j.ExecuteQueryWithDatabase(database))
		return err
	}

	exporter := newGraphExporter(run, req.BatchSize, req.Clear, logger)
	exporter.driver = driver
	return exporter, nil
}

func newGraphExporter(run cypherRunner, batchSize int, clear bool, logger *charmlog.Logger) *Neo4jGraphExporter {
	if batchSize <= 0 {
		batchSize = domain.DefaultGraphBatchSize
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Neo4jGraphExporter{run: run, batchSize: batchSize, clear: clear, logger: logger}
}

// Export writes every archive of the response
func (e *Neo4jGraphExporter) Export(ctx context.Context, response *domain.JarResponse) (*domain.GraphExportSummary, error) {
	summary := &domain.GraphExportSummary{}
	if response == nil {
		return summary, nil
	}

	for _, stmt := range []string{cypherJarIndex, cypherClassIndex} {
		if err := e.run(ctx, stmt, nil); err != nil {
			return nil, domain.NewExportError("failed to create indexes", err)
		}
	}

	for _, report := range response.Archives {
		if err := e.exportArchive(ctx, report, summary); err != nil {
			return nil, domain.NewExportError(fmt.Sprintf("failed to export %s", report.JarFileName), err)
		}
		summary.Archives++
	}
	return summary, nil
}

func (e *Neo4jGraphExporter) exportArchive(ctx context.Context, report domain.ArchiveReport, summary *domain.GraphExportSummary) error {
	if e.clear {
		if err := e.run(ctx, cypherClearJar, map[string]any{"jar": report.JarFileName}); err != nil {
			return err
		}
	}

	if err := e.run(ctx, cypherUpsertJar, map[string]any{"row": jarRow(report)}); err != nil {
		return err
	}

	classes, extends, implements := graphRows(report)
	steps := []struct {
		cypher string
		rows   []map[string]any
		count  *int
	}{
		{cypherUpsertClasses, classes, &summary.Classes},
		{cypherExtends, extends, &summary.Extends},
		{cypherImplements, implements, &summary.Implements},
	}
	for _, step := range steps {
		for _, batch := range chunkRows(step.rows, e.batchSize) {
			if err := e.run(ctx, step.cypher, map[string]any{"batch": batch}); err != nil {
				return err
			}
		}
		*step.count += len(step.rows)
	}

	e.logger.Info("exported archive to neo4j",
		"jar", report.JarFileName,
		"classes", len(classes),
		"extends", len(extends),
		"implements", len(implements))
	return nil
}

// Close releases the underlying Neo4j driver resources
func (e *Neo4jGraphExporter) Close(ctx context.Context) error {
	if e.driver == nil {
		return nil
	}
	return e.driver.Close(ctx)
}

func classKey(jar, name string) string {
	return jar + "!" + name
}

func jarRow(report domain.ArchiveReport) map[string]any {
	return map[string]any{
		"name":                       report.JarFileName,
		"total_classes":              report.TotalClasses,
		"total_interfaces":           report.TotalInterfaces,
		"max_depth":                  report.Inheritance.MaxDepth,
		"average_depth":              report.Inheritance.AverageDepth,
		"abc_magnitude":              report.ABC.Magnitude,
		"average_overridden_methods": report.AverageOverriddenMethods,
		"average_fields_per_class":   report.AverageFieldsPerClass,
	}
}

// graphRows builds node and edge rows for one archive. Edges whose target
// is not declared in the archive are left out.
func graphRows(report domain.ArchiveReport) (classes, extends, implements []map[string]any) {
	jar := report.JarFileName
	declared := make(map[string]bool, len(report.AllClasses))
	for _, c := range report.AllClasses {
		declared[c.Name] = true
	}

	for _, c := range report.AllClasses {
		key := classKey(jar, c.Name)
		classes = append(classes, map[string]any{
			"key":       key,
			"name":      c.Name,
			"jar":       jar,
			"interface": c.IsInterface,
			"depth":     c.InheritanceDepth,
			"overrides": c.OverriddenMethods,
			"fields":    c.FieldCount,
			"methods":   c.MethodCount,
			"a":         c.ABC.Assignments,
			"b":         c.ABC.Branches,
			"c":         c.ABC.Conditions,
			"abc":       c.ABC.Magnitude,
		})

		if c.SuperName != "" && declared[c.SuperName] {
			extends = append(extends, map[string]any{"from": key, "to": classKey(jar, c.SuperName)})
		}
		for _, iface := range c.Interfaces {
			if declared[iface] {
				implements = append(implements, map[string]any{"from": key, "to": classKey(jar, iface)})
			}
		}
	}
	return classes, extends, implements
}

// chunkRows splits rows into batches of at most size rows
func chunkRows(rows []map[string]any, size int) [][]map[string]any {
	if len(rows) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(rows)
	}
	batches := make([][]map[string]any, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		batches = append(batches, rows[start:end])
	}
	return batches
}
