package service

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/jarscn/domain"
	"github.com/ludo-technologies/jarscn/internal/archive/archivetest"
	"github.com/ludo-technologies/jarscn/internal/logging"
)

type recordingProgress struct {
	noOpProgressManager
	updates   [][2]int
	completed []bool
}

func (r *recordingProgress) Update(processed, total int) {
	r.updates = append(r.updates, [2]int{processed, total})
}

func (r *recordingProgress) Complete(success bool) {
	r.completed = append(r.completed, success)
}

func newTestJarService() *JarServiceImpl {
	return NewJarService(nil, logging.Discard())
}

func TestJarService_AnalyzeArchive(t *testing.T) {
	path := archivetest.Write(t, t.TempDir(), "shapes.jar", archivetest.ShapesEntries())

	report, err := newTestJarService().AnalyzeArchive(context.Background(), path, *domain.DefaultJarRequest())
	require.NoError(t, err)

	assert.Equal(t, "shapes.jar", report.JarFileName)
	assert.Equal(t, path, report.Path)
	assert.Equal(t, 2, report.TotalClasses)
	assert.Equal(t, 1, report.TotalInterfaces)
	assert.Equal(t, 3, report.EntriesScanned)
	assert.Equal(t, 2, report.Inheritance.MaxDepth)
	assert.InDelta(t, 4.0/3.0, report.Inheritance.AverageDepth, 1e-9)
	assert.InDelta(t, 1.5, report.AverageOverriddenMethods, 1e-9)
	assert.InDelta(t, 1.0, report.AverageFieldsPerClass, 1e-9)
	assert.Equal(t, domain.ABCMetrics{
		TotalAssignments: 1,
		TotalBranches:    4,
		TotalConditions:  1,
		Magnitude:        math.Sqrt(18),
	}, report.ABC)

	assert.Nil(t, report.Classes, "details are off by default")
	require.Len(t, report.AllClasses, 3)
	circle := report.AllClasses[1]
	assert.Equal(t, "com/example/Circle", circle.Name)
	assert.Equal(t, "com/example/Base", circle.SuperName)
	assert.Equal(t, 2, circle.InheritanceDepth)
	assert.Equal(t, 2, circle.OverriddenMethods)
	assert.Equal(t, []string{"com/example/Shape"}, report.AllClasses[0].Interfaces)
}

func TestJarService_AnalyzeArchive_Details(t *testing.T) {
	path := archivetest.Write(t, t.TempDir(), "shapes.jar", archivetest.ShapesEntries())
	service := newTestJarService()

	tests := []struct {
		name     string
		sortBy   domain.SortCriteria
		top      int
		expected []string
	}{
		{"by name", domain.SortByName, 0, []string{"com/example/Base", "com/example/Circle", "com/example/Shape"}},
		{"by depth", domain.SortByDepth, 0, []string{"com/example/Circle", "com/example/Base", "com/example/Shape"}},
		{"by complexity", domain.SortByComplexity, 0, []string{"com/example/Circle", "com/example/Base", "com/example/Shape"}},
		{"by overrides", domain.SortByOverrides, 0, []string{"com/example/Circle", "com/example/Base", "com/example/Shape"}},
		{"by fields", domain.SortByFields, 2, []string{"com/example/Circle", "com/example/Base"}},
		{"top one", domain.SortByName, 1, []string{"com/example/Base"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := *domain.DefaultJarRequest()
			req.ShowDetails = true
			req.SortBy = tt.sortBy
			req.Top = tt.top

			report, err := service.AnalyzeArchive(context.Background(), path, req)
			require.NoError(t, err)

			names := make([]string, 0, len(report.Classes))
			for _, c := range report.Classes {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.expected, names)
			assert.Len(t, report.AllClasses, 3, "sorting and truncation never touch AllClasses")
		})
	}
}

func TestJarService_EntryPatterns(t *testing.T) {
	path := archivetest.Write(t, t.TempDir(), "shapes.jar", archivetest.ShapesEntries())

	req := *domain.DefaultJarRequest()
	req.ExcludePatterns = []string{"**/Circle.class"}

	report, err := newTestJarService().AnalyzeArchive(context.Background(), path, req)
	require.NoError(t, err)
	assert.Equal(t, 2, report.EntriesScanned)
	assert.Equal(t, 1, report.TotalClasses)
	assert.Equal(t, 1, report.Inheritance.MaxDepth)
}

func TestJarService_Analyze(t *testing.T) {
	dir := t.TempDir()
	good := archivetest.Write(t, dir, "shapes.jar", archivetest.Corrupt(archivetest.ShapesEntries(), "com/example/Broken.class"))
	empty := archivetest.Write(t, dir, "empty.jar", map[string][]byte{"README.txt": []byte("hi")})
	notZip := filepath.Join(dir, "plain.jar")
	require.NoError(t, os.WriteFile(notZip, []byte("not a zip"), 0o644))

	progress := &recordingProgress{}
	service := NewJarService(progress, logging.Discard())

	req := *domain.DefaultJarRequest()
	req.Paths = []string{good, notZip, empty}

	response, err := service.Analyze(context.Background(), req)
	require.NoError(t, err, "archive failures are reported, not returned")

	require.Len(t, response.Archives, 2)
	assert.Equal(t, "shapes.jar", response.Archives[0].JarFileName)
	assert.Equal(t, "empty.jar", response.Archives[1].JarFileName)

	require.Len(t, response.Errors, 1)
	assert.Contains(t, response.Errors[0], "plain.jar")

	require.Len(t, response.Archives[0].SkippedEntries, 1)
	assert.Equal(t, "com/example/Broken.class", response.Archives[0].SkippedEntries[0].Entry)
	assert.Len(t, response.Warnings, 2, "one skipped entry and one archive without classes")

	assert.Equal(t, domain.JarSummary{
		ArchivesAnalyzed: 2,
		TotalClasses:     2,
		TotalInterfaces:  1,
		MaxDepth:         2,
		SkippedEntries:   1,
	}, response.Summary)
	assert.NotEmpty(t, response.GeneratedAt)
	assert.NotEmpty(t, response.Version)

	assert.Equal(t, []bool{true, false, true}, progress.completed)
	require.NotEmpty(t, progress.updates)
	assert.Equal(t, [2]int{4, 4}, progress.updates[3], "four class entries in the first jar")
}

func TestJarService_Analyze_Cancelled(t *testing.T) {
	path := archivetest.Write(t, t.TempDir(), "shapes.jar", archivetest.ShapesEntries())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := *domain.DefaultJarRequest()
	req.Paths = []string{path}

	_, err := newTestJarService().Analyze(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}
