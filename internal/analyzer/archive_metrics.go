package analyzer

import (
	"sort"
)

// InheritanceSummary holds archive-wide inheritance depth figures
type InheritanceSummary struct {
	MaxDepth     int
	AverageDepth float64
}

// ABCSummary holds archive-wide ABC totals
type ABCSummary struct {
	Total     ABCVector
	Magnitude float64
}

// ClassMetrics holds the computed figures for one class
type ClassMetrics struct {
	Name              string
	SuperName         string
	IsInterface       bool
	InheritanceDepth  int
	OverriddenMethods int
	FieldCount        int
	MethodCount       int
	ABC               ABCVector
	ABCMagnitude      float64
	ImplementedTypes  []string
}

// ArchiveResult is the aggregated metrics report for one archive
type ArchiveResult struct {
	ArchiveName              string
	TotalClasses             int
	TotalInterfaces          int
	Inheritance              InheritanceSummary
	ABC                      ABCSummary
	AverageOverriddenMethods float64
	AverageFieldsPerClass    float64

	// Classes lists per-class figures sorted by name
	Classes []ClassMetrics
}

// ComputeArchiveResult aggregates the records of one archive. Depth and field
// averages are taken over every record; the overridden-method average only
// over non-interface classes. Every average is 0 when its denominator is 0.
func ComputeArchiveResult(archiveName string, records []*ClassRecord) *ArchiveResult {
	result := &ArchiveResult{
		ArchiveName: archiveName,
		Classes:     make([]ClassMetrics, 0, len(records)),
	}

	graph := NewClassGraph(records)

	var (
		depthSum     int
		fieldSum     int
		overrideSum  int
		total        ABCVector
		recordsCount int
	)

	for _, rec := range records {
		if rec == nil {
			continue
		}
		recordsCount++

		depth := graph.InheritanceDepth(rec)
		overridden := graph.OverriddenMethods(rec)

		if rec.IsInterface() {
			result.TotalInterfaces++
		} else {
			result.TotalClasses++
			overrideSum += overridden
		}

		depthSum += depth
		if depth > result.Inheritance.MaxDepth {
			result.Inheritance.MaxDepth = depth
		}
		fieldSum += rec.FieldCount()
		total = total.Add(rec.ABC())

		result.Classes = append(result.Classes, ClassMetrics{
			Name:              rec.Name(),
			SuperName:         rec.SuperName(),
			IsInterface:       rec.IsInterface(),
			InheritanceDepth:  depth,
			OverriddenMethods: overridden,
			FieldCount:        rec.FieldCount(),
			MethodCount:       rec.MethodCount(),
			ABC:               rec.ABC(),
			ABCMagnitude:      rec.ABC().Magnitude(),
			ImplementedTypes:  rec.Interfaces(),
		})
	}

	result.ABC = ABCSummary{Total: total, Magnitude: total.Magnitude()}
	result.Inheritance.AverageDepth = average(depthSum, recordsCount)
	result.AverageFieldsPerClass = average(fieldSum, recordsCount)
	result.AverageOverriddenMethods = average(overrideSum, result.TotalClasses)

	sort.SliceStable(result.Classes, func(i, j int) bool {
		return result.Classes[i].Name < result.Classes[j].Name
	})

	return result
}

func average(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
