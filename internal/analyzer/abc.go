package analyzer

import (
	"fmt"
	"math"
)

// ABCVector holds Assignment, Branch and Condition counts
type ABCVector struct {
	Assignments int
	Branches    int
	Conditions  int
}

// Add returns the component-wise sum of two vectors
func (v ABCVector) Add(other ABCVector) ABCVector {
	return ABCVector{
		Assignments: v.Assignments + other.Assignments,
		Branches:    v.Branches + other.Branches,
		Conditions:  v.Conditions + other.Conditions,
	}
}

// Magnitude returns sqrt(A² + B² + C²)
func (v ABCVector) Magnitude() float64 {
	a := float64(v.Assignments)
	b := float64(v.Branches)
	c := float64(v.Conditions)
	return math.Sqrt(a*a + b*b + c*c)
}

// IsZero reports whether all three counts are zero
func (v ABCVector) IsZero() bool {
	return v.Assignments == 0 && v.Branches == 0 && v.Conditions == 0
}

func (v ABCVector) String() string {
	return fmt.Sprintf("<%d,%d,%d>", v.Assignments, v.Branches, v.Conditions)
}
