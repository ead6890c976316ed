package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sigEquals   = MethodSignature{Name: "equals", Descriptor: "(Ljava/lang/Object;)Z"}
	sigHashCode = MethodSignature{Name: "hashCode", Descriptor: "()I"}
	sigInit     = MethodSignature{Name: "<init>", Descriptor: "()V"}
	sigClinit   = MethodSignature{Name: "<clinit>", Descriptor: "()V"}
)

func class(name, super string, ifaces []string, methods ...MethodSignature) *ClassRecord {
	return NewClassRecord(name, super, false, ifaces, 0, methods...)
}

func iface(name string, supers []string, methods ...MethodSignature) *ClassRecord {
	return NewClassRecord(name, RootTypeName, true, supers, 0, methods...)
}

func TestClassGraph_InheritanceDepth(t *testing.T) {
	a := class("A", RootTypeName, nil)
	b := class("B", "A", nil)
	c := class("C", "B", nil)
	orphan := class("Orphan", "org/external/Base", nil)
	root := class(RootTypeName, "", nil)
	noSuper := class("NoSuper", "", nil)

	graph := NewClassGraph([]*ClassRecord{a, b, c, orphan, root, noSuper})

	tests := []struct {
		name     string
		rec      *ClassRecord
		expected int
	}{
		{name: "direct subclass of root", rec: a, expected: 1},
		{name: "second level", rec: b, expected: 2},
		{name: "third level", rec: c, expected: 3},
		{name: "superclass outside the archive", rec: orphan, expected: 1},
		{name: "root type itself", rec: root, expected: 1},
		{name: "no superclass", rec: noSuper, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, graph.InheritanceDepth(tt.rec))
		})
	}
}

func TestClassGraph_InheritanceDepth_UnresolvedMidChain(t *testing.T) {
	// B's superclass is missing, so the walk from C stops at B.
	b := class("B", "Missing", nil)
	c := class("C", "B", nil)
	graph := NewClassGraph([]*ClassRecord{b, c})

	assert.Equal(t, 2, graph.InheritanceDepth(c))
	assert.Equal(t, 1, graph.InheritanceDepth(b))
}

func TestClassGraph_Cycles(t *testing.T) {
	t.Run("self cycle", func(t *testing.T) {
		self := class("Self", "Self", []string{"Self"}, sigEquals)
		graph := NewClassGraph([]*ClassRecord{self})

		assert.Equal(t, 1, graph.InheritanceDepth(self))
		assert.Equal(t, 1, graph.OverriddenMethods(self))
	})

	t.Run("two class cycle", func(t *testing.T) {
		x := class("X", "Y", nil)
		y := class("Y", "X", nil)
		graph := NewClassGraph([]*ClassRecord{x, y})

		assert.Equal(t, 2, graph.InheritanceDepth(x))
		assert.Equal(t, 2, graph.InheritanceDepth(y))
		assert.Equal(t, 0, graph.OverriddenMethods(x))
	})

	t.Run("interface cycle", func(t *testing.T) {
		run := MethodSignature{Name: "run", Descriptor: "()V"}
		i1 := iface("I1", []string{"I2"}, run)
		i2 := iface("I2", []string{"I1"})
		impl := class("Impl", RootTypeName, []string{"I1"}, run)
		graph := NewClassGraph([]*ClassRecord{i1, i2, impl})

		assert.Equal(t, 1, graph.OverriddenMethods(impl))
	})
}

func TestClassGraph_InheritableMethods(t *testing.T) {
	get := MethodSignature{Name: "get", Descriptor: "()Ljava/lang/Object;"}
	put := MethodSignature{Name: "put", Descriptor: "(Ljava/lang/Object;)V"}
	size := MethodSignature{Name: "size", Descriptor: "()I"}
	closing := MethodSignature{Name: "close", Descriptor: "()V"}

	closeable := iface("Closeable", nil, closing, sigClinit)
	container := iface("Container", []string{"Closeable"}, size)
	base := class("Base", RootTypeName, []string{"Container"}, sigInit, sigClinit, get)
	derived := class("Derived", "Base", []string{"org/external/Api"}, sigInit, put)

	graph := NewClassGraph([]*ClassRecord{closeable, container, base, derived})
	got := graph.InheritableMethods(derived)

	for _, sig := range rootTypeMethods {
		assert.Contains(t, got, sig, "root type baseline")
	}
	assert.Contains(t, got, get, "superclass method")
	assert.Contains(t, got, size, "interface of ancestor")
	assert.Contains(t, got, closing, "super-interface of ancestor")
	assert.NotContains(t, got, sigInit, "constructors are not inheritable")
	assert.NotContains(t, got, sigClinit, "static initializers are not inheritable")
	assert.NotContains(t, got, put, "own methods are not inherited")
	assert.Len(t, got, len(rootTypeMethods)+3)
}

func TestClassGraph_OverriddenMethods(t *testing.T) {
	run := MethodSignature{Name: "run", Descriptor: "()V"}
	execute := MethodSignature{Name: "execute", Descriptor: "(I)V"}
	executeLong := MethodSignature{Name: "execute", Descriptor: "(J)V"}

	tests := []struct {
		name     string
		records  []*ClassRecord
		subject  string
		expected int
	}{
		{
			name:     "equals overrides the root type",
			records:  []*ClassRecord{class("A", RootTypeName, nil, sigInit, sigEquals)},
			subject:  "A",
			expected: 1,
		},
		{
			name:     "all root type methods",
			records:  []*ClassRecord{class("A", RootTypeName, nil, rootTypeMethods...)},
			subject:  "A",
			expected: 5,
		},
		{
			name: "constructors and static initializers never count",
			records: []*ClassRecord{
				class("Base", RootTypeName, nil, sigInit, sigClinit),
				class("A", "Base", nil, sigInit, sigClinit),
			},
			subject:  "A",
			expected: 0,
		},
		{
			name: "superclass method with same descriptor",
			records: []*ClassRecord{
				class("Base", RootTypeName, nil, execute),
				class("A", "Base", nil, execute, executeLong),
			},
			subject:  "A",
			expected: 1,
		},
		{
			name: "grandparent method",
			records: []*ClassRecord{
				class("G", RootTypeName, nil, execute),
				class("P", "G", nil),
				class("A", "P", nil, execute),
			},
			subject:  "A",
			expected: 1,
		},
		{
			name: "diamond interfaces count once",
			records: []*ClassRecord{
				iface("Top", nil, run),
				iface("Left", []string{"Top"}),
				iface("Right", []string{"Top"}),
				class("A", RootTypeName, []string{"Left", "Right"}, run),
			},
			subject:  "A",
			expected: 1,
		},
		{
			name: "interface implemented by ancestor",
			records: []*ClassRecord{
				iface("Task", nil, run),
				class("Base", RootTypeName, []string{"Task"}),
				class("A", "Base", nil, run),
			},
			subject:  "A",
			expected: 1,
		},
		{
			name:     "unresolvable ancestors leave only the baseline",
			records:  []*ClassRecord{class("A", "org/external/Base", []string{"org/external/Api"}, run, sigHashCode)},
			subject:  "A",
			expected: 1,
		},
		{
			name: "interfaces report zero",
			records: []*ClassRecord{
				iface("Top", nil, run),
				iface("Sub", []string{"Top"}, run, sigEquals),
			},
			subject:  "Sub",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graph := NewClassGraph(tt.records)
			rec, ok := graph.Lookup(tt.subject)
			require.True(t, ok)
			assert.Equal(t, tt.expected, graph.OverriddenMethods(rec))
		})
	}
}

func TestNewClassGraph_DuplicatesLastWins(t *testing.T) {
	first := class("Dup", RootTypeName, nil)
	second := class("Dup", "Other", nil)
	graph := NewClassGraph([]*ClassRecord{first, nil, second})

	got, ok := graph.Lookup("Dup")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, graph.Size())

	_, ok = graph.Lookup("Missing")
	assert.False(t, ok)
}
