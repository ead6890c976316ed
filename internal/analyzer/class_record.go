package analyzer

import (
	"errors"
	"sort"

	"github.com/ludo-technologies/jarscn/internal/classfile"
)

// Special method names
const (
	ConstructorName       = "<init>"
	StaticInitializerName = "<clinit>"
)

// MethodSignature identifies a method by name and JVM descriptor.
// Two methods with the same name but different descriptors are different methods.
type MethodSignature struct {
	Name       string
	Descriptor string
}

// IsConstructor reports whether the method is an instance initializer
func (s MethodSignature) IsConstructor() bool {
	return s.Name == ConstructorName
}

// IsStaticInitializer reports whether the method is a class initializer
func (s MethodSignature) IsStaticInitializer() bool {
	return s.Name == StaticInitializerName
}

func (s MethodSignature) String() string {
	return s.Name + s.Descriptor
}

// ClassRecord is the per-class summary extracted from one class file.
// It is immutable once built.
type ClassRecord struct {
	name        string
	superName   string
	interfaces  []string
	methods     map[MethodSignature]struct{}
	fieldCount  int
	abc         ABCVector
	isInterface bool
}

// Name returns the internal (slash-separated) class name
func (r *ClassRecord) Name() string { return r.name }

// SuperName returns the superclass name, empty when the class has none
func (r *ClassRecord) SuperName() string { return r.superName }

// Interfaces returns the directly implemented interfaces in declaration order
func (r *ClassRecord) Interfaces() []string {
	out := make([]string, len(r.interfaces))
	copy(out, r.interfaces)
	return out
}

// Methods returns the declared method signatures sorted by name then descriptor
func (r *ClassRecord) Methods() []MethodSignature {
	out := make([]MethodSignature, 0, len(r.methods))
	for sig := range r.methods {
		out = append(out, sig)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Descriptor < out[j].Descriptor
	})
	return out
}

// MethodCount returns the number of distinct declared methods
func (r *ClassRecord) MethodCount() int { return len(r.methods) }

// HasMethod reports whether the class declares the given signature
func (r *ClassRecord) HasMethod(sig MethodSignature) bool {
	_, ok := r.methods[sig]
	return ok
}

// FieldCount returns the number of declared fields
func (r *ClassRecord) FieldCount() int { return r.fieldCount }

// ABC returns the sum of the ABC vectors of every method body
func (r *ClassRecord) ABC() ABCVector { return r.abc }

// IsInterface reports whether the class file carries the interface flag
func (r *ClassRecord) IsInterface() bool { return r.isInterface }

// ErrNoClassDeclaration is returned by Build when no class declaration was visited
var ErrNoClassDeclaration = errors.New("class record: no class declaration visited")

// ClassRecordBuilder accumulates a ClassRecord from decoder events
type ClassRecordBuilder struct {
	visited     bool
	name        string
	superName   string
	interfaces  []string
	methods     map[MethodSignature]struct{}
	fieldCount  int
	abc         ABCVector
	isInterface bool
}

// NewClassRecordBuilder creates an empty builder
func NewClassRecordBuilder() *ClassRecordBuilder {
	return &ClassRecordBuilder{methods: make(map[MethodSignature]struct{})}
}

func (b *ClassRecordBuilder) Visit(version uint16, access uint16, name, superName string, interfaces []string) {
	b.visited = true
	b.name = name
	b.superName = superName
	b.interfaces = append([]string(nil), interfaces...)
	b.isInterface = access&classfile.AccInterface != 0
}

func (b *ClassRecordBuilder) VisitField(access uint16, name, descriptor string) {
	b.fieldCount++
}

// VisitMethod records the signature and returns a classifier that folds the
// method's ABC vector into the class total when the method ends.
func (b *ClassRecordBuilder) VisitMethod(access uint16, name, descriptor string) classfile.MethodVisitor {
	b.methods[MethodSignature{Name: name, Descriptor: descriptor}] = struct{}{}
	return NewInstructionClassifier(func(v ABCVector) {
		b.abc = b.abc.Add(v)
	})
}

func (b *ClassRecordBuilder) VisitEnd() {}

// Build freezes the accumulated state into a ClassRecord
func (b *ClassRecordBuilder) Build() (*ClassRecord, error) {
	if !b.visited {
		return nil, ErrNoClassDeclaration
	}

	methods := make(map[MethodSignature]struct{}, len(b.methods))
	for sig := range b.methods {
		methods[sig] = struct{}{}
	}

	return &ClassRecord{
		name:        b.name,
		superName:   b.superName,
		interfaces:  append([]string(nil), b.interfaces...),
		methods:     methods,
		fieldCount:  b.fieldCount,
		abc:         b.abc,
		isInterface: b.isInterface,
	}, nil
}

// DecodeClass decodes one class file into a ClassRecord
func DecodeClass(data []byte) (*ClassRecord, error) {
	cf, err := classfile.Parse(data)
	if err != nil {
		return nil, err
	}

	builder := NewClassRecordBuilder()
	if err := cf.Accept(builder); err != nil {
		return nil, err
	}
	return builder.Build()
}

// NewClassRecord is a convenience constructor for callers that already know
// a class's shape, such as tests and graph fixtures. ABC is left at zero.
func NewClassRecord(name, superName string, isInterface bool, interfaces []string, fieldCount int, methods ...MethodSignature) *ClassRecord {
	b := NewClassRecordBuilder()
	var access uint16
	if isInterface {
		access = classfile.AccInterface | classfile.AccAbstract
	}
	b.Visit(0, access, name, superName, interfaces)
	for i := 0; i < fieldCount; i++ {
		b.VisitField(0, "", "")
	}
	for _, m := range methods {
		b.methods[m] = struct{}{}
	}
	rec, _ := b.Build()
	return rec
}
