package analyzer

// RootTypeName is the implicit superclass of every class
const RootTypeName = "java/lang/Object"

// rootTypeMethods are the overridable methods of the root type. The root type
// is normally not inside the archive, so its methods are assumed rather than
// looked up.
var rootTypeMethods = []MethodSignature{
	{Name: "equals", Descriptor: "(Ljava/lang/Object;)Z"},
	{Name: "hashCode", Descriptor: "()I"},
	{Name: "toString", Descriptor: "()Ljava/lang/String;"},
	{Name: "clone", Descriptor: "()Ljava/lang/Object;"},
	{Name: "finalize", Descriptor: "()V"},
}

// ClassGraph resolves class names to records for one archive. References to
// classes outside the archive simply do not resolve; the graph is open-world.
type ClassGraph struct {
	classes map[string]*ClassRecord
}

// NewClassGraph indexes records by name. When two records share a name the
// later one wins.
func NewClassGraph(records []*ClassRecord) *ClassGraph {
	classes := make(map[string]*ClassRecord, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		classes[rec.Name()] = rec
	}
	return &ClassGraph{classes: classes}
}

// Lookup returns the record for name, if the archive contains it
func (g *ClassGraph) Lookup(name string) (*ClassRecord, bool) {
	rec, ok := g.classes[name]
	return rec, ok
}

// Size returns the number of distinct class names in the graph
func (g *ClassGraph) Size() int {
	return len(g.classes)
}

// InheritanceDepth returns the number of classes on the superclass chain
// starting at rec, counting rec itself and stopping before the root type.
// The walk also stops at a superclass that is not in the archive, or at a
// class already seen on this walk.
func (g *ClassGraph) InheritanceDepth(rec *ClassRecord) int {
	depth := 1
	visited := map[string]struct{}{rec.Name(): {}}

	current := rec
	for {
		super := current.SuperName()
		if super == "" || super == RootTypeName {
			break
		}
		if _, seen := visited[super]; seen {
			break
		}
		next, ok := g.classes[super]
		if !ok {
			break
		}
		visited[super] = struct{}{}
		depth++
		current = next
	}
	return depth
}

// InheritableMethods returns every signature rec could be overriding: the
// root type's methods, the non-initializer methods of every resolvable
// superclass, and the methods of every resolvable interface reachable from
// rec or from any of those superclasses.
func (g *ClassGraph) InheritableMethods(rec *ClassRecord) map[MethodSignature]struct{} {
	inherited := make(map[MethodSignature]struct{}, len(rootTypeMethods))
	for _, sig := range rootTypeMethods {
		inherited[sig] = struct{}{}
	}

	classSeen := map[string]struct{}{rec.Name(): {}}
	ifaceSeen := make(map[string]struct{})

	g.collectInterfaceMethods(rec.interfaces, inherited, ifaceSeen)

	current := rec
	for {
		super := current.SuperName()
		if super == "" || super == RootTypeName {
			break
		}
		if _, seen := classSeen[super]; seen {
			break
		}
		next, ok := g.classes[super]
		if !ok {
			break
		}
		classSeen[super] = struct{}{}

		for sig := range next.methods {
			if sig.IsConstructor() || sig.IsStaticInitializer() {
				continue
			}
			inherited[sig] = struct{}{}
		}
		g.collectInterfaceMethods(next.interfaces, inherited, ifaceSeen)
		current = next
	}

	return inherited
}

// collectInterfaceMethods walks the interface graph depth-first. Each
// interface contributes its methods once, however many paths reach it.
func (g *ClassGraph) collectInterfaceMethods(names []string, into map[MethodSignature]struct{}, seen map[string]struct{}) {
	stack := make([]string, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		stack = append(stack, names[i])
	}

	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		iface, ok := g.classes[name]
		if !ok {
			continue
		}
		for sig := range iface.methods {
			if sig.IsStaticInitializer() {
				continue
			}
			into[sig] = struct{}{}
		}
		for i := len(iface.interfaces) - 1; i >= 0; i-- {
			stack = append(stack, iface.interfaces[i])
		}
	}
}

// OverriddenMethods counts rec's own methods whose signature is inheritable.
// Constructors and static initializers never count, and interfaces always
// report zero.
func (g *ClassGraph) OverriddenMethods(rec *ClassRecord) int {
	if rec.IsInterface() {
		return 0
	}

	inherited := g.InheritableMethods(rec)
	count := 0
	for sig := range rec.methods {
		if sig.IsConstructor() || sig.IsStaticInitializer() {
			continue
		}
		if _, ok := inherited[sig]; ok {
			count++
		}
	}
	return count
}
