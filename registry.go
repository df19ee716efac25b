package typeguard

import (
	"fmt"
	"math"
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
	"weak"
)

// Registry memoizes descriptors so each distinct normalized shape has exactly
// one live instance. Each descriptor kind has its own table; tables keyed by
// an exact value use sync.Map, tables that need a structural scan use a mutex.
//
// A Registry is safe for concurrent use. Descriptors built by one registry
// are only canonical within that registry.
type Registry struct {
	literals  sync.Map // normalized value -> *LiteralType
	classes   sync.Map // reflect.Type -> *Class
	arrays    sync.Map // Descriptor -> *ArrayType
	nullables sync.Map // Descriptor -> *NullableType

	deepMu   sync.Mutex
	deepLits []*LiteralType // non-comparable literal values

	instMu    sync.Mutex
	instances map[weak.Pointer[byte]]*Instance

	tupleMu   sync.Mutex
	tupleRoot tupleNode

	recordMu sync.Mutex
	records  []*RecordType

	unionMu sync.Mutex
	unions  []*UnionType

	funcMu sync.Mutex
	funcs  []*TypedFunction
}

// tupleNode is one level of the tuple table: one level per position, with
// the complete tuple stored at the node reached by its last position.
type tupleNode struct {
	next  map[Descriptor]*tupleNode
	tuple *TupleType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		instances: make(map[weak.Pointer[byte]]*Instance),
	}
}

var defaultRegistry atomic.Pointer[Registry]

func init() {
	defaultRegistry.Store(NewRegistry())
}

// Default returns the process-wide registry used by the package-level factories.
func Default() *Registry {
	return defaultRegistry.Load()
}

// Reset replaces the process-wide registry with an empty one. Descriptors
// obtained before the reset stay usable but are no longer canonical.
func Reset() {
	defaultRegistry.Store(NewRegistry())
}

// Stats counts the memoized descriptors per kind.
type Stats struct {
	Literals  int
	Instances int
	Classes   int
	Arrays    int
	Tuples    int
	Records   int
	Unions    int
	Nullables int
	Funcs     int
}

// Stats returns a snapshot of the table sizes.
func (r *Registry) Stats() Stats {
	var s Stats
	count := func(m *sync.Map) int {
		n := 0
		m.Range(func(_, _ any) bool {
			n++
			return true
		})
		return n
	}
	s.Literals = count(&r.literals)
	s.Classes = count(&r.classes)
	s.Arrays = count(&r.arrays)
	s.Nullables = count(&r.nullables)

	r.deepMu.Lock()
	s.Literals += len(r.deepLits)
	r.deepMu.Unlock()

	r.instMu.Lock()
	s.Instances = len(r.instances)
	r.instMu.Unlock()

	r.tupleMu.Lock()
	s.Tuples = r.tupleRoot.count()
	r.tupleMu.Unlock()

	r.recordMu.Lock()
	s.Records = len(r.records)
	r.recordMu.Unlock()

	r.unionMu.Lock()
	s.Unions = len(r.unions)
	r.unionMu.Unlock()

	r.funcMu.Lock()
	s.Funcs = len(r.funcs)
	r.funcMu.Unlock()
	return s
}

func (n *tupleNode) count() int {
	c := 0
	if n.tuple != nil {
		c++
	}
	for _, child := range n.next {
		c += child.count()
	}
	return c
}

func (r *Registry) literal(v any) *LiteralType {
	if key, ok := literalKey(v); ok {
		if f, isFloat := key.(float64); isFloat && math.IsNaN(f) {
			// NaN equals nothing, so it has no canonical entry.
			return &LiteralType{value: v, key: key}
		}
		if l, ok := r.literals.Load(key); ok {
			return l.(*LiteralType)
		}
		l, _ := r.literals.LoadOrStore(key, &LiteralType{value: v, key: key})
		return l.(*LiteralType)
	}

	r.deepMu.Lock()
	defer r.deepMu.Unlock()
	for _, l := range r.deepLits {
		if DeepEqual(l.value, v) {
			return l
		}
	}
	l := &LiteralType{value: v}
	r.deepLits = append(r.deepLits, l)
	return l
}

// instance returns the identity descriptor for the object at p. The table
// entry is dropped once the object is collected.
func (r *Registry) instance(v any, p unsafe.Pointer) *Instance {
	ref := weak.Make((*byte)(p))

	r.instMu.Lock()
	defer r.instMu.Unlock()
	if inst, ok := r.instances[ref]; ok {
		return inst
	}
	inst := &Instance{
		ref:  ref,
		typ:  reflect.TypeOf(v),
		name: fmt.Sprintf("instance of %T", v),
	}
	r.instances[ref] = inst
	runtime.AddCleanup((*byte)(p), r.evictInstance, ref)
	return inst
}

func (r *Registry) evictInstance(ref weak.Pointer[byte]) {
	r.instMu.Lock()
	delete(r.instances, ref)
	r.instMu.Unlock()
}

func (r *Registry) class(t reflect.Type) *Class {
	if c, ok := r.classes.Load(t); ok {
		return c.(*Class)
	}
	c, _ := r.classes.LoadOrStore(t, &Class{typ: t})
	return c.(*Class)
}

func (r *Registry) arrayOf(elem Descriptor) *ArrayType {
	if a, ok := r.arrays.Load(elem); ok {
		return a.(*ArrayType)
	}
	a, _ := r.arrays.LoadOrStore(elem, newArrayType(elem))
	return a.(*ArrayType)
}

func (r *Registry) nullable(inner Descriptor) *NullableType {
	if n, ok := r.nullables.Load(inner); ok {
		return n.(*NullableType)
	}
	n, _ := r.nullables.LoadOrStore(inner, newNullableType(inner))
	return n.(*NullableType)
}

func (r *Registry) tupleOf(items []Descriptor) *TupleType {
	r.tupleMu.Lock()
	defer r.tupleMu.Unlock()

	node := &r.tupleRoot
	for _, d := range items {
		if node.next == nil {
			node.next = make(map[Descriptor]*tupleNode)
		}
		child, ok := node.next[d]
		if !ok {
			child = &tupleNode{}
			node.next[d] = child
		}
		node = child
	}
	if node.tuple == nil {
		node.tuple = newTupleType(items)
	}
	return node.tuple
}

func (r *Registry) recordOf(fields map[string]Descriptor) *RecordType {
	r.recordMu.Lock()
	defer r.recordMu.Unlock()

	for _, known := range r.records {
		if DeepEqual(known.fields, fields) {
			return known
		}
	}
	rec := newRecordType(fields)
	r.records = append(r.records, rec)
	return rec
}

func (r *Registry) unionOf(set *ComparableSet) *UnionType {
	r.unionMu.Lock()
	defer r.unionMu.Unlock()

	for _, known := range r.unions {
		if known.set.Equal(set) {
			return known
		}
	}
	u := newUnionType(r, set)
	r.unions = append(r.unions, u)
	return u
}

func (r *Registry) typedFunction(overloads []Overload) *TypedFunction {
	r.funcMu.Lock()
	defer r.funcMu.Unlock()

	for _, known := range r.funcs {
		if sameOverloads(known.overloads, overloads) {
			return known
		}
	}
	f := newTypedFunction(overloads)
	r.funcs = append(r.funcs, f)
	return f
}
