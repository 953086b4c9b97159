package dataset

import (
	"errors"

	"github.com/matzehuels/orgchart/pkg/chart"
	"github.com/matzehuels/orgchart/pkg/tree"
)

// Recognized selection options. Test-data-1 and Test-data-2 are built in;
// Custom is reserved for user-supplied data and starts empty.
const (
	TestData1 = "Test-data-1"
	TestData2 = "Test-data-2"
	Custom    = "Custom"
)

// Default is the data set selected at startup.
const Default = TestData1

var (
	// ErrUnknownDataSet is returned by [Registry.Get] and [Selector.Select]
	// for names outside the registered options.
	ErrUnknownDataSet = errors.New("unknown data set")

	// ErrDuplicateDataSet is returned by [Registry.Register] when a set
	// with the same name already exists.
	ErrDuplicateDataSet = errors.New("duplicate data set name")
)

// DataSet is a named, immutable node list. Data sets are loaded wholesale,
// never mutated, and replaced wholesale when the user switches.
type DataSet struct {
	Name  string
	Nodes []tree.Node
}

// IsEmpty reports whether the set carries no nodes. The built-in Custom
// slot is empty until user data is supplied.
func (d DataSet) IsEmpty() bool { return len(d.Nodes) == 0 }

// Tree builds a fresh tree from the data set's node list.
// Each call returns an independent tree, so layout passes never share
// mutable state.
func (d DataSet) Tree() (*tree.Tree, error) {
	return tree.FromNodes(d.Nodes)
}

// Chart returns the serialization form of the data set.
func (d DataSet) Chart() chart.Chart {
	return chart.Chart{Name: d.Name, Nodes: d.Nodes}
}

// Registry holds the available data sets in registration order.
// A fully built registry is effectively immutable and safe for concurrent
// reads; Register calls must not race with readers.
type Registry struct {
	sets  map[string]DataSet
	names []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[string]DataSet)}
}

// BuiltIn returns a registry with the two built-in test data sets and the
// reserved (empty) Custom slot, in the order the selection UI offers them.
func BuiltIn() *Registry {
	r := NewRegistry()
	r.Register(DataSet{Name: TestData1, Nodes: testData1})
	r.Register(DataSet{Name: TestData2, Nodes: testData2})
	r.Register(DataSet{Name: Custom})
	return r
}

// Register adds a data set under its name.
// Returns ErrDuplicateDataSet if the name is taken.
func (r *Registry) Register(d DataSet) error {
	if _, exists := r.sets[d.Name]; exists {
		return ErrDuplicateDataSet
	}
	r.sets[d.Name] = d
	r.names = append(r.names, d.Name)
	return nil
}

// Replace stores a data set under its name, overwriting any existing set.
// This backs the Custom extension point: supplying custom data replaces
// the empty Custom slot wholesale.
func (r *Registry) Replace(d DataSet) {
	if _, exists := r.sets[d.Name]; !exists {
		r.names = append(r.names, d.Name)
	}
	r.sets[d.Name] = d
}

// Get returns the data set registered under name.
// Returns ErrUnknownDataSet for unrecognized names.
func (r *Registry) Get(name string) (DataSet, error) {
	d, ok := r.sets[name]
	if !ok {
		return DataSet{}, ErrUnknownDataSet
	}
	return d, nil
}

// Has reports whether a data set is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.sets[name]
	return ok
}

// Names returns all registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Built-in test data. Two small org hierarchies with different shapes so
// switching between them visibly relayouts the chart.
var testData1 = []tree.Node{
	{ID: "emp-1", Name: "Avery Collins", Role: "CEO"},
	{ID: "emp-2", Name: "Sam Reyes", Role: "CTO", Parent: "emp-1"},
	{ID: "emp-3", Name: "Kim Novak", Role: "CFO", Parent: "emp-1"},
	{ID: "emp-4", Name: "Jordan Lee", Role: "Engineering Lead", Parent: "emp-2"},
	{ID: "emp-5", Name: "Casey Fox", Role: "Platform Engineer", Parent: "emp-4"},
	{ID: "emp-6", Name: "Riley Hart", Role: "Frontend Engineer", Parent: "emp-4"},
	{ID: "emp-7", Name: "Drew Patel", Role: "Accountant", Parent: "emp-3"},
}

var testData2 = []tree.Node{
	{ID: "emp-1", Name: "Morgan Blake", Role: "Founder"},
	{ID: "emp-2", Name: "Alex Kim", Role: "Head of Product", Parent: "emp-1"},
	{ID: "emp-3", Name: "Jamie Cruz", Role: "Head of Sales", Parent: "emp-1"},
	{ID: "emp-4", Name: "Taylor Quinn", Role: "Head of Support", Parent: "emp-1"},
	{ID: "emp-5", Name: "Robin Shaw", Role: "Designer", Parent: "emp-2"},
	{ID: "emp-6", Name: "Dana Wolfe", Role: "Account Executive", Parent: "emp-3"},
	{ID: "emp-7", Name: "Charlie Vega", Role: "Account Executive", Parent: "emp-3"},
	{ID: "emp-8", Name: "Skyler Moss", Role: "Support Engineer", Parent: "emp-4"},
}
