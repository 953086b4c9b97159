package dataset

// Selector holds the currently selected data set.
//
// The selection is a single explicit value owned by one controller:
// initialized to [Default], replaced wholesale on Select, never partially
// mutated. Selecting the same set again reproduces the same value, so
// downstream layouts are identical (no residual state).
//
// Selector models single-threaded UI state and is not safe for concurrent
// use without external synchronization.
type Selector struct {
	reg      *Registry
	current  DataSet
	onChange func(DataSet)
}

// NewSelector creates a selector over the registry, selected to [Default].
// The onChange callback (optional) fires after every effective selection
// change, including the initial one.
func NewSelector(reg *Registry, onChange func(DataSet)) (*Selector, error) {
	d, err := reg.Get(Default)
	if err != nil {
		return nil, err
	}
	s := &Selector{reg: reg, current: d, onChange: onChange}
	if onChange != nil {
		onChange(d)
	}
	return s, nil
}

// Current returns the selected data set.
func (s *Selector) Current() DataSet { return s.current }

// Select switches to the named data set and fires the change callback.
//
// Returns ErrUnknownDataSet for unrecognized names. Selecting the Custom
// option while no custom data has been supplied is an explicit no-op: the
// selection is left unchanged and no callback fires. This is the documented
// extension point for user-supplied data, not an error.
func (s *Selector) Select(name string) error {
	d, err := s.reg.Get(name)
	if err != nil {
		return err
	}
	if name == Custom && d.IsEmpty() {
		return nil
	}
	s.current = d
	if s.onChange != nil {
		s.onChange(d)
	}
	return nil
}
