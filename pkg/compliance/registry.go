package compliance

// Registry is the process-wide clause catalog, keyed by standard. It is
// fully populated at construction and never mutated afterward, so concurrent
// reads need no locking.
type Registry struct {
	catalogs map[StandardID][]Clause
}

// NewRegistry builds a registry holding the built-in catalogs for
// IEC 61511, ISO 31000, and OSHA PSM.
func NewRegistry() *Registry {
	r := &Registry{catalogs: make(map[StandardID][]Clause)}
	r.add(StandardIEC61511, iec61511Clauses)
	r.add(StandardISO31000, iso31000Clauses)
	r.add(StandardOSHAPSM, oshaPSMClauses)
	return r
}

// NewEmptyRegistry builds a registry with no catalogs, for callers that
// load every catalog from files.
func NewEmptyRegistry() *Registry {
	return &Registry{catalogs: make(map[StandardID][]Clause)}
}

func (r *Registry) add(std StandardID, clauses []Clause) {
	cp := make([]Clause, len(clauses))
	copy(cp, clauses)
	for i := range cp {
		cp[i].Standard = std
	}
	r.catalogs[std] = cp
}

// Clauses returns the catalog for a standard. Unknown standards yield an
// empty slice, never an error. The returned slice is a copy; callers may
// not reach the registry's internal state through it.
func (r *Registry) Clauses(std StandardID) []Clause {
	src, ok := r.catalogs[std]
	if !ok {
		return nil
	}
	cp := make([]Clause, len(src))
	copy(cp, src)
	return cp
}

// Has reports whether a catalog exists for the standard.
func (r *Registry) Has(std StandardID) bool {
	_, ok := r.catalogs[std]
	return ok
}

// Standards lists every standard with a loaded catalog.
func (r *Registry) Standards() []StandardID {
	out := make([]StandardID, 0, len(r.catalogs))
	for std := range r.catalogs {
		out = append(out, std)
	}
	return out
}

// ClauseCount returns the total number of clauses across all catalogs.
func (r *Registry) ClauseCount() int {
	n := 0
	for _, c := range r.catalogs {
		n += len(c)
	}
	return n
}
