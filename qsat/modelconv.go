package qsat

import "github.com/nbjorner-qe/qsat/z3"

// ModelFilter is the Go rendering of the original's filter_model_converter
// sink (spec.md §3's "fmc"): it records every boolean symbol PredAbs mints
// (proxies, assumption literals) so a model produced by the existential
// kernel can be stripped of them before it is handed back to a caller who
// never asked for "p!42" in their model.
//
// It composes with the winning model the way the distilled spec's §6
// "filter_model_converter ∘ model2model_converter(model)" does: Apply wraps
// a *z3.Model into a UserModel that silently skips invented declarations.
type ModelFilter struct {
	invented map[string]struct{}
}

// NewModelFilter returns an empty filter.
func NewModelFilter() *ModelFilter {
	return &ModelFilter{invented: make(map[string]struct{})}
}

// Insert records decl as an invented symbol, to be stripped from any model
// this filter is later applied to. Called from PredAbs.FreshBool.
func (f *ModelFilter) Insert(decl z3.FuncDecl) {
	if f == nil {
		return
	}
	name := decl.Name()
	if name == "" {
		return
	}
	f.invented[name] = struct{}{}
}

// IsInvented reports whether name was minted by predicate abstraction rather
// than appearing in the user's original formula.
func (f *ModelFilter) IsInvented(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.invented[name]
	return ok
}

// Len reports how many invented symbols are tracked.
func (f *ModelFilter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.invented)
}

// UserModel wraps a *z3.Model plus the filter that should be consulted
// before surfacing an evaluation, so callers outside this package never see
// a fresh proxy's binding.
type UserModel struct {
	model  *z3.Model
	filter *ModelFilter
}

// Apply composes the filter with m, the §6
// "filter_model_converter ∘ model2model_converter(model)" operation.
func (f *ModelFilter) Apply(m *z3.Model) UserModel {
	return UserModel{model: m, filter: f}
}

// Eval evaluates a in the underlying model, returning ok=false if a is (or
// is built from) a symbol the filter marked invented, or the model is nil.
func (u UserModel) Eval(a z3.AST, modelCompletion bool) (z3.AST, bool) {
	if u.model == nil {
		return z3.AST{}, false
	}
	if u.filter != nil {
		invented := false
		a.Walk(func(n z3.AST) bool {
			if invented {
				return false
			}
			if n.IsApp() && n.NumChildren() == 0 && u.filter.IsInvented(n.Decl().Name()) {
				invented = true
				return false
			}
			return true
		})
		if invented {
			return z3.AST{}, false
		}
	}
	return u.model.Eval(a, modelCompletion), true
}

// Raw returns the unfiltered underlying model, for callers (e.g. tests) that
// need to inspect the invented proxies directly.
func (u UserModel) Raw() *z3.Model { return u.model }
