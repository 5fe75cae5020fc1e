package evaluator

import (
	"maps"
	"slices"
)

// Environment maps variable names to their current values. It is owned by a
// single session and is not safe for concurrent use.
type Environment struct {
	vars map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]Value)}
}

func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name to v, replacing any previous binding.
func (e *Environment) Set(name string, v Value) {
	e.vars[name] = v
}

func (e *Environment) Delete(name string) {
	delete(e.vars, name)
}

func (e *Environment) Clear() {
	clear(e.vars)
}

func (e *Environment) Len() int {
	return len(e.vars)
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}
