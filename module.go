package eel

import (
	"errors"
	"slices"
)

// Module is a set of named programs, each bound to a pool, which share one
// environment. Calling one function can change the globals and buffers that
// the others see.
type Module struct {
	env   *Env
	funcs map[string]modfunc
}

type modfunc struct {
	prog *Program
	pool string
}

// NewModule creates an empty module evaluating against env. If env is nil,
// the module uses a new default environment.
func NewModule(env *Env) *Module {
	if env == nil {
		env = NewEnv()
	}
	return &Module{env: env, funcs: make(map[string]modfunc)}
}

// Add parses src and binds it to name under a pool, replacing any function
// already bound to name. If src does not parse, the module is unchanged.
func (m *Module) Add(name, src, pool string, opts ...ParseOption) error {
	if name == "" {
		return errors.New("eel: module function name is empty")
	}
	p, err := Parse(src, opts...)
	if err != nil {
		return err
	}
	m.funcs[name] = modfunc{prog: p, pool: pool}
	return nil
}

// Call evaluates the function bound to name.
func (m *Module) Call(name string) (float64, error) {
	f, ok := m.funcs[name]
	if !ok {
		return 0, errors.New("eel: no module function named " + name)
	}
	return m.env.Eval(f.prog, f.pool)
}

// Names returns the sorted names of the module's functions.
func (m *Module) Names() []string {
	names := make([]string, 0, len(m.funcs))
	for k := range m.funcs {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Env returns the module's environment.
func (m *Module) Env() *Env {
	return m.env
}
