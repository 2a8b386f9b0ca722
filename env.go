package eel

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
)

// Env is the state that programs read and write: named pools of persistent
// global variables, a megabuf per pool, and one gmegabuf. Evaluating against
// the same Env repeatedly is how globals persist between runs. An Env is not
// safe for concurrent use; hosts sharing one across goroutines must serialize
// evaluations themselves.
type Env struct {
	pools    map[string]*pool
	gmegabuf *Buffer
	funcs    map[string]Func
	quirks   Quirks
	rng      *rand.Rand
	log      *slog.Logger
}

type pool struct {
	// globals is the set of names which resolve to vars rather than locals.
	globals map[string]bool
	vars    map[string]float64
	megabuf *Buffer
}

func newPool() *pool {
	return &pool{
		globals: make(map[string]bool),
		vars:    make(map[string]float64),
		megabuf: NewBuffer(),
	}
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption()
}

type (
	globalsopt struct {
		pool  string
		names []string
	}
	bufopt   struct{ buf *Buffer }
	funcsopt map[string]Func
	seedopt  uint64
	logopt   struct{ log *slog.Logger }
)

func (globalsopt) envOption() {}
func (bufopt) envOption()     {}
func (funcsopt) envOption()   {}
func (seedopt) envOption()    {}
func (logopt) envOption()     {}

// Globals declares names as pool-global for a pool. Every other name a
// program uses under that pool is local to one evaluation. Names are
// case-insensitive.
func Globals(pool string, names ...string) EnvOption {
	return globalsopt{pool, names}
}

// PoolGlobals declares the global names of several pools at once.
func PoolGlobals(pools map[string][]string) EnvOption {
	opts := make(multiopt, 0, len(pools))
	for p, names := range pools {
		opts = append(opts, globalsopt{p, names})
	}
	return opts
}

type multiopt []EnvOption

func (multiopt) envOption() {}

// SharedBuffer uses buf as the environment's gmegabuf. Passing the same
// buffer to several environments shares gmegabuf between them.
func SharedBuffer(buf *Buffer) EnvOption {
	return bufopt{buf}
}

// EnvFuncs adds functions to the builtin registry, replacing defaults with
// the same names. To remove a function, set it to nil. Names are
// case-insensitive. Control forms cannot be replaced.
func EnvFuncs(fns map[string]Func) EnvOption {
	return funcsopt(fns)
}

// PreciseMath replaces exp, log, log10, pow, and sigmoid with the correctly
// rounded implementations from PreciseFuncs.
func PreciseMath() EnvOption {
	return funcsopt(PreciseFuncs())
}

// Seed seeds the generator used by rand. Environments with the same seed
// produce the same sequence. The default seed is 0.
func Seed(seed uint64) EnvOption {
	return seedopt(seed)
}

// Logger sets a logger for evaluation events, such as a while loop reaching
// its iteration cap. Records are emitted at debug level. By default nothing
// is logged.
func Logger(l *slog.Logger) EnvOption {
	return logopt{l}
}

// NewEnv creates an environment and applies options to it in order.
func NewEnv(opts ...EnvOption) *Env {
	env := Env{
		pools: make(map[string]*pool),
		funcs: DefaultFuncs(),
		rng:   rand.New(rand.NewPCG(0, 0)),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		env.apply(opt)
	}
	if env.gmegabuf == nil {
		env.gmegabuf = NewBuffer()
	}
	return &env
}

func (env *Env) apply(opt EnvOption) {
	switch opt := opt.(type) {
	case nil:
		// do nothing
	case globalsopt:
		p := env.pool(opt.pool)
		for _, name := range opt.names {
			p.globals[strings.ToLower(name)] = true
		}
	case multiopt:
		for _, o := range opt {
			env.apply(o)
		}
	case bufopt:
		env.gmegabuf = opt.buf
	case funcsopt:
		for k, v := range opt {
			k = strings.ToLower(k)
			if v == nil {
				delete(env.funcs, k)
				continue
			}
			env.funcs[k] = v
		}
	case seedopt:
		env.rng = rand.New(rand.NewPCG(uint64(opt), uint64(opt)))
	case logopt:
		if opt.log != nil {
			env.log = opt.log
		}
	case Quirks:
		env.quirks |= opt
	default:
		panic("eel: unknown option type")
	}
}

// pool gets a pool by name, creating it if needed.
func (env *Env) pool(name string) *pool {
	p := env.pools[name]
	if p == nil {
		p = newPool()
		env.pools[name] = p
	}
	return p
}

// Pools returns the sorted names of the pools in the environment.
func (env *Env) Pools() []string {
	names := make([]string, 0, len(env.pools))
	for k := range env.pools {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// IsGlobal returns whether name is declared global in a pool.
func (env *Env) IsGlobal(pool, name string) bool {
	p := env.pools[pool]
	return p != nil && p.globals[strings.ToLower(name)]
}

// GlobalNames returns the sorted global names declared in a pool.
func (env *Env) GlobalNames(pool string) []string {
	p := env.pools[pool]
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.globals))
	for k := range p.globals {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Var returns the value of a global variable in a pool. Unset and undeclared
// variables are 0.
func (env *Env) Var(pool, name string) float64 {
	p := env.pools[pool]
	if p == nil {
		return 0
	}
	return p.vars[strings.ToLower(name)]
}

// SetVar sets a global variable in a pool, declaring it global if it is not
// already. Returns env for chaining.
func (env *Env) SetVar(pool, name string, v float64) *Env {
	p := env.pool(pool)
	name = strings.ToLower(name)
	p.globals[name] = true
	p.vars[name] = v
	return env
}

// Megabuf returns the megabuf of a pool.
func (env *Env) Megabuf(pool string) *Buffer {
	return env.pool(pool).megabuf
}

// Gmegabuf returns the buffer shared by all pools.
func (env *Env) Gmegabuf() *Buffer {
	return env.gmegabuf
}

// Funcs returns the sorted names of all callable functions, including control
// forms.
func (env *Env) Funcs() []string {
	return Builtins(env.funcs)
}
