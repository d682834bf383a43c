package strategy

import (
	"fmt"
	"sort"

	"github.com/dicemate/dicemate/internal/domain"
)

// Factory constructs a strategy from its opaque parameter map.
type Factory func(params Params) (Strategy, error)

// builtins maps strategy names to constructors. All variants share the one
// Strategy contract; the engine never special-cases any of them.
var builtins = map[string]Factory{
	"fixed":      NewFixed,
	"martingale": NewMartingale,
	"dalembert":  NewDalembert,
	"streak":     NewStreak,
	"target":     NewTarget,
	"kelly":      NewKelly,
	"lua":        NewLua,
}

// New constructs the named strategy. Construction failure is fatal to the
// caller's session per the error taxonomy.
func New(name string, params Params) (Strategy, error) {
	factory, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", domain.ErrUnknownStrategy, name, Names())
	}
	return factory(params)
}

// Names lists the registered strategy names, sorted for stable display.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
