package pipeline

import (
	"errors"
	"fmt"
	"runtime"
)

// Strategy selects how tasks are scheduled. The set is closed: selection
// is configuration-driven, matched exhaustively.
type Strategy int

const (
	// StrategyParallel executes tasks on a bounded worker pool.
	StrategyParallel Strategy = iota
	// StrategySequential degenerates the pool to a single worker. Useful
	// for low-resource environments and debugging.
	StrategySequential
)

// Strategy names accepted in configuration.
const (
	strategyNameParallel   = "parallel"
	strategyNameSequential = "sequential"
)

// ErrUnknownStrategy indicates a strategy name outside the closed set.
var ErrUnknownStrategy = errors.New("unknown concurrency strategy")

// ParseStrategy maps a configuration name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case strategyNameParallel:
		return StrategyParallel, nil
	case strategyNameSequential:
		return StrategySequential, nil
	default:
		return StrategyParallel, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	if s == StrategySequential {
		return strategyNameSequential
	}

	return strategyNameParallel
}

// Workers resolves the effective worker count for the strategy.
// Sequential is always one worker; Parallel uses the configured count,
// falling back to GOMAXPROCS when the count is not positive.
func (s Strategy) Workers(configured int) int {
	if s == StrategySequential {
		return 1
	}

	if configured > 0 {
		return configured
	}

	return runtime.GOMAXPROCS(0)
}
