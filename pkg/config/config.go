package config

import "github.com/i5heu/TetrisStack/internal/testbench"

// Config is an alias for testbench.Config. This allows other programs to
// describe a simulation run without pulling in the game internals.
type Config = testbench.Config

// Stats is the aggregated result of a simulation run.
type Stats = testbench.Stats
