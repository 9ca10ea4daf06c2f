package main

import "flag"

// Fixed simulation constants (spec §4.3, §4.4). These are not
// configurable — they define the game, not the deployment.
const (
	SnakeBaseSpeed     = 4.0  // BASE
	SnakeBoostMult     = 2.3  // BOOST_MULT
	SnakeBoostCost     = 0.09 // BOOST_COST per tick
	SnakeSegmentSpacing = 6.0 // SPACING
	SnakeInitialLength  = 10  // INITIAL_LENGTH, in segments
	FoodGrowPerFood     = 1   // GROW_PER_FOOD, segments worth of length units
	SnakeTrimMargin     = 300 // MARGIN appended to ceil(target_length/SPACING)
	SnakeMinBoostLength = 8 * SnakeSegmentSpacing // minimum length to boost
	SnakeGrowthStep     = 0.6 // per-tick length relaxation toward target
	SnakeTurnEase       = 0.25
	CollisionRadius     = 8.0
	EatReachBonus       = 10.0 // added to s.Speed for the eat-radius check
	SessionTimeoutSecs  = 10.0

	WorldWidth  = 3000.0 // W
	WorldHeight = 3000.0 // H
	FoodCount   = 50     // FOOD_COUNT

	BinarySnapshotIdentity = "meowboy" // reserved identity that receives binary snapshots
	DeadMarker             = "DEAD"
)

// Config aggregates the tunables the reference implementation treats as
// deployment knobs ("implementations may expose --listen, --tick-hz,
// --map-size" per spec §6's CLI surface). Defaults reproduce the
// reference constants above exactly.
type Config struct {
	ListenAddr  string  // UDP bind address for the game socket
	DebugListen string  // HTTP bind address for the debug bridge; "" disables it
	TickHz      float64 // ticks (and broadcasts) per second
	MapWidth    float64
	MapHeight   float64
	FoodTarget  int
	MaxDatagram int // log (never enforce) when an outbound snapshot exceeds this
}

// DefaultConfig returns the spec's reference tuning.
func DefaultConfig() Config {
	return Config{
		ListenAddr:  "0.0.0.0:9999",
		DebugListen: "",
		TickHz:      62.5,
		MapWidth:    WorldWidth,
		MapHeight:   WorldHeight,
		FoodTarget:  FoodCount,
		MaxDatagram: 2048,
	}
}

// ParseFlags builds a Config from the given args, seeded with
// DefaultConfig. Pass a fresh *flag.FlagSet so tests don't fight over
// the global flag.CommandLine.
func ParseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := DefaultConfig()
	fs.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "UDP host:port to bind the game socket")
	fs.StringVar(&cfg.DebugListen, "debug-listen", cfg.DebugListen, "HTTP host:port for the debug bridge (empty disables it)")
	fs.Float64Var(&cfg.TickHz, "tick-hz", cfg.TickHz, "simulation ticks per second")
	fs.Float64Var(&cfg.MapWidth, "map-width", cfg.MapWidth, "world width in units")
	fs.Float64Var(&cfg.MapHeight, "map-height", cfg.MapHeight, "world height in units")
	fs.IntVar(&cfg.FoodTarget, "food-count", cfg.FoodTarget, "target food cardinality")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
