// Package round ties the ladder engine to a game: who plays, what can be
// won, and which ladder decides it.
//
// A [Round] is created once with [New] and never changes afterwards. It
// stores the generated rung map together with every traced path, so a round
// loaded from a store or a JSON file can be replayed or rendered without the
// random source that built it. [Round.Validate] re-checks a loaded round
// against the ladder invariants.
//
//	r, err := round.New(ctx, round.Options{
//	    Names:   []string{"ann", "bob", "cid"},
//	    Results: []string{"coffee", "lunch", "free"},
//	})
//	for _, o := range r.Outcomes() {
//	    fmt.Printf("%s -> %s\n", o.Name, o.Result)
//	}
package round

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/matzehuels/ghostleg/pkg/errors"
	"github.com/matzehuels/ghostleg/pkg/ladder"
	"github.com/matzehuels/ghostleg/pkg/observability"
)

// Defaults applied to zero-valued [Options] fields.
const (
	DefaultRows     = 10
	DefaultMaxRungs = ladder.DefaultMaxRungs
	DefaultMaxLanes = 12
	MinLanes        = 2
)

// Upper bounds on ladder dimensions. Generating, tracing and rendering all
// grow with lanes times rows.
const (
	RowsLimit     = 100
	MaxRungsLimit = RowsLimit + 1 // rung counts stay below MaxRungs and within rows
	LanesLimit    = 64
)

// Options describe a round to create.
type Options struct {
	Names    []string // one per lane, top of the ladder
	Results  []string // one per lane, bottom; empty means "0".."n-1"
	Rows     int
	MaxRungs int
	MaxLanes int
	Seed     uint64 // 0 draws a random seed
}

// Round is one generated ladder with its players and prizes.
type Round struct {
	ID        string         `json:"id" bson:"_id"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	Seed      uint64         `json:"seed" bson:"seed"`
	Names     []string       `json:"names" bson:"names"`
	Results   []string       `json:"results" bson:"results"`
	Rows      int            `json:"rows" bson:"rows"`
	MaxRungs  int            `json:"max_rungs" bson:"max_rungs"`
	Rungs     ladder.RungMap `json:"rungs" bson:"rungs"`
	Paths     []ladder.Path  `json:"paths" bson:"paths"`
	Finals    []int          `json:"finals" bson:"finals"`
}

// Outcome pairs a player with the result their lane leads to.
type Outcome struct {
	Lane   int    `json:"lane"`
	Name   string `json:"name"`
	Final  int    `json:"final"`
	Result string `json:"result"`
}

// New validates opts, generates a ladder and traces every lane.
//
// Errors are *errors.Error values: INVALID_LANE_COUNT when the number of
// names is outside [2, MaxLanes], INVALID_LABELS for blank labels or a
// results list of the wrong length, INVALID_INPUT for ladder dimensions
// outside their limits or a seed above math.MaxInt64.
func New(ctx context.Context, opts Options) (*Round, error) {
	opts = withDefaults(opts)
	if err := checkDimensions(opts); err != nil {
		return nil, err
	}

	names, err := cleanLabels("name", opts.Names)
	if err != nil {
		return nil, err
	}
	lanes := len(names)
	if lanes < MinLanes {
		return nil, errors.New(errors.ErrCodeInvalidLaneCount,
			"%d names is smaller than limit %d", lanes, MinLanes)
	}
	if lanes > opts.MaxLanes {
		return nil, errors.New(errors.ErrCodeInvalidLaneCount,
			"%d names is larger than limit %d", lanes, opts.MaxLanes)
	}

	results := opts.Results
	if len(results) == 0 {
		results = defaultResults(lanes)
	}
	if len(results) != lanes {
		return nil, errors.New(errors.ErrCodeInvalidLabels,
			"length are different: %d names, %d results", lanes, len(results))
	}
	if results, err = cleanLabels("result", results); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		if seed, err = randomSeed(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "draw seed")
		}
	}

	start := time.Now()
	r := &Round{
		ID:        uuid.NewString(),
		CreatedAt: start.UTC(),
		Seed:      seed,
		Names:     names,
		Results:   results,
		Rows:      opts.Rows,
		MaxRungs:  opts.MaxRungs,
	}
	r.Rungs = ladder.Generate(ladder.GenerateOptions{
		Lanes:    lanes,
		MaxRungs: opts.MaxRungs,
		Rows:     opts.Rows,
	}, ladder.NewSampler(seed))
	r.Paths = ladder.NewTracer(r.Rungs, r.Rows).TraceAll()
	r.Finals = ladder.Finals(r.Paths)

	hooks := observability.Round()
	hooks.OnGenerate(ctx, r.ID, lanes, r.Rungs.RungCount(), time.Since(start))
	for lane, final := range r.Finals {
		hooks.OnTrace(ctx, r.ID, lane, final)
	}
	return r, nil
}

func withDefaults(opts Options) Options {
	if opts.Rows == 0 {
		opts.Rows = DefaultRows
	}
	if opts.MaxRungs == 0 {
		opts.MaxRungs = DefaultMaxRungs
	}
	if opts.MaxLanes == 0 {
		opts.MaxLanes = DefaultMaxLanes
	}
	return opts
}

func checkDimensions(opts Options) error {
	switch {
	case opts.Rows < 1:
		return errors.New(errors.ErrCodeInvalidInput, "rows must be at least 1, got %d", opts.Rows)
	case opts.Rows > RowsLimit:
		return errors.New(errors.ErrCodeInvalidInput, "rows must be at most %d, got %d", RowsLimit, opts.Rows)
	case opts.MaxRungs < 3:
		return errors.New(errors.ErrCodeInvalidInput, "max rungs must be at least 3, got %d", opts.MaxRungs)
	case opts.MaxRungs > MaxRungsLimit:
		return errors.New(errors.ErrCodeInvalidInput, "max rungs must be at most %d, got %d", MaxRungsLimit, opts.MaxRungs)
	case opts.MaxLanes < MinLanes:
		return errors.New(errors.ErrCodeInvalidInput, "max lanes must be at least %d, got %d", MinLanes, opts.MaxLanes)
	case opts.MaxLanes > LanesLimit:
		return errors.New(errors.ErrCodeInvalidInput, "max lanes must be at most %d, got %d", LanesLimit, opts.MaxLanes)
	case opts.Seed > math.MaxInt64:
		return errors.New(errors.ErrCodeInvalidInput, "seed %d does not fit in 63 bits", opts.Seed)
	}
	return nil
}

func cleanLabels(kind string, in []string) ([]string, error) {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(strings.Map(controlToSpace, s))
		if out[i] == "" {
			return nil, errors.New(errors.ErrCodeInvalidLabels, "%s %d is empty", kind, i)
		}
	}
	return out, nil
}

// controlToSpace keeps escape sequences and line breaks out of labels.
func controlToSpace(r rune) rune {
	if unicode.IsControl(r) {
		return ' '
	}
	return r
}

func defaultResults(lanes int) []string {
	out := make([]string, lanes)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

// randomSeed returns a non-zero seed that fits in an int64, which keeps it
// representable in BSON.
func randomSeed() (uint64, error) {
	var b [8]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			return 0, err
		}
		if seed := binary.LittleEndian.Uint64(b[:]) >> 1; seed != 0 {
			return seed, nil
		}
	}
}

// Lanes returns the number of lanes.
func (r *Round) Lanes() int { return len(r.Names) }

// Outcome returns the result of lane.
func (r *Round) Outcome(lane int) (Outcome, error) {
	if lane < 0 || lane >= r.Lanes() {
		return Outcome{}, errors.New(errors.ErrCodeInvalidInput,
			"lane %d out of range [0, %d)", lane, r.Lanes())
	}
	final := r.Finals[lane]
	return Outcome{
		Lane:   lane,
		Name:   r.Names[lane],
		Final:  final,
		Result: r.Results[final],
	}, nil
}

// Outcomes returns the result of every lane, indexed by lane.
func (r *Round) Outcomes() []Outcome {
	out := make([]Outcome, r.Lanes())
	for lane := range out {
		out[lane], _ = r.Outcome(lane)
	}
	return out
}

// Path returns the traced path of lane.
func (r *Round) Path(lane int) (ladder.Path, error) {
	if lane < 0 || lane >= len(r.Paths) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"lane %d out of range [0, %d)", lane, len(r.Paths))
	}
	return r.Paths[lane], nil
}
