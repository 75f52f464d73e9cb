package daqcfg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/daq/process"
	"github.com/grayscene/gray/internal/rng"
)

// Description is one parsed line of a process file: `<type> <subtype> [args...]`,
// per spec.md §6 "Process file".
type Description struct {
	Type    string
	Subtype string
	Args    []string // includes Subtype as Args[0]; the first value after it is Args[1]
}

// ParseDescriptions reads one Description per non-comment, non-blank line.
func ParseDescriptions(r io.Reader) ([]Description, error) {
	scanner := bufio.NewScanner(r)
	var out []Description
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		d := Description{Type: fields[0]}
		if len(fields) > 1 {
			d.Subtype = fields[1]
			d.Args = fields[1:]
		}
		out = append(out, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Factory builds daq.Process values from Descriptions, resolving component/block-
// coordinate lookups against a Mapping, per spec.md §4.4 "Construction" and
// original_source/src/Daq/ProcessFactory.cpp's dispatch table.
type Factory struct {
	Mapping *Mapping
	Rng     *rng.Generator
}

// Build dispatches one Description to the matching Process constructor.
func (f *Factory) Build(d Description) (daq.Process, error) {
	switch d.Type {
	case "sort":
		return f.buildSort(d)
	case "blur":
		return f.buildBlur(d)
	case "filter":
		return f.buildFilter(d)
	case "merge":
		return f.buildMerge(d)
	case "deadtime":
		return f.buildDeadtime(d)
	case "coinc":
		return f.buildCoinc(d)
	default:
		return nil, fmt.Errorf("daqcfg: unknown process type %q", d.Type)
	}
}

func asFloat(args []string, i int, what string) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("daqcfg: %s: missing value", what)
	}
	v, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		return 0, fmt.Errorf("daqcfg: %s: %q is not a valid value", what, args[i])
	}
	return v, nil
}

func (f *Factory) buildSort(d Description) (daq.Process, error) {
	// "sort time 1e-9": Subtype is ignored (always time-based); Args[0] is the subtype,
	// Args[1] the wait window.
	w, err := asFloat(d.Args, 1, "sort")
	if err != nil {
		return nil, err
	}
	return &process.Sort{MaxWaitTime: w}, nil
}

func (f *Factory) buildBlur(d Description) (daq.Process, error) {
	if len(d.Args) < 2 {
		return nil, fmt.Errorf("daqcfg: blur format is: blur <type> <value> (options...)")
	}
	switch d.Subtype {
	case "energy":
		value, err := asFloat(d.Args, 1, "blur energy")
		if err != nil {
			return nil, err
		}
		if len(d.Args) >= 4 && d.Args[2] == "at" {
			ref, err := asFloat(d.Args, 3, "blur energy at")
			if err != nil {
				return nil, err
			}
			return &process.EnergyBlurAtReference{FWHMFraction: value, ReferenceEnergy: ref, Rng: f.Rng}, nil
		}
		return &process.EnergyBlur{FWHMFraction: value, Rng: f.Rng}, nil
	case "time":
		value, err := asFloat(d.Args, 1, "blur time")
		if err != nil {
			return nil, err
		}
		const defaultMaxTimeBlurRatio = 3.0
		return &process.TimeBlur{FWHM: value, TauMax: defaultMaxTimeBlurRatio * value, Rng: f.Rng}, nil
	default:
		return nil, fmt.Errorf("daqcfg: unknown blur type %q", d.Subtype)
	}
}

func (f *Factory) buildFilter(d Description) (daq.Process, error) {
	if len(d.Args) < 2 {
		return nil, fmt.Errorf("daqcfg: filter format is: filter <type> <value>")
	}
	value, err := asFloat(d.Args, 1, "filter")
	if err != nil {
		return nil, err
	}
	switch d.Subtype {
	case "egate_low":
		return &process.Filter{Low: value}, nil
	case "egate_high":
		return &process.Filter{High: value}, nil
	default:
		return nil, fmt.Errorf("daqcfg: unknown filter type %q", d.Subtype)
	}
}

func (f *Factory) componentLookup(name string) (process.ComponentOf, error) {
	if f.Mapping == nil {
		return nil, fmt.Errorf("daqcfg: no mapping file loaded, cannot resolve component %q", name)
	}
	return f.Mapping.Lookup(name)
}

func (f *Factory) buildMerge(d Description) (daq.Process, error) {
	if len(d.Args) < 2 {
		return nil, fmt.Errorf("daqcfg: merge format is: merge <component> <time> (options...)")
	}
	component, err := f.componentLookup(d.Subtype)
	if err != nil {
		return nil, err
	}
	window, err := asFloat(d.Args, 1, "merge")
	if err != nil {
		return nil, err
	}
	mergeType := "max"
	if len(d.Args) >= 3 {
		mergeType = d.Args[2]
	}
	switch mergeType {
	case "max":
		return &process.Merge{Window: window, Mode: process.MergeMax, Component: component}, nil
	case "first":
		return &process.Merge{Window: window, Mode: process.MergeFirst, Component: component}, nil
	case "anger":
		if len(d.Args) != 6 {
			return nil, fmt.Errorf("daqcfg: anger merge requires 3 block mapping names")
		}
		bx, err := f.componentLookup(d.Args[3])
		if err != nil {
			return nil, err
		}
		by, err := f.componentLookup(d.Args[4])
		if err != nil {
			return nil, err
		}
		bz, err := f.componentLookup(d.Args[5])
		if err != nil {
			return nil, err
		}
		return NewAngerMergeFromMapping(window, component, bx, by, bz, f.Mapping)
	default:
		return nil, fmt.Errorf("daqcfg: unknown merge type %q", mergeType)
	}
}

// NewAngerMergeFromMapping resolves process.NewAngerMerge over the detector ids known
// to the mapping, surfacing its ambiguous-coordinate error at construction time.
func NewAngerMergeFromMapping(window float64, component process.ComponentOf, bx, by, bz process.BlockCoord, m *Mapping) (*process.Merge, error) {
	return process.NewAngerMerge(window, component, bx, by, bz, m.DetIDs())
}

func (f *Factory) buildDeadtime(d Description) (daq.Process, error) {
	if len(d.Args) < 2 {
		return nil, fmt.Errorf("daqcfg: deadtime format is: deadtime <component> <value> (options...)")
	}
	component, err := f.componentLookup(d.Subtype)
	if err != nil {
		return nil, err
	}
	value, err := asFloat(d.Args, 1, "deadtime")
	if err != nil {
		return nil, err
	}
	mode := process.NonParalyzable
	for _, opt := range d.Args[2:] {
		switch opt {
		case "paralyzable":
			mode = process.Paralyzable
		case "nonparalyzable":
			mode = process.NonParalyzable
		default:
			return nil, fmt.Errorf("daqcfg: unrecognized deadtime option %q", opt)
		}
	}
	return &process.Deadtime{Tau: value, Mode: mode, Component: component}, nil
}

func (f *Factory) buildCoinc(d Description) (daq.Process, error) {
	if len(d.Args) < 2 {
		return nil, fmt.Errorf("daqcfg: coinc format is: coinc <window|delay> <width> (options...)")
	}
	window, err := asFloat(d.Args, 1, "coinc")
	if err != nil {
		return nil, err
	}
	c := &process.Coinc{Window: window, RejectMultiples: true}
	optionStart := 2
	switch d.Subtype {
	case "window":
	case "delay":
		optionStart = 3
		if len(d.Args) < 3 {
			return nil, fmt.Errorf("daqcfg: no delay offset specified")
		}
		offset, err := asFloat(d.Args, 2, "coinc delay offset")
		if err != nil {
			return nil, err
		}
		c.WindowOffset = offset
	default:
		return nil, fmt.Errorf("daqcfg: unknown coinc type %q", d.Subtype)
	}
	for _, opt := range d.Args[optionStart:] {
		switch opt {
		case "keep_multiples":
			c.RejectMultiples = false
		case "paralyzable":
			c.Paralyzable = true
		default:
			return nil, fmt.Errorf("daqcfg: unrecognized coinc option %q", opt)
		}
	}
	return c, nil
}

// BuildModel parses every description and wires each into the model, classifying
// Coinc processes as coincidence processors and everything else as singles, per
// spec.md §4.4 "Construction". initialSortWindow, if > 0, prepends a Sort process.
// Each time blur is followed by a Sort whose window is twice the blur's TauMax.
// Every description is attempted even after a failure, so a malformed process file
// reports all of its bad lines in one error rather than just the first.
func BuildModel(descs []Description, f *Factory, initialSortWindow float64) (*daq.Model, error) {
	m := daq.NewModel()
	if initialSortWindow > 0 {
		m.AddSingles(&process.Sort{MaxWaitTime: initialSortWindow})
	}
	var errs []error
	for i, d := range descs {
		p, err := f.Build(d)
		if err != nil {
			errs = append(errs, fmt.Errorf("description %d (%s): %w", i+1, d.Type, err))
			continue
		}
		if d.Type == "coinc" {
			m.AddCoincidence(p)
		} else {
			m.AddSingles(p)
			if tb, ok := p.(*process.TimeBlur); ok {
				m.AddSingles(&process.Sort{MaxWaitTime: 2 * tb.TauMax})
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return m, nil
}
