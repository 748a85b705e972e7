package cli

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/invopop/jsonschema"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"go.viam.com/otg/config"
	"go.viam.com/otg/logging"
	"go.viam.com/otg/otg"
)

const (
	flagScenario        = "scenario"
	flagFrom            = "from"
	flagTo              = "to"
	flagMaxVelocity     = "max-velocity"
	flagMaxAcceleration = "max-acceleration"
	flagMaxCycles       = "max-cycles"
	flagOutput          = "output"
	flagEvery           = "every"
	flagQuantity        = "quantity"
	flagIterations      = "iterations"
	flagForce           = "force"
	flagHistogram       = "histogram"
	flagLogFile         = "log-file"

	quantityPosition     = "position"
	quantityVelocity     = "velocity"
	quantityAcceleration = "acceleration"

	defaultMaxCycles = 1000000
	defaultTableRows = 20
)

var scenarioFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    flagScenario,
		Aliases: []string{"s"},
		Usage:   "load the scenario from `FILE`; the sample scenario is used when neither a file nor points are given",
	},
	&cli.StringFlag{
		Name:  flagFrom,
		Usage: "move a point in space starting at `x,y,z`",
	},
	&cli.StringFlag{
		Name:  flagTo,
		Usage: "move a point in space to `x,y,z`",
	},
	&cli.Float64Flag{
		Name:  flagMaxVelocity,
		Value: 1,
		Usage: "velocity bound of every axis when moving a point",
	},
	&cli.Float64Flag{
		Name:  flagMaxAcceleration,
		Value: 1,
		Usage: "acceleration bound of every axis when moving a point",
	},
	&cli.IntFlag{
		Name:  flagMaxCycles,
		Value: defaultMaxCycles,
		Usage: "give up after this many cycles",
	},
}

var (
	logger    = logging.NewBlankLogger("otg")
	logCloser io.Closer
)

func setupLogging(c *cli.Context) error {
	level := zapcore.WarnLevel
	if c.Bool("debug") {
		level = zapcore.DebugLevel
	}
	if path := c.String(flagLogFile); path != "" {
		logger, logCloser = logging.NewFileLogger("otg", path, level)
	} else {
		logger = logging.NewLogger("otg")
		logger.SetLevel(level)
	}
	logging.ReplaceGlobal(logger)
	return nil
}

func closeLogging(*cli.Context) error {
	if logCloser == nil {
		return nil
	}
	err := multierr.Combine(logger.Sync(), logCloser.Close())
	logCloser = nil
	return err
}

// loggerFor returns the logger for simulating s; scenarios can ask for debug logs.
func loggerFor(s *config.Scenario) logging.Logger {
	if s.Debug {
		logger.SetLevel(zapcore.DebugLevel)
	}
	return logger
}

// loadScenario returns the scenario selected by the command line flags.
func loadScenario(c *cli.Context) (*config.Scenario, error) {
	if path := c.String(flagScenario); path != "" {
		return config.Read(path)
	}
	from, to := c.String(flagFrom), c.String(flagTo)
	if from == "" && to == "" {
		return config.SampleScenario(), nil
	}
	if from == "" || to == "" {
		return nil, errors.Errorf("--%s and --%s must be given together", flagFrom, flagTo)
	}
	start, err := parseVector(from)
	if err != nil {
		return nil, err
	}
	end, err := parseVector(to)
	if err != nil {
		return nil, err
	}
	s := config.ScenarioFromPoints(start, end, c.Float64(flagMaxVelocity), c.Float64(flagMaxAcceleration))
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// SampleAction writes the sample scenario as json.
func SampleAction(c *cli.Context) error {
	path := c.String(flagOutput)
	if path == "" {
		path = "sample.json"
	}
	if fileExists(path) && !c.Bool(flagForce) {
		return errors.Errorf("%s already exists, use --%s to overwrite it", path, flagForce)
	}
	if err := config.Write(path, config.SampleScenario()); err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}
	printf(c.App.Writer, "wrote sample scenario to %s", path)
	return nil
}

// RunAction simulates a scenario and prints its states of motion as a table.
func RunAction(c *cli.Context) error {
	s, err := loadScenario(c)
	if err != nil {
		return err
	}
	sim, err := simulate(s, loggerFor(s), c.Int(flagMaxCycles))
	if sim == nil {
		return err
	}
	if err != nil {
		warningf(c.App.ErrWriter, "%v", err)
	}

	every := c.Int(flagEvery)
	if every <= 0 {
		every = int(math.Max(1, math.Ceil(float64(len(sim.samples))/defaultTableRows)))
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Cycle", "Time", "Position", "Velocity", "Acceleration", "Result"})
	for i, smp := range sim.samples {
		if i%every != 0 && i != len(sim.samples)-1 {
			continue
		}
		t.AppendRow(table.Row{
			smp.cycle,
			fmt.Sprintf("%.4f", smp.time),
			formatVector(smp.position),
			formatVector(smp.velocity),
			formatVector(smp.acceleration),
			smp.result.String(),
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	printf(c.App.Writer, "synchronization time: %.6f s", sim.synchronizationTime)
	printf(c.App.Writer, "phase synchronized: %t", sim.phaseSynchronized)
	printf(c.App.Writer, "execution times: %s", formatVector(sim.executionTimes))
	printf(c.App.Writer, "slowest dof: %d", sim.greatestDOF)
	printf(c.App.Writer, "step 1 profiles: %s", formatNames(sim.step1Profiles))
	printf(c.App.Writer, "step 2 profiles: %s", formatNames(sim.step2Profiles))
	return err
}

// PlotAction simulates a scenario and draws one quantity of every DOF over time.
func PlotAction(c *cli.Context) error {
	s, err := loadScenario(c)
	if err != nil {
		return err
	}
	quantity := c.String(flagQuantity)
	var pick func(sample) []float64
	switch quantity {
	case quantityPosition:
		pick = func(smp sample) []float64 { return smp.position }
	case quantityVelocity:
		pick = func(smp sample) []float64 { return smp.velocity }
	case quantityAcceleration:
		pick = func(smp sample) []float64 { return smp.acceleration }
	default:
		return errors.Errorf("unknown quantity %q", quantity)
	}
	sim, err := simulate(s, loggerFor(s), c.Int(flagMaxCycles))
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s over time", quantity)
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = quantity
	p.Add(plotter.NewGrid())
	for dof := 0; dof < s.DOFs; dof++ {
		pts := make(plotter.XYs, len(sim.samples))
		for i, smp := range sim.samples {
			pts[i].X = smp.time
			pts[i].Y = pick(smp)[dof]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(dof)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("dof %d", dof), line)
	}
	if sim.synchronizationTime > 0 {
		sync, err := plotter.NewLine(plotter.XYs{
			{X: sim.synchronizationTime, Y: p.Y.Min},
			{X: sim.synchronizationTime, Y: p.Y.Max},
		})
		if err != nil {
			return err
		}
		sync.LineStyle.Color = color.Gray{Y: 128}
		sync.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(sync)
	}

	path := c.String(flagOutput)
	if path == "" {
		path = quantity + ".png"
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "could not save plot to %s", path)
	}
	printf(c.App.Writer, "wrote %s plot of %d cycles to %s", quantity, len(sim.samples)-1, path)
	return nil
}

// BenchAction measures how long computing the scenario's trajectory takes.
func BenchAction(c *cli.Context) error {
	s, err := loadScenario(c)
	if err != nil {
		return err
	}
	iterations := c.Int(flagIterations)
	if iterations <= 0 {
		return errors.Errorf("--%s must be positive", flagIterations)
	}
	flags, err := s.PositionFlags()
	if err != nil {
		return err
	}
	sessionLogger := loggerFor(s)
	in := s.PositionInput()
	out := otg.NewPositionOutput(s.DOFs)

	durations := make([]float64, 0, iterations)
	for i := 0; i < iterations; i++ {
		// a fresh session never reuses a previous trajectory
		session, err := s.NewPosition(sessionLogger)
		if err != nil {
			return err
		}
		start := time.Now()
		result := session.Update(in, out, flags)
		durations = append(durations, float64(time.Since(start).Nanoseconds())/1e3)
		if result.IsError() {
			return errors.Wrap(result.Err(), "benchmark scenario fell back")
		}
	}

	mean, err := stats.Mean(durations)
	if err != nil {
		return err
	}
	median, err := stats.Median(durations)
	if err != nil {
		return err
	}
	p99, err := stats.Percentile(durations, 99)
	if err != nil {
		return err
	}
	maximum, err := stats.Max(durations)
	if err != nil {
		return err
	}
	sd, err := stats.StandardDeviation(durations)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"DOFs", "Iterations", "Mean (µs)", "Median (µs)", "P99 (µs)", "Max (µs)", "Std Dev (µs)"})
	t.AppendRow(table.Row{
		s.DOFs, iterations,
		fmt.Sprintf("%.2f", mean),
		fmt.Sprintf("%.2f", median),
		fmt.Sprintf("%.2f", p99),
		fmt.Sprintf("%.2f", maximum),
		fmt.Sprintf("%.2f", sd),
	})
	printf(c.App.Writer, "%s", t.Render())

	if c.Bool(flagHistogram) {
		printf(c.App.Writer, "computation time (µs):")
		hist := histogram.Hist(10, durations)
		if err := histogram.Fprint(c.App.Writer, hist, histogram.Linear(40)); err != nil {
			return err
		}
	}
	return nil
}

// SchemaAction prints the json schema scenario files follow.
func SchemaAction(c *cli.Context) error {
	r := &jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	md, err := json.MarshalIndent(r.Reflect(&config.Scenario{}), "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", md)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
