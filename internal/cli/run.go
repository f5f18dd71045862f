package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shivanshkc/abench/pkg/bench"
	"github.com/shivanshkc/abench/pkg/execx"
)

// Flag values of the run command, populated by cobra before Run executes.
var (
	runWarmup      bool
	runWarmupRuns  int
	runDeviation   float64
	runConfidence  float64
	runMinRuns     int
	runMaxRuns     int
	runMaxTime     time.Duration
	runClock       = clockFlag{kind: bench.ClockWall}
	runPercentiles bool
	runJSON        bool
	runExport      string
	runVerbose     bool
)

// runCmd represents the `run` command. It executes the given command
// repeatedly until its mean run time is statistically stable, then prints
// the collected statistics.
var runCmd = &cobra.Command{
	Use:   "run [flags] -- COMMAND [ARGS...]",
	Short: "Benchmark a command until its mean run time is statistically stable.",
	Long: `Benchmark a command by running it repeatedly and adaptively.

After every measured run, a confidence interval around the mean run time is
computed. Measurement stops once the interval half-width is within the allowed
deviation of the mean, or unconditionally at the run ceiling. Everything after
the command name is passed to the command untouched.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if message := validateRunFlags(); message != "" {
			fmt.Println(message)
			os.Exit(1)
		}

		command := execx.Command{Name: args[0], Args: args[1:]}
		if err := command.Lookup(); err != nil {
			fmt.Println("Cannot benchmark:", err)
			os.Exit(1)
		}

		opts := bench.Options{
			Warmup:           runWarmup,
			WarmupRuns:       runWarmupRuns,
			AllowedDeviation: runDeviation,
			ConfidenceLevel:  runConfidence,
			MinRuns:          runMinRuns,
			MaxRuns:          runMaxRuns,
			MaxTime:          runMaxTime,
			Clock:            runClock.kind,
		}

		target := command.Target(cmd.Context())
		if runVerbose {
			target = announcedTarget(target, opts)
		}

		if !runJSON {
			fmt.Println(heading("Benchmarking:"), command.String())
		}

		samples, err := bench.Measure(target, opts)
		if err != nil {
			fmt.Println("Benchmark failed:", err)
			os.Exit(1)
		}

		report, err := bench.Describe(samples)
		if err != nil {
			fmt.Println("Benchmark failed:", err)
			os.Exit(1)
		}

		if runJSON {
			raw, err := marshalResults(command.String(), report, samples)
			if err != nil {
				fmt.Println("Failed to marshal results:", err)
				os.Exit(1)
			}
			fmt.Println(string(raw))
		} else {
			renderReport(os.Stdout, runClock.kind, report)
			if runPercentiles {
				renderPercentiles(os.Stdout, samples)
			}
		}

		if runExport != "" {
			if err := exportResults(runExport, command.String(), report, samples); err != nil {
				fmt.Println("Failed to export results:", err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Flags after the command name belong to the command under measurement,
	// not to abench.
	runCmd.Flags().SetInterspersed(false)

	defaults := bench.DefaultOptions()
	runCmd.Flags().BoolVar(&runWarmup, "warmup", defaults.Warmup,
		"Perform untimed warmup runs before measurement.")
	runCmd.Flags().IntVar(&runWarmupRuns, "warmup-runs", defaults.WarmupRuns,
		"Number of warmup runs.")
	runCmd.Flags().Float64Var(&runDeviation, "deviation", defaults.AllowedDeviation,
		"Allowed relative deviation of the mean, a fraction in (0, 1).")
	runCmd.Flags().Float64Var(&runConfidence, "confidence", defaults.ConfidenceLevel,
		"Confidence level of the stopping decision, a fraction in (0, 1).")
	runCmd.Flags().IntVar(&runMinRuns, "min-runs", defaults.MinRuns,
		"Minimum number of measured runs.")
	runCmd.Flags().IntVar(&runMaxRuns, "max-runs", defaults.MaxRuns,
		"Maximum number of measured runs.")
	runCmd.Flags().DurationVar(&runMaxTime, "max-time", defaults.MaxTime,
		"Budget on the total measured time. Zero disables the budget.")
	runCmd.Flags().Var(&runClock, "clock",
		"Time source for measurements, wall or process.")
	runCmd.Flags().BoolVar(&runPercentiles, "percentiles", false,
		"Include a run time percentile table in the output.")
	runCmd.Flags().BoolVar(&runJSON, "json", false,
		"Print results as JSON instead of a table.")
	runCmd.Flags().StringVar(&runExport, "export", "",
		"Write results as JSON to the given file.")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false,
		"Print the duration of every run as it completes.")
}

// announcedTarget wraps the target to print a progress line after every
// invocation, labeling warmup runs as such. Progress goes to stderr so that
// --json output on stdout stays machine readable. The printed duration is
// the invocation's wall time as seen by the CLI; the reported statistics use
// the configured clock.
func announcedTarget(target bench.TargetFunc, opts bench.Options) bench.TargetFunc {
	warmups := 0
	if opts.Warmup {
		warmups = opts.WarmupRuns
	}

	var invocation int
	return func() error {
		invocation++
		start := time.Now()
		err := target()
		elapsed := time.Since(start)

		if invocation <= warmups {
			fmt.Fprintf(os.Stderr, "[warmup %d] %s\n", invocation, formatDuration(elapsed))
		} else {
			fmt.Fprintf(os.Stderr, "[run %d] %s\n", invocation-warmups, formatDuration(elapsed))
		}
		return err
	}
}

var _ pflag.Value = (*clockFlag)(nil)

// clockFlag is the pflag.Value behind --clock. The CLI defaults to the wall
// clock rather than the library's process clock: a subprocess's CPU time is
// invisible to the parent's process clock, so measuring commands with it
// would capture nothing but the cost of spawning them.
type clockFlag struct {
	kind bench.ClockKind
}

func (f *clockFlag) String() string { return f.kind.String() }

func (f *clockFlag) Set(value string) error {
	switch strings.ToLower(value) {
	case bench.ClockWall.String():
		f.kind = bench.ClockWall
	case bench.ClockProcess.String():
		f.kind = bench.ClockProcess
	default:
		return fmt.Errorf("must be %q or %q", bench.ClockWall, bench.ClockProcess)
	}
	return nil
}

func (f *clockFlag) Type() string { return "wall|process" }
