package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrExecutableNotFound stops a benchmark loop
var ErrExecutableNotFound = errors.New("detector executable not found")

// Config describes a benchmark sweep
type Config struct {
	Executable   string // Detector binary (default: ./RecDetector)
	InputFasta   string // Alignment passed via -detect
	SettingsFile string // File holding the threadsCount line
	LogsDir      string // Where the detector leaves *.log files
	OutDir       string // Parent of the run_<n> directories (default: .)
	FromThreads  int    // First thread count (default: 1)
	ToThreads    int    // Last thread count, inclusive (default: 29)
}

// NewConfig creates a Config with defaults
func NewConfig() *Config {
	return &Config{
		Executable:  "./RecDetector",
		OutDir:      ".",
		FromThreads: 1,
		ToThreads:   29,
	}
}

// Validate checks configuration
func (c *Config) Validate() error {
	if c.Executable == "" {
		return fmt.Errorf("executable is required")
	}
	if c.InputFasta == "" {
		return fmt.Errorf("input FASTA is required")
	}
	if c.SettingsFile == "" {
		return fmt.Errorf("settings file is required")
	}
	if c.LogsDir == "" {
		return fmt.Errorf("logs directory is required")
	}
	if c.FromThreads < 1 {
		return fmt.Errorf("thread count must be >= 1")
	}
	if c.ToThreads < c.FromThreads {
		return fmt.Errorf("last thread count %d is below first %d", c.ToThreads, c.FromThreads)
	}
	return nil
}

// RunResult is the outcome of one detector invocation
type RunResult struct {
	Threads  int
	RunDir   string
	ExitCode int
	Err      error
	Logs     []string
}

// Runner executes a sweep
type Runner struct {
	config *Config
	out    io.Writer
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a runner that reports to out and forwards detector
// output to the process stdout and stderr
func NewRunner(config *Config, out io.Writer) *Runner {
	return &Runner{
		config: config,
		out:    out,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run sweeps the thread counts. A detector that exits non-zero is reported
// and the sweep continues without moving that run's logs. A missing
// executable ends the sweep with ErrExecutableNotFound.
func (r *Runner) Run(ctx context.Context) ([]RunResult, error) {
	cfg := r.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var results []RunResult
	for i := cfg.FromThreads; i <= cfg.ToThreads; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		fmt.Fprintf(r.out, "Setting threadsCount to %d and launching program - Run %d\n", i, i)
		if err := UpdateThreadsCount(cfg.SettingsFile, i); err != nil {
			return results, fmt.Errorf("failed to update settings: %w", err)
		}

		res := RunResult{
			Threads: i,
			RunDir:  filepath.Join(cfg.OutDir, fmt.Sprintf("run_%d", i)),
		}

		cmd := exec.CommandContext(ctx, cfg.Executable, "-detect", cfg.InputFasta)
		cmd.Stdout = r.stdout
		cmd.Stderr = r.stderr
		err := cmd.Run()

		var exitErr *exec.ExitError
		switch {
		case err == nil:
			fmt.Fprintf(r.out, "Run %d finished with return code 0\n", i)
			logs, err := MoveLogs(cfg.LogsDir, res.RunDir)
			if err != nil {
				return append(results, res), fmt.Errorf("failed to move logs for run %d: %w", i, err)
			}
			res.Logs = logs
			fmt.Fprintf(r.out, "Logs moved to run_%d\n", i)
		case errors.As(err, &exitErr):
			res.ExitCode = exitErr.ExitCode()
			res.Err = err
			fmt.Fprintf(r.out, "Error during execution on Run %d: %v\n", i, err)
		case errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist):
			fmt.Fprintf(r.out, "Executable file not found during Run %d!\n", i)
			res.Err = err
			return append(results, res), fmt.Errorf("%w: %s", ErrExecutableNotFound, cfg.Executable)
		default:
			return append(results, res), fmt.Errorf("failed to run %s: %w", cfg.Executable, err)
		}

		results = append(results, res)
	}
	return results, nil
}
