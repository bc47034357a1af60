package main

import (
	"fmt"

	"github.com/scttfrdmn/recsim-go/pkg/bench"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a detector across a range of thread counts",
	Long: `Run a recombination detector repeatedly, once per thread count.

For each count the threadsCount line of the settings file is rewritten,
the detector is started as "<executable> -detect <input>", and the *.log
files it leaves in --logs-dir are moved into run_<n> under --out-dir.

A run that exits non-zero is reported and the sweep continues. A missing
executable stops the sweep.

Example:
  recsim bench --executable ./RecDetector --input seqs_recombined.fasta \
    --settings settings/user_settings.rec --logs-dir build --from 1 --to 29`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		results, err := bench.NewRunner(s.Bench.config(), cmd.OutOrStdout()).Run(cmd.Context())

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nCompleted %d runs (%d failed)\n", len(results), failed)
		return err
	},
}

func init() {
	defaults := bench.NewConfig()
	flags := benchCmd.Flags()

	flags.String("executable", defaults.Executable, "Detector executable")
	flags.String("input", "", "Alignment passed to the detector with -detect")
	flags.String("settings", "", "Detector settings file containing threadsCount")
	flags.String("logs-dir", "", "Directory where the detector writes *.log files")
	flags.String("out-dir", defaults.OutDir, "Directory for run_<n> log folders")
	flags.Int("from", defaults.FromThreads, "First thread count")
	flags.Int("to", defaults.ToThreads, "Last thread count (inclusive)")

	for _, name := range []string{"executable", "input", "settings", "logs-dir", "out-dir", "from", "to"} {
		viper.BindPFlag("bench."+name, flags.Lookup(name))
	}
}
