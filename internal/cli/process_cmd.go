package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/spf13/cobra"

	"github.com/paveg/plotframe/internal/dataframe"
	"github.com/paveg/plotframe/internal/io"
	"github.com/paveg/plotframe/internal/monitoring"
	"github.com/paveg/plotframe/internal/plot"
)

func newProcessCmd() *cobra.Command {
	var (
		dataPath string
		jobPath  string
		outPath  string
		indent   bool
		stats    bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process a plot job against a data file",
		Long: `Reads the shared data (.csv, .tsv, .json, .jsonl or .parquet) and a YAML
plot job, applies every layer's stat, facets and samplings, and writes the
result document as JSON. Layer data paths in the job are relative to the job file.`,
		Example: "  plotframe process --data sales.csv --job bars.yaml --indent",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if stats {
				cfg.CollectMetrics = true
			}
			mem := memory.NewGoAllocator()

			shared, err := io.ReadTableFile(dataPath, mem)
			if err != nil {
				return err
			}

			f, err := os.Open(jobPath)
			if err != nil {
				return fmt.Errorf("opening plot job: %w", err)
			}
			job, err := plot.DecodeJob(f)
			_ = f.Close()
			if err != nil {
				return err
			}

			jobDir := filepath.Dir(jobPath)
			spec, err := job.Spec(shared, cfg, func(source string) (*dataframe.Table, error) {
				if !filepath.IsAbs(source) {
					source = filepath.Join(jobDir, source)
				}
				return io.ReadTableFile(source, mem)
			})
			if err != nil {
				return err
			}

			result := plot.Process(cmd.Context(), spec, cfg)

			out := cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer file.Close()
				out = file
			}
			if err := io.WriteResult(out, result, indent); err != nil {
				return err
			}
			if stats && len(result.Metrics) > 0 {
				if err := monitoring.WriteTable(cmd.ErrOrStderr(), result.Metrics); err != nil {
					return err
				}
			}
			if result.Failed() {
				return fmt.Errorf("plot processing failed: %s", result.Failure.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Shared data file")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Plot job YAML file")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the result to a file instead of stdout")
	cmd.Flags().BoolVar(&indent, "indent", false, "Indent the JSON result")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print stage timings to stderr")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}
