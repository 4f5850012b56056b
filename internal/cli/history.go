package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/arbiter/internal/config"
	"github.com/dshills/arbiter/internal/history"
)

var (
	historyLimit int
	historyStats bool
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past debates",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(nil)
		if err != nil {
			return err
		}
		store, err := history.New(true, cfg.History.Dir)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}

		if historyStats {
			stats, err := store.Statistics()
			if err != nil {
				return fmt.Errorf("reading history stats: %w", err)
			}
			if historyJSON {
				return printJSON(stats)
			}
			fmt.Fprintf(os.Stdout, "Debates: %d\n", stats.Total)
			if stats.Total > 0 {
				fmt.Fprintf(os.Stdout, "Average consensus: %.1f/100\n", stats.AverageScore)
				fmt.Fprintf(os.Stdout, "Proceed rate: %.0f%%\n", stats.ProceedRate*100)
				fmt.Fprintf(os.Stdout, "Average time: %.1fs\n", stats.AverageTotalTime)
			}
			return nil
		}

		records, err := store.Recent(historyLimit)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if historyJSON {
			return printJSON(records)
		}
		if len(records) == 0 {
			fmt.Fprintln(os.Stdout, "No debates recorded.")
			return nil
		}
		for _, rec := range records {
			status := "REVIEW"
			if rec.CanProceed {
				status = "PROCEED"
			}
			fmt.Fprintf(os.Stdout, "%s  %3d/100  %-7s  %s\n",
				rec.CreatedAt.Format("2006-01-02 15:04"),
				rec.Consensus.ConsensusScore,
				status,
				rec.Request)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum records to show")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "show aggregate statistics")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "emit JSON")
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
