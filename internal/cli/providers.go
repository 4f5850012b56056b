package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/arbiter/internal/config"
	"github.com/dshills/arbiter/internal/providers"
)

var providersJSON bool

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show configured provider availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(nil)
		if err != nil {
			return err
		}

		statuses := providers.StatusOf(cfg.Primary.Spec(), cfg.Counter.Spec())
		if providersJSON {
			return printJSON(statuses)
		}
		for _, st := range statuses {
			mark := "unavailable"
			if st.Available {
				mark = "available"
			}
			fmt.Fprintf(os.Stdout, "%-10s %-12s %s\n", st.Name, st.Vendor, mark)
		}
		return nil
	},
}

func init() {
	providersCmd.Flags().BoolVar(&providersJSON, "json", false, "emit JSON")
}
