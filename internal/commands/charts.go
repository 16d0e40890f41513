package commands

import (
	"fmt"
	"log"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	chartsSentiment bool
	chartsOpen      bool
)

func init() {
	chartsCmd.Flags().BoolVar(&chartsSentiment, "sentiment", false, "include a sentiment breakdown chart")
	chartsCmd.Flags().BoolVar(&chartsOpen, "open", false, "open the report in the default browser")
	rootCmd.AddCommand(chartsCmd)
}

var chartsCmd = &cobra.Command{
	Use:   "charts <export.csv>",
	Short: "Render HTML charts and a report page from an export.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := loadApp()

		path, err := a.Charts(args[0], chartsSentiment)
		if err != nil {
			log.Fatalf("chart build failed: %v", err)
		}

		fmt.Printf("Report written to %s\n", path)
		if chartsOpen {
			if err := browser.OpenFile(path); err != nil {
				log.Printf("could not open report: %v", err)
			}
		}
	},
}
