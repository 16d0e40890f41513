package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <export.csv>",
	Short: "Score an export with VADER sentiment.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := loadApp()

		_, sum, outPath, err := a.Analyze(args[0])
		if err != nil {
			log.Fatalf("sentiment analysis failed: %v", err)
		}

		fmt.Printf("Scored %d posts into %s\n", sum.Total, outPath)
		if sum.Total == 0 {
			return
		}
		printBreakdown("Sentiment", sum.Counts)
		fmt.Printf("Average compound: %.3f (neg %.3f, neu %.3f, pos %.3f)\n",
			sum.AvgCompound, sum.AvgNegative, sum.AvgNeutral, sum.AvgPositive)
	},
}
