package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"nitscrape/internal/process"
)

func init() {
	rootCmd.AddCommand(processCmd)
}

var processCmd = &cobra.Command{
	Use:   "process <export.csv>",
	Short: "Clean an export and derive the analysis columns.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := loadApp()

		res, outPath, err := a.Process(args[0])
		if err != nil {
			log.Fatalf("processing failed: %v", err)
		}

		sum := process.Summarize(res.Rows)
		fmt.Printf("Processed %d posts into %s\n", sum.Total, outPath)
		if res.DroppedEmpty+res.DroppedDupes > 0 {
			fmt.Printf("Dropped %d empty and %d duplicate posts\n", res.DroppedEmpty, res.DroppedDupes)
		}
		if sum.Total == 0 {
			return
		}
		fmt.Printf("Date range: %s\n", sum.DateRange)
		fmt.Printf("Average length: %.1f chars, %.1f words\n", sum.AvgTextLength, sum.AvgWordCount)
		fmt.Printf("Total engagement: %d\n", sum.TotalEngagement)
		printBreakdown("Kinds", sum.Kinds)
		printBreakdown("Languages", sum.Languages)
	},
}
