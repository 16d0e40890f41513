package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats [username...]",
	Short: "Show archived totals per account.",
	Run: func(cmd *cobra.Command, args []string) {
		a := loadApp()

		stats, err := a.Stats(trimHandles(args))
		if err != nil {
			log.Fatalf("stats failed: %v", err)
		}
		if len(stats) == 0 {
			fmt.Println("Archive is empty.")
			return
		}

		for _, st := range stats {
			fmt.Printf("@%s: %d posts", st.Account, st.Total)
			if st.Total > 0 {
				fmt.Printf(" from %s to %s, %d total engagement",
					st.Oldest.Format("2006-01-02"), st.Newest.Format("2006-01-02"), st.TotalEngagement)
			}
			fmt.Println()
			if len(st.Kinds) > 0 {
				printBreakdown("  kinds", st.Kinds)
			}
		}
	},
}
