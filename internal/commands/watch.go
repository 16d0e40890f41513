package commands

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"nitscrape/internal/scheduler"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [username...]",
	Short: "Crawl accounts on a schedule until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		a := loadApp()
		cfg := a.Config()

		accounts := trimHandles(args)
		if len(accounts) == 0 {
			accounts = cfg.Watch.Accounts
		}
		if len(accounts) == 0 {
			log.Fatal("no accounts to watch: pass usernames or set [watch] accounts in the config")
		}

		sched, err := scheduler.New(cfg.Watch.Timezone)
		if err != nil {
			log.Fatalf("failed to create scheduler: %v", err)
		}
		err = sched.AddCrawlJob(cfg.Watch.IntervalHours, func(ctx context.Context) error {
			return a.CrawlAll(ctx, accounts)
		})
		if err != nil {
			log.Fatalf("failed to schedule crawl: %v", err)
		}

		// First pass right away so a fresh watch produces data before the
		// first tick.
		if err := a.CrawlAll(cmd.Context(), accounts); err != nil {
			log.Printf("initial crawl: %v", err)
		}

		sched.Start()
		for _, job := range sched.ListJobs() {
			log.Printf("next %s run at %s", job.Name, job.NextRun.Format(time.RFC1123))
		}

		<-cmd.Context().Done()
		<-sched.Stop().Done()
	},
}
