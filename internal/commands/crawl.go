package commands

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nitscrape/internal/app"
	"nitscrape/internal/export"
	"nitscrape/internal/scraper"
	"nitscrape/internal/types"
)

var (
	crawlSteps    int
	crawlFilter   string
	crawlSaveMode string
)

func init() {
	crawlCmd.Flags().IntVar(&crawlSteps, "steps", 0, "pagination steps before stopping (0 uses the configured default)")
	crawlCmd.Flags().StringVar(&crawlFilter, "filter", "", "post types to keep: original, original_and_quotes or all")
	crawlCmd.Flags().StringVar(&crawlSaveMode, "save", "", "export collision mode: timestamp, increment, ask or merge")
	rootCmd.AddCommand(crawlCmd)
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [username]",
	Short: "Crawl one account's timeline into a CSV export.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := loadApp()
		cfg := a.Config()

		var handle string
		if len(args) > 0 {
			handle = strings.TrimPrefix(strings.TrimSpace(args[0]), "@")
		}
		if handle == "" {
			handle = prompt("Twitter username (without @): ")
		}
		if handle == "" {
			log.Fatal("no username given")
		}

		filterName := crawlFilter
		if filterName == "" {
			filterName = promptDefault(
				fmt.Sprintf("Filter [original/original_and_quotes/all] (%s): ", cfg.Scraping.Filter),
				cfg.Scraping.Filter)
		}
		filter, ok := scraper.ParseTypeFilter(filterName)
		if !ok {
			log.Printf("unknown filter %q, using %s", filterName, filter)
		}

		modeName := crawlSaveMode
		if modeName == "" {
			modeName = promptDefault(
				fmt.Sprintf("Save mode [timestamp/increment/ask/merge] (%s): ", cfg.Export.Mode),
				cfg.Export.Mode)
		}
		mode, ok := export.ParseMode(modeName)
		if !ok {
			log.Printf("unknown save mode %q, using %s", modeName, mode)
		}

		steps := crawlSteps
		if steps <= 0 {
			steps = cfg.Scraping.Scrolls
		}

		start := time.Now()
		out, err := a.Crawl(cmd.Context(), app.CrawlRequest{
			Handle:   handle,
			Steps:    steps,
			Filter:   filter,
			SaveMode: mode,
			Confirm:  confirmOverwrite,
		})
		if err != nil {
			log.Fatalf("crawl failed: %v", err)
		}

		printSample(out.Result.Posts)
		fmt.Printf("\nCollected %d posts in %s\n", len(out.Result.Posts), time.Since(start).Round(time.Second))
		if out.CSVPath != "" {
			fmt.Printf("Saved to %s\n", out.CSVPath)
		}
	},
}

var stdin = bufio.NewReader(os.Stdin)

func prompt(label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptDefault(label, fallback string) string {
	if v := prompt(label); v != "" {
		return v
	}
	return fallback
}

func confirmOverwrite(path string) bool {
	answer := prompt(fmt.Sprintf("%s exists. Overwrite? [y/N]: ", path))
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

// printSample shows the first few collected posts with kind tags.
func printSample(posts []types.Post) {
	n := len(posts)
	if n == 0 {
		return
	}
	if n > 5 {
		n = 5
	}

	fmt.Printf("\nFirst %d posts:\n", n)
	for i, p := range posts[:n] {
		text := p.Text
		if r := []rune(text); len(r) > 80 {
			text = string(r[:77]) + "..."
		}
		fmt.Printf("%d. [%s] %s (%d likes, %d retweets)\n",
			i+1, strings.ToUpper(p.Kind()), text, p.LikeCount, p.RetweetCount)
	}
}
