// Package commands implements the nitscrape CLI.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"nitscrape/internal/app"
	"nitscrape/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "nitscrape",
	Short: "nitscrape crawls public Twitter mirrors and turns timelines into datasets.",
}

// ExecuteContext runs the CLI until ctx is canceled.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadApp builds the App from the saved config, falling back to defaults
// when none exists yet.
func loadApp() *app.App {
	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("could not load config: %v, using defaults", err)
		}
		cfg = config.Default()
	}
	return app.New(cfg)
}

// trimHandles strips any leading @ from user-supplied account names.
func trimHandles(args []string) []string {
	handles := make([]string, 0, len(args))
	for _, a := range args {
		if h := strings.TrimPrefix(strings.TrimSpace(a), "@"); h != "" {
			handles = append(handles, h)
		}
	}
	return handles
}

// printBreakdown prints a count map in stable key order.
func printBreakdown(label string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	fmt.Printf("%s: %s\n", label, strings.Join(parts, " "))
}
