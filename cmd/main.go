package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	schedule "railboard.dev/schedule"
	"railboard.dev/schedule/parse"
)

var rootCmd = &cobra.Command{
	Use:          "railboard",
	Short:        "Railboard schedule tool",
	Long:         "Queries a static rail schedule feed",
	SilenceUsage: true,
}

var feedPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&feedPath, "feed", "f", "", "path to static feed zip")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadStore() (*schedule.Store, error) {
	if feedPath == "" {
		return nil, fmt.Errorf("feed path is required")
	}

	buf, err := os.ReadFile(feedPath)
	if err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}

	feed, err := parse.ParseStatic(buf)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	store := schedule.NewStore()
	store.Load(feed.Routes, feed.Stops, feed.StopTimesByTrip, feed.Shapes, feed.Trips)

	if !store.IsReady() {
		return nil, fmt.Errorf("feed has no routes or no stops")
	}

	return store, nil
}
