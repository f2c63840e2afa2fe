package main

import (
	"fmt"

	"github.com/spf13/cobra"

	schedule "railboard.dev/schedule"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches stations, routes and trains",
	Args:  cobra.ExactArgs(1),
	RunE:  search,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func search(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	for _, result := range store.Search(args[0]) {
		kind := "train"
		switch result.Kind {
		case schedule.SearchKindStation:
			kind = "station"
		case schedule.SearchKindRoute:
			kind = "route"
		}
		fmt.Printf("%-8s %s (%s)\n", kind, result.Title, result.Subtitle)
	}

	return nil
}
