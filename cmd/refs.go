package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	schedule "railboard.dev/schedule"
	"railboard.dev/schedule/model"
	"railboard.dev/schedule/storage"
)

var saveCmd = &cobra.Command{
	Use:   "save <trip-id> [from-stop-id to-stop-id]",
	Short: "Saves a trip (or a segment of it) for later",
	Args:  cobra.RangeArgs(1, 3),
	RunE:  save,
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Resolves and lists saved trips against the current feed",
	Args:  cobra.NoArgs,
	RunE:  saved,
}

var unsaveCmd = &cobra.Command{
	Use:   "unsave <trip-id> [from-stop-id to-stop-id]",
	Short: "Deletes a saved trip",
	Args:  cobra.RangeArgs(1, 3),
	RunE:  unsave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(unsaveCmd)
}

func openRefs() (*storage.SQLiteStorage, error) {
	return storage.NewSQLiteStorage(storage.SQLiteConfig{OnDisk: true, Directory: "."})
}

func save(cmd *cobra.Command, args []string) error {
	if len(args) == 2 {
		return fmt.Errorf("pass both segment endpoints, or neither")
	}

	refs, err := openRefs()
	if err != nil {
		return err
	}
	defer refs.Close()

	ref := model.SavedTrainRef{TripID: args[0], SavedAt: time.Now()}
	if len(args) == 3 {
		ref.FromStopID = args[1]
		ref.ToStopID = args[2]
	}

	return refs.SaveRef(ref)
}

func saved(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	refs, err := openRefs()
	if err != nil {
		return err
	}
	defer refs.Close()

	all, err := refs.SavedRefs()
	if err != nil {
		return err
	}

	resolver := schedule.NewResolver(store, nil)
	for _, trip := range resolver.ResolveAll(all, time.Now()) {
		fmt.Printf("%s %s: %s %s -> %s %s\n",
			trip.RouteName, trip.TrainNumber,
			trip.Origin.Departure, trip.Origin.StopName,
			trip.Destination.Arrival, trip.Destination.StopName,
		)
	}

	return nil
}

func unsave(cmd *cobra.Command, args []string) error {
	if len(args) == 2 {
		return fmt.Errorf("pass both segment endpoints, or neither")
	}

	refs, err := openRefs()
	if err != nil {
		return err
	}
	defer refs.Close()

	fromID, toID := "", ""
	if len(args) == 3 {
		fromID, toID = args[1], args[2]
	}

	return refs.DeleteRef(args[0], fromID, toID)
}
