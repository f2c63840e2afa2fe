package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tripsCmd = &cobra.Command{
	Use:   "trips <from-stop-id> <to-stop-id>",
	Short: "Lists trips connecting two stops, in order",
	Args:  cobra.ExactArgs(2),
	RunE:  trips,
}

var tripCmd = &cobra.Command{
	Use:   "trip <trip-id>",
	Short: "Prints a trip's full itinerary",
	Args:  cobra.ExactArgs(1),
	RunE:  trip,
}

func init() {
	rootCmd.AddCommand(tripsCmd)
	rootCmd.AddCommand(tripCmd)
}

func trips(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	for _, seg := range store.FindTripsWithStops(args[0], args[1]) {
		fmt.Printf("%s: %s %s -> %s %s (%d intermediate stops)\n",
			store.TrainNumber(seg.TripID),
			seg.From.Departure, seg.From.StopName,
			seg.To.Arrival, seg.To.StopName,
			len(seg.Intermediate),
		)
	}

	return nil
}

func trip(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	calls := store.StopTimesForTrip(args[0])
	if len(calls) == 0 {
		return fmt.Errorf("no stop times for trip '%s'", args[0])
	}

	for _, call := range calls {
		fmt.Printf("%s %s %s\n", call.Arrival, call.Departure, call.StopName)
	}

	return nil
}
