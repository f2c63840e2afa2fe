package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	schedule "railboard.dev/schedule"
)

var stationsCmd = &cobra.Command{
	Use:   "stations <minLat> <maxLat> <minLon> <maxLon>",
	Short: "Lists stations visible in a map viewport",
	Args:  cobra.ExactArgs(4),
	RunE:  stations,
}

var shapesCmd = &cobra.Command{
	Use:   "shapes [minLat maxLat minLon maxLon]",
	Short: "Shows route shapes stats, optionally for a viewport",
	Args:  cobra.RangeArgs(0, 4),
	RunE:  shapes,
}

func init() {
	rootCmd.AddCommand(stationsCmd)
	rootCmd.AddCommand(shapesCmd)
}

func parseViewport(args []string) (schedule.Viewport, error) {
	var vals [4]float64
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return schedule.Viewport{}, fmt.Errorf("invalid coordinate '%s': %w", arg, err)
		}
		vals[i] = v
	}
	return schedule.Viewport{MinLat: vals[0], MaxLat: vals[1], MinLon: vals[2], MaxLon: vals[3]}, nil
}

func stations(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	viewport, err := parseViewport(args)
	if err != nil {
		return err
	}

	for _, stop := range store.StationIndex().VisibleStations(viewport) {
		fmt.Printf("%s: %s (%f, %f)\n", stop.ID, stop.Name, stop.Lat, stop.Lon)
	}

	return nil
}

func shapes(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 4 {
		return fmt.Errorf("pass no coordinates, or all four")
	}

	store, err := loadStore()
	if err != nil {
		return err
	}

	ix := store.ShapeIndex()

	stats := ix.Stats()
	fmt.Printf("shapes: %d, points: %d, avg/min/max points: %.1f/%d/%d\n",
		stats.ShapeCount, stats.PointCount, stats.AvgPoints, stats.MinPoints, stats.MaxPoints)

	if len(args) == 4 {
		viewport, err := parseViewport(args)
		if err != nil {
			return err
		}
		for _, sh := range ix.VisibleShapes(viewport) {
			fmt.Printf("%s: %d points\n", sh.ID, len(sh.Points))
		}
	}

	return nil
}
