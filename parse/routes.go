package parse

import (
	"encoding/hex"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"railboard.dev/schedule/model"
)

type RouteCSV struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      string `csv:"route_type"`
	Color     string `csv:"route_color"`
	TextColor string `csv:"route_text_color"`
}

func validRouteColor(color string) bool {
	if len(color) != 6 {
		return false
	}
	if _, err := hex.DecodeString(color); err != nil {
		return false
	}
	return true
}

func ParseRoutes(data io.Reader) ([]model.Route, error) {
	routeCsv := []*RouteCSV{}
	if err := gocsv.Unmarshal(data, &routeCsv); err != nil {
		return nil, errors.Wrap(err, "unmarshaling routes csv")
	}

	routes := []model.Route{}
	for _, r := range routeCsv {
		if r.ID == "" {
			continue
		}

		routeType := 0
		if r.Type != "" {
			t, err := strconv.Atoi(r.Type)
			if err != nil {
				continue
			}
			routeType = t
		}

		route := model.Route{
			ID:        r.ID,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Type:      model.RouteType(routeType),
		}
		if validRouteColor(r.Color) {
			route.Color = r.Color
		}
		if validRouteColor(r.TextColor) {
			route.TextColor = r.TextColor
		}

		routes = append(routes, route)
	}

	return routes, nil
}
