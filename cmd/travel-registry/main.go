package main

import (
	"flag"
	"fmt"

	lib "github.com/theoremus-urban-solutions/travel-registry"
	"github.com/theoremus-urban-solutions/travel-registry/config"
)

func main() {
	mode := flag.String("mode", "serve", "serve|legs|itineraries")
	date := flag.String("date", "", "departure date (2006-01-02)")
	origin := flag.String("origin", "", "origin location")
	destination := flag.String("destination", "", "destination location")
	category := flag.String("category", "", "leg category filter (flight|rail|coach|ferry)")
	sortBy := flag.String("sort", "", "result ordering (cost|duration|start|end)")
	descending := flag.Bool("desc", false, "sort descending")
	format := flag.String("format", "text", "text|json")
	flag.Parse()

	lib.InitLogging()
	if err := config.LoadAppConfig(); err != nil {
		panic(err)
	}

	app, err := lib.NewApp(config.Config)
	if err != nil {
		panic(err)
	}

	switch *mode {
	case "serve":
		lib.StartServer(app)
		lib.HandleGracefulShutdown(app)
	case "legs", "itineraries":
		params := map[string]string{
			"date":        *date,
			"origin":      *origin,
			"destination": *destination,
			"category":    *category,
			"sort":        *sortBy,
			"format":      *format,
		}
		if *descending {
			params["order"] = "desc"
		}
		var buf []byte
		var err error
		if *mode == "legs" {
			buf, err = lib.OneshotLegs(app, params)
		} else {
			buf, err = lib.OneshotItineraries(app, params)
		}
		if err != nil {
			panic(err)
		}
		fmt.Println(string(buf))
		if err := app.Close(); err != nil {
			panic(err)
		}
	default:
		panic("unknown mode")
	}
}
