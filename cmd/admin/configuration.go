package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
)

func (a *app) runConfiguration(ctx context.Context) {
	cfg := a.configuration.Fetch(ctx)
	if cfg == nil {
		log.Fatal("could not fetch configuration")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tID\tNAME\tDETAIL")
	for _, dt := range cfg.DeviceTypes {
		fmt.Fprintf(w, "device-type\t%s\t%s\t\n", dt.ID, dt.Name)
	}
	for _, pt := range cfg.PanelTypes {
		detail := fmt.Sprintf("%d rails", pt.NumberOfRail)
		if pt.IsRoomBox {
			detail += ", room box"
		}
		fmt.Fprintf(w, "panel-type\t%s\t%s\t%s\n", pt.ID, pt.Name, detail)
	}
	for _, d := range cfg.Devices {
		fmt.Fprintf(w, "device\t%s\t%s\t%s\n", d.ID, d.Name, d.Description)
	}
	w.Flush()
}
