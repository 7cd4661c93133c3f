package main

import (
	"log"
	"os"

	"github.com/luxgrid/luxgrid-admin/internal/stubserver"
	"github.com/luxgrid/luxgrid-admin/internal/wire"
)

func main() {
	srv := stubserver.New(seedConfiguration(), nil)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3002"
	}
	log.Printf("stub backend listening on :%s", port)
	log.Fatal(srv.Router().Run(":" + port))
}

// seedConfiguration is a small reference bundle so the CLI has something to
// browse against a fresh stub.
func seedConfiguration() wire.ConfigurationResponse {
	audit := func(id string) wire.AuditModel {
		return wire.AuditModel{
			ID:         id,
			CreatedOn:  "2026-01-01T00:00:00Z",
			ModifiedOn: "2026-01-01T00:00:00Z",
			CreatedBy:  "seed",
			ModifiedBy: "seed",
		}
	}
	railSpace := 2.0

	return wire.ConfigurationResponse{
		DeviceTypes: []wire.DeviceTypeResponse{
			{AuditModel: audit("dt-dimmer"), Name: "Dimmer"},
			{AuditModel: audit("dt-relay"), Name: "Relay"},
		},
		PanelTypes: []wire.PanelTypeResponse{
			{AuditModel: audit("pt-roombox"), Name: "i-RB", NumberOfRail: 1, IsRoomBox: true},
			{AuditModel: audit("pt-cabinet-m"), Name: "i-DRC-M", NumberOfRail: 4},
		},
		Devices: []wire.DeviceResponse{
			{
				AuditModel:   audit("dev-dim-4ch"),
				Name:         "4-channel dimmer",
				Description:  "Trailing edge, 4x250W",
				DeviceTypeID: "dt-dimmer",
				RailSpace:    &railSpace,
			},
		},
	}
}
