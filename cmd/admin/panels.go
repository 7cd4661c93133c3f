package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/luxgrid/luxgrid-admin/internal/panels"
)

func (a *app) runPanels(ctx context.Context, args []string) {
	if len(args) == 0 {
		log.Fatal("usage: admin panels <list|create|delete|clone> ...")
	}

	switch args[0] {
	case "list":
		a.panelsList(ctx)
	case "create":
		a.panelsCreate(ctx, args[1:])
	case "delete":
		a.panelsDelete(ctx, args[1:])
	case "clone":
		a.panelsClone(ctx, args[1:])
	default:
		log.Fatalf("unknown panels command: %s", args[0])
	}
}

func (a *app) panelsList(ctx context.Context) {
	list := a.panels.Fetch(ctx)
	if list == nil {
		log.Fatal("could not fetch panels")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROJECT\tLOCATION\tSPACES")
	for _, p := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.ProjectID, p.Location, p.TotalSpaces)
	}
	w.Flush()
}

func (a *app) panelsCreate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("panels create", flag.ExitOnError)
	projectID := fs.String("project", "", "owning project id")
	name := fs.String("name", "", "panel name")
	location := fs.String("location", "", "panel location")
	panelTypeID := fs.String("type", "", "panel type id")
	_ = fs.Parse(args)

	if *projectID == "" || *name == "" || *panelTypeID == "" {
		log.Fatal("usage: admin panels create -project <id> -name <n> -type <panel type id> [-location <l>]")
	}

	created := a.panels.Create(ctx, panels.CreateRequest{
		ProjectID:   *projectID,
		Name:        *name,
		Location:    *location,
		PanelTypeID: *panelTypeID,
	})
	if created == nil {
		log.Fatal("panel creation failed")
	}
	fmt.Printf("created %s (%s)\n", created.Name, created.ID)
}

func (a *app) panelsDelete(ctx context.Context, args []string) {
	if len(args) < 1 {
		log.Fatal("usage: admin panels delete <id>")
	}
	if !a.panels.Delete(ctx, args[0]) {
		log.Fatal("panel deletion failed")
	}
	fmt.Println("deleted")
}

func (a *app) panelsClone(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("panels clone", flag.ExitOnError)
	id := fs.String("id", "", "panel id")
	name := fs.String("name", "", "name of the clone")
	_ = fs.Parse(args)

	if *id == "" || *name == "" {
		log.Fatal("usage: admin panels clone -id <id> -name <new name>")
	}

	cloned := a.panels.Clone(ctx, *id, *name)
	if cloned == nil {
		log.Fatal("panel clone failed")
	}
	fmt.Printf("cloned into %s (%s)\n", cloned.Name, cloned.ID)
}
