package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/luxgrid/luxgrid-admin/internal/backend"
	"github.com/luxgrid/luxgrid-admin/internal/csvdata"
	"github.com/luxgrid/luxgrid-admin/internal/domain"
)

func (a *app) runProjects(ctx context.Context, args []string) {
	if len(args) == 0 {
		log.Fatal("usage: admin projects <list|show|create|update|delete|clone> ...")
	}

	switch args[0] {
	case "list":
		a.projectsList(ctx)
	case "show":
		a.projectsShow(ctx, args[1:])
	case "create":
		a.projectsCreate(ctx, args[1:])
	case "update":
		a.projectsUpdate(ctx, args[1:])
	case "delete":
		a.projectsDelete(ctx, args[1:])
	case "clone":
		a.projectsClone(ctx, args[1:])
	default:
		log.Fatalf("unknown projects command: %s", args[0])
	}
}

func (a *app) projectsList(ctx context.Context) {
	list := a.projects.Fetch(ctx)
	if list == nil {
		log.Fatal("could not fetch projects")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tLOCATION\tMODIFIED")
	for _, p := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.CompanyName, p.Location, p.ModifiedOn)
	}
	w.Flush()
}

func (a *app) projectsShow(ctx context.Context, args []string) {
	if len(args) < 1 {
		log.Fatal("usage: admin projects show <id>")
	}

	details := a.projects.FetchByID(ctx, args[0])
	if details == nil {
		log.Fatal("project not found")
	}
	printDetails(details)
}

func (a *app) projectsCreate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("projects create", flag.ExitOnError)
	name := fs.String("name", "", "project name")
	company := fs.String("company", "", "company name")
	location := fs.String("location", "", "project location")
	fixturePath := fs.String("fixtures", "", "path to fixture CSV")
	zonePath := fs.String("zones", "", "path to zone CSV")
	_ = fs.Parse(args)

	if *name == "" || *company == "" || *location == "" || *fixturePath == "" || *zonePath == "" {
		log.Fatal("usage: admin projects create -name <n> -company <c> -location <l> -fixtures <csv> -zones <csv>")
	}

	fixtureFile := openValidated(*fixturePath, csvdata.ValidateFixtureCSV)
	defer fixtureFile.Close()
	zoneFile := openValidated(*zonePath, csvdata.ValidateZoneCSV)
	defer zoneFile.Close()

	details := a.projects.Create(ctx, *name, *company, *location,
		backend.FilePart{Field: "fixtureCSV", FileName: filepath.Base(*fixturePath), Reader: fixtureFile},
		backend.FilePart{Field: "zoneCSV", FileName: filepath.Base(*zonePath), Reader: zoneFile},
	)
	if details == nil {
		log.Fatal("project creation failed")
	}
	printDetails(details)
}

func (a *app) projectsUpdate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("projects update", flag.ExitOnError)
	id := fs.String("id", "", "project id")
	name := fs.String("name", "", "new project name")
	company := fs.String("company", "", "new company name")
	location := fs.String("location", "", "new location")
	_ = fs.Parse(args)

	if *id == "" {
		log.Fatal("usage: admin projects update -id <id> [-name <n>] [-company <c>] [-location <l>]")
	}

	var patch domain.ProjectPatch
	if *name != "" {
		patch.Name = name
	}
	if *company != "" {
		patch.CompanyName = company
	}
	if *location != "" {
		patch.Location = location
	}

	updated := a.projects.Update(ctx, *id, patch)
	if updated == nil {
		log.Fatal("project update failed")
	}
	fmt.Printf("updated %s (%s)\n", updated.Name, updated.ID)
}

func (a *app) projectsDelete(ctx context.Context, args []string) {
	if len(args) < 1 {
		log.Fatal("usage: admin projects delete <id>")
	}
	if !a.projects.Delete(ctx, args[0]) {
		log.Fatal("project deletion failed")
	}
	fmt.Println("deleted")
}

func (a *app) projectsClone(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("projects clone", flag.ExitOnError)
	id := fs.String("id", "", "project id")
	name := fs.String("name", "", "name of the clone")
	_ = fs.Parse(args)

	if *id == "" || *name == "" {
		log.Fatal("usage: admin projects clone -id <id> -name <new name>")
	}

	details := a.projects.Clone(ctx, *id, *name)
	if details == nil {
		log.Fatal("project clone failed")
	}
	printDetails(details)
}

func openValidated(path string, validate func(r io.Reader) error) *os.File {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open %s: %v", path, err)
	}
	if err := validate(f); err != nil {
		f.Close()
		log.Fatalf("invalid CSV: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		log.Fatalf("rewind %s: %v", path, err)
	}
	return f
}

func printDetails(d *domain.ProjectDetails) {
	fmt.Printf("project %s (%s)\n", d.Project.Name, d.Project.ID)
	fmt.Printf("  company:  %s\n", d.Project.CompanyName)
	fmt.Printf("  location: %s\n", d.Project.Location)
	fmt.Printf("  fixtures: %d\n", len(d.Fixtures))
	fmt.Printf("  zones:    %d\n", len(d.Zones))
}
