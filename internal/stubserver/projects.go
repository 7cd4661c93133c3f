package stubserver

import (
	"encoding/csv"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luxgrid/luxgrid-admin/internal/wire"
)

func (s *Server) listProjects(c *gin.Context) {
	s.mu.Lock()
	out := make([]wire.ProjectResponse, len(s.projects))
	copy(out, s.projects)
	s.mu.Unlock()

	respond(c, out, "")
}

func (s *Server) getProject(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			respond(c, wire.ProjectDetailsResponse{
				Project:  p,
				Fixtures: append([]wire.FixtureResponse{}, s.fixtures[id]...),
				Zones:    append([]wire.ZoneResponse{}, s.zones[id]...),
			}, "")
			return
		}
	}
	respondError(c, http.StatusNotFound, "project not found")
}

func (s *Server) createProject(c *gin.Context) {
	name := c.PostForm("name")
	companyName := c.PostForm("companyName")
	location := c.PostForm("location")
	if name == "" || companyName == "" || location == "" {
		respondError(c, http.StatusBadRequest, "name, companyName and location are required")
		return
	}

	fixtureFile, err := c.FormFile("fixtureCSV")
	if err != nil {
		respondError(c, http.StatusBadRequest, "fixtureCSV file is required")
		return
	}
	zoneFile, err := c.FormFile("zoneCSV")
	if err != nil {
		respondError(c, http.StatusBadRequest, "zoneCSV file is required")
		return
	}

	project := wire.ProjectResponse{
		AuditModel:  newAudit(),
		Name:        name,
		CompanyName: companyName,
		Location:    location,
	}

	fixtures, err := s.parseFixtures(c, fixtureFile, project.ID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "fixtureCSV could not be parsed")
		return
	}
	zones, err := s.parseZones(c, zoneFile, fixtures)
	if err != nil {
		respondError(c, http.StatusBadRequest, "zoneCSV could not be parsed")
		return
	}

	s.mu.Lock()
	s.projects = append(s.projects, project)
	s.fixtures[project.ID] = fixtures
	s.zones[project.ID] = zones
	s.mu.Unlock()

	respond(c, wire.ProjectDetailsResponse{
		Project:  project,
		Fixtures: fixtures,
		Zones:    zones,
	}, "Project created")
}

func (s *Server) updateProject(c *gin.Context) {
	id := c.Param("id")

	var patch struct {
		Name        *string `json:"name"`
		CompanyName *string `json:"companyName"`
		Location    *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.projects[i].Name = *patch.Name
		}
		if patch.CompanyName != nil {
			s.projects[i].CompanyName = *patch.CompanyName
		}
		if patch.Location != nil {
			s.projects[i].Location = *patch.Location
		}
		s.projects[i].ModifiedOn = now()
		respond(c, s.projects[i], "Project updated")
		return
	}
	respondError(c, http.StatusNotFound, "project not found")
}

func (s *Server) deleteProject(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		s.projects = append(s.projects[:i], s.projects[i+1:]...)
		delete(s.fixtures, id)
		delete(s.zones, id)
		respond(c, true, "Project deleted")
		return
	}
	respondError(c, http.StatusNotFound, "project not found")
}

func (s *Server) cloneProject(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID != id {
			continue
		}
		clone := p
		clone.AuditModel = newAudit()
		clone.Name = req.Name

		fixtures := make([]wire.FixtureResponse, 0, len(s.fixtures[id]))
		fixtureIDs := make(map[string]string, len(s.fixtures[id]))
		for _, f := range s.fixtures[id] {
			copied := f
			copied.AuditModel = newAudit()
			copied.ProjectID = clone.ID
			fixtureIDs[f.ID] = copied.ID
			fixtures = append(fixtures, copied)
		}
		zones := make([]wire.ZoneResponse, 0, len(s.zones[id]))
		for _, z := range s.zones[id] {
			copied := z
			copied.AuditModel = newAudit()
			copied.FixtureID = fixtureIDs[z.FixtureID]
			zones = append(zones, copied)
		}

		s.projects = append(s.projects, clone)
		s.fixtures[clone.ID] = fixtures
		s.zones[clone.ID] = zones

		respond(c, wire.ProjectDetailsResponse{
			Project:  clone,
			Fixtures: fixtures,
			Zones:    zones,
		}, "Project cloned")
		return
	}
	respondError(c, http.StatusNotFound, "project not found")
}

func (s *Server) parseFixtures(c *gin.Context, fileHeader *multipart.FileHeader, projectID string) ([]wire.FixtureResponse, error) {
	rows, header, err := readCSV(c, fileHeader)
	if err != nil {
		return nil, err
	}

	fixtures := make([]wire.FixtureResponse, 0, len(rows))
	for _, row := range rows {
		wattage, _ := strconv.ParseFloat(col(row, header, "wattage"), 64)
		voltage, _ := strconv.ParseFloat(col(row, header, "voltage"), 64)
		fixtures = append(fixtures, wire.FixtureResponse{
			AuditModel:  newAudit(),
			Name:        col(row, header, "name"),
			Type:        col(row, header, "type"),
			ControlType: col(row, header, "controltype"),
			Wattage:     wattage,
			Voltage:     voltage,
			Description: col(row, header, "description"),
			ProjectID:   projectID,
		})
	}
	return fixtures, nil
}

func (s *Server) parseZones(c *gin.Context, fileHeader *multipart.FileHeader, fixtures []wire.FixtureResponse) ([]wire.ZoneResponse, error) {
	rows, header, err := readCSV(c, fileHeader)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(fixtures))
	for _, f := range fixtures {
		byName[strings.ToLower(f.Name)] = f.ID
	}

	zones := make([]wire.ZoneResponse, 0, len(rows))
	for _, row := range rows {
		quantity, _ := strconv.Atoi(col(row, header, "quantity"))
		emergency := strings.EqualFold(col(row, header, "emergency"), "true")
		zones = append(zones, wire.ZoneResponse{
			AuditModel:  newAudit(),
			Name:        col(row, header, "name"),
			FixtureID:   byName[strings.ToLower(col(row, header, "fixture"))],
			Quantity:    quantity,
			Circuit:     col(row, header, "circuit"),
			Area:        col(row, header, "area"),
			IsEmergency: emergency,
		})
	}
	return zones, nil
}

func readCSV(c *gin.Context, fileHeader *multipart.FileHeader) ([][]string, map[string]int, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("empty csv")
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		key := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(name)), "_", "")
		header[key] = i
	}
	return records[1:], header, nil
}

func col(row []string, header map[string]int, name string) string {
	if i, ok := header[name]; ok && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func newAudit() wire.AuditModel {
	ts := now()
	return wire.AuditModel{
		ID:         uuid.NewString(),
		CreatedOn:  ts,
		ModifiedOn: ts,
		CreatedBy:  "stub",
		ModifiedBy: "stub",
	}
}
