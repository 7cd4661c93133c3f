package wire

import "github.com/luxgrid/luxgrid-admin/internal/domain"

type ProjectResponse struct {
	AuditModel
	Name        string `json:"Name"`
	CompanyName string `json:"CompanyName"`
	Location    string `json:"Location"`
}

type FixtureResponse struct {
	AuditModel
	Name        string  `json:"Name"`
	Type        string  `json:"Type"`
	ControlType string  `json:"ControlType"`
	Wattage     float64 `json:"Wattage"`
	Voltage     float64 `json:"Voltage"`
	Description string  `json:"Description"`
	ProjectID   string  `json:"ProjectId"`
}

type ZoneResponse struct {
	AuditModel
	Name        string `json:"Name"`
	FixtureID   string `json:"FixtureId"`
	Quantity    int    `json:"Quantity"`
	Circuit     string `json:"Circuit"`
	Area        string `json:"Area"`
	IsEmergency bool   `json:"IsEmergency"`
}

type ProjectDetailsResponse struct {
	Project  ProjectResponse   `json:"Project"`
	Fixtures []FixtureResponse `json:"Fixtures"`
	Zones    []ZoneResponse    `json:"Zones"`
}

// MapProject renames a wire project into the domain shape. Field values are
// carried over untouched.
func MapProject(r ProjectResponse) domain.Project {
	return domain.Project{
		ID:          r.ID,
		Name:        r.Name,
		CompanyName: r.CompanyName,
		Location:    r.Location,
		Audit:       mapAudit(r.AuditModel),
	}
}

func MapFixture(r FixtureResponse) domain.Fixture {
	return domain.Fixture{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		ControlType: r.ControlType,
		Wattage:     r.Wattage,
		Voltage:     r.Voltage,
		Description: r.Description,
		ProjectID:   r.ProjectID,
		Audit:       mapAudit(r.AuditModel),
	}
}

func MapZone(r ZoneResponse) domain.Zone {
	return domain.Zone{
		ID:          r.ID,
		Name:        r.Name,
		FixtureID:   r.FixtureID,
		Quantity:    r.Quantity,
		Circuit:     r.Circuit,
		Area:        r.Area,
		IsEmergency: r.IsEmergency,
		Audit:       mapAudit(r.AuditModel),
	}
}

// MapProjectDetails maps the create/clone/fetch aggregate. The triple always
// arrives together and is mapped as one unit.
func MapProjectDetails(r ProjectDetailsResponse) domain.ProjectDetails {
	details := domain.ProjectDetails{
		Project:  MapProject(r.Project),
		Fixtures: make([]domain.Fixture, 0, len(r.Fixtures)),
		Zones:    make([]domain.Zone, 0, len(r.Zones)),
	}
	for _, f := range r.Fixtures {
		details.Fixtures = append(details.Fixtures, MapFixture(f))
	}
	for _, z := range r.Zones {
		details.Zones = append(details.Zones, MapZone(z))
	}
	return details
}

func mapAudit(a AuditModel) domain.Audit {
	return domain.Audit{
		CreatedOn:  a.CreatedOn,
		ModifiedOn: a.ModifiedOn,
		CreatedBy:  a.CreatedBy,
		ModifiedBy: a.ModifiedBy,
	}
}
