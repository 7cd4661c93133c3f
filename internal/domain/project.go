package domain

// Project represents a single lighting design project.
// It is intentionally storage-agnostic and shared across the client and CLI layers.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Location    string `json:"location"`
	Audit
}

// Fixture is a lighting fixture belonging to exactly one project.
type Fixture struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	ControlType string  `json:"controlType"`
	Wattage     float64 `json:"wattage"`
	Voltage     float64 `json:"voltage"`
	Description string  `json:"description"`
	ProjectID   string  `json:"projectId"`
	Audit
}

// Zone groups a quantity of one fixture onto a circuit within an area.
type Zone struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FixtureID   string `json:"fixtureId"`
	Quantity    int    `json:"quantity"`
	Circuit     string `json:"circuit"`
	Area        string `json:"area"`
	IsEmergency bool   `json:"isEmergency"`
	Audit
}

// ProjectDetails is the aggregate the server returns for create, clone and
// fetch-by-id: the project plus its owned fixtures and zones, always together.
type ProjectDetails struct {
	Project  Project   `json:"project"`
	Fixtures []Fixture `json:"fixtures"`
	Zones    []Zone    `json:"zones"`
}

// ProjectPatch carries the fields of a partial project update. Nil means
// "leave unchanged".
type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// Audit is the common audit block every persisted entity carries.
type Audit struct {
	CreatedOn  string `json:"createdOn"`
	ModifiedOn string `json:"modifiedOn"`
	CreatedBy  string `json:"createdBy"`
	ModifiedBy string `json:"modifiedBy"`
}
