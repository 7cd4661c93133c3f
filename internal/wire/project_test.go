package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAudit() AuditModel {
	return AuditModel{
		ID:         "550e8400-e29b-41d4-a716-446655440000",
		CreatedOn:  "2026-02-01T10:00:00Z",
		ModifiedOn: "2026-02-02T11:30:00Z",
		CreatedBy:  "alice@example.com",
		ModifiedBy: "bob@example.com",
	}
}

func TestMapProject_CarriesEveryField(t *testing.T) {
	r := ProjectResponse{
		AuditModel:  sampleAudit(),
		Name:        "HQ refit",
		CompanyName: "Acme Lighting",
		Location:    "Leeds",
	}

	p := MapProject(r)

	assert.Equal(t, r.ID, p.ID)
	assert.Equal(t, r.Name, p.Name)
	assert.Equal(t, r.CompanyName, p.CompanyName)
	assert.Equal(t, r.Location, p.Location)
	assert.Equal(t, r.CreatedOn, p.CreatedOn)
	assert.Equal(t, r.ModifiedOn, p.ModifiedOn)
	assert.Equal(t, r.CreatedBy, p.CreatedBy)
	assert.Equal(t, r.ModifiedBy, p.ModifiedBy)
}

func TestMapFixture_CarriesEveryField(t *testing.T) {
	r := FixtureResponse{
		AuditModel:  sampleAudit(),
		Name:        "Downlight 12W",
		Type:        "downlight",
		ControlType: "DALI",
		Wattage:     12,
		Voltage:     230,
		Description: "warm white",
		ProjectID:   "p-1",
	}

	f := MapFixture(r)

	assert.Equal(t, r.ID, f.ID)
	assert.Equal(t, r.Name, f.Name)
	assert.Equal(t, r.Type, f.Type)
	assert.Equal(t, r.ControlType, f.ControlType)
	assert.Equal(t, r.Wattage, f.Wattage)
	assert.Equal(t, r.Voltage, f.Voltage)
	assert.Equal(t, r.Description, f.Description)
	assert.Equal(t, r.ProjectID, f.ProjectID)
}

func TestMapZone_CarriesEveryField(t *testing.T) {
	r := ZoneResponse{
		AuditModel:  sampleAudit(),
		Name:        "Lobby",
		FixtureID:   "f-1",
		Quantity:    8,
		Circuit:     "L1",
		Area:        "Ground",
		IsEmergency: true,
	}

	z := MapZone(r)

	assert.Equal(t, r.ID, z.ID)
	assert.Equal(t, r.Name, z.Name)
	assert.Equal(t, r.FixtureID, z.FixtureID)
	assert.Equal(t, r.Quantity, z.Quantity)
	assert.Equal(t, r.Circuit, z.Circuit)
	assert.Equal(t, r.Area, z.Area)
	assert.True(t, z.IsEmergency)
}

func TestMapProjectDetails_MapsCollections(t *testing.T) {
	r := ProjectDetailsResponse{
		Project: ProjectResponse{AuditModel: sampleAudit(), Name: "HQ"},
		Fixtures: []FixtureResponse{
			{AuditModel: sampleAudit(), Name: "A"},
			{AuditModel: sampleAudit(), Name: "B"},
		},
		Zones: []ZoneResponse{
			{AuditModel: sampleAudit(), Name: "Z"},
		},
	}

	d := MapProjectDetails(r)

	require.Len(t, d.Fixtures, 2)
	require.Len(t, d.Zones, 1)
	assert.Equal(t, "HQ", d.Project.Name)
	assert.Equal(t, "A", d.Fixtures[0].Name)
	assert.Equal(t, "Z", d.Zones[0].Name)
}

func TestEnvelope_DecodesWireCasing(t *testing.T) {
	payload := `{
		"Data": [{"Id": "p-1", "Name": "HQ", "CompanyName": "Acme", "Location": "Leeds",
		          "CreatedOn": "2026-01-01T00:00:00Z", "ModifiedOn": "2026-01-01T00:00:00Z",
		          "CreatedBy": "alice", "ModifiedBy": "alice"}],
		"Message": "ok",
		"success": true
	}`

	var env Envelope[[]ProjectResponse]
	require.NoError(t, json.Unmarshal([]byte(payload), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "p-1", env.Data[0].ID)
	assert.Equal(t, "ok", env.Message)
	assert.True(t, env.Success)
}
