package domain

// Panel is a panel layout belonging to a project. Placement logic lives on
// the server; the client only moves whole panels around.
type Panel struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	PanelTypeID string `json:"panelTypeId"`
	TotalSpaces int    `json:"totalSpaces"`
	Audit
}

// PanelPatch carries the fields of a panel update sent via PUT.
type PanelPatch struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}
