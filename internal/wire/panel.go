package wire

import "github.com/luxgrid/luxgrid-admin/internal/domain"

type PanelResponse struct {
	AuditModel
	ProjectID   string `json:"ProjectId"`
	Name        string `json:"Name"`
	Location    string `json:"Location"`
	PanelTypeID string `json:"PanelTypeId"`
	TotalSpaces int    `json:"TotalSpaces"`
}

func MapPanel(r PanelResponse) domain.Panel {
	return domain.Panel{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		Name:        r.Name,
		Location:    r.Location,
		PanelTypeID: r.PanelTypeID,
		TotalSpaces: r.TotalSpaces,
		Audit:       mapAudit(r.AuditModel),
	}
}
