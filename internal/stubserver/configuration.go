package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxgrid/luxgrid-admin/internal/wire"
)

func (s *Server) getConfiguration(c *gin.Context) {
	s.mu.Lock()
	cfg := s.config
	s.mu.Unlock()

	// The bundled payload uses camelCase collection keys; the records inside
	// stay PascalCase like everywhere else.
	respond(c, gin.H{
		"deviceTypes": cfg.DeviceTypes,
		"panelTypes":  cfg.PanelTypes,
		"devices":     cfg.Devices,
	}, "Configuration loaded")
}

func (s *Server) getDeviceTypes(c *gin.Context) {
	s.mu.Lock()
	out := append([]wire.DeviceTypeResponse{}, s.config.DeviceTypes...)
	s.mu.Unlock()

	respond(c, out, "")
}

func (s *Server) getPanelTypes(c *gin.Context) {
	s.mu.Lock()
	out := append([]wire.PanelTypeResponse{}, s.config.PanelTypes...)
	s.mu.Unlock()

	respond(c, out, "")
}

func (s *Server) listPanels(c *gin.Context) {
	s.mu.Lock()
	out := make([]wire.PanelResponse, len(s.panels))
	copy(out, s.panels)
	s.mu.Unlock()

	respond(c, out, "")
}

func (s *Server) createPanel(c *gin.Context) {
	var req struct {
		ProjectID   string `json:"projectId"`
		Name        string `json:"name"`
		Location    string `json:"location"`
		PanelTypeID string `json:"panelTypeId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}

	totalSpaces := 0
	s.mu.Lock()
	for _, pt := range s.config.PanelTypes {
		if pt.ID == req.PanelTypeID {
			totalSpaces = pt.NumberOfRail
		}
	}
	panel := wire.PanelResponse{
		AuditModel:  newAudit(),
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Location:    req.Location,
		PanelTypeID: req.PanelTypeID,
		TotalSpaces: totalSpaces,
	}
	s.panels = append(s.panels, panel)
	s.mu.Unlock()

	respond(c, panel, "Panel created")
}

func (s *Server) updatePanel(c *gin.Context) {
	id := c.Param("id")

	var patch struct {
		Name     *string `json:"name"`
		Location *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.panels {
		if s.panels[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.panels[i].Name = *patch.Name
		}
		if patch.Location != nil {
			s.panels[i].Location = *patch.Location
		}
		s.panels[i].ModifiedOn = now()
		respond(c, s.panels[i], "Panel updated")
		return
	}
	respondError(c, http.StatusNotFound, "panel not found")
}

func (s *Server) deletePanel(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.panels {
		if s.panels[i].ID != id {
			continue
		}
		s.panels = append(s.panels[:i], s.panels[i+1:]...)
		respond(c, true, "Panel deleted")
		return
	}
	respondError(c, http.StatusNotFound, "panel not found")
}

func (s *Server) clonePanel(c *gin.Context) {
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
	for _, p := range s.panels {
		if p.ID != id {
			continue
		}
		clone := p
		clone.AuditModel = newAudit()
		clone.Name = req.Name
		s.panels = append(s.panels, clone)
		respond(c, clone, "Panel cloned")
		return
	}
	respondError(c, http.StatusNotFound, "panel not found")
}
