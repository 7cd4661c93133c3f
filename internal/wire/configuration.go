package wire

import "github.com/luxgrid/luxgrid-admin/internal/domain"

type DeviceTypeResponse struct {
	AuditModel
	Name string `json:"Name"`
}

type PanelTypeResponse struct {
	AuditModel
	Name         string `json:"Name"`
	NumberOfRail int    `json:"NumberOfRail"`
	IsRoomBox    bool   `json:"IsRoomBox"`
}

type ContentAssetResponse struct {
	AuditModel
	FileName      string `json:"FileName"`
	FileExtension string `json:"FileExtension"`
	URL           string `json:"Url"`
}

type DeviceResponse struct {
	AuditModel
	Name            string                 `json:"Name"`
	Description     string                 `json:"Description"`
	PowerMAAdded    *float64               `json:"PowerMAAdded"`
	PowerMADraw     *float64               `json:"PowerMADraw"`
	LogicMaxAllowed *float64               `json:"LogicMaxAllowed"`
	DeviceTypeID    string                 `json:"DeviceTypeId"`
	RailSpace       *float64               `json:"RailSpace"`
	NumberOfDin     *int                   `json:"NumberOfDin"`
	DinSpace        *float64               `json:"DinSpace"`
	ContentAssets   []ContentAssetResponse `json:"ContentAssets,omitempty"`
}

// ConfigurationResponse is the bundled payload of GET /configurations.
type ConfigurationResponse struct {
	DeviceTypes []DeviceTypeResponse `json:"deviceTypes"`
	PanelTypes  []PanelTypeResponse  `json:"panelTypes"`
	Devices     []DeviceResponse     `json:"devices"`
}

func MapDeviceType(r DeviceTypeResponse) domain.DeviceType {
	return domain.DeviceType{
		ID:    r.ID,
		Name:  r.Name,
		Audit: mapAudit(r.AuditModel),
	}
}

func MapPanelType(r PanelTypeResponse) domain.PanelType {
	return domain.PanelType{
		ID:           r.ID,
		Name:         r.Name,
		NumberOfRail: r.NumberOfRail,
		IsRoomBox:    r.IsRoomBox,
		Audit:        mapAudit(r.AuditModel),
	}
}

func MapContentAsset(r ContentAssetResponse) domain.ContentAsset {
	return domain.ContentAsset{
		ID:            r.ID,
		FileName:      r.FileName,
		FileExtension: r.FileExtension,
		URL:           r.URL,
		Audit:         mapAudit(r.AuditModel),
	}
}

// MapDevice renames a wire device. ContentAssets stays nil when the source
// field is absent; an attached-but-empty list maps to an empty slice. The
// distinction carries the "no assets association" semantics.
func MapDevice(r DeviceResponse) domain.Device {
	d := domain.Device{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		PowerMAAdded:    r.PowerMAAdded,
		PowerMADraw:     r.PowerMADraw,
		LogicMaxAllowed: r.LogicMaxAllowed,
		DeviceTypeID:    r.DeviceTypeID,
		RailSpace:       r.RailSpace,
		NumberOfDin:     r.NumberOfDin,
		DinSpace:        r.DinSpace,
		Audit:           mapAudit(r.AuditModel),
	}
	if r.ContentAssets != nil {
		d.ContentAssets = make([]domain.ContentAsset, 0, len(r.ContentAssets))
		for _, a := range r.ContentAssets {
			d.ContentAssets = append(d.ContentAssets, MapContentAsset(a))
		}
	}
	return d
}

func MapConfiguration(r ConfigurationResponse) domain.Configuration {
	cfg := domain.Configuration{
		DeviceTypes: make([]domain.DeviceType, 0, len(r.DeviceTypes)),
		PanelTypes:  make([]domain.PanelType, 0, len(r.PanelTypes)),
		Devices:     make([]domain.Device, 0, len(r.Devices)),
	}
	for _, dt := range r.DeviceTypes {
		cfg.DeviceTypes = append(cfg.DeviceTypes, MapDeviceType(dt))
	}
	for _, pt := range r.PanelTypes {
		cfg.PanelTypes = append(cfg.PanelTypes, MapPanelType(pt))
	}
	for _, d := range r.Devices {
		cfg.Devices = append(cfg.Devices, MapDevice(d))
	}
	return cfg
}
