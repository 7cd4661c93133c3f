package domain

// DeviceType is read-only reference data describing a category of device.
type DeviceType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Audit
}

// PanelType describes a panel enclosure and its rail capacity.
type PanelType struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NumberOfRail int    `json:"numberOfRail"`
	IsRoomBox    bool   `json:"isRoomBox"`
	Audit
}

// ContentAsset is a downloadable document attached to a device.
type ContentAsset struct {
	ID            string `json:"id"`
	FileName      string `json:"fileName"`
	FileExtension string `json:"fileExtension"`
	URL           string `json:"url"`
	Audit
}

// Device is a placeable panel component. Power and space figures are nullable
// on the wire and stay pointers here.
type Device struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	PowerMAAdded    *float64       `json:"powerMAAdded"`
	PowerMADraw     *float64       `json:"powerMADraw"`
	LogicMaxAllowed *float64       `json:"logicMaxAllowed"`
	DeviceTypeID    string         `json:"deviceTypeId"`
	RailSpace       *float64       `json:"railSpace"`
	NumberOfDin     *int           `json:"numberOfDin"`
	DinSpace        *float64       `json:"dinSpace"`
	ContentAssets   []ContentAsset `json:"contentAssets,omitempty"`
	Audit
}

// Configuration is the bundled reference data fetched once per authenticated
// session.
type Configuration struct {
	DeviceTypes []DeviceType `json:"deviceTypes"`
	PanelTypes  []PanelType  `json:"panelTypes"`
	Devices     []Device     `json:"devices"`
}
