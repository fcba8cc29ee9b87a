package models

// GroupItem is a lightweight entry inside a group container's config.items.
// It is not a full DashboardItem; relocating one requires synthesizing a
// shortcut via ToDashboardItem.
type GroupItem struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Icon             string `json:"icon,omitempty"`
	URL              string `json:"url,omitempty"`
	AdminOnly        *bool  `json:"adminOnly,omitempty"`
	IsWol            *bool  `json:"isWol,omitempty"`
	MacAddress       string `json:"macAddress,omitempty"`
	BroadcastAddress string `json:"broadcastAddress,omitempty"`
	Port             *int   `json:"port,omitempty"`
	HealthURL        string `json:"healthUrl,omitempty"`
	HealthCheckType  string `json:"healthCheckType,omitempty"`
}

// ToDashboardItem synthesizes a top-level shortcut from a group member,
// carrying Wake-on-LAN and health-check fields into the config when present.
func (g GroupItem) ToDashboardItem() DashboardItem {
	item := DashboardItem{
		ID:        g.ID,
		Type:      TypeShortcut,
		Label:     g.Name,
		URL:       g.URL,
		Icon:      &Icon{Path: g.Icon, Name: g.Name},
		ShowLabel: true,
	}
	if g.AdminOnly != nil {
		item.AdminOnly = *g.AdminOnly
	}

	cfg := ItemConfig{}
	if g.IsWol != nil && *g.IsWol {
		cfg["isWol"] = true
		if g.MacAddress != "" {
			cfg["macAddress"] = g.MacAddress
		}
		if g.BroadcastAddress != "" {
			cfg["broadcastAddress"] = g.BroadcastAddress
		}
		if g.Port != nil {
			cfg["port"] = *g.Port
		}
	}
	if g.HealthURL != "" {
		cfg["healthUrl"] = g.HealthURL
	}
	if g.HealthCheckType != "" {
		cfg["healthCheckType"] = g.HealthCheckType
	}
	if len(cfg) > 0 {
		item.Config = cfg
	}

	return item
}
