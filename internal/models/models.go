package models

import (
	"strings"

	"homegrid-backend/pkg/utils"
)

// Device selects one of the two independently ordered item sequences of a
// layout scope.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
)

func ParseDevice(value string) Device {
	if strings.EqualFold(strings.TrimSpace(value), string(DeviceMobile)) {
		return DeviceMobile
	}
	return DeviceDesktop
}

// Dashboard item types. Static kinds render without any upstream data.
const (
	TypeShortcut    = "shortcut"
	TypeBlank       = "blank"
	TypeBlankRow    = "blankRow"
	TypeGroup       = "group"
	TypeDual        = "dual"
	TypeWeather     = "weather"
	TypeCalendar    = "calendar"
	TypeAdGuard     = "adguard"
	TypeMediaServer = "mediaServer"
	TypeTorrent     = "torrent"
	TypeMarket      = "market"
	TypeSystemStats = "systemStats"
)

// StaticType reports whether an item type needs no initial widget payload.
func StaticType(itemType string) bool {
	switch itemType {
	case TypeShortcut, TypeBlank, TypeBlankRow:
		return true
	}
	return false
}

type Icon struct {
	Path string `json:"path"`
	Name string `json:"name,omitempty"`
}

// DashboardItem is one entry of a device layout sequence. The Config payload
// is variant-specific; group containers keep their members under
// config.items and dual containers keep two sub-widgets under
// config.topWidget / config.bottomWidget.
type DashboardItem struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Label     string     `json:"label,omitempty"`
	Icon      *Icon      `json:"icon,omitempty"`
	URL       string     `json:"url,omitempty"`
	ShowLabel bool       `json:"showLabel,omitempty"`
	AdminOnly bool       `json:"adminOnly,omitempty"`
	Config    ItemConfig `json:"config,omitempty"`
}

func (i DashboardItem) Clone() DashboardItem {
	clone := i
	if i.Icon != nil {
		icon := *i.Icon
		clone.Icon = &icon
	}
	clone.Config = i.Config.Clone()
	return clone
}

func CloneItems(items []DashboardItem) []DashboardItem {
	cloned := make([]DashboardItem, 0, len(items))
	for _, item := range items {
		cloned = append(cloned, item.Clone())
	}
	return cloned
}

// mobileBootstrapThreshold: a mobile sequence this short is treated as never
// having been arranged and is re-seeded from desktop on the next save that
// touches its scope.
const mobileBootstrapThreshold = 3

// DeviceLayout holds the two device orderings of one scope. They cover the
// same conceptual item set but may diverge in order and membership.
type DeviceLayout struct {
	Desktop []DashboardItem `json:"desktop"`
	Mobile  []DashboardItem `json:"mobile"`
}

func (l DeviceLayout) ForDevice(device Device) []DashboardItem {
	if device == DeviceMobile {
		return l.Mobile
	}
	return l.Desktop
}

func (l DeviceLayout) Clone() DeviceLayout {
	return DeviceLayout{
		Desktop: CloneItems(l.Desktop),
		Mobile:  CloneItems(l.Mobile),
	}
}

func (l *DeviceLayout) MobileUninitialized() bool {
	return len(l.Mobile) <= mobileBootstrapThreshold
}

// BootstrapMobile overwrites an uninitialized mobile sequence with a copy of
// desktop. Call before persisting a save that touches this scope.
func (l *DeviceLayout) BootstrapMobile() {
	if l.MobileUninitialized() {
		l.SeedMobileFromDesktop()
	}
}

// SeedMobileFromDesktop replaces the mobile sequence with a copy of desktop.
func (l *DeviceLayout) SeedMobileFromDesktop() {
	l.Mobile = CloneItems(l.Desktop)
}

// withDefaults guarantees non-nil item slices so a merged document never
// carries null sequences.
func (l DeviceLayout) withDefaults() DeviceLayout {
	if l.Desktop == nil {
		l.Desktop = []DashboardItem{}
	}
	if l.Mobile == nil {
		l.Mobile = []DashboardItem{}
	}
	return l
}

// Page is a named, independently addressable collection of two device
// layouts. The ID is generated once at creation and never changes; the URL
// slug is derived from the name.
type Page struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	AdminOnly bool         `json:"adminOnly,omitempty"`
	Layout    DeviceLayout `json:"layout"`
}

func (p Page) Slug() string {
	return utils.PageSlug(p.Name)
}

func (p Page) Clone() Page {
	clone := p
	clone.Layout = p.Layout.Clone()
	return clone
}

// Config is the root document owned by the document store. The client-side
// copy is the merge target for partial updates.
type Config struct {
	Layout DeviceLayout `json:"layout"`
	Pages  []Page       `json:"pages"`

	Title string `json:"title,omitempty"`
	Theme string `json:"theme,omitempty"`
}

func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := &Config{
		Layout: c.Layout.Clone(),
		Title:  c.Title,
		Theme:  c.Theme,
	}
	clone.Pages = make([]Page, 0, len(c.Pages))
	for _, page := range c.Pages {
		clone.Pages = append(clone.Pages, page.Clone())
	}
	return clone
}

func (c *Config) FindPage(id string) *Page {
	for i := range c.Pages {
		if c.Pages[i].ID == id {
			return &c.Pages[i]
		}
	}
	return nil
}

// PageBySlug matches a page by its derived slug, ignoring case.
func (c *Config) PageBySlug(slug string) *Page {
	for i := range c.Pages {
		if strings.EqualFold(c.Pages[i].Slug(), slug) {
			return &c.Pages[i]
		}
	}
	return nil
}

// ConfigPatch carries only the top-level keys a save touches. The document
// store merges it server-side; Apply performs the equivalent local merge.
type ConfigPatch struct {
	Layout *DeviceLayout `json:"layout,omitempty"`
	Pages  *[]Page       `json:"pages,omitempty"`
	Title  *string       `json:"title,omitempty"`
	Theme  *string       `json:"theme,omitempty"`
}

// Apply merges a patch into the document: shallow at the top level, with the
// layout falling back to empty item sequences when absent on either side.
func (c *Config) Apply(patch ConfigPatch) {
	if patch.Layout != nil {
		c.Layout = patch.Layout.Clone().withDefaults()
	} else {
		c.Layout = c.Layout.withDefaults()
	}
	if patch.Pages != nil {
		pages := make([]Page, 0, len(*patch.Pages))
		for _, page := range *patch.Pages {
			pages = append(pages, page.Clone())
		}
		c.Pages = pages
	}
	for i := range c.Pages {
		c.Pages[i].Layout = c.Pages[i].Layout.withDefaults()
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Theme != nil {
		c.Theme = *patch.Theme
	}
}
