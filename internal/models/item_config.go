package models

import (
	"encoding/json"
	"strings"
)

// securityFlagPrefix marks boolean fields of an item config that record the
// existence of a server-held secret bound to the item id (_hasApiToken,
// _hasPassword, ...). The secret value itself never reaches this service.
const securityFlagPrefix = "_has"

// Keys of nested sub-widget configs inside a dual container.
const (
	TopWidgetKey    = "topWidget"
	BottomWidgetKey = "bottomWidget"
)

// ItemConfig is the variant-specific payload of a dashboard item. It stays
// schemaless so unknown widget fields survive a round trip untouched.
type ItemConfig map[string]interface{}

func (c ItemConfig) Clone() ItemConfig {
	if c == nil {
		return nil
	}
	clone := make(ItemConfig, len(c))
	for key, value := range c {
		clone[key] = cloneValue(value)
	}
	return clone
}

func cloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(v))
		for key, nested := range v {
			m[key] = cloneValue(nested)
		}
		return m
	case []interface{}:
		s := make([]interface{}, 0, len(v))
		for _, nested := range v {
			s = append(s, cloneValue(nested))
		}
		return s
	default:
		return v
	}
}

// GroupItems decodes the member list of a group container. A non-group
// config yields an empty list.
func (c ItemConfig) GroupItems() []GroupItem {
	raw, ok := c["items"]
	if !ok {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var items []GroupItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	return items
}

// SetGroupItems replaces the member list, preserving the generic JSON
// representation of the config.
func (c ItemConfig) SetGroupItems(items []GroupItem) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	var generic []interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return
	}
	c["items"] = generic
}

// SubConfig returns the config of a nested sub-widget (topWidget or
// bottomWidget of a dual container), or nil when absent.
func (c ItemConfig) SubConfig(key string) ItemConfig {
	widget, ok := c[key].(map[string]interface{})
	if !ok {
		return nil
	}
	nested, ok := widget["config"].(map[string]interface{})
	if !ok {
		return nil
	}
	return ItemConfig(nested)
}

// SecurityFlags returns every _has* marker present on this config.
func (c ItemConfig) SecurityFlags() map[string]bool {
	flags := make(map[string]bool)
	for key, value := range c {
		if !strings.HasPrefix(key, securityFlagPrefix) {
			continue
		}
		if b, ok := value.(bool); ok {
			flags[key] = b
		}
	}
	return flags
}

// CopySecurityFlags copies every _has* marker from src onto dst verbatim.
// Flags are never fabricated: only keys present on src are written.
func CopySecurityFlags(dst, src ItemConfig) {
	if dst == nil || src == nil {
		return
	}
	for key, value := range src.SecurityFlags() {
		dst[key] = value
	}
}

// PreserveSecurityFlags re-asserts the security flags of src on dst,
// including those of dual-container sub-widgets.
func PreserveSecurityFlags(dst, src *DashboardItem) {
	if src.Config == nil {
		return
	}
	if dst.Config == nil && len(src.Config.SecurityFlags()) > 0 {
		dst.Config = ItemConfig{}
	}
	CopySecurityFlags(dst.Config, src.Config)

	for _, key := range []string{TopWidgetKey, BottomWidgetKey} {
		srcSub := src.Config.SubConfig(key)
		dstSub := dst.Config.SubConfig(key)
		if srcSub == nil || dstSub == nil {
			continue
		}
		CopySecurityFlags(dstSub, srcSub)
	}
}

// WidgetDataRequest is one entry of the batched initial-widget-data call.
type WidgetDataRequest struct {
	ID     string     `json:"id"`
	Type   string     `json:"type"`
	Config ItemConfig `json:"config,omitempty"`
}
