package models

// MoveItemRequest relocates one item between page scopes. A nil page id
// addresses the main layout. View fields describe the scope the client is
// currently rendering so the response can carry its reconciled item list;
// they default to the source scope on desktop.
type MoveItemRequest struct {
	ItemID       string  `json:"item_id" binding:"required"`
	SourcePageID *string `json:"source_page_id"`
	TargetPageID *string `json:"target_page_id"`
	ViewPageID   *string `json:"view_page_id"`
	ViewDevice   string  `json:"view_device"`
}

type CreatePageRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=64"`
	AdminOnly bool   `json:"admin_only"`
}

type RenamePageRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

type SwitchPageRequest struct {
	PageID *string `json:"page_id"`
}

type PrefetchRequest struct {
	PageID *string `json:"page_id"`
	Device string  `json:"device"`
}

type ImportConfigRequest struct {
	Config *Config `json:"config" binding:"required"`
}
