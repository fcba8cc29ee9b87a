package service

import "errors"

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrUnknownPage       = errors.New("unknown page")
	ErrDuplicatePageName = errors.New("page with this name already exists")
	ErrReservedSlug      = errors.New("page name collides with a reserved route")
	ErrMoveInProgress    = errors.New("another relocation is in progress")
)
