package group

import "errors"

var (
	ErrGroupNotFound     = errors.New("group not found")
	ErrSlugAlreadyExists = errors.New("group slug already exists")
)
