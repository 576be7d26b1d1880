package post

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")

	// ErrNotPostAuthor means the acting user is not the post's author.
	// Handlers translate it into a silent redirect to the read-only view,
	// never into a user-facing failure.
	ErrNotPostAuthor = errors.New("not the post author")

	// ErrInvalidGroup means the supplied group reference does not exist;
	// treated as a validation failure.
	ErrInvalidGroup = errors.New("group does not exist")

	ErrInvalidImageType = errors.New("unsupported image type")
)
