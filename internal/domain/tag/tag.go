package tag

import "errors"

var ErrNotFound = errors.New("tag not found")

type Tag struct {
	ID      int64  `json:"id"`
	OwnerID string `json:"-"`
	Name    string `json:"name"`
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}
