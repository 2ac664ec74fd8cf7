package api

import "github.com/terraincognita07/daylog/internal/models"

type credentialsInput struct {
	Username   string `json:"username" form:"username"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
	Next       string `json:"next" form:"next"`
}

type entryPayload struct {
	Title      string             `json:"title"`
	TextBlocks []models.TextBlock `json:"textBlocks"`
}

// reorderPayload accepts either an index move or a drop of one display item
// onto another.
type reorderPayload struct {
	From    *int   `json:"from"`
	To      *int   `json:"to"`
	Dragged string `json:"dragged"`
	Target  string `json:"target"`
}

type mediaUploadResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}
