package dto

type ExpandResourceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ExpandResourceResponse struct {
	Content string `json:"content"`
	Success bool   `json:"success"`
}
