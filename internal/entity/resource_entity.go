package entity

// Resource is a discoverable learning item returned by the scholar service.
// Id is only unique inside the list it arrived in.
type Resource struct {
	Id          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// ErrorResource builds the synthetic card shown when a chat turn fails.
func ErrorResource(reason string) Resource {
	return Resource{
		Id:          "error",
		Title:       "Error",
		Description: reason,
		Link:        "#",
	}
}
