package entity

import "time"

type Collection struct {
	Name      string     `json:"name"`
	Resources []Resource `json:"resources"`
	CreatedAt time.Time  `json:"created_at"`
}

func (c *Collection) HasResource(id string) bool {
	for _, r := range c.Resources {
		if r.Id == id {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no backing array with c.
func (c *Collection) Clone() Collection {
	resources := make([]Resource, len(c.Resources))
	copy(resources, c.Resources)
	return Collection{
		Name:      c.Name,
		Resources: resources,
		CreatedAt: c.CreatedAt,
	}
}
