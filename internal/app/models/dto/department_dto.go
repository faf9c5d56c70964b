package dto

import "github.com/alimon808/ContosoUniversity2017/internal/app/models"

// SelectOption is one entry of a drop-down list
type SelectOption struct {
	Value    int64  `json:"value" example:"1"`
	Text     string `json:"text" example:"Engineering"`
	Selected bool   `json:"selected"`
}

// DepartmentSummary is the department embedded in course views
type DepartmentSummary struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Engineering"`
}

// NewDepartmentSelectList builds drop-down options in the order given, marking
// selected (when non-nil) as the preselected value.
func NewDepartmentSelectList(departments []*models.Department, selected *int64) []SelectOption {
	options := make([]SelectOption, 0, len(departments))
	for _, d := range departments {
		options = append(options, SelectOption{
			Value:    d.ID,
			Text:     d.Name,
			Selected: selected != nil && *selected == d.ID,
		})
	}
	return options
}
