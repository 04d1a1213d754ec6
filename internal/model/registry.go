package model

import "strings"

// Project is a known project row from the config registry.
type Project struct {
	Name        string
	DocID       string
	Status      string
	Description string
}

// Tag is a known tag row from the config registry.
type Tag struct {
	Name     string
	Category string
}

// Registry is a snapshot of known projects and tags. It is loaded fresh for
// every classification and never cached.
type Registry struct {
	Projects []Project
	Tags     []Tag
}

// FindProject returns the first project whose name equals name ignoring case.
// Substrings never match.
func (r Registry) FindProject(name string) (Project, bool) {
	for _, p := range r.Projects {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Project{}, false
}

// ProjectFromRow maps a Projects row (Name | Doc ID | Status | Description).
// Missing trailing cells become empty strings.
func ProjectFromRow(row []string) Project {
	return Project{
		Name:        cell(row, 0),
		DocID:       cell(row, 1),
		Status:      cell(row, 2),
		Description: cell(row, 3),
	}
}

// TagFromRow maps a Tags row (Tag Name | Category).
func TagFromRow(row []string) Tag {
	return Tag{
		Name:     cell(row, 0),
		Category: cell(row, 1),
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// Row is the inverse of ProjectFromRow.
func (p Project) Row() []string {
	return []string{p.Name, p.DocID, p.Status, p.Description}
}

// Row is the inverse of TagFromRow.
func (t Tag) Row() []string {
	return []string{t.Name, t.Category}
}
