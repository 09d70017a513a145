package tui

import (
	"github.com/stefanpenner/tabfocus/pkg/store"
)

// ItemKind says what a list row points at.
type ItemKind int

const (
	KindSectionHeader ItemKind = iota
	KindTodo
	KindLink
)

// ListItem is one row of the todos-and-links panel.
type ListItem struct {
	ID   string
	Name string
	Kind ItemKind
	Todo store.Todo
	Link store.QuickLink
}

// IsSectionHeader reports whether the row is a non-selectable heading.
func (i ListItem) IsSectionHeader() bool { return i.Kind == KindSectionHeader }

// BuildListItems flattens todos and links under TODOS / LINKS headers.
// Empty sections are omitted.
func BuildListItems(todos []store.Todo, links []store.QuickLink) []ListItem {
	var items []ListItem
	if len(todos) > 0 {
		items = append(items, ListItem{Name: "TODOS", Kind: KindSectionHeader})
		for _, t := range todos {
			items = append(items, ListItem{ID: t.ID, Name: t.Text, Kind: KindTodo, Todo: t})
		}
	}
	if len(links) > 0 {
		items = append(items, ListItem{Name: "LINKS", Kind: KindSectionHeader})
		for _, l := range links {
			items = append(items, ListItem{ID: l.ID, Name: l.Name, Kind: KindLink, Link: l})
		}
	}
	return items
}

// nextSelectable returns the closest non-header index from start moving by
// step, or -1 if there is none.
func nextSelectable(items []ListItem, start, step int) int {
	for i := start; i >= 0 && i < len(items); i += step {
		if !items[i].IsSectionHeader() {
			return i
		}
	}
	return -1
}
