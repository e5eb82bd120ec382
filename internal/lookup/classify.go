// Package lookup maps the free-text estado, prioridad and tipo values sent by
// the legacy backend onto a small closed set of badge categories.
//
// Matching is case insensitive and first-match-wins in rule declaration
// order. Unmatched input always yields CategoryDefault.
package lookup

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a semantic badge category.
type Category string

// Estado categories.
const (
	CategoryPending    Category = "pending"
	CategoryInProgress Category = "in_progress"
	CategoryCompleted  Category = "completed"
	CategoryCancelled  Category = "cancelled"
)

// Prioridad categories.
const (
	CategoryHigh    Category = "high"
	CategoryMedium  Category = "medium"
	CategoryLow     Category = "low"
	CategoryOverdue Category = "overdue"
)

// CategoryDefault is returned for anything no rule matches.
const CategoryDefault Category = "default"

// DefaultLabel is shown for unclassified prioridad values.
const DefaultLabel = "N/A"

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// Tag is a classification result ready for a badge.
type Tag struct {
	Category Category `json:"category"`
	Color    string   `json:"color"`
}

// colors maps every category to its badge color.
var colors = map[Category]string{
	CategoryPending:    "warning",
	CategoryInProgress: "info",
	CategoryCompleted:  "success",
	CategoryCancelled:  "error",
	CategoryHigh:       "error",
	CategoryMedium:     "warning",
	CategoryLow:        "success",
	CategoryOverdue:    "secondary",
	CategoryDefault:    "default",
}

// TagFor returns the Tag of a category.
func TagFor(c Category) Tag {
	color, ok := colors[c]
	if !ok {
		return Tag{Category: CategoryDefault, Color: colors[CategoryDefault]}
	}
	return Tag{Category: c, Color: color}
}

// DefaultTag is the Tag for unmatched input.
func DefaultTag() Tag {
	return TagFor(CategoryDefault)
}

type rule struct {
	keywords []string
	category Category
}

// estadoRules are checked in order; the first rule with a keyword contained
// in the lower-cased input wins.
var estadoRules = []rule{
	{keywords: []string{"pendiente"}, category: CategoryPending},
	{keywords: []string{"proceso", "progreso"}, category: CategoryInProgress},
	{keywords: []string{"completa", "finaliza"}, category: CategoryCompleted},
	{keywords: []string{"cancela", "rechaza"}, category: CategoryCancelled},
}

// prioridadRules are matched exactly first, then by containment, both in
// table order.
var prioridadRules = []rule{
	{keywords: []string{"alta", "urgente"}, category: CategoryHigh},
	{keywords: []string{"media", "normal"}, category: CategoryMedium},
	{keywords: []string{"baja"}, category: CategoryLow},
	{keywords: []string{"atrasado"}, category: CategoryOverdue},
}

// lower lower-cases s with Spanish casing rules. cases.Caser is stateful, so
// it is not shared between goroutines.
func lower(s string) string {
	return cases.Lower(language.Spanish).String(s)
}

// ClassifyEstadoByName classifies a spelled-out estado such as
// "Pendiente de revisión" or "EN PROCESO".
func ClassifyEstadoByName(nombre string) Tag {
	value := lower(nombre)
	if value == "" {
		return DefaultTag()
	}
	for _, r := range estadoRules {
		for _, kw := range r.keywords {
			if strings.Contains(value, kw) {
				return TagFor(r.category)
			}
		}
	}
	return DefaultTag()
}

// ClassifyPrioridad classifies a prioridad value. An exact case-insensitive
// keyword match takes precedence over substring containment.
func ClassifyPrioridad(value string) Tag {
	v := strings.TrimSpace(lower(value))
	if v == "" {
		return DefaultTag()
	}
	for _, r := range prioridadRules {
		for _, kw := range r.keywords {
			if v == kw {
				return TagFor(r.category)
			}
		}
	}
	for _, r := range prioridadRules {
		for _, kw := range r.keywords {
			if strings.Contains(v, kw) {
				return TagFor(r.category)
			}
		}
	}
	return DefaultTag()
}
