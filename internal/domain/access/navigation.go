// Package access maps roles to navigation and to render-time capabilities.
// Everything here is pure: no I/O, no clocks, no shared mutable state.
package access

import (
	"strings"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
)

// NavigationSection is one entry of the side navigation.
type NavigationSection struct {
	Title    string
	Href     string
	Icon     string
	Children []NavigationSection
	Active   bool
}

func item(title, href, icon string) NavigationSection {
	return NavigationSection{Title: title, Href: href, Icon: icon}
}

func group(title, icon string, children ...NavigationSection) NavigationSection {
	return NavigationSection{Title: title, Icon: icon, Children: children}
}

// navigation is the total role -> menu table. Every domainauth.KnownRoles entry must appear.
//
//nolint:gochecknoglobals // static read-only table; NavigationFor hands out deep copies
var navigation = map[domainauth.Role][]NavigationSection{
	domainauth.RoleAdmin: {
		item("Home", "/", "home"),
		group("User Management", "users",
			item("Students", "/students", "graduation-cap"),
			item("Coordinators", "/coordinators", "clipboard"),
			item("Managers", "/managers", "briefcase"),
			item("Guests", "/guests", "user"),
		),
		item("Manage Magazines", "/events", "book-open"),
		item("Faculty Management", "/faculties", "building"),
	},
	domainauth.RoleManager: {
		item("Home", "/", "home"),
		group("User Management", "users",
			item("Students", "/students", "graduation-cap"),
			item("Coordinators", "/coordinators", "clipboard"),
		),
		item("Manage Magazines", "/events", "book-open"),
	},
	domainauth.RoleMarketingCoordinator: {
		item("Home", "/", "home"),
		item("Contributions", "/contributions", "file-text"),
		item("Students", "/students", "graduation-cap"),
	},
	domainauth.RoleStudent: {
		item("Home", "/", "home"),
		item("My Contributions", "/contributions", "file-text"),
		item("New Magazines", "/events", "book-open"),
	},
	domainauth.RoleGuest: {
		item("Home", "/", "home"),
		item("Contributions", "/contributions", "file-text"),
	},
}

// NavigationFor returns the ordered navigation for role.
// Unknown roles yield nil, which callers render as no navigation.
// The result is a fresh copy on every call.
func NavigationFor(role domainauth.Role) []NavigationSection {
	sections, ok := navigation[role]
	if !ok {
		return nil
	}
	return cloneSections(sections)
}

func cloneSections(in []NavigationSection) []NavigationSection {
	if in == nil {
		return nil
	}
	out := make([]NavigationSection, len(in))
	for i, s := range in {
		out[i] = s
		out[i].Children = cloneSections(s.Children)
	}
	return out
}

// ActiveSection marks the section (and child) whose href best matches path.
// Home only matches "/" exactly; other hrefs match by path segment prefix.
func ActiveSection(sections []NavigationSection, path string) []NavigationSection {
	for i := range sections {
		sections[i].Children = ActiveSection(sections[i].Children, path)
		active := hrefMatches(sections[i].Href, path)
		for _, c := range sections[i].Children {
			active = active || c.Active
		}
		sections[i].Active = active
	}
	return sections
}

func hrefMatches(href, path string) bool {
	switch {
	case href == "":
		return false
	case href == "/":
		return path == "/"
	default:
		return path == href || strings.HasPrefix(path, href+"/")
	}
}
