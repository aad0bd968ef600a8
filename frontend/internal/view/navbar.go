package view

import (
	"netstream/frontend/pkg/model"
	"strings"
)

// scrollThreshold is the offset past which the navbar switches to its compact style.
const scrollThreshold = 50

// Navbar renders the navigation chrome.
type Navbar struct {
	scrolled bool
}

// Scroll records the page scroll offset and reports whether the navbar
// style changed.
func (n *Navbar) Scroll(offset int) bool {
	scrolled := offset > scrollThreshold
	if scrolled == n.scrolled {
		return false
	}
	n.scrolled = scrolled
	return true
}

// Scrolled reports whether the compact style is active.
func (n *Navbar) Scrolled() bool {
	return n.scrolled
}

// Render draws the navbar for the given user, highlighting the link matching path.
func (n *Navbar) Render(user *model.User, path string) string {
	link := func(label, to string) string {
		if to == path {
			return activeLink.Render(label)
		}
		return linkStyle.Render(label)
	}
	parts := []string{
		brandStyle.Render("NETSTREAM"),
		link("Home", "/"),
		link("Recommendations", "/recommendations"),
	}
	if user != nil {
		parts = append(parts, link("👤 "+user.Name, "/profile"))
	}
	style := navbarStyle
	if n.scrolled {
		style = navbarScrolledStyle
	}
	return style.Render(strings.Join(parts, "   "))
}
