package view

import "github.com/charmbracelet/lipgloss"

var (
	brandStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E50914"))
	linkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E5E5"))
	activeLink = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#FFFFFF"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))

	navbarStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("#333333"))
	navbarScrolledStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Background(lipgloss.Color("#141414"))

	heroTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	sectionStyle     = lipgloss.NewStyle().Bold(true).MarginTop(1).Foreground(lipgloss.Color("#E5E5E5"))
	ratingStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5C518"))
	badgeStyle       = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("#333333"))
	buttonStyle      = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	disabledButton   = buttonStyle.Foreground(lipgloss.Color("#555555"))
	selectedStar     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5C518"))
	unselectedStar   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	activeTabStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(lipgloss.Color("#E50914"))
	inactiveTabStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#B3B3B3"))

	cardStyle = lipgloss.NewStyle().
			Width(26).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333333"))
	cardTitleStyle = lipgloss.NewStyle().Bold(true)

	alertStyles = map[AlertKind]lipgloss.Style{
		AlertError:   alertBase.BorderForeground(lipgloss.Color("#F45E6E")).Foreground(lipgloss.Color("#F45E6E")),
		AlertWarning: alertBase.BorderForeground(lipgloss.Color("#F4C06E")).Foreground(lipgloss.Color("#F4C06E")),
		AlertInfo:    alertBase.BorderForeground(lipgloss.Color("#6EC4F4")).Foreground(lipgloss.Color("#6EC4F4")),
		AlertSuccess: alertBase.BorderForeground(lipgloss.Color("#6EF4A1")).Foreground(lipgloss.Color("#6EF4A1")),
	}
)

var alertBase = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
