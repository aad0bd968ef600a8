package view

// AlertKind defines the severity of an alert panel.
type AlertKind int

// Alert kinds.
const (
	AlertError AlertKind = iota
	AlertWarning
	AlertInfo
	AlertSuccess
)

// Alert renders msg in a bordered panel coloured by kind.
func Alert(kind AlertKind, msg string) string {
	style, ok := alertStyles[kind]
	if !ok {
		style = alertBase
	}
	return style.Render(msg)
}
