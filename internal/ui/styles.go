package ui

import (
	"github.com/charmbracelet/lipgloss"

	"dataspect/internal/jsondoc"
)

type Styles struct {
	Title       lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Header      lipgloss.Style
	Selected    lipgloss.Style
	Dir         lipgloss.Style
	DataFile    lipgloss.Style
	Muted       lipgloss.Style
	Faint       lipgloss.Style
	StatusKey   lipgloss.Style
	StatusText  lipgloss.Style
	HintKey     lipgloss.Style

	PopupBox       lipgloss.Style
	PopupWarnBox   lipgloss.Style
	PopupErrBox    lipgloss.Style
	PopupOKBox     lipgloss.Style
	PopupTitle     lipgloss.Style
	PopupWarnTitle lipgloss.Style
	PopupErrTitle  lipgloss.Style
	PopupOKTitle   lipgloss.Style

	TreeArrow     lipgloss.Style
	TreeKey       lipgloss.Style
	TreeCount     lipgloss.Style
	TreeScalarKey lipgloss.Style
	TreeCursorBG  lipgloss.Color
	Scalar        map[jsondoc.ScalarType]lipgloss.Style
}

func NewStyles(dark bool) Styles {
	s := Styles{}
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	if dark {
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.TabActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
		s.TabInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
		s.Dir = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
		s.DataFile = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
		s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		s.Faint = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.StatusKey = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("232")).Background(lipgloss.Color("245"))
		s.StatusText = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))
		s.HintKey = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))

		s.PopupBox = box.Copy().BorderForeground(lipgloss.Color("81"))
		s.PopupWarnBox = box.Copy().BorderForeground(lipgloss.Color("220"))
		s.PopupErrBox = box.Copy().BorderForeground(lipgloss.Color("196"))
		s.PopupOKBox = box.Copy().BorderForeground(lipgloss.Color("40"))
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.PopupWarnTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
		s.PopupErrTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
		s.PopupOKTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40"))

		s.TreeArrow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
		s.TreeKey = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
		s.TreeCount = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.TreeScalarKey = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		s.TreeCursorBG = lipgloss.Color("238")
		s.Scalar = map[jsondoc.ScalarType]lipgloss.Style{
			jsondoc.ScalarString: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			jsondoc.ScalarNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
			jsondoc.ScalarBool:   lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
			jsondoc.ScalarNull:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		}
	} else {
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.TabActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("94"))
		s.TabInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("94"))
		s.Dir = lipgloss.NewStyle().Foreground(lipgloss.Color("25"))
		s.DataFile = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
		s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Faint = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		s.StatusKey = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("102"))
		s.StatusText = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("250"))
		s.HintKey = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))

		s.PopupBox = box.Copy().BorderForeground(lipgloss.Color("27"))
		s.PopupWarnBox = box.Copy().BorderForeground(lipgloss.Color("94"))
		s.PopupErrBox = box.Copy().BorderForeground(lipgloss.Color("124"))
		s.PopupOKBox = box.Copy().BorderForeground(lipgloss.Color("28"))
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.PopupWarnTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("94"))
		s.PopupErrTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("124"))
		s.PopupOKTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28"))

		s.TreeArrow = lipgloss.NewStyle().Foreground(lipgloss.Color("94"))
		s.TreeKey = lipgloss.NewStyle().Foreground(lipgloss.Color("27"))
		s.TreeCount = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		s.TreeScalarKey = lipgloss.NewStyle().Foreground(lipgloss.Color("235"))
		s.TreeCursorBG = lipgloss.Color("254")
		s.Scalar = map[jsondoc.ScalarType]lipgloss.Style{
			jsondoc.ScalarString: lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
			jsondoc.ScalarNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("27")),
			jsondoc.ScalarBool:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			jsondoc.ScalarNull:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		}
	}
	return s
}

// messageBox picks the popup frame for a Message popup by its title,
// red for errors and green otherwise.
func (s Styles) messageBox(title string) (lipgloss.Style, lipgloss.Style) {
	if containsError(title) {
		return s.PopupErrBox, s.PopupErrTitle
	}
	return s.PopupOKBox, s.PopupOKTitle
}
