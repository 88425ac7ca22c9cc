package compare

import "github.com/charmbracelet/lipgloss"

const (
	nominalRepoSymbolConstant         = "·"
	untrackedRepoSymbolConstant       = "?"
	missingRepoSymbolConstant         = "✗"
	superProjectSymbolConstant        = "^"
	unstagedFlagSymbolConstant        = "*"
	stagedFlagSymbolConstant          = "+"
	untrackedFilesFlagSymbolConstant  = "%"
	stashFlagSymbolConstant           = "$"
	aheadIndicatorTemplateConstant    = "<%d"
	behindIndicatorTemplateConstant   = ">%d"
	divergedIndicatorTemplateConstant = "<%d >%d"
	localIndicatorLabelConstant       = "local"
	errorIndicatorLabelConstant       = "!"
)

// Theme bundles the symbols and styles used by the renderer and legend.
// Instances are immutable once constructed; substituting a theme (for
// example the plain variant) never mutates global state.
type Theme struct {
	NominalRepoSymbol        string
	UntrackedRepoSymbol      string
	MissingRepoSymbol        string
	SuperProjectSymbol       string
	UnstagedFlagSymbol       string
	StagedFlagSymbol         string
	UntrackedFilesFlagSymbol string
	StashFlagSymbol          string

	AheadIndicatorTemplate    string
	BehindIndicatorTemplate   string
	DivergedIndicatorTemplate string
	LocalIndicatorLabel       string
	ErrorIndicatorLabel       string

	HeaderStyle        lipgloss.Style
	MutedStyle         lipgloss.Style
	AttentionStyle     lipgloss.Style
	ErrorStyle         lipgloss.Style
	MatchStyle         lipgloss.Style
	MismatchStyle      lipgloss.Style
	InvalidBranchStyle lipgloss.Style
	AlternateRowStyle  lipgloss.Style
	LegendStyle        lipgloss.Style
}

// DefaultTheme returns the colored theme used for interactive terminals.
func DefaultTheme() Theme {
	theme := PlainTheme()
	theme.HeaderStyle = lipgloss.NewStyle().Bold(true)
	theme.MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	theme.AttentionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	theme.ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	theme.MatchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	theme.MismatchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	theme.InvalidBranchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	theme.AlternateRowStyle = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	theme.LegendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return theme
}

// PlainTheme returns a theme without any styling, suitable for piped output
// and deterministic tests.
func PlainTheme() Theme {
	return Theme{
		NominalRepoSymbol:        nominalRepoSymbolConstant,
		UntrackedRepoSymbol:      untrackedRepoSymbolConstant,
		MissingRepoSymbol:        missingRepoSymbolConstant,
		SuperProjectSymbol:       superProjectSymbolConstant,
		UnstagedFlagSymbol:       unstagedFlagSymbolConstant,
		StagedFlagSymbol:         stagedFlagSymbolConstant,
		UntrackedFilesFlagSymbol: untrackedFilesFlagSymbolConstant,
		StashFlagSymbol:          stashFlagSymbolConstant,

		AheadIndicatorTemplate:    aheadIndicatorTemplateConstant,
		BehindIndicatorTemplate:   behindIndicatorTemplateConstant,
		DivergedIndicatorTemplate: divergedIndicatorTemplateConstant,
		LocalIndicatorLabel:       localIndicatorLabelConstant,
		ErrorIndicatorLabel:       errorIndicatorLabelConstant,

		HeaderStyle:        lipgloss.NewStyle(),
		MutedStyle:         lipgloss.NewStyle(),
		AttentionStyle:     lipgloss.NewStyle(),
		ErrorStyle:         lipgloss.NewStyle(),
		MatchStyle:         lipgloss.NewStyle(),
		MismatchStyle:      lipgloss.NewStyle(),
		InvalidBranchStyle: lipgloss.NewStyle(),
		AlternateRowStyle:  lipgloss.NewStyle(),
		LegendStyle:        lipgloss.NewStyle(),
	}
}
