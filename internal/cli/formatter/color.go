package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/geopark-ops/guidelog/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PlanStatusPill returns a colored indicator such as "● 승인완료".
func PlanStatusPill(s domain.PlanStatus) string {
	switch s {
	case domain.PlanApproved:
		return StyleGreen.Render("● 승인완료")
	case domain.PlanSubmitted:
		return StyleYellow.Render("○ 제출")
	case domain.PlanDraft:
		return StyleDim.Render("… 임시저장")
	default:
		return StyleDim.Render(string(s))
	}
}

func LogStatusPill(s domain.LogStatus) string {
	switch s {
	case domain.LogApproved:
		return StyleGreen.Render("● 승인완료")
	case domain.LogPendingReview:
		return StyleYellow.Render("○ 검토대기")
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with an underline as wide as the text.
func Header(text string) string {
	line := strings.Repeat("─", lipgloss.Width(text))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(text), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

func Warn(text string) string {
	return StyleYellow.Render("! " + text)
}
