package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/geopark-ops/guidelog/internal/cli/formatter"
	"github.com/geopark-ops/guidelog/internal/domain"
)

// guidelogHuhTheme returns a custom huh theme using the formatter palette.
func guidelogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themed(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(guidelogHuhTheme()).WithShowHelp(false)
}

// placeForm asks for an island and then one of that island's posts.
type placeForm struct {
	Island string
	Post   string
}

func wizardSelectPlace(locations domain.Locations, place *placeForm) *huh.Form {
	islands := locations.Islands()
	if place.Island == "" && len(islands) > 0 {
		place.Island = islands[0]
	}
	return themed(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("섬").
				Options(huh.NewOptions(islands...)...).
				Value(&place.Island),
			huh.NewSelect[string]().
				Title("안내소").
				OptionsFunc(func() []huh.Option[string] {
					posts, _ := locations.Posts(place.Island)
					return huh.NewOptions(posts...)
				}, &place.Island).
				Value(&place.Post),
		),
	)
}

// planForm collects one guide's plan for a month.
type planForm struct {
	Person string
	Period string
	Days   string
	Shift  string
	Note   string
}

func wizardPlan(f *planForm) *huh.Form {
	if f.Period == "" {
		f.Period = string(domain.PeriodMonth)
	}
	if f.Shift == "" {
		f.Shift = domain.FullDay.Descriptor()
	}
	return themed(
		huh.NewGroup(
			huh.NewInput().
				Title("해설사 이름").
				Value(&f.Person).
				Validate(requiredText("해설사 이름")),
			huh.NewSelect[string]().
				Title("기간").
				Options(periodOptions()...).
				Value(&f.Period),
			dayListInput("근무일 (비우면 기간 전체)", &f.Days),
			huh.NewSelect[string]().
				Title("근무 형태").
				Options(
					huh.NewOption("종일 (8H)", domain.FullDay.Descriptor()),
					huh.NewOption("오전", domain.MorningHalf.Descriptor()),
					huh.NewOption("오후", domain.AfternoonHalf.Descriptor()),
				).
				Value(&f.Shift),
			huh.NewInput().
				Title("비고").
				Value(&f.Note),
		),
	)
}

// activityRowForm is one line of the monthly activity form as typed.
type activityRowForm struct {
	Day         string
	Person      string
	Option      string
	CustomHours string
	Visitors    string
	Listeners   string
	Narrations  string
	Tags        string
}

func wizardActivityRow(f *activityRowForm) *huh.Form {
	if f.Option == "" {
		f.Option = string(domain.HoursFullDay)
	}
	return themed(
		huh.NewGroup(
			huh.NewInput().
				Title("일").
				Value(&f.Day).
				Validate(validateDay),
			huh.NewInput().
				Title("해설사 이름").
				Value(&f.Person).
				Validate(requiredText("해설사 이름")),
			huh.NewSelect[string]().
				Title("근무 시간").
				Options(huh.NewOptions(
					string(domain.HoursFullDay),
					string(domain.HoursHalfDay),
					string(domain.HoursCustom),
				)...).
				Value(&f.Option),
		),
		huh.NewGroup(
			hoursInput(&f.CustomHours),
		).WithHideFunc(func() bool { return f.Option != string(domain.HoursCustom) }),
		huh.NewGroup(
			countInput("방문객 수", &f.Visitors),
			countInput("청취 인원", &f.Listeners),
			countInput("해설 횟수", &f.Narrations),
			huh.NewInput().
				Title("분류 (쉼표로 구분)").
				Value(&f.Tags),
		),
	)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return themed(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("예").
				Negative("아니오").
				Value(result),
		),
	)
}

func periodOptions() []huh.Option[string] {
	periods := []domain.Period{domain.PeriodMonth, domain.PeriodFirstHalf, domain.PeriodSecondHalf}
	opts := make([]huh.Option[string], 0, len(periods))
	for _, p := range periods {
		opts = append(opts, huh.NewOption(p.Label(), string(p)))
	}
	return opts
}

func requiredText(title string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", title)
		}
		return nil
	}
}

// parseCount parses s as a non-negative integer; empty means zero. Forms
// have already validated the text.
func parseCount(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func validateDay(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 || v > 31 {
		return fmt.Errorf("enter a day between 1 and 31")
	}
	return nil
}

func validateDayList(s string) error {
	_, err := parseDays(s)
	return err
}
