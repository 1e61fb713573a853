package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// dayListInput returns a huh.Input for an optional day list such as "3,5,10-12".
func dayListInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("3,5,10-12").
		Value(value).
		Validate(validateDayList)
}

// hoursInput returns a huh.Input for explicit worked hours.
func hoursInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("근무 시간 (시간 단위)").
		Placeholder("6.5").
		Value(value).
		Validate(func(s string) error {
			d, err := decimal.NewFromString(s)
			if err != nil || d.IsNegative() {
				return fmt.Errorf("enter hours such as 6.5")
			}
			return nil
		})
}

func countInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("0").
		Value(value).
		Validate(validateNonNegativeInt)
}
