package mapper

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

var dayAliases = map[string]model.DayCode{
	"monday": model.Monday, "mon": model.Monday, "mo": model.Monday,
	"lunes": model.Monday, "lun": model.Monday, "lu": model.Monday,

	"tuesday": model.Tuesday, "tue": model.Tuesday, "tues": model.Tuesday, "tu": model.Tuesday,
	"martes": model.Tuesday, "mar": model.Tuesday, "ma": model.Tuesday,

	"wednesday": model.Wednesday, "wed": model.Wednesday, "we": model.Wednesday,
	"miercoles": model.Wednesday, "mie": model.Wednesday, "mier": model.Wednesday, "mi": model.Wednesday, "x": model.Wednesday,

	"thursday": model.Thursday, "thu": model.Thursday, "thur": model.Thursday, "thurs": model.Thursday, "th": model.Thursday,
	"jueves": model.Thursday, "jue": model.Thursday, "ju": model.Thursday,

	"friday": model.Friday, "fri": model.Friday, "fr": model.Friday,
	"viernes": model.Friday, "vie": model.Friday, "vi": model.Friday,

	"saturday": model.Saturday, "sat": model.Saturday, "sa": model.Saturday,
	"sabado": model.Saturday, "sab": model.Saturday,

	"sunday": model.Sunday, "sun": model.Sunday, "su": model.Sunday,
	"domingo": model.Sunday, "dom": model.Sunday, "do": model.Sunday,
}

// NormalizeDayCode maps an English or Spanish weekday name or abbreviation
// to its canonical code. Unrecognized values return false.
func NormalizeDayCode(value string) (model.DayCode, bool) {
	folded := strings.TrimSuffix(Fold(value), ".")
	if folded == "" {
		return "", false
	}
	if code, ok := dayAliases[folded]; ok {
		return code, true
	}

	r := []rune(StripDiacritics(strings.TrimSpace(value)))
	if len(r) < 3 {
		return "", false
	}
	candidate := model.DayCode(cases.Title(language.English).String(string(r[:3])))
	for _, code := range model.DayCodes {
		if code == candidate {
			return code, true
		}
	}
	return "", false
}

// DayCodePtr is NormalizeDayCode for optional fields.
func DayCodePtr(value string) *model.DayCode {
	if code, ok := NormalizeDayCode(value); ok {
		return &code
	}
	return nil
}

// DayCodeForDate derives the weekday code of t in its own location.
func DayCodeForDate(t time.Time) model.DayCode {
	code, _ := NormalizeDayCode(t.Weekday().String())
	return code
}
