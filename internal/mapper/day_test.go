package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/practice-dashboard/internal/model"
)

func TestNormalizeDayCode(t *testing.T) {
	for _, in := range []string{"Lunes", "lun", "Monday", "MON", " lunes ", "Mondays"} {
		code, ok := NormalizeDayCode(in)
		assert.True(t, ok, in)
		assert.Equal(t, model.Monday, code, in)
	}

	cases := map[string]model.DayCode{
		"Miércoles": model.Wednesday,
		"miercoles": model.Wednesday,
		"MIÉ":       model.Wednesday,
		"Sábado":    model.Saturday,
		"sab.":      model.Saturday,
		"thurs":     model.Thursday,
		"Domingo":   model.Sunday,
		"Vie":       model.Friday,
		"Tue":       model.Tuesday,
	}
	for in, want := range cases {
		code, ok := NormalizeDayCode(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, code, in)
	}

	for _, in := range []string{"Funday", "", "  ", "xy", "12"} {
		_, ok := NormalizeDayCode(in)
		assert.False(t, ok, in)
	}
	assert.Nil(t, DayCodePtr("Funday"))
}

func TestDayCodeForDate(t *testing.T) {
	// 2024-01-01 was a Monday
	d := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, model.Monday, DayCodeForDate(d))
	assert.Equal(t, model.Sunday, DayCodeForDate(d.AddDate(0, 0, 6)))
}
