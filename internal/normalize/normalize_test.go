package normalize

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/gyeh/attstats/internal/model"
)

func date(y int, m time.Month, d, h int) null.Time {
	return null.TimeFrom(time.Date(y, m, d, h, 0, 0, 0, time.UTC))
}

func TestParseDate_DayFirst(t *testing.T) {
	got := ParseDate(" 03/04/2018 07:15:00 ")
	require.True(t, got.Valid)
	assert.Equal(t, time.Date(2018, time.April, 3, 7, 15, 0, 0, time.UTC), got.Time)

	got = ParseDate("13/08/2018")
	require.True(t, got.Valid)
	assert.Equal(t, time.August, got.Time.Month())
	assert.Equal(t, 13, got.Time.Day())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "   ", "not a date", "32/13/2018"} {
		assert.False(t, ParseDate(s).Valid, "input %q", s)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2018-08-13 05:00:00", FormatDate(date(2018, 8, 13, 5), model.TimeLayout).String)
	assert.False(t, FormatDate(null.Time{}, model.TimeLayout).Valid)
}

func TestAge(t *testing.T) {
	age := Age(date(2018, 8, 13, 10), date(2000, 1, 1, 0))
	require.True(t, age.Valid)
	assert.Equal(t, int64(18), age.Int64)

	// 4379 days is 11.997 "years" under the days/365 rule.
	age = Age(date(2011, 12, 28, 0), date(2000, 1, 1, 0))
	assert.Equal(t, int64(11), age.Int64)

	assert.False(t, Age(null.Time{}, date(2000, 1, 1, 0)).Valid)
	assert.False(t, Age(date(2018, 1, 1, 0), null.Time{}).Valid)
}

func TestAge_NonNegativeWhenBirthPrecedesAttendance(t *testing.T) {
	birth := date(1990, 6, 15, 0)
	for d := 0; d < 2000; d += 37 {
		attended := null.TimeFrom(birth.Time.AddDate(0, 0, d))
		age := Age(attended, birth)
		require.True(t, age.Valid)
		assert.GreaterOrEqual(t, age.Int64, int64(0))
		assert.Equal(t, int64(d/365), age.Int64)
	}
}

func TestAgeBracket_Boundaries(t *testing.T) {
	cases := []struct {
		age  int64
		want string
	}{
		{0, model.AgeChild},
		{11, model.AgeChild},
		{12, model.AgeTeen},
		{17, model.AgeTeen},
		{18, model.AgeAdult},
		{59, model.AgeAdult},
		{60, model.AgeElderly},
		{97, model.AgeElderly},
	}
	for _, c := range cases {
		got := AgeBracket(null.IntFrom(c.age))
		require.True(t, got.Valid)
		assert.Equal(t, c.want, got.String, "age %d", c.age)
	}
	assert.False(t, AgeBracket(null.Int{}).Valid)
}

func TestTranslateWeekday_Bijection(t *testing.T) {
	seen := make(map[string]bool)
	for d := time.Sunday; d <= time.Saturday; d++ {
		name, ok := TranslateWeekday(d.String())
		require.True(t, ok, d.String())
		assert.False(t, seen[name], "duplicate translation %q", name)
		seen[name] = true
	}
	assert.Len(t, seen, 7)
	for _, name := range model.WeekdayOrder {
		assert.True(t, seen[name], name)
	}

	_, ok := TranslateWeekday("Caturday")
	assert.False(t, ok)
}

func TestWeekdayAndWeekend(t *testing.T) {
	// 2018-08-13 was a Monday.
	for i, want := range model.WeekdayOrder {
		wd := Weekday(date(2018, 8, 13+i, 12))
		require.True(t, wd.Valid)
		assert.Equal(t, want, wd.String)
		assert.Equal(t, want == model.Saturday || want == model.Sunday, IsWeekend(wd))
	}
	assert.False(t, Weekday(null.Time{}).Valid)
	assert.False(t, IsWeekend(null.String{}))
}

func TestShift_Boundaries(t *testing.T) {
	cases := map[int]string{
		0:  model.ShiftNightEarly,
		5:  model.ShiftNightEarly,
		6:  model.ShiftDay,
		18: model.ShiftDay,
		19: model.ShiftNight,
		23: model.ShiftNight,
	}
	for hour, want := range cases {
		assert.Equal(t, want, ShiftForHour(hour), "hour %d", hour)
		assert.Equal(t, want, Shift(date(2018, 8, 13, hour)).String, "hour %d", hour)
	}
	assert.False(t, Shift(null.Time{}).Valid)
}

func TestEncodeFlag(t *testing.T) {
	cases := []struct {
		in     null.String
		want   int64
		wantOK bool
	}{
		{null.StringFrom("Sim"), 1, true},
		{null.StringFrom("Nao"), 0, true},
		{null.StringFrom("Não"), 0, true},
		{null.StringFrom(" sim "), 1, true},
		{null.StringFrom("1"), 1, true},
		{null.StringFrom("0"), 0, true},
		{null.StringFrom("Talvez"), 0, false},
		{null.String{}, 0, false},
	}
	for _, c := range cases {
		got, ok := EncodeFlag(c.in)
		assert.Equal(t, c.want, got, "input %v", c.in)
		assert.Equal(t, c.wantOK, ok, "input %v", c.in)
	}
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "Município", NormalizeHeader("  Município\t"))
	assert.Equal(t, "Idade", NormalizeHeader("\uFEFFIdade "))
}

func TestFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.csv")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	sum, err := FileHash(path)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum)

	renamed := filepath.Join(t.TempDir(), "2018-08-13_Sistema_E-Saude.csv")
	require.NoError(t, os.WriteFile(renamed, []byte("abc"), 0o644))
	again, err := FileHash(renamed)
	require.NoError(t, err)
	assert.Equal(t, sum, again)

	_, err = FileHash(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
