package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Type string

const (
	Monthly   Type = "monthly"
	Quarterly Type = "quarterly"
	Annual    Type = "annual"
)

const dateLayout = "2006-01-02"

// Period — закрытый диапазон дат [Start, End], обе границы — полночь UTC.
type Period struct {
	Type  Type      `json:"type"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case Monthly, Quarterly, Annual:
		return t, nil
	}
	return "", newConfigError("type", s, ErrInvalidType)
}

// ParseAnchor принимает дату в формате 2006-01-02 или 2006-01.
func ParseAnchor(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{dateLayout, "2006-01"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, newConfigError("date", s, ErrInvalidDate)
}

func Resolve(t Type, anchor time.Time) (Period, error) {
	year, month, _ := anchor.Date()

	var start, end time.Time
	switch t {
	case Monthly:
		start = date(year, month, 1)
		end = start.AddDate(0, 1, -1)
	case Quarterly:
		q := (int(month) - 1) / 3
		start = date(year, time.Month(q*3+1), 1)
		end = start.AddDate(0, 3, -1)
	case Annual:
		start = date(year, time.January, 1)
		end = date(year, time.December, 31)
	default:
		return Period{}, newConfigError("type", string(t), ErrInvalidType)
	}

	return Period{Type: t, Start: start, End: end}, nil
}

// FromQuery собирает период из параметров запроса. Пустой тип значит месяц, пустая дата значит now.
func FromQuery(typ, anchor string, now time.Time) (Period, error) {
	t := Monthly
	if strings.TrimSpace(typ) != "" {
		var err error
		if t, err = ParseType(typ); err != nil {
			return Period{}, err
		}
	}

	at := now.UTC()
	if strings.TrimSpace(anchor) != "" {
		var err error
		if at, err = ParseAnchor(anchor); err != nil {
			return Period{}, err
		}
	}

	return Resolve(t, at)
}

// Advance сдвигает период на один шаг вперёд (+1) или назад (-1).
// Шаг считается от Start, поэтому 31 января + месяц не превращается в март.
func Advance(p Period, direction int) (Period, error) {
	if direction != 1 && direction != -1 {
		return Period{}, newConfigError("direction", strconv.Itoa(direction), ErrInvalidDirection)
	}

	var anchor time.Time
	switch p.Type {
	case Monthly:
		anchor = p.Start.AddDate(0, direction, 0)
	case Quarterly:
		anchor = p.Start.AddDate(0, 3*direction, 0)
	case Annual:
		anchor = p.Start.AddDate(direction, 0, 0)
	default:
		return Period{}, newConfigError("type", string(p.Type), ErrInvalidType)
	}

	return Resolve(p.Type, anchor)
}

// Last возвращает n подряд идущих периодов, последний из которых содержит now.
// Порядок от старого к новому.
func Last(n int, t Type, now time.Time) ([]Period, error) {
	if n < 1 {
		return nil, newConfigError("periods", strconv.Itoa(n), ErrInvalidCount)
	}

	cur, err := Resolve(t, now)
	if err != nil {
		return nil, err
	}

	periods := make([]Period, n)
	periods[n-1] = cur
	for i := n - 2; i >= 0; i-- {
		periods[i], err = Advance(periods[i+1], -1)
		if err != nil {
			return nil, err
		}
	}

	return periods, nil
}

// EndExclusive — первая полночь после End, для полуоткрытых запросов к базе.
func (p Period) EndExclusive() time.Time {
	return p.End.AddDate(0, 0, 1)
}

// Contains проверяет попадание момента времени в период включительно по дням.
func (p Period) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(p.Start) && t.Before(p.EndExclusive())
}

// IsCurrent: период содержит now.
func (p Period) IsCurrent(now time.Time) bool {
	return p.Contains(now)
}

// HasNext сообщает, начался ли уже следующий период. Правило одно для всех типов.
func (p Period) HasNext(now time.Time) bool {
	return !now.UTC().Before(p.EndExclusive())
}

// HasNextWith работает как HasNext, но умеет старое правило, при котором
// для кварталов переход вперёд открыт всегда. Для месяцев и лет правило не меняется.
func (p Period) HasNextWith(now time.Time, quarterlyAlwaysOpen bool) bool {
	if quarterlyAlwaysOpen && p.Type == Quarterly {
		return true
	}
	return p.HasNext(now)
}

func (p Period) Label() string {
	switch p.Type {
	case Monthly:
		return p.Start.Format("January 2006")
	case Quarterly:
		return fmt.Sprintf("Q%d %d", (int(p.Start.Month())-1)/3+1, p.Start.Year())
	case Annual:
		return strconv.Itoa(p.Start.Year())
	}
	return p.Start.Format(dateLayout) + " - " + p.End.Format(dateLayout)
}

func (p Period) ComparisonLabel() string {
	switch p.Type {
	case Monthly:
		return "vs previous month"
	case Quarterly:
		return "vs previous quarter"
	case Annual:
		return "vs previous year"
	}
	return "vs previous period"
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
