package document

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/JRJacoby/SciViewer/pkg/value"
)

func decodeTOML(data []byte) (*value.Value, error) {
	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	order := make(map[string]int)
	for i, k := range md.Keys() {
		joined := strings.Join(k, "\x00")
		if _, ok := order[joined]; !ok {
			order[joined] = i
		}
	}
	return tomlValue(doc, nil, order), nil
}

// tomlValue converts decoded TOML. Table keys are ordered by where they
// first appear in the document; order maps NUL-joined key paths to that
// position.
func tomlValue(x any, path []string, order map[string]int) *value.Value {
	switch t := x.(type) {
	case map[string]any:
		rank := func(k string) int {
			if i, ok := order[strings.Join(append(path[:len(path):len(path)], k), "\x00")]; ok {
				return i
			}
			return math.MaxInt
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, func(a, b string) int {
			return cmp.Or(cmp.Compare(rank(a), rank(b)), strings.Compare(a, b))
		})
		m := value.NewMapping(mappingType)
		for _, k := range keys {
			m.Set(k, tomlValue(t[k], append(path[:len(path):len(path)], k), order))
		}
		return m
	case []map[string]any:
		s := value.NewSequence(sequenceType)
		for _, item := range t {
			s.Append(tomlValue(item, path, order))
		}
		return s
	case []any:
		s := value.NewSequence(sequenceType)
		for _, item := range t {
			s.Append(tomlValue(item, path, order))
		}
		return s
	case time.Time:
		return tomlTime(t)
	}
	return value.Of(x)
}

// tomlTime keeps the distinction between offset datetimes and the local
// date, time and datetime types, which the decoder marks by location name.
func tomlTime(t time.Time) *value.Value {
	switch t.Location().String() {
	case "date-local":
		return value.NewOpaque("date", value.Date{Time: t}.ISO8601())
	case "time-local":
		h, m, s := t.Clock()
		d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
			time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
		return value.NewOpaque("time", value.TimeOfDay(d).ISO8601())
	case "datetime-local":
		return value.NewOpaque("datetime", value.Timestamp{Time: t}.ISO8601())
	}
	return value.NewOpaque("datetime", value.Timestamp{Time: t, Zoned: true}.ISO8601())
}
