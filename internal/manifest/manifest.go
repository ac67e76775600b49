// Package manifest implements date extraction from document filenames and the
// ordering rule for the generated files.json manifest.
package manifest

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// dateSuffixRe matches the trailing publication-date suffix _MM-DD-YY.html.
// Month and day may be one or two digits; the year is exactly two digits and
// is interpreted as 2000+YY. The extension match is case-sensitive.
var dateSuffixRe = regexp.MustCompile(`_(\d{1,2})-(\d{1,2})-(\d{2})\.html$`)

// DateKey is the calendar date parsed from a filename suffix. It is the sort
// key for dated files.
type DateKey struct {
	Year  int
	Month int
	Day   int
}

// Before reports whether k is an earlier date than other.
func (k DateKey) Before(other DateKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	return k.Day < other.Day
}

// Time returns the key as a time.Time at midnight UTC.
func (k DateKey) Time() time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.UTC)
}

// ParseDocDate extracts a DateKey from a document filename. It returns
// ok=false when the suffix is absent or when the digits do not form a real
// calendar date (e.g. month 13 or Feb 30); both cases classify the file as
// undated rather than erroring.
func ParseDocDate(filename string) (DateKey, bool) {
	m := dateSuffixRe.FindStringSubmatch(filename)
	if m == nil {
		return DateKey{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	yy, _ := strconv.Atoi(m[3])
	year := 2000 + yy

	// time.Date normalizes out-of-range components (Feb 30 becomes Mar 1),
	// so a round-trip mismatch means the triple is not a real date.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return DateKey{}, false
	}
	return DateKey{Year: year, Month: month, Day: day}, true
}

// Order sorts document filenames into manifest order: dated files first,
// newest to oldest (ties broken by filename ascending), then undated files
// in lexicographic order.
func Order(filenames []string) []string {
	type dated struct {
		name string
		key  DateKey
	}
	var withDates []dated
	var withoutDates []string

	for _, name := range filenames {
		if key, ok := ParseDocDate(name); ok {
			withDates = append(withDates, dated{name: name, key: key})
		} else {
			withoutDates = append(withoutDates, name)
		}
	}

	sort.Slice(withDates, func(i, j int) bool {
		if withDates[i].key != withDates[j].key {
			return withDates[j].key.Before(withDates[i].key)
		}
		return withDates[i].name < withDates[j].name
	})
	sort.Strings(withoutDates)

	out := make([]string, 0, len(filenames))
	for _, d := range withDates {
		out = append(out, d.name)
	}
	return append(out, withoutDates...)
}

// CountDated returns how many of the given filenames carry a valid date suffix.
func CountDated(filenames []string) int {
	n := 0
	for _, name := range filenames {
		if _, ok := ParseDocDate(name); ok {
			n++
		}
	}
	return n
}

// Encode serializes an ordered filename list as the manifest file contents:
// a JSON array of strings with 2-space indent and a trailing newline. A nil
// or empty list encodes as [].
func Encode(ordered []string) ([]byte, error) {
	if ordered == nil {
		ordered = []string{}
	}
	data, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses manifest file contents back into the ordered filename list.
func Decode(data []byte) ([]string, error) {
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
