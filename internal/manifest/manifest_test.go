package manifest

import (
	"reflect"
	"testing"
)

func TestParseDocDate_Valid(t *testing.T) {
	cases := []struct {
		filename string
		want     DateKey
	}{
		{"report_01-15-24.html", DateKey{2024, 1, 15}},
		{"notes_12-31-23.html", DateKey{2023, 12, 31}},
		{"a_1-2-09.html", DateKey{2009, 1, 2}},
		{"leap_02-29-24.html", DateKey{2024, 2, 29}},
		{"x_2-9-00.html", DateKey{2000, 2, 9}},
	}
	for _, c := range cases {
		key, ok := ParseDocDate(c.filename)
		if !ok {
			t.Errorf("ParseDocDate(%q) not ok, want %v", c.filename, c.want)
			continue
		}
		if key != c.want {
			t.Errorf("ParseDocDate(%q) = %v, want %v", c.filename, key, c.want)
		}
	}
}

func TestParseDocDate_InvalidCalendarDate(t *testing.T) {
	cases := []string{
		"bad_13-01-24.html",  // month 13
		"bad_02-30-24.html",  // Feb 30
		"bad_00-10-24.html",  // month 0
		"bad_04-31-24.html",  // Apr 31
		"bad_02-29-23.html",  // not a leap year
		"bad_1-0-24.html",    // day 0
	}
	for _, name := range cases {
		if _, ok := ParseDocDate(name); ok {
			t.Errorf("ParseDocDate(%q) ok, want undated", name)
		}
	}
}

func TestParseDocDate_NoSuffix(t *testing.T) {
	cases := []string{
		"index.html",
		"report_01-15-2024.html", // four-digit year
		"report_01-15-24.htm",
		"report_01-15-24.HTML", // extension match is case-sensitive
		"report-01-15-24.html", // missing underscore
		"01-15-24.html",        // no leading underscore segment
		"report_01-15-24.html.bak",
	}
	for _, name := range cases {
		if _, ok := ParseDocDate(name); ok {
			t.Errorf("ParseDocDate(%q) ok, want undated", name)
		}
	}
}

func TestParseDocDate_YearMapping(t *testing.T) {
	key, ok := ParseDocDate("doc_06-01-99.html")
	if !ok {
		t.Fatal("expected valid date")
	}
	if key.Year != 2099 {
		t.Errorf("year = %d, want 2099", key.Year)
	}
}

func TestOrder_MixedDatedAndUndated(t *testing.T) {
	in := []string{
		"report_01-15-24.html",
		"notes_12-31-23.html",
		"index.html",
		"draft_02-30-24.html",
	}
	want := []string{
		"report_01-15-24.html",
		"notes_12-31-23.html",
		"draft_02-30-24.html",
		"index.html",
	}
	got := Order(in)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Order = %v, want %v", got, want)
	}
}

func TestOrder_DatedDescending(t *testing.T) {
	in := []string{
		"a_01-01-20.html",
		"b_06-15-23.html",
		"c_12-31-22.html",
	}
	want := []string{
		"b_06-15-23.html",
		"c_12-31-22.html",
		"a_01-01-20.html",
	}
	if got := Order(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Order = %v, want %v", got, want)
	}
}

func TestOrder_TieBreakByFilename(t *testing.T) {
	in := []string{
		"zeta_03-10-24.html",
		"alpha_03-10-24.html",
		"mid_3-10-24.html",
	}
	want := []string{
		"alpha_03-10-24.html",
		"mid_3-10-24.html",
		"zeta_03-10-24.html",
	}
	if got := Order(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Order = %v, want %v", got, want)
	}
}

func TestOrder_UndatedAlphabetical(t *testing.T) {
	in := []string{"zebra.html", "apple.html", "bad_99-99-99.html"}
	want := []string{"apple.html", "bad_99-99-99.html", "zebra.html"}
	if got := Order(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Order = %v, want %v", got, want)
	}
}

func TestOrder_Empty(t *testing.T) {
	if got := Order(nil); len(got) != 0 {
		t.Errorf("Order(nil) = %v, want empty", got)
	}
}

func TestCountDated(t *testing.T) {
	in := []string{"a_01-15-24.html", "b_02-30-24.html", "index.html"}
	if n := CountDated(in); n != 1 {
		t.Errorf("CountDated = %d, want 1", n)
	}
}

func TestEncode_Empty(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Encode(nil) = %q, want %q", data, "[]\n")
	}
}

func TestEncode_Indented(t *testing.T) {
	data, err := Encode([]string{"a.html", "b.html"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "[\n  \"a.html\",\n  \"b.html\"\n]\n"
	if string(data) != want {
		t.Errorf("Encode = %q, want %q", data, want)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := []string{"report_01-15-24.html", "index.html"}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}
