package views

import (
	"testing"
	"time"

	"github.com/Alijeyrad/clinic_console/config"
)

type item struct {
	id   int64
	rank int
	text string
}

func itemID(i item) int64 { return i.id }

func ids(rows []item) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.id
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCollection_SortedInsertAndReplace(t *testing.T) {
	c := NewCollection[item](itemID, func(a, b item) bool { return a.rank > b.rank })
	c.Set([]item{{id: 1, rank: 10}, {id: 2, rank: 30}, {id: 3, rank: 20}})

	if got := ids(c.Rows()); !equalIDs(got, []int64{2, 3, 1}) {
		t.Fatalf("after Set: %v", got)
	}

	c.Insert(item{id: 4, rank: 25})
	if got := ids(c.Rows()); !equalIDs(got, []int64{2, 4, 3, 1}) {
		t.Fatalf("after Insert: %v", got)
	}

	// Replace keeps the position even when the sort key changes.
	if !c.Replace(item{id: 1, rank: 99, text: "moved"}) {
		t.Fatal("Replace() = false")
	}
	if got := ids(c.Rows()); !equalIDs(got, []int64{2, 4, 3, 1}) {
		t.Errorf("after Replace: %v", got)
	}
	if r, _ := c.Get(1); r.text != "moved" {
		t.Errorf("Get(1) = %+v", r)
	}

	if c.Replace(item{id: 42}) {
		t.Error("Replace of missing row reported true")
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d", c.Len())
	}
}

func TestCollection_UnsortedKeepsInsertionOrder(t *testing.T) {
	c := NewCollection[item](itemID, nil)
	c.Set([]item{{id: 3}, {id: 1}})
	c.Insert(item{id: 2})

	if got := ids(c.Rows()); !equalIDs(got, []int64{3, 1, 2}) {
		t.Errorf("order = %v", got)
	}
	if !c.Remove(1) || c.Remove(1) {
		t.Error("Remove should succeed once")
	}
	if got := ids(c.Rows()); !equalIDs(got, []int64{3, 2}) {
		t.Errorf("after Remove: %v", got)
	}
}

func TestCollection_RowsIsACopy(t *testing.T) {
	c := NewCollection[item](itemID, nil)
	c.Set([]item{{id: 1, text: "a"}})

	rows := c.Rows()
	rows[0].text = "changed"
	if r, _ := c.Get(1); r.text != "a" {
		t.Errorf("collection mutated through Rows(): %+v", r)
	}
}

func TestCollection_Filter(t *testing.T) {
	c := NewCollection[item](itemID, nil)
	c.Set([]item{{id: 1, text: "Alpha"}, {id: 2, text: "beta"}, {id: 3, text: "ALPHABET"}})
	fields := func(i item) []string { return []string{i.text} }

	tests := []struct {
		query string
		want  []int64
	}{
		{"", []int64{1, 2, 3}},
		{"alpha", []int64{1, 3}},
		{"  BET ", []int64{2, 3}},
		{"gamma", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := ids(c.Filter(tt.query, fields)); !equalIDs(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFormatter(t *testing.T) {
	f := NewFormatter(config.DisplayConfig{})
	f.Location = time.UTC

	if got := f.Date(1700000000); got != "2023-11-14" {
		t.Errorf("Date() = %q", got)
	}
	if got := f.DateTime(1700000000); got != "2023-11-14 22:13" {
		t.Errorf("DateTime() = %q", got)
	}
	if got := f.Date(0); got != "" {
		t.Errorf("Date(0) = %q, want empty", got)
	}
	if got := f.Timestamp(time.Time{}); got != "" {
		t.Errorf("Timestamp(zero) = %q, want empty", got)
	}

	if got, err := f.ParseDate("2023-11-14"); err != nil || got != 1699920000 {
		t.Errorf("ParseDate() = %d, %v", got, err)
	}
	if got, err := f.ParseDateTime("2023-11-14 22:13"); err != nil || f.DateTime(got) != "2023-11-14 22:13" {
		t.Errorf("ParseDateTime() round trip = %d, %v", got, err)
	}
	if _, err := f.ParseDate("14/11/2023"); err == nil {
		t.Error("ParseDate accepted the wrong layout")
	}

	custom := NewFormatter(config.DisplayConfig{DateFormat: "02/01/2006"})
	custom.Location = time.UTC
	if got := custom.Date(1700000000); got != "14/11/2023" {
		t.Errorf("custom Date() = %q", got)
	}
}

func TestLookupNames(t *testing.T) {
	doctors := newLookup(doctorKey)
	doctors.set(nil)
	if got := name(doctors, 7, doctorName); got != Unknown {
		t.Errorf("missing doctor = %q", got)
	}
	if got := capitalize("doctor"); got != "Doctor" {
		t.Errorf("capitalize = %q", got)
	}
	if got := capitalize(""); got != "" {
		t.Errorf("capitalize(empty) = %q", got)
	}
}
