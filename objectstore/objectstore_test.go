package objectstore

import "testing"

func TestFilename(t *testing.T) {
	cases := []struct {
		location string
		want     string
		ok       bool
	}{
		{"data/reports/2024.csv", "2024.csv", true},
		{"file.txt", "file.txt", true},
		{"a/b/c", "c", true},
		{"data/reports/", "", false},
		{"", "", false},
		{"/", "", false},
		{"/rooted.txt", "rooted.txt", true},
	}
	for _, tc := range cases {
		got, ok := Filename(tc.location)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Filename(%q) = (%q, %v), want (%q, %v)", tc.location, got, ok, tc.want, tc.ok)
		}
	}
}
