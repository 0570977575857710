package database

import (
	"reflect"
	"testing"
)

func TestAllowedOriginsSlice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "http://localhost:3000", []string{"http://localhost:3000"}},
		{"multiple with spaces", "http://a.example, http://b.example", []string{"http://a.example", "http://b.example"}},
		{"deduplicates", "http://a.example,http://a.example,http://b.example", []string{"http://a.example", "http://b.example"}},
		{"skips blanks", "http://a.example,,  ,http://b.example", []string{"http://a.example", "http://b.example"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := AllowedOriginsSlice(tc.raw); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("AllowedOriginsSlice(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}
