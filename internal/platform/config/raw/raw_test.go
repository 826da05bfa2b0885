package raw

import "testing"

func TestConfGet(t *testing.T) {
	t.Setenv("LOG_LEVEL", " info ")

	log := New().Prefix("LOG_")
	if got := log.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get(LEVEL) = %q, want info", got)
	}
	if got := log.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("Get(FORMAT) = %q, want default", got)
	}
}

func TestConfGetBool(t *testing.T) {
	c := New().Prefix("B_")
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"", false, false},
		{"1", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"true", false, true},
		{"0", true, false},
		{"nah", true, false},
	}
	for _, tc := range cases {
		t.Setenv("B_FLAG", tc.val)
		if got := c.GetBool("FLAG", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, def=%v) = %v, want %v", tc.val, tc.def, got, tc.want)
		}
	}
}

func TestConfGetInt(t *testing.T) {
	c := New().Prefix("I_")
	cases := []struct {
		val  string
		want int
	}{
		{"", 7},
		{"3", 3},
		{" 42 ", 42},
		{"-1", 7},
		{"4x", 7},
	}
	for _, tc := range cases {
		t.Setenv("I_N", tc.val)
		if got := c.GetInt("N", 7); got != tc.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tc.val, got, tc.want)
		}
	}
}
