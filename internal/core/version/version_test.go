package version

import "testing"

func TestInfo(t *testing.T) {
	b := Info("assetsearch-api")
	if b.Service != "assetsearch-api" || b.Version != "dev" {
		t.Fatalf("Info = %+v", b)
	}
	if got := b.String(); got != "assetsearch-api dev (none, unknown)" {
		t.Fatalf("String = %q", got)
	}
}
