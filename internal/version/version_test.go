package version

import "testing"

func TestFullVersion(t *testing.T) {
	if got := FullVersion(); got != "v"+Version {
		t.Errorf("FullVersion() = %q, want %q", got, "v"+Version)
	}
}
