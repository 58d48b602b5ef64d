package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredWithoutColor(t *testing.T) {
	saved, savedNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = saved, savedNoColor })
	color.NoColor = true

	tests := []struct{ in, want string }{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3+build.7", "1.2.3+build.7"},
		{"weird", "weird"},
	}
	for _, tt := range tests {
		Version = tt.in
		if got := Colored(); got != tt.want {
			t.Errorf("Colored(%q) = %q", tt.in, got)
		}
	}
}

func TestBanner(t *testing.T) {
	saved := [3]string{Version, GitCommit, BuildDate}
	savedNoColor := color.NoColor
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = saved[0], saved[1], saved[2]
		color.NoColor = savedNoColor
	})
	color.NoColor = true

	Version, GitCommit, BuildDate = "1.0.0", "1234567890abcdef", "2024-01-15"
	if got, want := Banner(), "unsure 1.0.0 (1234567890ab) built 2024-01-15"; got != want {
		t.Errorf("Banner() = %q, want %q", got, want)
	}
	GitCommit, BuildDate = "", ""
	if got := Banner(); got != "unsure 1.0.0" {
		t.Errorf("Banner() = %q", got)
	}
}
