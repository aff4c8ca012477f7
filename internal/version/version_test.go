package version

import "testing"

func TestVersionStringNonEmpty(t *testing.T) {
	if s := String(); s == "" {
		t.Fatalf("version string is empty")
	}
}

func TestVersionStringWithCommit(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })
	Version, Commit = "v0.3.0", "abc1234"
	if got, want := String(), "v0.3.0 (abc1234)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
