package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlatten(t *testing.T) {
	cases := []struct {
		name string
		k    Kind
		want string
	}{
		{"plain", Plain("x+1"), "x+1"},
		{"fraction", Fraction("1", "2"), "(1)/(2)"},
		{"matrix", Matrix([][]string{{"a", "b"}, {"c", "d"}}), "[a,b;c,d]"},
	}
	for _, tc := range cases {
		if got := tc.k.Flatten(); got != tc.want {
			t.Fatalf("%s: Flatten() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	rows := [][]string{{"1", "2"}}
	live := []Element{{ID: 1, Kind: Matrix(rows), Position: Position{X: 5, Y: 6}}}
	s := NewSnapshot(live, time.Now())

	live[0].Position.X = 99
	live[0].Kind.Rows[0][0] = "changed"
	rows[0][1] = "changed too"

	got := s.Elements()
	if got[0].Position.X != 5 || got[0].Kind.Rows[0][0] != "1" || got[0].Kind.Rows[0][1] != "2" {
		t.Fatalf("snapshot shares state with live elements: %+v", got[0])
	}
	// Mutating the returned copy must not leak back either.
	got[0].Kind.Rows[0][0] = "x"
	if s.Elements()[0].Kind.Rows[0][0] != "1" {
		t.Fatalf("Elements() returned a shared slice")
	}
}

func TestSnapshotEqualIgnoresTimestamp(t *testing.T) {
	elems := []Element{{ID: 3, Kind: Fraction("a", "b"), Position: Position{X: 1, Y: 2}}}
	a := NewSnapshot(elems, time.Now())
	b := NewSnapshot(elems, time.Now().Add(time.Hour))
	if !a.Equal(b) {
		t.Fatalf("expected equal snapshots")
	}
	elems[0].Position.Y = 3
	if a.Equal(NewSnapshot(elems, time.Now())) {
		t.Fatalf("expected snapshots with different positions to differ")
	}
}

func TestElementJSONRoundTrip(t *testing.T) {
	e := Element{ID: 7, Kind: Matrix([][]string{{"1", "0"}, {"0", "1"}}), Position: Position{X: -10, Y: 20.5}}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Element
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(e) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, e)
	}
}
