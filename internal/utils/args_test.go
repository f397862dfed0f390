package utils

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseDirectSinglePack(t *testing.T) {
	req, err := ParseDirect([]string{"Arutha", "123"}, NewPeerSet(DefaultBots()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.PeerName != "Arutha" || !reflect.DeepEqual(req.PackIDs, []string{"123"}) {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.IsSearch() {
		t.Fatal("direct request reported as search")
	}
}

func TestParseDirectPackLists(t *testing.T) {
	cases := map[string][]string{
		"123,456,1122": {"123", "456", "1122"},
		"#1 #2 #3":     {"1", "2", "3"},
		"7;8":          {"7", "8"},
	}
	known := NewPeerSet(DefaultBots())
	for input, want := range cases {
		req, err := ParseDirect([]string{"CR-HOLLAND|NEW", input}, known)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if !reflect.DeepEqual(req.PackIDs, want) {
			t.Errorf("%q: expected %v, got %v", input, want, req.PackIDs)
		}
	}
}

func TestParseDirectErrors(t *testing.T) {
	known := NewPeerSet(DefaultBots())
	cases := []struct {
		args []string
		want error
	}{
		{[]string{"BadBot", "123"}, ErrBotNotFound},
		{[]string{"arutha", "123"}, ErrBotNotFound},
		{[]string{"Arutha"}, ErrNumberOfArguments},
		{[]string{}, ErrNumberOfArguments},
		{[]string{"Arutha", "1", "2"}, ErrNumberOfArguments},
		{[]string{"Arutha", "abc"}, ErrIncorrectArgument},
	}
	for _, c := range cases {
		if _, err := ParseDirect(c.args, known); !errors.Is(err, c.want) {
			t.Errorf("ParseDirect(%q): expected %v, got %v", c.args, c.want, err)
		}
	}
}

func TestParseSearch(t *testing.T) {
	req, err := ParseSearch([]string{"one", "piece", "1080p"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.SearchTerm != "one piece 1080p" || !req.IsSearch() {
		t.Fatalf("unexpected request %+v", req)
	}
	if _, err := ParseSearch(nil); !errors.Is(err, ErrNumberOfArguments) {
		t.Fatalf("expected number of arguments error, got %v", err)
	}
}

func TestPeerSet(t *testing.T) {
	ps := NewPeerSet([]string{"b", " a ", "", "b", "c"})
	if !reflect.DeepEqual(ps.Names(), []string{"b", "a", "c"}) {
		t.Fatalf("unexpected names %v", ps.Names())
	}
	if ps.Len() != 3 || !ps.Contains("a") || ps.Contains("A") {
		t.Fatalf("unexpected membership for %v", ps.Names())
	}
	names := ps.Names()
	names[0] = "mutated"
	if ps.Contains("mutated") {
		t.Fatal("Names must return a copy")
	}
	if NewPeerSet(DefaultBots()).Len() != len(knownBots) {
		t.Fatal("default bot list contains duplicates")
	}
}

func TestPackIDsFromInts(t *testing.T) {
	if got := PackIDsFromInts([]int{1, 22, 333}); !reflect.DeepEqual(got, []string{"1", "22", "333"}) {
		t.Fatalf("unexpected ids %v", got)
	}
}
