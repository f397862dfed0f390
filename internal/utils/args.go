package utils

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var packIDRegex = regexp.MustCompile(`\d+`)

// PeerSet is an immutable allow-list of serving peer names.
type PeerSet struct {
	names map[string]struct{}
	order []string
}

func NewPeerSet(names []string) PeerSet {
	ps := PeerSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := ps.names[n]; ok {
			continue
		}
		ps.names[n] = struct{}{}
		ps.order = append(ps.order, n)
	}
	return ps
}

// Contains reports an exact, case-sensitive match.
func (p PeerSet) Contains(name string) bool {
	_, ok := p.names[name]
	return ok
}

func (p PeerSet) Names() []string {
	return slices.Clone(p.order)
}

func (p PeerSet) Len() int {
	return len(p.order)
}

// ParseDirect builds a request from the BOT and PACKS positional arguments.
// Every run of digits in PACKS is one pack id, so "1,2 3" and "#1 #2 #3" both work.
func ParseDirect(args []string, known PeerSet) (DownloadRequest, error) {
	if len(args) != 2 {
		return DownloadRequest{}, fmt.Errorf("%w: expected BOT and PACKS, got %d argument(s)", ErrNumberOfArguments, len(args))
	}
	if !known.Contains(args[0]) {
		return DownloadRequest{}, fmt.Errorf("%w: %q", ErrBotNotFound, args[0])
	}
	packs := packIDRegex.FindAllString(args[1], -1)
	if len(packs) == 0 {
		return DownloadRequest{}, fmt.Errorf("%w: no pack numbers in %q", ErrIncorrectArgument, args[1])
	}
	return DownloadRequest{PeerName: args[0], PackIDs: packs}, nil
}

// ParseSearch joins the search terms into one query.
func ParseSearch(args []string) (DownloadRequest, error) {
	if len(args) == 0 {
		return DownloadRequest{}, fmt.Errorf("%w: search needs at least one term", ErrNumberOfArguments)
	}
	return DownloadRequest{SearchTerm: strings.Join(args, " ")}, nil
}

// PackIDsFromInts converts numeric pack ids (batch files, search results) to request form.
func PackIDsFromInts(ids []int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmt.Sprint(id))
	}
	return out
}
