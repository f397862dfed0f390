package cmd

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tanq16/xdcc/internal/utils"
)

func TestParseBatch(t *testing.T) {
	data := []byte(`
- bot: Arutha
  packs: [123, 456]
- bot: "CR-HOLLAND|NEW"
  packs:
    - 12
`)
	requests, err := parseBatch(data, utils.NewPeerSet(utils.DefaultBots()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []utils.DownloadRequest{
		{PeerName: "Arutha", PackIDs: []string{"123", "456"}},
		{PeerName: "CR-HOLLAND|NEW", PackIDs: []string{"12"}},
	}
	if !reflect.DeepEqual(requests, want) {
		t.Fatalf("expected %+v, got %+v", want, requests)
	}
}

func TestParseBatchErrors(t *testing.T) {
	known := utils.NewPeerSet(utils.DefaultBots())
	cases := []struct {
		name string
		data string
		want error
	}{
		{"unknown bot", "- bot: Nobody\n  packs: [1]\n", utils.ErrBotNotFound},
		{"no packs", "- bot: Arutha\n  packs: []\n", utils.ErrIncorrectArgument},
		{"empty file", "", utils.ErrIncorrectArgument},
		{"not a list", "bot: Arutha\n", utils.ErrIncorrectArgument},
		{"bad pack", "- bot: Arutha\n  packs: [one]\n", utils.ErrIncorrectArgument},
	}
	for _, c := range cases {
		if _, err := parseBatch([]byte(c.data), known); !errors.Is(err, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, err)
		}
	}
}
