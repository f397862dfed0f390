package search

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/tanq16/xdcc/internal/utils"
)

var selectionRegex = regexp.MustCompile(`\d+`)

// Resolve runs a search for term and lets the user pick packs from one bot.
func (c *Client) Resolve(ctx context.Context, term string, in io.Reader, out io.Writer) (utils.DownloadRequest, error) {
	results, err := c.Search(ctx, term)
	if err != nil {
		return utils.DownloadRequest{}, err
	}
	if len(results) == 0 {
		fmt.Fprintf(out, "No packs found for %q\n", term)
		return utils.DownloadRequest{}, utils.ErrNothingSelected
	}
	bots, err := c.Bots(ctx)
	if err != nil {
		return utils.DownloadRequest{}, err
	}
	return Select(results, bots, in, out)
}

// Select prints results as a numbered list and reads the user's choice. The
// first chosen entry fixes the bot; every other choice must share it. Blank
// input means nothing was selected.
func Select(results []Result, bots map[int]string, in io.Reader, out io.Writer) (utils.DownloadRequest, error) {
	fmt.Fprintf(out, "Available packs:\n")
	for i, r := range results {
		name := bots[r.BotID]
		if name == "" {
			name = fmt.Sprintf("bot %d", r.BotID)
		}
		fmt.Fprintf(out, "%d. [%s] #%d %s (%s)\n", i+1, name, r.Number, r.Name, r.Size)
	}
	fmt.Fprint(out, "\nEnter the numbers of the packs to download (comma separated, blank to cancel): ")
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return utils.DownloadRequest{}, fmt.Errorf("error reading input: %v", err)
	}
	choices := selectionRegex.FindAllString(strings.TrimSpace(input), -1)
	if len(choices) == 0 {
		fmt.Fprintln(out, "nothing to download")
		return utils.DownloadRequest{}, utils.ErrNothingSelected
	}

	botID := -1
	seen := make(map[int]bool)
	var packs []int
	for _, choice := range choices {
		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(results) {
			return utils.DownloadRequest{}, fmt.Errorf("%w: selection %s out of range", utils.ErrIncorrectArgument, choice)
		}
		r := results[idx-1]
		if botID == -1 {
			botID = r.BotID
		} else if r.BotID != botID {
			return utils.DownloadRequest{}, fmt.Errorf("%w: selection %d is served by a different bot", utils.ErrIncorrectArgument, idx)
		}
		if seen[r.Number] {
			continue
		}
		seen[r.Number] = true
		packs = append(packs, r.Number)
	}
	name, ok := bots[botID]
	if !ok || name == "" {
		return utils.DownloadRequest{}, fmt.Errorf("%w: bot id %d unknown to the index", utils.ErrBotNotFound, botID)
	}
	return utils.DownloadRequest{PeerName: name, PackIDs: utils.PackIDsFromInts(packs)}, nil
}
