package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/tanq16/xdcc/internal/utils"
	"golang.org/x/term"
)

func PrintProgressBar(current, total uint64, width int) string {
	if width <= 0 {
		width = 30
	}
	percent := 1.0
	if total > 0 {
		percent = float64(min(current, total)) / float64(total)
	}
	filled := max(0, min(int(percent*float64(width)), width))
	bar := StyleSymbols["bullet"]
	bar += strings.Repeat(StyleSymbols["hline"], filled)
	if filled < width {
		bar += strings.Repeat(" ", width-filled)
	}
	bar += StyleSymbols["bullet"]
	return debugStyle.Render(fmt.Sprintf("%s %.1f%% %s ", bar, percent*100, StyleSymbols["bullet"]))
}

func progressLine(done, total uint64, elapsed float64) string {
	sizes := fmt.Sprintf("%s / %s", utils.FormatBytes(done), utils.FormatBytes(total))
	return fmt.Sprintf("%s%s %s %s", PrintProgressBar(done, total, 30), debugStyle.Render(sizes),
		StyleSymbols["bullet"], debugStyle.Render(utils.FormatSpeed(done, elapsed)))
}

func getTerminalHeight() int {
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || height <= 0 {
		return 24
	}
	return height
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
