package utils

import "time"

const (
	DefaultServer         = "irc.rizon.net:6667"
	DefaultChannel        = "#nibl"
	DefaultNickLength     = 10
	DefaultChunkSize      = 64 * 1024 // 64KiB payload reads
	DefaultDialTimeout    = 30 * time.Second
	DefaultSearchAPI      = "https://api.nibl.co.uk/nibl"
	DefaultSearchTimeout  = 30 * time.Second
	ToolUserAgent         = "xdcc-cli"
	DefaultWelcomeTimeout = 0
)

// knownBots is the built-in allow-list of serving peers on the default network.
var knownBots = []string{
	"AFN|XDCC", "ARUTHA-BATCH|1080p", "ARUTHA-BATCH|720p", "ARUTHA-BATCH|SD", "ASource|Gerozaemon",
	"Arutha", "Arutha|CPP", "Arutha|DragonBall", "Arutha|Naruto", "Arutha|One-Piece",
	"Blargh|Cats", "Blargh|Flep", "Blargh|Other",
	"CHK|OP-Dump", "CR-ARUTHA-IPv6|NEW", "CR-ARUTHA|NEW", "CR-HOLLAND-IPv6|NEW",
	"CR-HOLLAND|NEW", "Chinese-Cartoons", "Cthuko|Furuichi",
	"E-D|Raphtalia", "Fincayra", "Frostii|Tiger",
	"Ghouls|Arutha", "Ginpachi-Sensei", "Gin|TV", "Hatsu|Arutha", "HnG|Arutha",
	"Illum", "K-F|Arutha", "L-E|Ayukawa", "L-E|Chiko", "L-E|Yawara",
	"NIBL|Asian", "O-L|Releases", "Orphan|Arutha", "RawManga", "Retrofit|Filo",
	"SaberLily", "Saizen|Arutha", "Stardust|Kaoru", "THORA|Arutha", "[CMS]Shinobu",
	"[DCTP]Arutha", "[FFF]Arutha", "[Migoto]Kobato", "[Oyatsu]Sena",
	"moviebox", "pcela-anime|BiriBiri", "tvbox",
}

// DefaultBots returns a copy of the built-in allow-list.
func DefaultBots() []string {
	return append([]string(nil), knownBots...)
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:135.0) Gecko/20100101 Firefox/135.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:135.0) Gecko/20100101 Firefox/135.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.3 Safari/605.1.15",
	"curl/7.88.1",
}
