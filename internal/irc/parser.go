package irc

import (
	"fmt"
	"net/netip"
	"regexp"
	"strconv"
	"strings"

	"github.com/tanq16/xdcc/internal/utils"
)

type Kind int

const (
	NoMatch Kind = iota
	KeepAlive
	JoinEcho
	Announcement
)

func (k Kind) String() string {
	switch k {
	case KeepAlive:
		return "keep-alive"
	case JoinEcho:
		return "join"
	case Announcement:
		return "announcement"
	default:
		return "no-match"
	}
}

// Message is the result of classifying one control-channel line.
type Message struct {
	Kind    Kind
	Token   string // KeepAlive: payload to echo back
	Channel string // JoinEcho
	Offer   utils.Announcement
}

var (
	// A keep-alive is recognised by its leading digit; the whole payload is
	// echoed back.
	pingRegex = regexp.MustCompile(`^PING :(\d.*)`)
	joinRegex = regexp.MustCompile(`JOIN :(#\S*)`)
	// The name capture is greedy so spaces inside quoted names survive; a
	// trailing quote left in the capture is trimmed afterwards.
	dccSendRegex = regexp.MustCompile(`DCC SEND "?(.*)"? +(\d+) +(\d+) +(\d+)`)
)

// Parse classifies a decoded line. Lines that match no shape return NoMatch and
// a nil error. An announcement whose digit fields overflow their widths returns
// Kind Announcement together with an error wrapping utils.ErrProtocolParse.
func Parse(line string) (Message, error) {
	if m := pingRegex.FindStringSubmatch(line); m != nil {
		return Message{Kind: KeepAlive, Token: m[1]}, nil
	}
	if m := dccSendRegex.FindStringSubmatch(line); m != nil {
		offer, err := buildAnnouncement(m[1], m[2], m[3], m[4])
		return Message{Kind: Announcement, Offer: offer}, err
	}
	if m := joinRegex.FindStringSubmatch(line); m != nil {
		return Message{Kind: JoinEcho, Channel: m[1]}, nil
	}
	return Message{Kind: NoMatch}, nil
}

func buildAnnouncement(name, ip, port, size string) (utils.Announcement, error) {
	name = strings.TrimSuffix(name, `"`)
	offer := utils.Announcement{FileName: name}
	if name == "" {
		return offer, fmt.Errorf("%w: empty file name", utils.ErrProtocolParse)
	}
	rawIP, err := strconv.ParseUint(ip, 10, 32)
	if err != nil {
		return offer, fmt.Errorf("%w: host address %q: %v", utils.ErrProtocolParse, ip, err)
	}
	offer.HostAddress = Uint32ToIPv4(uint32(rawIP))
	rawPort, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return offer, fmt.Errorf("%w: port %q: %v", utils.ErrProtocolParse, port, err)
	}
	offer.HostPort = uint16(rawPort)
	offer.SizeBytes, err = strconv.ParseUint(size, 10, 64)
	if err != nil {
		return offer, fmt.Errorf("%w: size %q: %v", utils.ErrProtocolParse, size, err)
	}
	return offer, nil
}

// Uint32ToIPv4 renders a network-order address as dotted quad.
func Uint32ToIPv4(v uint32) string {
	return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}).String()
}

// IPv4ToUint32 is the inverse of Uint32ToIPv4, as used when announcing offers.
func IPv4ToUint32(s string) (uint32, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return 0, fmt.Errorf("not an IPv4 address: %q", s)
	}
	b := addr.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}
