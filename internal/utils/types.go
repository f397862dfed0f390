package utils

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// DownloadRequest is the resolved request handed to a control-channel session.
// Either SearchTerm is set, or PeerName and PackIDs are.
type DownloadRequest struct {
	SearchTerm string
	PeerName   string
	PackIDs    []string
}

func (r DownloadRequest) IsSearch() bool {
	return r.SearchTerm != ""
}

// Announcement is one parsed DCC SEND offer.
type Announcement struct {
	FileName    string
	HostAddress string
	HostPort    uint16
	SizeBytes   uint64
}

func (a Announcement) Address() string {
	return net.JoinHostPort(a.HostAddress, strconv.Itoa(int(a.HostPort)))
}

func (a Announcement) String() string {
	return fmt.Sprintf("%s (%s) from %s", a.FileName, FormatBytes(a.SizeBytes), a.Address())
}

type IRCConfig struct {
	Server         string
	Channel        string
	NickLength     int
	DialTimeout    time.Duration
	WelcomeTimeout time.Duration
}

type TransferConfig struct {
	Dir         string
	ChunkSize   int
	DialTimeout time.Duration
}

type SearchConfig struct {
	API     string
	Timeout time.Duration
}

type Config struct {
	IRC      IRCConfig
	Transfer TransferConfig
	Search   SearchConfig
	HTTP     HTTPClientConfig
	Workers  int
	Bots     []string
	Debug    bool
}
