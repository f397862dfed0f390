package utils

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const nickAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func GetRandomUserAgent() string {
	return userAgents[time.Now().UnixNano()%int64(len(userAgents))]
}

// RandomNick returns an alphabetic identifier of length n for NICK/USER registration.
func RandomNick(n int) string {
	if n <= 0 {
		n = DefaultNickLength
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = nickAlphabet[rand.IntN(len(nickAlphabet))]
	}
	return string(b)
}

func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func FormatSpeed(bytes uint64, elapsed float64) string {
	if elapsed == 0 {
		return "0 B/s"
	}
	bps := float64(bytes) / elapsed
	return FormatBytes(uint64(bps)) + "/s"
}
