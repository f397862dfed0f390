package scheduler

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tanq16/xdcc/internal/output"
	"github.com/tanq16/xdcc/internal/utils"
)

// fakeNetwork runs a control server that offers one file per requested pack,
// each served from its own payload listener.
func fakeNetwork(t *testing.T, files map[string][]byte) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		fmt.Fprint(conn, "PING :1\r\n")
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.Contains(line, "xdcc send #") {
				continue
			}
			pack := line[strings.LastIndex(line, "#")+1:]
			name := "pack" + pack + ".bin"
			payload := files[name]
			port := servePayload(t, payload)
			fmt.Fprintf(conn, ":bot PRIVMSG me :\x01DCC SEND \"%s\" 2130706433 %d %d\x01\r\n", name, port, len(payload))
		}
	}()
	return ln.Addr().String()
}

func servePayload(t *testing.T, payload []byte) int {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0
	}
	t.Cleanup(func() { ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		conn.Write(payload)
	}()
	return ln.Addr().(*net.TCPAddr).Port
}

func testConfig(server, dir string) utils.Config {
	return utils.Config{
		IRC:      utils.IRCConfig{Server: server, Channel: "#nibl", NickLength: 10},
		Transfer: utils.TransferConfig{Dir: dir},
		Workers:  2,
	}
}

func TestRunDownloadsEveryPack(t *testing.T) {
	var buf bytes.Buffer
	output.Out = &buf
	defer func() { output.Out = os.Stdout }()

	files := map[string][]byte{
		"pack1.bin": bytes.Repeat([]byte("a"), 300),
		"pack2.bin": bytes.Repeat([]byte("b"), 700),
	}
	dir := t.TempDir()
	server := fakeNetwork(t, files)
	requests := []utils.DownloadRequest{{PeerName: "Arutha", PackIDs: []string{"1", "2"}}}
	if err := Run(context.Background(), requests, testConfig(server, dir)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil || !bytes.Equal(got, want) {
			t.Fatalf("%s: got %d bytes, err %v", name, len(got), err)
		}
	}
	if !strings.Contains(buf.String(), "Completed 2 of 2") {
		t.Fatalf("summary missing:\n%s", buf.String())
	}
}

func TestRunReportsSessionFailure(t *testing.T) {
	var buf bytes.Buffer
	output.Out = &buf
	defer func() { output.Out = os.Stdout }()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	server := ln.Addr().String()
	ln.Close()

	requests := []utils.DownloadRequest{
		{PeerName: "Arutha"},
		{PeerName: "Arutha", PackIDs: []string{"5"}},
	}
	err = Run(context.Background(), requests, testConfig(server, t.TempDir()))
	if !errors.Is(err, utils.ErrConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if !strings.Contains(buf.String(), "Failed 1 of 1") || !strings.Contains(buf.String(), "Arutha #5") {
		t.Fatalf("session failure not reported:\n%s", buf.String())
	}
}
