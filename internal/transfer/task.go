package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tanq16/xdcc/internal/utils"
)

type State int32

const (
	Pending State = iota
	Connecting
	Streaming
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Connecting:
		return "connecting"
	case Streaming:
		return "streaming"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Dialer opens payload connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Task streams one announced payload into a file. Only the task goroutine
// writes its fields; Progress and State are safe to call from any goroutine.
type Task struct {
	ID    string
	Offer utils.Announcement

	cfg    utils.TransferConfig
	dialer Dialer
	log    zerolog.Logger

	transferred atomic.Uint64
	state       atomic.Int32
	err         error
}

func NewTask(offer utils.Announcement, cfg utils.TransferConfig, dialer Dialer) *Task {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = utils.DefaultChunkSize
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if dialer == nil {
		dialer = &net.Dialer{Timeout: cfg.DialTimeout}
	}
	id := uuid.NewString()
	return &Task{
		ID:     id,
		Offer:  offer,
		cfg:    cfg,
		dialer: dialer,
		log:    utils.GetLogger("transfer/task").With().Str("id", id).Str("file", offer.FileName).Logger(),
	}
}

// Progress returns bytes received so far and the declared size.
func (t *Task) Progress() (uint64, uint64) {
	return t.transferred.Load(), t.Offer.SizeBytes
}

func (t *Task) State() State {
	return State(t.state.Load())
}

// Destination is the file the payload is written to. The announced name is
// reduced to its base so a peer cannot direct writes outside cfg.Dir.
func (t *Task) Destination() string {
	return filepath.Join(t.cfg.Dir, filepath.Base(filepath.Clean("/"+t.Offer.FileName)))
}

// Run performs the transfer and records its outcome. It is called once.
func (t *Task) Run(ctx context.Context) error {
	start := time.Now()
	t.err = t.run(ctx)
	if t.err != nil {
		t.state.Store(int32(Failed))
		t.log.Error().Err(t.err).Msg("transfer failed")
		return t.err
	}
	t.state.Store(int32(Complete))
	t.log.Info().Uint64("bytes", t.transferred.Load()).Dur("took", time.Since(start)).Msg("transfer complete")
	return nil
}

func (t *Task) run(ctx context.Context) error {
	t.state.Store(int32(Connecting))
	addr := t.Offer.Address()
	conn, err := t.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: payload dial %s: %v", utils.ErrConnection, addr, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	dst := t.Destination()
	file, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", utils.ErrFileIO, dst, err)
	}
	defer file.Close()

	t.state.Store(int32(Streaming))
	t.log.Debug().Str("from", addr).Str("dst", dst).Msg("streaming")
	if err := t.stream(conn, file); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", utils.ErrConnection, ctxErr)
		}
		return err
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		tcp.CloseWrite()
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("%w: flush %s: %v", utils.ErrFileIO, dst, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", utils.ErrFileIO, dst, err)
	}
	return nil
}

func (t *Task) stream(conn io.Reader, file io.Writer) error {
	size := t.Offer.SizeBytes
	buffer := make([]byte, t.cfg.ChunkSize)
	for t.transferred.Load() < size {
		remaining := size - t.transferred.Load()
		want := uint64(len(buffer))
		if remaining < want {
			want = remaining
		}
		n, readErr := conn.Read(buffer[:want])
		if n > 0 {
			if _, err := file.Write(buffer[:n]); err != nil {
				return fmt.Errorf("%w: write: %v", utils.ErrFileIO, err)
			}
			t.transferred.Add(uint64(n))
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				if got := t.transferred.Load(); got < size {
					return fmt.Errorf("%w: received %d of %d bytes", utils.ErrShortTransfer, got, size)
				}
				break
			}
			return fmt.Errorf("%w: read: %v", utils.ErrConnection, readErr)
		}
	}
	return nil
}

// Err is the outcome recorded by Run. Read it only after Run has returned.
func (t *Task) Err() error {
	return t.err
}
