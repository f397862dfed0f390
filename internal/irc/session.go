package irc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	"github.com/tanq16/xdcc/internal/utils"
)

type State int

const (
	Connecting State = iota
	Registering
	AwaitingWelcome
	Joined
	RequestingPacks
	AwaitingTransfers
	Closing
	Closed
)

var stateNames = map[State]string{
	Connecting:        "connecting",
	Registering:       "registering",
	AwaitingWelcome:   "awaiting-welcome",
	Joined:            "joined",
	RequestingPacks:   "requesting-packs",
	AwaitingTransfers: "awaiting-transfers",
	Closing:           "closing",
	Closed:            "closed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Engine receives the offers a session observes. Start must not block on the
// transfer itself; Wait joins every transfer and returns the first failure.
type Engine interface {
	Start(ctx context.Context, offer utils.Announcement)
	Fail(offer utils.Announcement, err error)
	Wait() error
}

// Dialer opens the control transport. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Session owns one control connection. It is single use: once Download
// returns the session is Closed.
type Session struct {
	cfg    utils.IRCConfig
	nick   string
	dialer Dialer
	engine Engine
	log    zerolog.Logger

	conn  net.Conn
	lines *LineReader
	state State
}

func NewSession(cfg utils.IRCConfig, engine Engine) *Session {
	if cfg.Server == "" {
		cfg.Server = utils.DefaultServer
	}
	if cfg.Channel == "" {
		cfg.Channel = utils.DefaultChannel
	}
	nick := utils.RandomNick(cfg.NickLength)
	return &Session{
		cfg:    cfg,
		nick:   nick,
		dialer: &net.Dialer{Timeout: cfg.DialTimeout},
		engine: engine,
		log:    utils.GetLogger("irc/session").With().Str("nick", nick).Logger(),
		state:  Connecting,
	}
}

// WithDialer replaces the control transport dialer.
func (s *Session) WithDialer(d Dialer) *Session {
	s.dialer = d
	return s
}

func (s *Session) Nick() string { return s.nick }

func (s *Session) State() State { return s.state }

// Download runs the whole exchange for req: register, join, request every
// pack, hand each announcement to the engine, quit, then wait for the engine.
// Announcements are matched to requests purely by arrival order; the protocol
// carries no correlation token.
func (s *Session) Download(ctx context.Context, req utils.DownloadRequest) error {
	if s.state == Closed {
		return utils.ErrSessionClosed
	}
	defer func() { s.state = Closed }()

	if err := s.connect(ctx); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { s.conn.Close() })
	defer stop()

	if err := s.register(); err != nil {
		s.conn.Close()
		return s.interrupted(ctx, err)
	}
	if err := s.awaitWelcome(); err != nil {
		s.conn.Close()
		return s.interrupted(ctx, err)
	}
	if err := s.requestPacks(req); err != nil {
		s.conn.Close()
		return s.interrupted(ctx, err)
	}
	if err := s.awaitTransfers(ctx, len(req.PackIDs)); err != nil {
		s.conn.Close()
		// transfers already spawned are joined so none are left writing files
		s.engine.Wait()
		return s.interrupted(ctx, err)
	}
	s.close()
	return s.engine.Wait()
}

func (s *Session) interrupted(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", utils.ErrConnection, ctxErr)
	}
	return err
}

func (s *Session) connect(ctx context.Context) error {
	s.state = Connecting
	s.log.Debug().Str("server", s.cfg.Server).Msg("connecting to control channel")
	conn, err := s.dialer.DialContext(ctx, "tcp", s.cfg.Server)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", utils.ErrConnection, s.cfg.Server, err)
	}
	s.conn = conn
	s.lines = NewLineReader(conn)
	return nil
}

func (s *Session) register() error {
	s.state = Registering
	if err := s.send(nickCommand(s.nick)); err != nil {
		return err
	}
	s.log.Debug().Msg("set NICK")
	if err := s.send(userCommand(s.nick)); err != nil {
		return err
	}
	s.log.Debug().Msg("set USER")
	return nil
}

func (s *Session) awaitWelcome() error {
	s.state = AwaitingWelcome
	if s.cfg.WelcomeTimeout > 0 {
		s.conn.SetReadDeadline(time.Now().Add(s.cfg.WelcomeTimeout))
		defer s.conn.SetReadDeadline(time.Time{})
	}
	for {
		line, err := s.lines.ReadLine()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return fmt.Errorf("%w: no keep-alive challenge within %s", utils.ErrConnection, s.cfg.WelcomeTimeout)
			}
			return err
		}
		s.log.Debug().Str("raw", line).Msg("recv")
		msg, _ := Parse(line)
		if msg.Kind != KeepAlive {
			continue
		}
		s.log.Debug().Str("token", msg.Token).Msg("welcome challenge")
		if err := s.send(pongCommand(msg.Token)); err != nil {
			return err
		}
		if err := s.send(joinCommand(s.cfg.Channel)); err != nil {
			return err
		}
		s.state = Joined
		s.log.Debug().Str("channel", s.cfg.Channel).Msg("joined channel")
		return nil
	}
}

func (s *Session) requestPacks(req utils.DownloadRequest) error {
	s.state = RequestingPacks
	for _, pack := range req.PackIDs {
		if err := s.send(packRequestCommand(req.PeerName, pack)); err != nil {
			return err
		}
		s.log.Info().Str("bot", req.PeerName).Str("pack", pack).Msg("requested pack")
	}
	return nil
}

func (s *Session) awaitTransfers(ctx context.Context, want int) error {
	s.state = AwaitingTransfers
	spawned := 0
	for spawned < want {
		line, err := s.lines.ReadLine()
		if err != nil {
			return err
		}
		s.log.Debug().Str("raw", line).Msg("recv")
		msg, err := Parse(line)
		switch msg.Kind {
		case KeepAlive:
			s.log.Debug().Str("token", msg.Token).Msg("keep-alive")
			if err := s.send(pongCommand(msg.Token)); err != nil {
				return err
			}
		case Announcement:
			spawned++
			if err != nil {
				s.log.Error().Err(err).Str("line", line).Msg("malformed announcement")
				s.engine.Fail(msg.Offer, err)
				continue
			}
			s.log.Info().Str("file", msg.Offer.FileName).Str("from", msg.Offer.Address()).
				Uint64("size", msg.Offer.SizeBytes).Msgf("transfer %d/%d announced", spawned, want)
			s.engine.Start(ctx, msg.Offer)
		}
	}
	return nil
}

// close sends QUIT and shuts the control transport down in both directions.
// Payload transfers run on their own connections and are unaffected.
func (s *Session) close() {
	s.state = Closing
	if err := s.send(quitCommand()); err != nil {
		s.log.Warn().Err(err).Msg("quit not delivered")
	}
	if tcp, ok := s.conn.(*net.TCPConn); ok {
		tcp.CloseWrite()
	}
	if err := s.conn.Close(); err != nil {
		s.log.Debug().Err(err).Msg("closing control connection")
	}
	s.state = Closed
}

func (s *Session) send(line string) error {
	if _, err := s.conn.Write([]byte(line)); err != nil {
		return fmt.Errorf("%w: write: %v", utils.ErrConnection, err)
	}
	return nil
}
