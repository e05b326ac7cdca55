package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	invlog "github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop/client"
	gameconfig "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/metrics"
	"github.com/tomz197/invaders/internal/object"
)

const (
	shutdownGrace  = 15 * time.Second
	serverShutdown = 5 * time.Second
)

func main() {
	configFile := pflag.StringP("config", "c", "", "path to a config file (json, yaml or toml)")
	pflag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger, err := invlog.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	workingDir, err := os.Getwd()
	if err != nil {
		logger.Warn("failed to get working directory", "err", err)
	}
	logger.Info("ssh config",
		"host", cfg.SSH.Host,
		"port", cfg.SSH.Port,
		"hostKeyPath", cfg.SSH.HostKeyPath,
		"workingDir", workingDir,
	)

	recorder, err := metrics.New()
	if err != nil {
		return err
	}

	hub := server.NewHub()
	field := object.Field{Width: cfg.Field.Width, Height: cfg.Field.Height}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			gameMiddleware(hub, recorder, logger, field),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting SSH server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		// Notify players and wait for them to disconnect
		logger.Info("notifying connected players about shutdown", "players", hub.Count())
		hub.Shutdown(shutdownGrace)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdown)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// gameMiddleware handles SSH sessions and runs one game per session.
func gameMiddleware(hub *server.Hub, recorder *metrics.Recorder, logger *log.Logger, field object.Field) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			username := sanitizeUsername(sess.User())
			logger.Info("new game session",
				"user", username,
				"terminal", pty.Term,
				"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height),
			)

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			c := client.NewClient(bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     username,
				Hub:          hub,
				Audio:        audio.NewBell(sess),
				Metrics:      recorder,
				Logger:       logger,
				Field:        field,
			})
			if err := c.Run(); err != nil {
				logger.Error("game error", "user", username, "err", err)
			}

			logger.Info("session ended", "user", username)
			next(sess)
		}
	}
}

// sanitizeUsername keeps printable characters and caps the length so names
// fit the leaderboard.
func sanitizeUsername(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, strings.TrimSpace(name))

	if len(name) > gameconfig.MaxUsernameLength {
		name = name[:gameconfig.MaxUsernameLength]
	}
	if name == "" {
		return "anonymous"
	}
	return name
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
