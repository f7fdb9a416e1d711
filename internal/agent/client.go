package agent

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	sshagent "golang.org/x/crypto/ssh/agent"

	"rad/internal/crypto"
	"rad/internal/domain"
	"rad/internal/util/memzero"
)

// SocketEnv is the environment variable carrying the agent socket address.
const SocketEnv = "SSH_AUTH_SOCK"

// DefaultTimeout bounds a single agent round-trip.
const DefaultTimeout = 10 * time.Second

// Client talks to an ssh-agent listening on a unix socket.
type Client struct {
	socket  string
	timeout time.Duration
	log     *zap.Logger
}

// SocketFromEnv returns the agent socket address from the environment.
func SocketFromEnv() string { return os.Getenv(SocketEnv) }

// New returns a Client for socket. A zero timeout selects DefaultTimeout.
func New(socket string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{socket: socket, timeout: timeout, log: log}
}

// IsLoaded reports whether pub is among the agent's identities.
func (c *Client) IsLoaded(ctx context.Context, pub domain.Ed25519Public) (bool, error) {
	want, err := crypto.SSHPublicKey(pub)
	if err != nil {
		return false, err
	}
	var loaded bool
	err = c.do(ctx, "list", func(a *session) error {
		var listErr error
		loaded, listErr = hasKey(a, want)
		return listErr
	})
	return loaded, err
}

// Load adds priv to the agent. Loading a key that is already present replaces
// it, so the call is idempotent.
func (c *Client) Load(ctx context.Context, priv *domain.Ed25519Private, comment string) error {
	key := ed25519.PrivateKey(append([]byte(nil), priv[:]...))
	defer memzero.Zero(key)

	return c.do(ctx, "add", func(a *session) error {
		return a.Add(sshagent.AddedKey{PrivateKey: key, Comment: comment})
	})
}

// Sign signs msg with the loaded key matching pub. If the agent refuses and the
// key is not loaded, it returns domain.ErrSigningKeyNotReady.
func (c *Client) Sign(ctx context.Context, pub domain.Ed25519Public, msg []byte) ([]byte, error) {
	key, err := crypto.SSHPublicKey(pub)
	if err != nil {
		return nil, err
	}
	var sig *ssh.Signature
	err = c.do(ctx, "sign", func(a *session) error {
		var signErr error
		sig, signErr = a.Sign(key, msg)
		if signErr == nil || a.broken() {
			return signErr
		}
		loaded, err := hasKey(a, key)
		if err != nil {
			return err
		}
		if !loaded {
			return domain.ErrSigningKeyNotReady
		}
		return signErr
	})
	if err != nil {
		return nil, err
	}
	if sig.Format != ssh.KeyAlgoED25519 {
		return nil, fmt.Errorf("unexpected signature format %q", sig.Format)
	}
	return sig.Blob, nil
}

// Unload removes pub from the agent. Unloading an absent key is a no-op.
func (c *Client) Unload(ctx context.Context, pub domain.Ed25519Public) error {
	key, err := crypto.SSHPublicKey(pub)
	if err != nil {
		return err
	}
	return c.do(ctx, "remove", func(a *session) error {
		loaded, err := hasKey(a, key)
		if err != nil || !loaded {
			return err
		}
		return a.Remove(key)
	})
}

// session is one agent connection along with its recorded socket failures.
type session struct {
	sshagent.ExtendedAgent
	conn *watchedConn
	ctx  context.Context
}

// broken reports whether the connection failed or the call ran out of time.
func (s *session) broken() bool {
	return s.conn.failed() || s.ctx.Err() != nil
}

// watchedConn remembers the first Read or Write error on the connection.
type watchedConn struct {
	net.Conn

	mu  sync.Mutex
	err error
}

func (w *watchedConn) Read(p []byte) (int, error) {
	n, err := w.Conn.Read(p)
	w.record(err)
	return n, err
}

func (w *watchedConn) Write(p []byte) (int, error) {
	n, err := w.Conn.Write(p)
	w.record(err)
	return n, err
}

func (w *watchedConn) record(err error) {
	if err == nil {
		return
	}
	w.mu.Lock()
	if w.err == nil {
		w.err = err
	}
	w.mu.Unlock()
}

func (w *watchedConn) failed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err != nil
}

// do runs fn against a fresh agent connection bounded by the client timeout.
func (c *Client) do(ctx context.Context, op string, fn func(*session) error) error {
	if c.socket == "" {
		return fmt.Errorf("%w: %s is not set", domain.ErrAgentUnreachable, SocketEnv)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.socket)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrAgentUnreachable, err)
	}
	defer conn.Close()
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	wc := &watchedConn{Conn: conn}
	s := &session{ExtendedAgent: sshagent.NewClient(wc), conn: wc, ctx: ctx}
	start := time.Now()
	err = fn(s)
	c.log.Debug("agent call",
		zap.String("op", op),
		zap.String("socket", c.socket),
		zap.Duration("took", time.Since(start)),
		zap.Error(err),
	)
	if err != nil && s.broken() {
		return fmt.Errorf("%w: %s: %w", domain.ErrAgentUnreachable, op, err)
	}
	return err
}

func hasKey(a sshagent.Agent, want ssh.PublicKey) (bool, error) {
	keys, err := a.List()
	if err != nil {
		return false, err
	}
	wire := want.Marshal()
	for _, k := range keys {
		if bytes.Equal(k.Marshal(), wire) {
			return true, nil
		}
	}
	return false, nil
}

// Compile-time assertion that Client implements domain.SigningAgent.
var _ domain.SigningAgent = (*Client)(nil)
