// Package agenttest serves an in-memory ssh-agent keyring on a unix socket for
// tests.
package agenttest

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	sshagent "golang.org/x/crypto/ssh/agent"
)

// Agent is a running in-memory agent.
type Agent struct {
	Socket  string
	Keyring sshagent.Agent

	ln   net.Listener
	wg   sync.WaitGroup
	once sync.Once
}

// Serve starts an agent on a fresh socket and stops it when the test ends.
func Serve(t testing.TB) *Agent {
	t.Helper()

	dir, err := os.MkdirTemp("", "agent")
	if err != nil {
		t.Fatalf("agent dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	sock := filepath.Join(dir, "s")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	a := &Agent{Socket: sock, Keyring: sshagent.NewKeyring(), ln: ln}
	a.wg.Add(1)
	go a.serve()
	t.Cleanup(a.Close)
	return a
}

func (a *Agent) serve() {
	defer a.wg.Done()
	for {
		conn, err := a.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			defer conn.Close()
			_ = sshagent.ServeAgent(a.Keyring, conn)
		}()
	}
}

// Close stops accepting connections and waits for in-flight ones.
func (a *Agent) Close() {
	a.once.Do(func() {
		_ = a.ln.Close()
		a.wg.Wait()
	})
}

// Len returns the number of keys held by the agent.
func (a *Agent) Len(t testing.TB) int {
	t.Helper()
	keys, err := a.Keyring.List()
	if err != nil {
		t.Fatalf("list keys: %v", err)
	}
	return len(keys)
}

// Hang serves a socket that accepts connections and never answers.
func Hang(t testing.TB) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "agent")
	if err != nil {
		t.Fatalf("agent dir: %v", err)
	}
	sock := filepath.Join(dir, "s")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		<-done
		mu.Lock()
		for _, c := range conns {
			_ = c.Close()
		}
		mu.Unlock()
		_ = os.RemoveAll(dir)
	})
	return sock
}

// Drop serves a socket that accepts connections and closes them at once.
func Drop(t testing.TB) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "agent")
	if err != nil {
		t.Fatalf("agent dir: %v", err)
	}
	sock := filepath.Join(dir, "s")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		<-done
		_ = os.RemoveAll(dir)
	})
	return sock
}
