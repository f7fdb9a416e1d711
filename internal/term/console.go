package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	xterm "golang.org/x/term"

	"rad/internal/domain"
	"rad/internal/util/memzero"
)

// ErrNoInput is returned when input ends before a prompt is answered.
var ErrNoInput = errors.New("no input")

// Console reads prompts from in and writes everything else to out.
type Console struct {
	in      *bufio.Reader
	inFD    int
	inTTY   bool
	out     io.Writer
	st      styles
	mu      sync.Mutex
	animate bool
}

// New returns a console over in and out. Secrets are read without echo when
// in is a terminal; the spinner animates only when out is one.
func New(in io.Reader, out io.Writer) *Console {
	c := &Console{in: bufio.NewReader(in), out: out, st: newStyles(out)}
	if f, ok := in.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
		c.inFD, c.inTTY = int(f.Fd()), true
	}
	if f, ok := out.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
		c.animate = true
	}
	return c
}

// Stdio returns a console on the process's standard streams. Status output
// goes to stderr so stdout stays clean for command results.
func Stdio() *Console { return New(os.Stdin, os.Stderr) }

// SetAnimate forces the spinner animation on or off.
func (c *Console) SetAnimate(on bool) { c.animate = on }

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Input asks for a line of text. An empty answer yields def.
func (c *Console) Input(label, def string) (string, error) {
	if def != "" {
		c.printf("%s %s: ", c.st.headline.Render(label), c.st.muted.Render("("+def+")"))
	} else {
		c.printf("%s: ", c.st.headline.Render(label))
	}
	v, err := c.readLine()
	if err != nil {
		return "", err
	}
	if v = strings.TrimSpace(v); v == "" {
		return def, nil
	}
	return v, nil
}

// Secret asks for a passphrase without echoing it.
func (c *Console) Secret(label string) (*domain.Passphrase, error) {
	c.printf("%s: ", c.st.headline.Render(label))
	if c.inTTY {
		b, err := xterm.ReadPassword(c.inFD)
		c.printf("\n")
		if err != nil {
			return nil, err
		}
		return domain.NewPassphrase(b), nil
	}
	return c.readSecretLine()
}

// readSecretLine reads one line of any length. Both the reader's buffer and
// the scratch copies are zeroed; only the returned passphrase keeps the bytes.
func (c *Console) readSecretLine() (*domain.Passphrase, error) {
	var line []byte
	defer func() { memzero.Zero(line) }()

	for {
		chunk, err := c.in.ReadSlice('\n')
		line = appendWiped(line, chunk)
		memzero.Zero(chunk)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			if errors.Is(err, io.EOF) {
				return nil, ErrNoInput
			}
			return nil, err
		}
		break
	}
	n := len(line)
	for n > 0 && (line[n-1] == '\n' || line[n-1] == '\r') {
		n--
	}
	return domain.NewPassphrase(line[:n]), nil
}

// appendWiped appends src to dst, zeroing dst's old array when it has to grow.
func appendWiped(dst, src []byte) []byte {
	if len(dst)+len(src) <= cap(dst) {
		return append(dst, src...)
	}
	grown := make([]byte, len(dst), 2*(len(dst)+len(src)))
	copy(grown, dst)
	memzero.Zero(dst)
	return append(grown, src...)
}

// Choose lists options numbered from 1 and returns the picked index. The
// option at current is marked and is the answer to an empty reply.
func (c *Console) Choose(label string, options []string, current int) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("nothing to choose from")
	}
	for i, o := range options {
		mark := " "
		if i == current {
			mark = c.st.success.Render("*")
		}
		c.printf("%s %d) %s\n", mark, i+1, o)
	}
	for {
		if current >= 0 && current < len(options) {
			c.printf("%s %s: ", c.st.headline.Render(label), c.st.muted.Render("("+strconv.Itoa(current+1)+")"))
		} else {
			c.printf("%s: ", c.st.headline.Render(label))
		}
		v, err := c.readLine()
		if err != nil {
			return 0, err
		}
		v = strings.TrimSpace(v)
		if v == "" && current >= 0 && current < len(options) {
			return current, nil
		}
		n, err := strconv.Atoi(v)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		c.Warning(fmt.Sprintf("Enter a number between 1 and %d", len(options)))
	}
}

// Headline prints a bold title.
func (c *Console) Headline(msg string) { c.printf("%s\n", c.st.headline.Render(msg)) }

// Info prints a plain status line.
func (c *Console) Info(msg string) { c.printf("%s\n", msg) }

// Success prints a check-marked line.
func (c *Console) Success(msg string) { c.printf("%s %s\n", c.st.success.Render("✓"), msg) }

// Warning prints a flagged line.
func (c *Console) Warning(msg string) { c.printf("%s %s\n", c.st.warning.Render("!"), msg) }

// Error prints err as a failure line.
func (c *Console) Error(err error) {
	c.printf("%s %s\n", c.st.failure.Render("✗ Error:"), err)
}

// Blank prints an empty line.
func (c *Console) Blank() { c.printf("\n") }

// Highlight styles s for use inside a message.
func (c *Console) Highlight(s string) string { return c.st.highlight.Render(s) }

// Compile-time assertions.
var (
	_ domain.Prompter = (*Console)(nil)
	_ domain.Reporter = (*Console)(nil)
)
