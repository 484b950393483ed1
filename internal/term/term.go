package term

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// Term describes where a command writes and how rich its output may be.
type Term struct {
	out    io.Writer
	errOut io.Writer
	fd     uintptr
	isTTY  bool
}

func FromIO(out, errOut io.Writer) *Term {
	t := &Term{out: out, errOut: errOut}
	if f, ok := out.(*os.File); ok {
		t.fd = f.Fd()
		t.isTTY = isatty.IsTerminal(t.fd) || isatty.IsCygwinTerminal(t.fd)
	}
	return t
}

func (t *Term) Out() io.Writer    { return t.out }
func (t *Term) ErrOut() io.Writer { return t.errOut }
func (t *Term) IsTTY() bool       { return t.isTTY }

// Width is the terminal width, or DefaultWidth if unknown.
func (t *Term) Width() int {
	if !t.isTTY {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(t.fd))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Color reports whether output may be colored. NO_COLOR disables it.
func (t *Term) Color() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return t.isTTY
}
