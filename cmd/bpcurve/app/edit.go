package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/bpcurve/curvefile"
	"github.com/npillmayer/bpcurve/editor"
)

const prompt = "bpcurve> "

// session is an interactive editing session on a single curve.
type session struct {
	ed    *editor.Editor
	curve *curvefile.Curve // header source for writing
	out   io.Writer
}

func newSession(ed *editor.Editor, c *curvefile.Curve, out io.Writer) *session {
	return &session{ed: ed, curve: c, out: out}
}

// run reads commands from in until end of input or a quit command. Failing
// commands are reported and do not end the session.
func (s *session) run(in io.Reader) error {
	writeStatus(s.out, s.ed)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		quit, err := s.exec(line)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (s *session) exec(line string) (bool, error) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch {
	case cmd == "q" || cmd == "quit" || cmd == "exit":
		return true, nil
	case cmd == "help" || cmd == "?":
		s.help()
	case strings.HasPrefix(cmd, "+") || strings.HasPrefix(cmd, "-"):
		k, err := count(cmd[1:] + arg)
		if err != nil {
			return false, err
		}
		if cmd[0] == '-' {
			k = -k
		}
		return false, s.adjust(func() error { return s.ed.AdjustCount(k) })
	case strings.HasPrefix(cmd, "="):
		n, err := strconv.Atoi(strings.TrimSpace(cmd[1:] + arg))
		if err != nil {
			return false, fmt.Errorf("=n needs a number of breakpoints: %w", err)
		}
		return false, s.adjust(func() error { return s.ed.AdjustTo(n) })
	case cmd == "reset":
		s.ed.Reset()
		writeStatus(s.out, s.ed)
	case cmd == "divider":
		if arg == "" {
			fmt.Fprintf(s.out, "divider %g\n", s.ed.Divider())
			return false, nil
		}
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return false, fmt.Errorf("divider: %w", err)
		}
		if s.ed.Locked() {
			return false, fmt.Errorf("divider is locked after editing, reset first")
		}
		if !s.ed.SetDivider(v) {
			return false, fmt.Errorf("divider must be positive, is %g", v)
		}
		writeStatus(s.out, s.ed)
	case cmd == "show":
		writePoints(s.out, s.ed.Points())
	case cmd == "angles":
		ap, err := s.ed.Angles()
		if err != nil {
			return false, err
		}
		writeAngles(s.out, ap)
	case cmd == "plot":
		plot(s.out, s.ed.Points(), plotWidth, plotHeight)
	case cmd == "write" || cmd == "w":
		if arg == "" {
			return false, fmt.Errorf("write needs a file name")
		}
		c := &curvefile.Curve{Header: s.curve.Header, Points: s.ed.Points()}
		if err := curvefile.WriteFile(arg, c); err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "wrote %d breakpoints to %s\n", len(c.Points), arg)
	default:
		return false, fmt.Errorf("unknown command %q, try help", cmd)
	}
	return false, nil
}

func (s *session) adjust(edit func() error) error {
	if err := edit(); err != nil {
		return err
	}
	writeStatus(s.out, s.ed)
	return nil
}

func (s *session) help() {
	fmt.Fprint(s.out, `+[k]        insert k breakpoints
-[k]        remove k breakpoints
=n          adjust to n breakpoints
reset       restore the loaded curve
divider v   set the section divider
show        print breakpoints
angles      print turning angles
plot        plot the curve
write FILE  write the curve
quit        leave
`)
}

// count parses the k of "+k" or "-k", which defaults to 1.
func count(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	k, err := strconv.Atoi(s)
	if err != nil || k < 0 {
		return 0, fmt.Errorf("not a count of breakpoints: %q", s)
	}
	return k, nil
}
