package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/session"
)

const replHelp = `Lines are added to the expression and calculated. A line that starts
with an operator continues from the last result. An empty line calculates
again. Commands:
  :deg :rad     set the angle mode
  :angle        toggle the angle mode
  :mode         toggle scientific and standard mode
  :c            clear
  :ce           clear the last entry
  :back         delete the last character
  :neg          toggle the sign of the last number
  :pi :e        insert a constant
  :mc :mr       clear or recall memory
  :m+ :m-       add or subtract the display to memory
  :hist         show history
  :help         show this help
  :quit         exit`

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive calculator session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.New(
				session.WithAngle(a.cfg.AngleMode()),
				session.WithParseOptions(a.cfg.ParseOptions()...),
				session.WithHistorySize(a.cfg.HistorySize),
				session.WithScientific(a.cfg.Scientific),
				session.WithLogger(a.log),
			)
			return repl(cmd.InOrStdin(), cmd.OutOrStdout(), s)
		},
	}
}

func repl(in io.Reader, out io.Writer, s *session.Session) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", s.Angle())
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, ":") {
			if quit := command(out, s, line); quit {
				return nil
			}
			continue
		}
		// A new expression replaces the last result unless it continues it.
		if line != "" && s.Expression() == s.Display() && !scicalc.Continues(line) {
			s.Clear()
		}
		s.Input(line)
		if _, err := s.Calculate(); err != nil {
			fmt.Fprintf(out, "%s: %v\n", session.ErrorDisplay, err)
			s.Clear()
			continue
		}
		fmt.Fprintln(out, s.Display())
	}
}

// command runs a : command and reports whether the session should end.
func command(out io.Writer, s *session.Session, line string) bool {
	switch strings.ToLower(line) {
	case ":deg":
		s.SetAngle(scicalc.Degrees)
	case ":rad":
		s.SetAngle(scicalc.Radians)
	case ":angle":
		fmt.Fprintln(out, s.ToggleAngle())
	case ":mode":
		if s.ToggleMode() {
			fmt.Fprintln(out, "scientific")
		} else {
			fmt.Fprintln(out, "standard")
		}
	case ":c":
		s.Clear()
	case ":ce":
		s.ClearEntry()
		fmt.Fprintln(out, s.Expression())
	case ":back":
		s.Backspace()
		fmt.Fprintln(out, s.Expression())
	case ":neg":
		s.Function("±")
		fmt.Fprintln(out, s.Expression())
	case ":pi":
		s.Function("π")
		fmt.Fprintln(out, s.Expression())
	case ":e":
		s.Function("e")
		fmt.Fprintln(out, s.Expression())
	case ":mc":
		s.MemoryClear()
	case ":mr":
		s.MemoryRecall()
		fmt.Fprintln(out, s.Expression())
	case ":m+":
		s.MemoryAdd()
		fmt.Fprintln(out, "M", scicalc.Format(s.Memory()))
	case ":m-":
		s.MemorySubtract()
		fmt.Fprintln(out, "M", scicalc.Format(s.Memory()))
	case ":hist":
		for _, h := range s.History() {
			fmt.Fprintln(out, h)
		}
	case ":help":
		fmt.Fprintln(out, replHelp)
	case ":quit", ":q", ":exit":
		return true
	default:
		fmt.Fprintf(out, "unknown command %s, try :help\n", line)
	}
	return false
}
