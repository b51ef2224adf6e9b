package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/scicalc"
)

type evalOptions struct {
	in    string
	verb  string
	lines bool
	echo  bool
	chain bool
}

func newEvalCmd(a *app) *cobra.Command {
	var o evalOptions
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions",
		Long: `Evaluate expressions given as arguments, or read from a file or stdin.

With --chain, an expression that starts with an operator continues from the
previous result, e.g. "2 + 3" then "* 4" gives 5 then 20.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEval(cmd, args, &o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.in, "in", "", "input file (default stdin if no args given)")
	f.StringVar(&o.verb, "fmt", "", "result formatting verb, e.g. %.4f (default calculator display)")
	f.BoolVarP(&o.lines, "lines", "n", false, "evaluate separate input lines as separate expressions")
	f.BoolVar(&o.echo, "echo", false, "print expressions in postfix order")
	f.BoolVar(&o.chain, "chain", false, "continue expressions starting with an operator from the previous result")
	return cmd
}

func (a *app) runEval(cmd *cobra.Command, args []string, o *evalOptions) error {
	srcs, err := inputs(cmd.InOrStdin(), o.in, len(args) == 0, o.lines)
	if err != nil {
		return err
	}
	srcs = append(srcs, args...)
	verb := o.verb
	if !cmd.Flags().Changed("fmt") {
		verb = a.cfg.Format
	}
	var (
		out    = cmd.OutOrStdout()
		opts   = a.cfg.ParseOptions()
		ctx    = scicalc.NewContext(a.cfg.AngleMode())
		prev   float64
		have   bool
		failed int
	)
	for _, src := range srcs {
		var e *scicalc.Expr
		if o.chain && have && scicalc.Continues(src) {
			e, err = scicalc.ParseChain(prev, src, opts...)
		} else {
			e, err = scicalc.Parse(src, opts...)
		}
		var r float64
		if err == nil {
			r, err = ctx.Eval(e)
		}
		if err != nil {
			failed++
			a.log.Debug("evaluation failed", slog.String("expr", src), slog.Any("err", err))
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", strings.TrimSpace(src), err)
			continue
		}
		if o.echo {
			fmt.Fprintf(out, "%v : ", e)
		}
		fmt.Fprintln(out, format(verb, r))
		prev, have = r, true
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(srcs))
	}
	return nil
}

// inputs reads expressions from the named file, or from stdin if the name is
// "-" or if std is set and there is no name.
func inputs(stdin io.Reader, name string, std, lines bool) ([]string, error) {
	var r io.Reader
	switch {
	case name != "" && name != "-":
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("couldn't open input: %w", err)
		}
		defer f.Close()
		r = f
	case name == "-", std:
		r = stdin
	}
	if r == nil {
		return nil, nil
	}
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("couldn't read input: %w", err)
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var srcs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			srcs = append(srcs, sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("couldn't read input: %w", err)
	}
	return srcs, nil
}

func format(verb string, r float64) string {
	if verb == "" {
		return scicalc.Format(r)
	}
	return fmt.Sprintf(verb, r)
}
