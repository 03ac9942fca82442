package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Prefix marks a console line as a command rather than plain chat.
const Prefix = "cmd "

// ErrHelp is returned by Execute when the user asked for -h/-help; usage has been written.
var ErrHelp = flag.ErrHelp

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state and
// FlagSet.Args().
type Command struct {
	Name    string
	Summary string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
	out  io.Writer
}

// NewRegistry returns an empty registry. Usage and flag errors are written to out; nil discards
// them.
func NewRegistry(out io.Writer) *Registry {
	if out == nil {
		out = io.Discard
	}
	return &Registry{cmds: make(map[string]*Command), out: out}
}

// NewFlagSet returns a FlagSet that reports errors instead of exiting, for use with Register.
func NewFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

// Register adds a subcommand. fs may be nil for commands without flags.
func (r *Registry) Register(name, summary string, fs *flag.FlagSet, run func() error) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	fs.SetOutput(r.out)
	r.cmds[name] = &Command{Name: name, Summary: summary, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Usage writes one line per command.
func (r *Registry) Usage() {
	for _, n := range r.Names() {
		fmt.Fprintf(r.out, "  %-8s %s\n", n, r.cmds[n].Summary)
	}
}

// Parse interprets line as a console line. If line starts with Prefix (case-sensitive),
// the rest is tokenized by spaces and returned with ok true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, Prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(Prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for a missing or unknown command, a parse error, or the error from Run.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return errors.New("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s (have %s)", name, strings.Join(r.Names(), ", "))
	}
	// Console commands run many times on the same FlagSet; start each run from the defaults.
	cmd.FlagSet.VisitAll(func(f *flag.Flag) {
		_ = f.Value.Set(f.DefValue)
	})
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run()
}
