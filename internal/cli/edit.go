package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/project"
)

// EditOptions contains all the configuration for the 'edit' command.
type EditOptions struct {
	ProjectPath string
	Owner       string
	Debug       bool
	Quiet       bool
}

// RunEdit starts the interactive condition editor for one owner id.
// Every committed edit is written back to the project file immediately,
// so quitting at any point leaves a consistent document.
func RunEdit(opts EditOptions) error {
	logger := createLogger(opts.Debug)

	doc, err := project.Load(opts.ProjectPath)
	if err != nil {
		return err
	}

	ed := espalier.New(doc.Conditions[opts.Owner],
		espalier.WithVariables(doc.Variables),
		espalier.WithScripts(doc.ConditionScripts()),
		espalier.WithLogger(logger),
		espalier.WithOnChange(func(root *domain.ConditionExpression) {
			if root == nil {
				delete(doc.Conditions, opts.Owner)
			} else {
				doc.Conditions[opts.Owner] = root
			}
			if err := doc.Save(opts.ProjectPath); err != nil {
				logger.Error("autosave failed", "err", err)
				printSystemMessage("Save failed: %v", err)
			}
		}),
	)

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(markdown string) string { return markdown }
	if interactive {
		if !opts.Quiet {
			tui.PrintBanner()
		}
		glam := tui.NewRenderer()
		render = func(markdown string) string {
			out, err := glam(markdown)
			if err != nil {
				return markdown
			}
			return out
		}
	}

	ctx := NewSignalContext(context.Background())
	defer ctx.Cancel()

	printSystemMessage("Editing condition '%s' in %s. Type 'help' for commands.", opts.Owner, doc.Name)

	scanner := bufio.NewScanner(os.Stdin)
	loop := &editLoop{ed: ed, doc: doc, render: render, scanner: scanner}
	for {
		loop.show()

		fmt.Print("> ")
		if !scanner.Scan() || ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" || line == "q" {
			break
		}

		if err := loop.dispatch(line); err != nil {
			printSystemMessage("Error: %v", err)
		}
	}

	if !opts.Quiet {
		printSystemMessage("Done.")
	}
	return handleExecutionError(scanner.Err())
}

type editLoop struct {
	ed      *espalier.Editor
	doc     *project.Document
	render  func(string) string
	scanner *bufio.Scanner
}

func (l *editLoop) show() {
	markdown := tui.MarkdownTree(l.ed.Root(), tui.TreeOptions{
		Variables: l.doc.Variables,
		Scripts:   l.doc.ConditionScripts(),
		Collapsed: l.ed.IsCollapsed,
	})
	fmt.Print(l.render(markdown))

	for _, w := range l.ed.Warnings() {
		printSystemMessage("Warning: %s %s is %s (at %v)", w.Kind, w.ID, w.Status, w.Path)
	}
}

func (l *editLoop) dispatch(line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		printHelp()
		return nil
	case "vars":
		for _, v := range l.doc.Variables {
			fmt.Printf("  %s  %s (%s, %s)\n", v.ID, v.Name, v.Type, v.Scope)
		}
		return nil
	case "scripts":
		for _, s := range l.doc.ConditionScripts() {
			fmt.Printf("  %s  %s\n", s.ID, s.Name)
		}
		return nil
	case "warn":
		if len(l.ed.Warnings()) == 0 {
			printSystemMessage("No reference warnings.")
		}
		return nil
	}

	if len(args) < 1 {
		return fmt.Errorf("usage: %s <path> ...", cmd)
	}
	path, err := parsePath(args[0])
	if err != nil {
		return err
	}
	rest := args[1:]

	switch cmd {
	case "add":
		return l.ed.AddCondition(path)
	case "group":
		return l.ed.AddGroup(path)
	case "rm":
		return l.remove(path)
	case "fold":
		l.ed.ToggleCollapse(path)
		return nil
	case "mode":
		if len(rest) != 1 {
			return fmt.Errorf("usage: mode <path> and|or|not")
		}
		return l.ed.SwitchMode(path, domain.ConditionKind(rest[0]))
	case "move":
		if len(rest) != 2 {
			return fmt.Errorf("usage: move <path> <from> <to>")
		}
		from, err1 := strconv.Atoi(rest[0])
		to, err2 := strconv.Atoi(rest[1])
		if err1 != nil || err2 != nil {
			return fmt.Errorf("move indexes must be numbers")
		}
		return l.ed.Reorder(path, from, to)
	case "kind":
		if len(rest) != 1 {
			return fmt.Errorf("usage: kind <path> comparison|script_ref|literal")
		}
		return l.ed.SwitchLeafKind(path, domain.ConditionKind(rest[0]))
	case "op":
		if len(rest) != 1 {
			return fmt.Errorf("usage: op <path> <operator>")
		}
		op, err := domain.ParseOperator(rest[0])
		if err != nil {
			return err
		}
		return l.ed.SetOperator(path, op)
	case "left":
		if len(rest) == 0 {
			return fmt.Errorf("usage: left <path> <variable name>")
		}
		def, ok := l.doc.VariableByName(strings.Join(rest, " "))
		if !ok {
			return fmt.Errorf("unknown variable: %q", strings.Join(rest, " "))
		}
		return l.ed.SetLeft(path, domain.VariableRef{VariableID: def.ID, Scope: def.Scope})
	case "right":
		if len(rest) == 0 {
			return fmt.Errorf("usage: right <path> <value>")
		}
		return l.ed.SetRightText(path, strings.Join(rest, " "))
	case "rightvar":
		if len(rest) == 0 {
			return fmt.Errorf("usage: rightvar <path> <variable name>")
		}
		def, ok := l.doc.VariableByName(strings.Join(rest, " "))
		if !ok {
			return fmt.Errorf("unknown variable: %q", strings.Join(rest, " "))
		}
		return l.ed.SetRight(path, domain.NewVariableSource(domain.VariableRef{VariableID: def.ID, Scope: def.Scope}))
	case "script":
		if len(rest) == 0 {
			return fmt.Errorf("usage: script <path> <script name>")
		}
		name := strings.Join(rest, " ")
		for _, s := range l.doc.ConditionScripts() {
			if s.Name == name {
				return l.ed.SetScript(path, s.ID)
			}
		}
		return fmt.Errorf("unknown script: %q", name)
	case "lit":
		if len(rest) != 1 {
			return fmt.Errorf("usage: lit <path> true|false")
		}
		value, err := strconv.ParseBool(rest[0])
		if err != nil {
			return fmt.Errorf("literal value must be true or false")
		}
		return l.ed.SetLiteral(path, value)
	default:
		return fmt.Errorf("unknown command: %q (try 'help')", cmd)
	}
}

// remove runs the guarded-delete flow: a group that still has content
// needs an explicit yes before anything is committed.
func (l *editLoop) remove(path []int) error {
	if err := l.ed.Remove(path); err != nil {
		return err
	}

	pendingPath, count, ok := l.ed.Pending()
	if !ok {
		return nil
	}

	noun := "conditions"
	if count == 1 {
		noun = "condition"
	}
	fmt.Printf("Delete group at %v with %d %s? [y/N] ", pendingPath, count, noun)
	if !l.scanner.Scan() {
		return l.ed.Cancel()
	}
	answer := strings.ToLower(strings.TrimSpace(l.scanner.Text()))
	if answer == "y" || answer == "yes" {
		return l.ed.Confirm()
	}
	return l.ed.Cancel()
}

func printHelp() {
	fmt.Print(`Commands (paths are dot-separated child indexes, 'root' for the root):
  add <path>               append a comparison to the group
  group <path>             append an empty AND group
  rm <path>                remove a node (asks before deleting content)
  mode <path> and|or|not   switch a group's logic mode
  move <path> <from> <to>  reorder children of a group
  kind <path> <leaf kind>  comparison | script_ref | literal
  op <path> <operator>     == != > < >= <=
  left <path> <variable>   bind the comparison's left side
  right <path> <value>     set the right side from text
  rightvar <path> <variable>  compare against another variable
  script <path> <name>     bind a script reference
  lit <path> true|false    set a literal value
  fold <path>              collapse/expand a group
  vars, scripts, warn      list definitions / warnings
  quit                     leave the editor
`)
}

func parsePath(raw string) ([]int, error) {
	if raw == "root" || raw == "." {
		return nil, nil
	}
	parts := strings.Split(raw, ".")
	path := make([]int, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("invalid path %q: use e.g. 0.1 or 'root'", raw)
		}
		path = append(path, idx)
	}
	return path, nil
}
