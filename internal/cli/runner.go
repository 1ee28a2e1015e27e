package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/toumakido/todolist/internal/client"
	"github.com/toumakido/todolist/internal/model"
	"github.com/toumakido/todolist/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done
}

// Runner executes todoctl subcommands against a todo server.
type Runner struct {
	api *client.Client
	ui  *ui.UI
	out io.Writer
}

// NewRunner returns a Runner using api and printing through u; help goes to out.
func NewRunner(api *client.Client, u *ui.UI, out io.Writer) *Runner {
	return &Runner{api: api, ui: u, out: out}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func (r *Runner) Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		r.PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		r.PrintHelp()
		return 0

	case "ls":
		return r.doList(ctx, opt)

	case "add":
		if len(a) == 0 {
			r.ui.Fail("usage: todoctl add <text...>")
			return 2
		}
		return r.doAdd(ctx, strings.Join(a, " "))

	case "done", "undone":
		if len(a) != 1 {
			r.ui.Fail("usage: todoctl " + cmd + " <id>")
			return 2
		}
		id, ok := r.parseID(cmd, a[0])
		if !ok {
			return 2
		}
		done := cmd == "done"
		return r.doPatch(ctx, id, model.UpdateTodoRequest{Done: &done}, "marked "+cmd)

	case "edit":
		if len(a) < 2 {
			r.ui.Fail("usage: todoctl edit <id> <text...>")
			return 2
		}
		id, ok := r.parseID(cmd, a[0])
		if !ok {
			return 2
		}
		text := strings.Join(a[1:], " ")
		return r.doPatch(ctx, id, model.UpdateTodoRequest{Text: &text}, "edited")

	case "rm":
		if len(a) != 1 {
			r.ui.Fail("usage: todoctl rm <id>")
			return 2
		}
		id, ok := r.parseID(cmd, a[0])
		if !ok {
			return 2
		}
		return r.doRemove(ctx, id)
	}

	r.ui.Fail("unknown subcommand: " + cmd)
	r.PrintHelp()
	return 2
}

func (r *Runner) PrintHelp() {
	fmt.Fprint(r.out, `todoctl - command-line client for the todo server

Usage:
  todoctl [-api URL] [-group] <subcommand> [args]

Subcommands:
  ls                 List todos
  add <text...>      Add a todo (text can be multiple words)
  done <id>          Mark a todo done
  undone <id>        Mark a todo pending
  edit <id> <text..> Replace a todo's text
  rm <id>            Remove a todo

Examples:
  todoctl add "Buy milk"
  todoctl ls
  todoctl done 3
  todoctl rm 3
`)
}

func (r *Runner) parseID(cmd, arg string) (int, bool) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		r.ui.Fail(cmd + ": not an id: " + arg)
		return 0, false
	}
	return id, true
}

// -------------- subcommand impls ----------------

func (r *Runner) doList(ctx context.Context, opt Options) int {
	todos, err := r.api.List(ctx)
	if err != nil {
		r.ui.Fail("list: " + err.Error())
		return 1
	}
	r.ui.List(todos, opt.Group)
	return 0
}

func (r *Runner) doAdd(ctx context.Context, text string) int {
	todo, err := r.api.Create(ctx, text)
	if err != nil {
		return r.fail("add", err)
	}
	r.ui.OK(fmt.Sprintf("added #%d", todo.ID))
	return 0
}

func (r *Runner) doPatch(ctx context.Context, id int, req model.UpdateTodoRequest, msg string) int {
	if _, err := r.api.Update(ctx, id, req); err != nil {
		return r.fail("update", err)
	}
	r.ui.OK(fmt.Sprintf("%s #%d", msg, id))
	return 0
}

func (r *Runner) doRemove(ctx context.Context, id int) int {
	if err := r.api.Delete(ctx, id); err != nil {
		return r.fail("rm", err)
	}
	r.ui.OK(fmt.Sprintf("removed #%d", id))
	return 0
}

// fail reports err; client-side mistakes (4xx) exit 2, everything else 1.
func (r *Runner) fail(op string, err error) int {
	if errors.Is(err, client.ErrNotFound) {
		r.ui.Fail(op + ": no such todo")
		fmt.Fprintln(r.out, "Hint: run `todoctl ls` to see valid ids")
		return 2
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		r.ui.Fail(op + ": " + apiErr.Message)
		return 2
	}
	r.ui.Fail(op + ": " + err.Error())
	return 1
}
