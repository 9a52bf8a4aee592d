package cli

import (
	"bufio"
	"context"
	"fmt"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isOwner() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Cars(ctx context.Context, cached bool) error
	AddCar(ctx context.Context) error
	Goto(ctx context.Context, path string) error
	Where(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the car rental CLI.
//
// It reads a line from in, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF, when ctx is done, or when
// the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help            show available commands
//	  - cars [cached]   list available cars (cached: last list saved locally)
//	  - goto <path>     move to a location, e.g. /car-details/<id>
//	  - where           show the current location
//	  - status          show the session state
//	  - exit | quit     leave the program
//
//	Not logged in:
//	  - register        create an account
//	  - login           authenticate
//
//	Logged in:
//	  - addcar          list a new car (owners only)
//	  - logout          log out
//
// Login-gated commands typed while logged out raise the login prompt and
// are resumed at the same location after a successful login.
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
//
// in is shared with the command prompts so that buffered input is never lost
// between the REPL and a command reading its fields.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("rent %s > ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		cmd, args := splitCommand(line)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			switch {
			case a.isOwner():
				printlnFn("Available commands: cars [cached], addcar, goto <path>, where, status, logout, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: cars [cached], goto <path>, where, status, logout, exit")
			default:
				printlnFn("Available commands: register, login, cars [cached], addcar, goto <path>, where, status, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "cars":
			_ = a.Cars(ctx, len(args) > 0 && args[0] == "cached")

		case "addcar":
			_ = a.AddCar(ctx)

		case "goto":
			if len(args) == 0 {
				printlnFn("Usage: goto <path>")
				continue
			}
			_ = a.Goto(ctx, args[0])

		case "where":
			_ = a.Where(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
