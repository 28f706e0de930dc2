package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL chrome (prompt, farewell, unknown
// command). Command output goes to the App writer.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	prompt() string
	help()
	exec(ctx context.Context, name string, args []string) error
}

// runREPL starts a read–eval–print loop.
//
// It reads a line, parses the first token as the command and dispatches it
// to a. Unknown commands are reported back to the user. The loop exits on
// EOF, on context cancellation, or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers render
// their own failures. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(a.prompt())
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help", "?":
			a.help()

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if err := a.exec(ctx, cmd, parts[1:]); errors.Is(err, errUnknownCommand) {
				printlnFn("Unknown command:", cmd)
			}
		}
	}
}
