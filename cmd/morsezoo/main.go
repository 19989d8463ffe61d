// Command morsezoo serves and queries archives of Morse graph databases.
//
// Usage:
//
//	morsezoo serve --root /data/archive --addr :8080
//	morsezoo query 2D_Example Y:FP N:XC
//	morsezoo graph 2D_Example 2D_Example_perm1 --mgcc 4
//
// Example requests against a running server:
//
//	curl http://localhost:8080/health
//	curl -X POST http://localhost:8080/v1/databases/2D_Example/query \
//	  -H "Content-Type: application/json" \
//	  -d '{"radio": ["Y:FP", "N:XC"]}'
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/morsezoo/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	// Exit errors were already reported by the command.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
