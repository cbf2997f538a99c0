package main

import (
	"fmt"
	"io"

	"github.com/m-mizutani/tracefetch"
)

// newProgressLine renders a single updating counter line. The orchestrator
// serializes callback invocations, so no locking is needed here.
func newProgressLine(w io.Writer) tracefetch.ProgressFunc {
	return func(done, total int) {
		fmt.Fprintf(w, "\rfetched %d/%d", done, total)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}
