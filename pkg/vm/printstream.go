package vm

import (
	"fmt"
	"io"
)

// PrintStream represents System.out: the line-oriented sink the println
// built-in writes to.
type PrintStream struct {
	Writer io.Writer
}

// Println prints the stringified values followed by a newline. With no
// arguments it prints a bare newline.
func (ps *PrintStream) Println(args ...Value) {
	if len(args) == 0 {
		fmt.Fprintln(ps.Writer)
		return
	}
	fmt.Fprintln(ps.Writer, Stringify(args[0]))
}

// Print prints the stringified value with no trailing newline.
func (ps *PrintStream) Print(v Value) {
	fmt.Fprint(ps.Writer, Stringify(v))
}
