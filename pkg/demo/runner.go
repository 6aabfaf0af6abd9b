package demo

import (
	"bytes"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/boxvm/boxvm/pkg/vm"
)

// Run loads and executes programs in order, writing their output to out.
// With no names every built-in scenario runs in its fixed order. Conversion
// events go to sink when it is non-nil.
func Run(lib Library, out io.Writer, sink vm.EventSink, names ...string) error {
	if len(names) == 0 {
		for _, sc := range Scenarios() {
			names = append(names, sc.Name)
		}
	}
	for _, name := range names {
		log.Infof("Running %q.", name)
		prog, err := lib.Load(name)
		if err != nil {
			return err
		}
		machine := vm.NewVM(prog)
		machine.Stdout = out
		if sink != nil {
			machine.Sink = sink
		}
		if err := machine.Execute(); err != nil {
			return fmt.Errorf("running %s: %w", name, err)
		}
	}
	return nil
}

// Mismatch reports one scenario whose captured output differs from the
// embedded expected text.
type Mismatch struct {
	Name string
	Got  string
	Want string
}

// Verify runs built-in scenarios against a private buffer and compares the
// captured output with the embedded expected text. It returns one Mismatch
// per differing scenario; a nil slice means everything matched.
func Verify(names ...string) ([]Mismatch, error) {
	if len(names) == 0 {
		for _, sc := range Scenarios() {
			names = append(names, sc.Name)
		}
	}
	lib := NewBuiltinLibrary()
	var mismatches []Mismatch
	for _, name := range names {
		sc, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("verify: scenario %s not found", name)
		}
		log.Infof("Verifying %q.", name)
		prog, err := lib.Load(name)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		machine := vm.NewVM(prog)
		machine.Stdout = &buf
		if err := machine.Execute(); err != nil {
			return nil, fmt.Errorf("verifying %s: %w", name, err)
		}
		if got := buf.String(); got != sc.Expected {
			mismatches = append(mismatches, Mismatch{Name: name, Got: got, Want: sc.Expected})
		}
	}
	return mismatches, nil
}
