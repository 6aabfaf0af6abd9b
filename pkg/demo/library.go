package demo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/boxvm/boxvm/pkg/compile"
	"github.com/boxvm/boxvm/pkg/vm"
)

// Library resolves compiled programs by name.
type Library interface {
	Load(name string) (*vm.Program, error)
}

// BuiltinLibrary serves the embedded scenarios, compiling each at most once.
type BuiltinLibrary struct {
	Cache map[string]*vm.Program
}

// NewBuiltinLibrary creates a new BuiltinLibrary.
func NewBuiltinLibrary() *BuiltinLibrary {
	return &BuiltinLibrary{
		Cache: make(map[string]*vm.Program),
	}
}

func (l *BuiltinLibrary) Load(name string) (*vm.Program, error) {
	if p, ok := l.Cache[name]; ok {
		return p, nil
	}
	sc, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("builtin: scenario %s not found", name)
	}
	p, err := compile.CompileSource(sc.Name, sc.Source)
	if err != nil {
		return nil, fmt.Errorf("builtin: compiling %s: %w", name, err)
	}
	l.Cache[name] = p
	return p, nil
}

// ScriptLibrary loads user scripts from a directory, delegating to the parent first.
type ScriptLibrary struct {
	Dir    string
	Parent Library
	Cache  map[string]*vm.Program
}

// NewScriptLibrary creates a new ScriptLibrary.
func NewScriptLibrary(dir string, parent Library) *ScriptLibrary {
	return &ScriptLibrary{
		Dir:    dir,
		Parent: parent,
		Cache:  make(map[string]*vm.Program),
	}
}

func (l *ScriptLibrary) Load(name string) (*vm.Program, error) {
	if p, ok := l.Cache[name]; ok {
		return p, nil
	}
	if l.Parent != nil {
		if p, err := l.Parent.Load(name); err == nil {
			return p, nil
		}
	}
	path := filepath.Join(l.Dir, name+".jbx")
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: program %s not found: %w", name, err)
	}
	p, err := compile.CompileSource(name, string(src))
	if err != nil {
		return nil, fmt.Errorf("script: compiling %s: %w", name, err)
	}
	l.Cache[name] = p
	return p, nil
}
