package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// flashDispatchScript is appended to every flash script. The script must
// define respond(state, previous) returning a bool.
const flashDispatchScript = `
__result := respond(__state, __previous)
`

// flashScript is a compiled tengo state predicate.
type flashScript struct {
	name     string
	compiled *tengo.Compiled
}

func compileFlashScript(name string, src []byte) (*flashScript, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + flashDispatchScript))
	_ = script.Add("__state", "")
	_ = script.Add("__previous", "")
	script.SetImports(stdlib.GetModuleMap("text", "math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("flash script %s: compile: %w", name, err)
	}
	return &flashScript{name: name, compiled: compiled}, nil
}

// Respond runs the predicate for a state change.
func (s *flashScript) Respond(state, previous string) (bool, error) {
	if s == nil || s.compiled == nil {
		return false, fmt.Errorf("flash script: not compiled")
	}
	if err := s.compiled.Set("__state", state); err != nil {
		return false, err
	}
	if err := s.compiled.Set("__previous", previous); err != nil {
		return false, err
	}
	if err := s.compiled.Run(); err != nil {
		return false, fmt.Errorf("flash script %s: run: %w", s.name, err)
	}
	return s.compiled.Get("__result").Bool(), nil
}
