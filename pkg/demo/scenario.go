// Package demo carries the built-in demonstration programs and a small
// library chain for loading compiled programs by name.
package demo

import (
	"embed"
)

//go:embed scenarios
var scenarioFS embed.FS

// Scenario is a built-in demonstration: an embedded source, the title it
// prints first, and the exact output a run must produce.
type Scenario struct {
	Name     string
	Title    string
	Source   string
	Expected string
}

var scenarios = []Scenario{
	{
		Name:     "wrapper-basics",
		Title:    "Type wrapper example",
		Source:   mustRead("wrapper-basics.jbx"),
		Expected: mustRead("wrapper-basics.out"),
	},
	{
		Name:     "autobox-assign",
		Title:    "Type wrapper example, using autoboxing/unboxing",
		Source:   mustRead("autobox-assign.jbx"),
		Expected: mustRead("autobox-assign.out"),
	},
	{
		Name:     "method-boundary",
		Title:    "Autoboxing/unboxing in method parameters and return value",
		Source:   mustRead("method-boundary.jbx"),
		Expected: mustRead("method-boundary.out"),
	},
	{
		Name:     "expressions",
		Title:    "Autoboxing/unboxing in expressions",
		Source:   mustRead("expressions.jbx"),
		Expected: mustRead("expressions.out"),
	},
	{
		Name:     "mixed-arithmetic",
		Title:    "Autoboxing/unboxing with mixed types",
		Source:   mustRead("mixed-arithmetic.jbx"),
		Expected: mustRead("mixed-arithmetic.out"),
	},
	{
		Name:     "narrowing",
		Title:    "Narrowing extraction from wrappers",
		Source:   mustRead("narrowing.jbx"),
		Expected: mustRead("narrowing.out"),
	},
	{
		Name:     "switch-selector",
		Title:    "Boxed selector in a switch",
		Source:   mustRead("switch-selector.jbx"),
		Expected: mustRead("switch-selector.out"),
	},
	{
		Name:     "boolean-condition",
		Title:    "Boxed condition in an if",
		Source:   mustRead("boolean-condition.jbx"),
		Expected: mustRead("boolean-condition.out"),
	},
	{
		Name:     "identity-cache",
		Title:    "valueOf cache and reference identity",
		Source:   mustRead("identity-cache.jbx"),
		Expected: mustRead("identity-cache.out"),
	},
}

func mustRead(name string) string {
	b, err := scenarioFS.ReadFile("scenarios/" + name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Scenarios returns the built-in demonstrations in their fixed run order.
func Scenarios() []Scenario {
	return scenarios
}

// Lookup finds a built-in scenario by name.
func Lookup(name string) (Scenario, bool) {
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}
