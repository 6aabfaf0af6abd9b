package vm

import (
	"fmt"

	"github.com/boxvm/boxvm/pkg/jtype"
)

// Site names the syntactic position that made the interpreter convert a
// value. The compiler stamps it into the box, unbox and convert
// instructions it inserts.
type Site uint8

const (
	SiteAssignment Site = iota
	SiteArgument
	SiteReturn
	SiteExpression
	SiteIncrement
	SiteSwitch
	SiteCondition
)

var siteNames = [...]string{
	SiteAssignment: "assignment",
	SiteArgument:   "argument",
	SiteReturn:     "return",
	SiteExpression: "expression",
	SiteIncrement:  "increment",
	SiteSwitch:     "switch",
	SiteCondition:  "condition",
}

func (s Site) String() string {
	if int(s) < len(siteNames) {
		return siteNames[s]
	}
	return "site?"
}

// Conv names the conversion performed.
type Conv uint8

const (
	ConvBox Conv = iota
	ConvUnbox
	ConvWiden
	ConvNarrow
)

var convNames = [...]string{
	ConvBox:    "box",
	ConvUnbox:  "unbox",
	ConvWiden:  "widen",
	ConvNarrow: "narrow",
}

func (c Conv) String() string {
	if int(c) < len(convNames) {
		return convNames[c]
	}
	return "conv?"
}

// Event records one conversion the compiler inserted on the program's
// behalf. From and To are type names: primitive kinds in lowercase,
// wrapper classes capitalized.
type Event struct {
	Conv  Conv
	Site  Site
	From  string
	To    string
	Value jtype.Value
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s -> %s at %s site (value %s)",
		e.Conv, e.From, e.To, e.Site, jtype.Format(e.Value))
}

// EventSink receives conversion events as the interpreter performs them.
type EventSink interface {
	Emit(Event)
}

// NopSink drops every event. It is the default sink.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// CollectSink appends events to a slice, for inspection in tests and by
// the verifier.
type CollectSink struct {
	Events []Event
}

func (s *CollectSink) Emit(e Event) {
	s.Events = append(s.Events, e)
}

// MultiSink fans every event out to each member sink in order.
type MultiSink []EventSink

func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}
