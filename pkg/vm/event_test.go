package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/boxvm/boxvm/pkg/jtype"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		name string
		e    Event
		want string
	}{
		{
			"box",
			Event{Conv: ConvBox, Site: SiteAssignment, From: "int", To: "Integer", Value: jtype.IntOf(100)},
			"box int -> Integer at assignment site (value 100)",
		},
		{
			"unbox",
			Event{Conv: ConvUnbox, Site: SiteExpression, From: "Integer", To: "int", Value: jtype.IntOf(10)},
			"unbox Integer -> int at expression site (value 10)",
		},
		{
			"widen",
			Event{Conv: ConvWiden, Site: SiteArgument, From: "int", To: "double", Value: jtype.DoubleOf(100)},
			"widen int -> double at argument site (value 100.0)",
		},
		{
			"narrow",
			Event{Conv: ConvNarrow, Site: SiteIncrement, From: "int", To: "byte", Value: jtype.ByteOf(-128)},
			"narrow int -> byte at increment site (value -128)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.String(); got != tt.want {
				t.Errorf("Event.String():\ngot  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestMultiSink(t *testing.T) {
	var a, b CollectSink
	sink := MultiSink{&a, NopSink{}, &b}

	e := Event{Conv: ConvBox, Site: SiteReturn, From: "int", To: "Integer", Value: jtype.IntOf(7)}
	sink.Emit(e)

	if len(a.Events) != 1 || len(b.Events) != 1 {
		t.Fatalf("fan-out counts = %d, %d, want 1, 1", len(a.Events), len(b.Events))
	}
	if a.Events[0] != e || b.Events[0] != e {
		t.Error("member sinks must see the same event")
	}
}

func TestTraceSink(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.Out = &buf
	logger.Formatter = &logrus.TextFormatter{DisableTimestamp: true, DisableColors: true}

	sink := NewTraceSink(logger)
	sink.Emit(Event{Conv: ConvWiden, Site: SiteExpression, From: "int", To: "double", Value: jtype.DoubleOf(100)})

	line := buf.String()
	for _, want := range []string{"conversion", "conv=widen", "site=expression", "from=int", "to=double", "value=100.0"} {
		if !strings.Contains(line, want) {
			t.Errorf("trace line %q missing %q", line, want)
		}
	}
}
