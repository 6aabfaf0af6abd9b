package vm

import (
	"github.com/sirupsen/logrus"

	"github.com/boxvm/boxvm/pkg/jtype"
)

// TraceSink forwards conversion events to a logrus logger, one structured
// record per conversion.
type TraceSink struct {
	Logger *logrus.Logger
	Level  logrus.Level
}

func NewTraceSink(logger *logrus.Logger) *TraceSink {
	return &TraceSink{Logger: logger, Level: logrus.InfoLevel}
}

func (s *TraceSink) Emit(e Event) {
	s.Logger.WithFields(logrus.Fields{
		"conv":  e.Conv.String(),
		"site":  e.Site.String(),
		"from":  e.From,
		"to":    e.To,
		"value": jtype.Format(e.Value),
	}).Log(s.Level, "conversion")
}
