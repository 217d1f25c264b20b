package aclhelper

import (
	"fmt"

	syslog "github.com/RackSec/srslog"
	"github.com/sirupsen/logrus"
)

// SyslogHook forwards log entries to the system log, wiring logrus
// (the package's sole logging surface) into syslog instead of
// plain-text framing, the way the teacher's Syslog resolver wires a
// dedicated writer into its own request pipeline.
type SyslogHook struct {
	writer *syslog.Writer
}

var _ logrus.Hook = (*SyslogHook)(nil)

// facilities maps the config file's local0..local7 names onto srslog
// priority facilities.
var facilities = map[string]syslog.Priority{
	"local0": syslog.LOG_LOCAL0,
	"local1": syslog.LOG_LOCAL1,
	"local2": syslog.LOG_LOCAL2,
	"local3": syslog.LOG_LOCAL3,
	"local4": syslog.LOG_LOCAL4,
	"local5": syslog.LOG_LOCAL5,
	"local6": syslog.LOG_LOCAL6,
	"local7": syslog.LOG_LOCAL7,
}

// NewSyslogHook dials the local syslog daemon (or a remote one, if
// network/address are given) tagged with ident and using the given
// facility name (local0..local7).
func NewSyslogHook(network, address, ident, facility string) (*SyslogHook, error) {
	f, ok := facilities[facility]
	if !ok {
		return nil, fmt.Errorf("unknown syslog facility %q", facility)
	}
	w, err := syslog.Dial(network, address, f|syslog.LOG_INFO, ident)
	if err != nil {
		return nil, err
	}
	return &SyslogHook{writer: w}, nil
}

// Levels reports that this hook applies to every logrus level; syslog
// priority is derived per-entry in Fire.
func (h *SyslogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire writes one formatted log line to syslog at the priority
// matching the entry's logrus level.
func (h *SyslogHook) Fire(e *logrus.Entry) error {
	line, err := e.String()
	if err != nil {
		return err
	}
	switch e.Level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return h.writer.Crit(line)
	case logrus.ErrorLevel:
		return h.writer.Err(line)
	case logrus.WarnLevel:
		return h.writer.Warning(line)
	case logrus.InfoLevel:
		return h.writer.Info(line)
	default:
		return h.writer.Debug(line)
	}
}
