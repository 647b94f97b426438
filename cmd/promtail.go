package main

import (
	"github.com/ic2hrmk/promtail"
	"github.com/sirupsen/logrus"
)

// initPromTail ships log entries to Loki when LOKI_ADDRESS is set.
func (a *App) initPromTail() error {
	if a.Config.LokiAddress == "" {
		return nil
	}

	identifiers := map[string]string{
		"instanceId": a.Name,
	}

	promTail, err := promtail.NewJSONv1Client(a.Config.LokiAddress, identifiers)
	if err != nil {
		return err
	}

	a.PromTail = promTail
	a.Logger.AddHook(&promTailHook{client: promTail})

	return nil
}

type promTailHook struct {
	client promtail.Client
}

func (h *promTailHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
		logrus.DebugLevel,
	}
}

func (h *promTailHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}

	switch entry.Level {
	case logrus.DebugLevel:
		h.client.Debugf("%s", line)
	case logrus.InfoLevel:
		h.client.Infof("%s", line)
	case logrus.WarnLevel:
		h.client.Warnf("%s", line)
	default:
		h.client.Errorf("%s", line)
	}

	return nil
}
