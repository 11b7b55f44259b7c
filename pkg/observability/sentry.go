package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// InitSentry configures error reporting. An empty dsn disables it.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	return Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	})
}

// Init starts the Sentry client and forwards error-level log entries to it.
// Errors reach Sentry by being logged.
func Init(opts sentry.ClientOptions) (func(), error) {
	if err := sentry.Init(opts); err != nil {
		return func() {}, err
	}
	logrus.AddHook(&sentryHook{})
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// sentryHook forwards error-level log entries that carry an error.
type sentryHook struct{}

func (h *sentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
}

func (h *sentryHook) Fire(e *logrus.Entry) error {
	if err, ok := e.Data[logrus.ErrorKey].(error); ok {
		sentry.CaptureException(err)
		return nil
	}
	sentry.CaptureMessage(e.Message)
	return nil
}
