// Package report wires crash reporting (getsentry/sentry-go) and an
// in-memory breadcrumb trail together, ported from ted's sentry.go and
// breadcrumbs.go. Breadcrumb categories are rebased on querycrafter's own
// event surface (keyboard, navigation, database, query) instead of ted's.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// Init initializes the Sentry client with dsn. Crash reporting is opt-in
// (§7 / SPEC_FULL.md ambient stack): callers only call Init when the user's
// settings enable it.
func Init(dsn string) error {
	environment := detectEnvironment()

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		TracesSampleRate: 0.1,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}

	if user, err := os.UserCacheDir(); err == nil {
		sentry.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetUser(sentry.User{ID: user})
		})
	}
	return nil
}

func detectEnvironment() string {
	if _, err := os.Stat(".git"); err == nil {
		return "development"
	}
	if os.Getenv("QUERYCRAFTER_ENV") == "dev" {
		return "development"
	}
	return "production"
}

// FlushAndShutdown flushes pending Sentry events before process exit.
func FlushAndShutdown() {
	sentry.Flush(5 * time.Second)
}

// CaptureError reports err to Sentry, flushing breadcrumbs first.
func CaptureError(err error) {
	if err == nil {
		return
	}
	Breadcrumbs.Flush()
	sentry.CaptureException(err)
}

// CaptureMessage reports an informational message, flushing breadcrumbs
// first.
func CaptureMessage(message string) {
	Breadcrumbs.Flush()
	sentry.CaptureMessage(message)
}
