package report

import (
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

// Category is the kind of breadcrumb event recorded.
type Category string

const (
	CategoryKeyboard   Category = "keyboard"
	CategoryNavigation Category = "navigation"
	CategoryDatabase   Category = "database"
	CategoryQuery      Category = "query"
)

type entry struct {
	category  Category
	message   string
	data      map[string]interface{}
	timestamp time.Time
	level     sentry.Level
}

// Buffer is a thread-safe circular buffer of breadcrumbs that aggregates
// consecutive identical events before handing them to Sentry, ported from
// ted's BreadcrumbBuffer.
type Buffer struct {
	mu      sync.Mutex
	entries []entry
	size    int
	next    int
	count   int
}

// NewBuffer creates a buffer holding up to size breadcrumbs.
func NewBuffer(size int) *Buffer {
	return &Buffer{entries: make([]entry, size), size: size}
}

// Breadcrumbs is the process-wide buffer, sized to match ted's default.
var Breadcrumbs = NewBuffer(100)

func (b *Buffer) add(e entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[b.next] = e
	b.next = (b.next + 1) % b.size
	if b.count < b.size {
		b.count++
	}
}

// RecordKeyboard records a key press, including any vim mode prefix.
func (b *Buffer) RecordKeyboard(key, mode string) {
	b.add(entry{
		category:  CategoryKeyboard,
		message:   fmt.Sprintf("key: %s", key),
		timestamp: time.Now(),
		level:     sentry.LevelDebug,
		data:      map[string]interface{}{"key": key, "mode": mode},
	})
}

// RecordNavigation records a focus or router transition.
func (b *Buffer) RecordNavigation(component, description string) {
	b.add(entry{
		category:  CategoryNavigation,
		message:   fmt.Sprintf("nav: %s - %s", component, description),
		timestamp: time.Now(),
		level:     sentry.LevelInfo,
		data:      map[string]interface{}{"component": component, "description": description},
	})
}

// RecordDatabase records a connection or schema-introspection event.
func (b *Buffer) RecordDatabase(operation string) {
	b.add(entry{
		category:  CategoryDatabase,
		message:   fmt.Sprintf("db: %s", operation),
		timestamp: time.Now(),
		level:     sentry.LevelInfo,
		data:      map[string]interface{}{"operation": operation},
	})
}

// RecordQuery records a query execution outcome.
func (b *Buffer) RecordQuery(summary string, ok bool) {
	level := sentry.LevelInfo
	if !ok {
		level = sentry.LevelWarning
	}
	b.add(entry{
		category:  CategoryQuery,
		message:   fmt.Sprintf("query: %s", summary),
		timestamp: time.Now(),
		level:     level,
		data:      map[string]interface{}{"ok": ok},
	})
}

// Flush hands aggregated breadcrumbs to the Sentry scope and clears the
// buffer.
func (b *Buffer) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count == 0 {
		return
	}

	ordered := make([]entry, 0, b.count)
	if b.count < b.size {
		ordered = append(ordered, b.entries[:b.count]...)
	} else {
		for i := 0; i < b.size; i++ {
			ordered = append(ordered, b.entries[(b.next+i)%b.size])
		}
	}

	var crumbs []*sentry.Breadcrumb
	i := 0
	for i < len(ordered) {
		cur := ordered[i]
		n := 1
		for i+n < len(ordered) && ordered[i+n].category == cur.category && ordered[i+n].message == cur.message {
			n++
		}
		msg := cur.message
		if n > 1 {
			msg = fmt.Sprintf("%s (x%d)", cur.message, n)
		}
		crumbs = append(crumbs, &sentry.Breadcrumb{
			Message:   msg,
			Category:  string(cur.category),
			Data:      cur.data,
			Timestamp: cur.timestamp,
			Level:     cur.level,
		})
		i += n
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		for _, c := range crumbs {
			scope.AddBreadcrumb(c, 100)
		}
	})

	b.entries = make([]entry, b.size)
	b.next = 0
	b.count = 0
}
