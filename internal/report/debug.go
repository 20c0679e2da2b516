//go:build debug

package report

import (
	"fmt"
	"os"
	"sync"
	"time"
)

var (
	debugFile *os.File
	debugMu   sync.Mutex
)

func init() {
	var err error
	debugFile, err = os.OpenFile("/tmp/querycrafter.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open debug log file: %v\n", err)
		os.Exit(1)
	}
}

// Debugf writes to /tmp/querycrafter.log when built with -tags debug.
func Debugf(format string, args ...interface{}) {
	debugMu.Lock()
	defer debugMu.Unlock()
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(debugFile, "[%s] "+format, append([]interface{}{timestamp}, args...)...)
}
