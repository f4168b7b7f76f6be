package utility

import (
	"runtime/debug"

	"github.com/Aniket1026/yoto/internal/logger"
)

// GoProtect runs f and logs instead of crashing when it panics. It reports
// whether f returned normally.
func GoProtect(f func()) (ok bool) {
	defer func() {
		if err := recover(); err != nil {
			logger.GetAppLogger().WithField("stack", string(debug.Stack())).Errorf("recovered panic: %v", err)
			ok = false
		}
	}()
	f()
	return true
}
