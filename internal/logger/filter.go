package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

const filteredKey = "_filtered"

// FilterHook marks entries whose module is not in LOG_FILTER_MODULES.
// Warnings and above always pass.
type FilterHook struct {
	allowedModules map[string]bool
}

// NewFilterHook builds the hook from cfg.FilterModules.
func NewFilterHook(cfg *LogConfig) *FilterHook {
	return &FilterHook{allowedModules: parseFilter(cfg.FilterModules)}
}

func parseFilter(value string) map[string]bool {
	result := make(map[string]bool)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" || part == "*" {
			continue
		}
		result[part] = true
	}
	return result
}

// Levels implements logrus.Hook
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if len(h.allowedModules) == 0 || entry.Level <= logrus.WarnLevel {
		return nil
	}
	module, ok := entry.Data["module"].(string)
	if !ok {
		return nil
	}
	if !h.allowedModules[strings.ToLower(module)] {
		entry.Data[filteredKey] = true
	}
	return nil
}

func isFiltered(entry *logrus.Entry) bool {
	filtered, ok := entry.Data[filteredKey].(bool)
	return ok && filtered
}
