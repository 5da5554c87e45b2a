package common

import "sync/atomic"

var debugMode atomic.Bool

func SetDebugMode(enabled bool) {
	debugMode.Store(enabled)
}

func IsDebugMode() bool {
	return debugMode.Load()
}
