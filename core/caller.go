package core

import (
	"runtime"
	"strings"
)

// CallerInfo identifies the call site that produced an entry. Formatters
// render it when their IncludeCaller option is set and Defined is true.
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// GetCaller resolves the call site skip frames above the caller of
// GetCaller itself, so GetCaller(0) names the line that invoked it.
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}

	ci := CallerInfo{File: file, ShortFile: file, Line: line, Defined: true}
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		ci.ShortFile = file[i+1:]
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		ci.Function = fn.Name()
	}
	return ci
}
