// Package engine evaluates polypanel scripts. A script is zygomys Lisp
// extended with builtins that add voxels to a fresh polycube:
//
//	(voxel 1 0 0)
//	(walk :from (vec3 1 0 0) :dir :zpos :count 3)
//	(cuboid :min (vec3 0 0 0) :max (vec3 2 2 0))
//
// Every evaluation runs in its own sandbox with its own polycube.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/polypanel/pkg/polycube"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError is a non-fatal error in user code: a parse error, an error
// raised by a builtin, or a runtime error.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates scripts. It is safe for concurrent use; a newer call to
// Evaluate supersedes any evaluation still running.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration
}

// NewEngine returns an engine using EvalTimeout.
func NewEngine() *Engine {
	return &Engine{timeout: EvalTimeout}
}

// WithTimeout returns an engine with a custom evaluation limit.
func WithTimeout(d time.Duration) *Engine {
	return &Engine{timeout: d}
}

// Evaluate runs source and returns the polycube it built.
//
// Return semantics:
//   - On success: polycube + nil errors + nil error
//   - On parse/eval failure: nil polycube + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): nil + nil + error
func (e *Engine) Evaluate(source string) (*polycube.Polycube, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		pc, evalErrs, err := evaluate(source)
		ch <- evalResult{polycube: pc, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation, e.timeout)
}

// evaluate runs source in a fresh sandbox. Sandbox mode keeps scripts away
// from the filesystem and syscalls.
func evaluate(source string) (*polycube.Polycube, []EvalError, error) {
	pc := polycube.New()
	if strings.TrimSpace(source) == "" {
		return pc, nil, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, pc)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return pc, nil, nil
}

// linePattern matches zygomys messages such as "Error on line N: ...".
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches "line N: ..." at the start of a message.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into eval errors, extracting a
// line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
