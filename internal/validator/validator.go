package validator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gnzdotmx/workflowlint/internal/utils"
	"github.com/gnzdotmx/workflowlint/internal/workflow"
)

// ErrValidationFailed is returned by Run when at least one file failed
var ErrValidationFailed = errors.New("one or more workflow files failed validation")

// Status is the outcome of validating one file
type Status string

const (
	// StatusOK marks a file that passed every check
	StatusOK Status = "ok"
	// StatusError marks a file that failed to read, parse or validate
	StatusError Status = "error"
)

// Result is the outcome for a single workflow file
type Result struct {
	File string
	Err  error
}

// Status reports whether the file passed
func (r Result) Status() Status {
	if r.Err != nil {
		return StatusError
	}
	return StatusOK
}

// Summary collects the results of one pass over a directory
type Summary struct {
	Dir       string
	StartTime time.Time
	EndTime   time.Time
	Results   []Result
}

// Failed returns the number of files that did not pass
func (s *Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Passed returns the number of files that passed
func (s *Summary) Passed() int {
	return len(s.Results) - s.Failed()
}

// Options configures a Validator
type Options struct {
	Dir       string
	Extension string
	// Strict enables the node/connection cross-reference check
	Strict bool
	// Schema is an optional extra JSON Schema every document must satisfy
	Schema *SchemaChecker

	Stdout io.Writer
	Stderr io.Writer
}

// Validator checks every workflow file in a directory
type Validator struct {
	opts Options
}

// New creates a validator, defaulting the output streams to the process's own
func New(opts Options) *Validator {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Validator{opts: opts}
}

// Run validates every matching file in lexicographic order, writing
// "OK  <file>" to stdout or "ERR <file>: <reason>" to stderr for each one.
// The returned error wraps the listing failure, or is ErrValidationFailed
// when any file failed; the summary is returned in the latter case too.
func (v *Validator) Run() (*Summary, error) {
	summary := &Summary{
		Dir:       v.opts.Dir,
		StartTime: time.Now(),
	}

	names, err := utils.ListFilesWithExt(v.opts.Dir, v.opts.Extension)
	if err != nil {
		return nil, err
	}
	utils.LogVerbose("Found %d %s files in %s", len(names), v.opts.Extension, v.opts.Dir)

	for _, name := range names {
		err := v.checkFile(filepath.Join(v.opts.Dir, name))
		summary.Results = append(summary.Results, Result{File: name, Err: err})

		if err != nil {
			_, _ = fmt.Fprintf(v.opts.Stderr, "ERR %s: %s\n", name, err)
			utils.LogDebug("%s failed with %T", name, err)
			continue
		}
		_, _ = fmt.Fprintf(v.opts.Stdout, "OK  %s\n", name)
	}

	summary.EndTime = time.Now()
	utils.LogVerbose("%d passed, %d failed", summary.Passed(), summary.Failed())

	if summary.Failed() > 0 {
		return summary, ErrValidationFailed
	}
	return summary, nil
}

func (v *Validator) checkFile(path string) error {
	doc, err := workflow.Load(path)
	if err != nil {
		return err
	}

	if err := doc.Validate(); err != nil {
		return err
	}

	if v.opts.Strict {
		if err := doc.CheckConnections(); err != nil {
			return err
		}
	}

	if v.opts.Schema != nil {
		if err := v.opts.Schema.Check(doc); err != nil {
			return err
		}
	}

	return nil
}
