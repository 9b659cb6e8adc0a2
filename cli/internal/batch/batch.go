// Package batch decodes YAML files holding lists of full-text requests.
//
// A batch file looks like:
//
//	requires: "0.1"
//	requests:
//	  - name: thai food
//	    table: Categories
//	    columns: [Description]
//	    text: food
//	    language: {name: Thai}
//	    top: 2
//	  - name: bread predicate
//	    kind: predicate
//	    mode: contains
//	    alias: c_1
//	    text: '"bread*" OR meat'
//	    text_param: q
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/satishbabariya/prisma-go-fts/query/fulltext"
)

// Kinds of entries.
const (
	KindTable     = "table"
	KindPredicate = "predicate"
)

// File is a decoded batch file.
type File struct {
	// Requires is the minimum CLI version the file was written for.
	Requires string  `yaml:"requires"`
	Requests []Entry `yaml:"requests"`
}

// Language mirrors fulltext.Language in YAML form.
type Language struct {
	Code  *int    `yaml:"code"`
	Name  *string `yaml:"name"`
	Param string  `yaml:"param"`
}

// Entry is one request of a batch file.
type Entry struct {
	Name      string    `yaml:"name"`
	Kind      string    `yaml:"kind"` // "table" (default) or "predicate"
	Mode      string    `yaml:"mode"` // "freetext" (default) or "contains"
	Table     string    `yaml:"table"`
	Alias     string    `yaml:"alias"`
	Columns   []string  `yaml:"columns"`
	Text      string    `yaml:"text"`
	TextParam string    `yaml:"text_param"`
	Language  *Language `yaml:"language"`
	Top       *int      `yaml:"top"`
	TopParam  string    `yaml:"top_param"`
}

// Load reads and decodes path from fs.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode decodes a batch file. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}
	for i := range f.Requests {
		if f.Requests[i].Name == "" {
			f.Requests[i].Name = fmt.Sprintf("#%d", i+1)
		}
	}
	return &f, nil
}

// Request converts the entry. defaultTable fills a missing table for
// table-valued entries.
func (e *Entry) Request(defaultTable string) (fulltext.TableRequest, error) {
	mode := fulltext.FreeText
	if e.Mode != "" {
		m, err := fulltext.ParseMode(e.Mode)
		if err != nil {
			return fulltext.TableRequest{}, err
		}
		mode = m
	}

	req := fulltext.TableRequest{
		Request: fulltext.Request{
			Mode:      mode,
			Target:    fulltext.Columns(e.Columns...).Of(e.Alias),
			Text:      e.Text,
			TextParam: e.TextParam,
			Top:       e.Top,
			TopParam:  e.TopParam,
		},
		Table: e.Table,
	}
	if req.Table == "" && !e.IsPredicate() {
		req.Table = defaultTable
	}
	if e.Language != nil {
		req.Language = &fulltext.Language{Code: e.Language.Code, Name: e.Language.Name, Param: e.Language.Param}
	}
	return req, nil
}

// IsPredicate reports whether the entry compiles to FREETEXT/CONTAINS
// rather than a table-valued function.
func (e *Entry) IsPredicate() bool {
	return strings.EqualFold(e.Kind, KindPredicate)
}

// Compile renders the entry with c.
func (e *Entry) Compile(c *fulltext.Compiler, defaultTable string) (*fulltext.Fragment, error) {
	switch strings.ToLower(e.Kind) {
	case "", KindTable, KindPredicate:
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", fulltext.ErrInvalidArgument, e.Kind)
	}

	req, err := e.Request(defaultTable)
	if err != nil {
		return nil, err
	}
	if e.IsPredicate() {
		if e.Table != "" {
			return nil, fmt.Errorf("%w: predicate entries take no table", fulltext.ErrInvalidArgument)
		}
		return c.CompilePredicate(req.Request)
	}
	return c.CompileTableValued(req)
}

// Result is the outcome of compiling one entry.
type Result struct {
	Entry    Entry
	Fragment *fulltext.Fragment
	Err      error
}

// CompileAll compiles every entry, keeping going past failures.
func (f *File) CompileAll(c *fulltext.Compiler, defaultTable string) []Result {
	results := make([]Result, len(f.Requests))
	for i, e := range f.Requests {
		frag, err := e.Compile(c, defaultTable)
		results[i] = Result{Entry: e, Fragment: frag, Err: err}
	}
	return results
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
