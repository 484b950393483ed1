package config

import (
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"

	"github.com/stateful/storyblocks/pkg/document"
)

const (
	FilterTypeBlock    = "FILTER_TYPE_BLOCK"
	FilterTypeDocument = "FILTER_TYPE_DOCUMENT"
)

type Filter struct {
	Type      string `yaml:"type" validate:"oneof=FILTER_TYPE_BLOCK FILTER_TYPE_DOCUMENT"`
	Condition string `yaml:"condition" validate:"required"`

	once       sync.Once
	program    *vm.Program
	compileErr error
}

// FilterDocumentEnv is the environment of document filters.
type FilterDocumentEnv struct {
	Blocks int      `expr:"blocks"`
	Kinds  []string `expr:"kinds"`
}

// FilterBlockEnv is the environment of block filters. Fields that do
// not apply to the block's kind are zero.
//
// The `expr` tag is used to map the field to the corresponding option.
// Without it, all variables start with capitalized letters.
type FilterBlockEnv struct {
	Type      string   `expr:"type"`
	Content   string   `expr:"content"`
	Level     int      `expr:"level"`
	Align     string   `expr:"align"`
	Bold      bool     `expr:"bold"`
	Italic    bool     `expr:"italic"`
	Underline bool     `expr:"underline"`
	URL       string   `expr:"url"`
	Images    int      `expr:"images"`
	Items     []string `expr:"items"`
}

func NewFilterDocumentEnv(doc *document.Document) FilterDocumentEnv {
	env := FilterDocumentEnv{Blocks: doc.Len()}
	for _, b := range doc.Blocks() {
		env.Kinds = append(env.Kinds, string(b.Kind()))
	}
	return env
}

func NewFilterBlockEnv(b document.Block) FilterBlockEnv {
	attrs := b.Common()
	env := FilterBlockEnv{
		Type:      string(b.Kind()),
		Align:     string(attrs.Align),
		Bold:      attrs.TextStyle.Bold,
		Italic:    attrs.TextStyle.Italic,
		Underline: attrs.TextStyle.Underline,
	}

	switch b := b.(type) {
	case *document.Heading:
		env.Content = b.Content
		env.Level = b.Level
	case *document.Paragraph:
		env.Content = b.Content
	case *document.Image:
		env.Content = b.Content
		env.URL = b.URL
	case *document.Carousel:
		env.Content = b.Content
		env.Images = len(b.Images)
	case *document.List:
		for _, item := range b.Items {
			env.Items = append(env.Items, item.Text)
		}
	case *document.Unknown:
		env.Type = b.Type
	}

	return env
}

func (f *Filter) env() (interface{}, error) {
	switch f.Type {
	case FilterTypeBlock:
		return FilterBlockEnv{}, nil
	case FilterTypeDocument:
		return FilterDocumentEnv{}, nil
	default:
		return nil, errors.Errorf("unknown filter type: %s", f.Type)
	}
}

// Compile checks the condition against the environment of the filter
// type. Evaluate compiles lazily, so calling Compile is optional.
func (f *Filter) Compile() error {
	f.once.Do(func() {
		env, err := f.env()
		if err != nil {
			f.compileErr = err
			return
		}
		program, err := expr.Compile(
			f.Condition,
			expr.Env(env),
			expr.AsBool(),
		)
		f.program, f.compileErr = program, errors.Wrapf(err, "failed to compile filter %q", f.Condition)
	})
	return f.compileErr
}

func (f *Filter) Evaluate(env interface{}) (bool, error) {
	if err := f.Compile(); err != nil {
		return false, err
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, errors.Wrap(err, "failed to run filter program")
	}
	return result.(bool), nil
}

// ApplyFilters evaluates filters against doc. It reports false when a
// document filter rejects doc; otherwise it returns a copy of doc
// holding only the blocks every block filter accepts.
func ApplyFilters(filters []*Filter, doc *document.Document) (*document.Document, bool, error) {
	docEnv := NewFilterDocumentEnv(doc)
	for _, f := range filters {
		if f.Type != FilterTypeDocument {
			continue
		}
		ok, err := f.Evaluate(docEnv)
		if err != nil || !ok {
			return nil, false, err
		}
	}

	result := document.NewDocument()
	for _, b := range doc.Blocks() {
		keep := true
		env := NewFilterBlockEnv(b)
		for _, f := range filters {
			if f.Type != FilterTypeBlock {
				continue
			}
			ok, err := f.Evaluate(env)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			result.Append(b.Clone())
		}
	}

	return result, true, nil
}
