// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// enum generates the boilerplate of the enums in this module, such as
// grammar.Kind and parse.ErrorKind.
//
// It is run with
//
//	//go:generate go run github.com/bufbuild/pegkit/internal/enum kind.yaml
//
// Each argument is a YAML file holding a list of [Enum]s. The output is
// written next to it, with the .yaml extension replaced by .go, and is
// gofmt'd.
//
// An enum may ask for these methods:
//
//   - string: String, from each value's string.
//   - go-string: GoString, as package.Value.
//   - from-string: a lookup function from strings back to values; requires
//     a name, and distinct strings.
//   - group: a predicate true for exactly the listed values, such as
//     Kind.IsSingleChar; requires a name and at least one value.
//
//nolint:revive // Fields ending in _ are shadowed by methods the template calls.
package main

import (
	"bytes"
	"debug/buildinfo"
	_ "embed"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Enum is one enum type.
type Enum struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"` // An integer type.
	Docs    string   `yaml:"docs"`
	Total   string   `yaml:"total"` // If set, a constant counting the values.
	Methods []Method `yaml:"methods"`
	Values_ []Value  `yaml:"values"`
}

// Values returns the values of e, linked back to it.
func (e *Enum) Values() []Value {
	for i := range e.Values_ {
		e.Values_[i].Parent = e
		e.Values_[i].Idx = i
	}
	return e.Values_
}

func (e *Enum) validate() error {
	switch {
	case e.Name == "":
		return errors.New("enum without a name")
	case len(e.Values_) == 0:
		return fmt.Errorf("%s: no values", e.Name)
	}
	switch e.Type {
	case "int8", "int16", "int32", "int", "uint8", "uint16", "uint32", "uint":
	default:
		return fmt.Errorf("%s: %q is not an integer type", e.Name, e.Type)
	}

	names := make(map[string]bool)
	strs := make(map[string]bool)
	var dupStr string
	for _, v := range e.Values_ {
		if v.Name == "" {
			return fmt.Errorf("%s: value without a name", e.Name)
		}
		if names[v.Name] {
			return fmt.Errorf("%s: duplicate value %s", e.Name, v.Name)
		}
		names[v.Name] = true
		if strs[v.String()] && dupStr == "" {
			dupStr = v.String()
		}
		strs[v.String()] = true
	}

	for _, m := range e.Methods {
		if _, err := m.Name(); err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		switch m.Kind {
		case MethodFromString:
			if dupStr != "" {
				return fmt.Errorf("%s: %s needs distinct strings, but %q repeats", e.Name, m.Name_, dupStr)
			}
		case MethodGroup:
			if len(m.Values) == 0 {
				return fmt.Errorf("%s: group %s is empty", e.Name, m.Name_)
			}
			for _, v := range m.Values {
				if !names[v] {
					return fmt.Errorf("%s: group %s lists unknown value %s", e.Name, m.Name_, v)
				}
			}
		}
	}
	return nil
}

// Value is one value of an [Enum].
type Value struct {
	Name    string `yaml:"name"`
	String_ string `yaml:"string"` // Defaults to Name.
	Docs    string `yaml:"docs"`

	Parent *Enum `yaml:"-"`
	Idx    int   `yaml:"-"`
}

// HasSuffixDocs returns whether this value's docs fit on one line after it,
// which gofmt only aligns if the next value's docs do too.
func (v Value) HasSuffixDocs() bool {
	if v.Docs == "" || strings.Contains(v.Docs, "\n") {
		return false
	}
	next := v.Idx + 1
	return next >= len(v.Parent.Values_) || v.Parent.Values_[next].Docs != ""
}

func (v Value) String() string {
	if v.String_ == "" {
		return v.Name
	}
	return v.String_
}

// Method is a method to generate for an [Enum].
type Method struct {
	Kind   MethodKind `yaml:"kind"`
	Name_  string     `yaml:"name"`
	Docs_  string     `yaml:"docs"`
	Values []string   `yaml:"values"` // For groups.
}

func (m Method) Name() (string, error) {
	if m.Name_ != "" {
		return m.Name_, nil
	}
	switch m.Kind {
	case MethodString:
		return "String", nil
	case MethodGoString:
		return "GoString", nil
	case MethodFromString, MethodGroup:
		return "", fmt.Errorf("a %s method needs a name", m.Kind)
	default:
		return "", fmt.Errorf("unknown method kind %q", m.Kind)
	}
}

func (m Method) Docs() string {
	if m.Docs_ != "" {
		return m.Docs_
	}
	switch m.Kind {
	case MethodString:
		return "String implements [fmt.Stringer]."
	case MethodGoString:
		return "GoString implements [fmt.GoStringer]."
	default:
		return ""
	}
}

type MethodKind string

const (
	MethodString     MethodKind = "string"
	MethodGoString   MethodKind = "go-string"
	MethodFromString MethodKind = "from-string"
	MethodGroup      MethodKind = "group"
)

//go:embed enum.go.tmpl
var tmplText string

var tmpl = template.Must(template.New("enum.go.tmpl").Funcs(template.FuncMap{
	"makeDocs": makeDocs,
	"join":     strings.Join,
}).Parse(tmplText))

// makeDocs turns text into a doc comment.
func makeDocs(text, indent string) string {
	if text == "" {
		return ""
	}

	var out strings.Builder
	for line := range strings.SplitSeq(strings.TrimSpace(text), "\n") {
		out.WriteString(indent)
		if line == "" {
			out.WriteString("//\n")
			continue
		}
		out.WriteString("// ")
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String()
}

// generate renders the enums in config as the Go source of package pkg.
func generate(binary, pkg, config string, enums []Enum) ([]byte, error) {
	for i := range enums {
		if err := enums[i].validate(); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Binary, Package, Config string
		YAML                    []Enum
	}{binary, pkg, config, enums})
	if err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

func run(config string) error {
	if filepath.Ext(config) != ".yaml" {
		return errors.New("file argument must end in .yaml")
	}
	pkg := os.Getenv("GOPACKAGE")
	if pkg == "" {
		return errors.New("GOPACKAGE is not set; run this with go generate")
	}

	info, err := buildinfo.ReadFile(os.Args[0])
	if err != nil {
		return err
	}
	text, err := os.ReadFile(config)
	if err != nil {
		return err
	}
	var enums []Enum
	if err := yaml.Unmarshal(text, &enums); err != nil {
		return fmt.Errorf("parsing %s: %w", config, err)
	}

	src, err := generate(info.Path, pkg, filepath.Base(config), enums)
	if err != nil {
		return err
	}
	return os.WriteFile(strings.TrimSuffix(config, ".yaml")+".go", src, 0o644)
}

func main() {
	var failed bool
	for _, config := range os.Args[1:] {
		if err := run(config); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", config, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
