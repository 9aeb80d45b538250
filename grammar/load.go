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

package grammar

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Rules is a grammar loaded with [Load].
type Rules struct {
	Graph *Graph
	// The matcher for the start rule.
	Root Matcher
	// Every rule, by name.
	ByName map[string]Matcher
}

// Load builds a grammar from a YAML document of the form
//
//	start: sum
//	rules:
//	  sum: [product, {zeroOrMore: [{char: "+"}, product, {action: add}]}]
//	  product: [number, {zeroOrMore: [{char: "*"}, number, {action: mul}]}]
//	  number:
//	    seq: [{oneOrMore: {range: "0-9"}}, {action: pushInt}]
//	    suppressSubnodes: true
//
// An expression is one of:
//
//   - A string naming another rule, or one of ANY, EOI, EMPTY or NOTHING.
//   - A list, which is shorthand for seq.
//   - A map with exactly one of the keys seq, first, oneOrMore, zeroOrMore,
//     optional, test, testNot, char, ignoreCase, range, anyOf, noneOf,
//     string, ignoreCaseString or action. The map may also set label,
//     suppressNode, suppressSubnodes, skipNode and runInPredicate.
//
// Actions are looked up in actions, and then in [Builtins]. Each rule's
// matcher is labeled with the rule's name, unless it is just a reference to
// another rule or sets its own label.
//
// The returned graph is finalized.
func Load(data []byte, actions map[string]Action) (*Rules, error) {
	var doc struct {
		Start string    `yaml:"start"`
		Rules yaml.Node `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("grammar: %w", err)
	}
	if doc.Rules.Kind != yaml.MappingNode {
		return nil, errors.New("grammar: missing rules")
	}

	l := &loader{
		g:       New(),
		actions: maps.Clone(Builtins()),
		proxies: make(map[string]Matcher),
		rules:   make(map[string]Matcher),
	}
	maps.Copy(l.actions, actions)

	for i := 0; i+1 < len(doc.Rules.Content); i += 2 {
		key, value := doc.Rules.Content[i], doc.Rules.Content[i+1]
		if _, ok := l.rules[key.Value]; ok {
			return nil, l.errorf(key, "duplicate rule %q", key.Value)
		}
		m, err := l.expr(value)
		if err != nil {
			return nil, err
		}
		if value.Kind != yaml.ScalarNode && !m.HasCustomLabel() {
			m.Label(key.Value)
		}
		l.rules[key.Value] = m
	}

	start := doc.Start
	if start == "" {
		if len(doc.Rules.Content) == 0 {
			return nil, errors.New("grammar: no rules")
		}
		start = doc.Rules.Content[0].Value
	}
	root, ok := l.rules[start]
	if !ok {
		return nil, fmt.Errorf("grammar: unknown start rule %q", start)
	}

	for _, name := range slices.Sorted(maps.Keys(l.proxies)) {
		proxy := l.proxies[name]
		target, ok := l.rules[name]
		if !ok {
			return nil, fmt.Errorf("grammar: reference to undefined rule %q", name)
		}
		l.g.Resolve(proxy, target)
	}

	root, err := l.g.Finalize(root)
	if err != nil {
		return nil, err
	}
	for name, m := range l.rules {
		if m.Kind() == KindProxy {
			l.rules[name] = m.Target()
		}
	}
	return &Rules{Graph: l.g, Root: root, ByName: l.rules}, nil
}

type loader struct {
	g       *Graph
	actions map[string]Action
	proxies map[string]Matcher
	rules   map[string]Matcher
}

func (l *loader) expr(n *yaml.Node) (Matcher, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return l.ref(n), nil
	case yaml.SequenceNode:
		children, err := l.exprs(n)
		if err != nil {
			return Matcher{}, err
		}
		return l.g.Seq(children...), nil
	case yaml.MappingNode:
		return l.form(n)
	case yaml.AliasNode:
		return l.expr(n.Alias)
	default:
		return Matcher{}, l.errorf(n, "expected an expression")
	}
}

func (l *loader) exprs(n *yaml.Node) ([]Matcher, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, l.errorf(n, "expected a list of expressions")
	}
	out := make([]Matcher, 0, len(n.Content))
	for _, child := range n.Content {
		m, err := l.expr(child)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (l *loader) ref(n *yaml.Node) Matcher {
	switch n.Value {
	case "ANY":
		return l.g.Any()
	case "EOI":
		return l.g.EOI()
	case "EMPTY":
		return l.g.Empty()
	case "NOTHING":
		return l.g.Nothing()
	}
	proxy, ok := l.proxies[n.Value]
	if !ok {
		proxy = l.g.Proxy().Label(n.Value)
		l.proxies[n.Value] = proxy
	}
	return proxy
}

// form builds a map-shaped expression.
func (l *loader) form(n *yaml.Node) (Matcher, error) {
	var (
		m     Matcher
		which *yaml.Node
		flags []func() error
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]

		if flag, ok := l.flag(key.Value); ok {
			flags = append(flags, func() error { return flag(m, value) })
			continue
		}
		if which != nil {
			return Matcher{}, l.errorf(key, "%q conflicts with %q", key.Value, which.Value)
		}
		which = key

		var err error
		m, err = l.build(key, value)
		if err != nil {
			return Matcher{}, err
		}
	}
	if which == nil {
		return Matcher{}, l.errorf(n, "expected an expression")
	}
	for _, flag := range flags {
		if err := flag(); err != nil {
			return Matcher{}, err
		}
	}
	return m, nil
}

func (l *loader) build(key, value *yaml.Node) (Matcher, error) {
	unary := func(build func(Matcher) Matcher) (Matcher, error) {
		var child Matcher
		var err error
		if value.Kind == yaml.SequenceNode {
			var children []Matcher
			children, err = l.exprs(value)
			child = l.g.Seq(children...)
		} else {
			child, err = l.expr(value)
		}
		if err != nil {
			return Matcher{}, err
		}
		return build(child), nil
	}

	switch key.Value {
	case "seq", "first":
		children, err := l.exprs(value)
		if err != nil {
			return Matcher{}, err
		}
		if key.Value == "seq" {
			return l.g.Seq(children...), nil
		}
		return l.g.FirstOf(children...), nil
	case "oneOrMore":
		return unary(l.g.OneOrMore)
	case "zeroOrMore":
		return unary(l.g.ZeroOrMore)
	case "optional":
		return unary(l.g.Optional)
	case "test":
		return unary(l.g.Test)
	case "testNot":
		return unary(l.g.TestNot)
	case "char", "ignoreCase":
		c, err := l.char(value)
		if err != nil {
			return Matcher{}, err
		}
		if key.Value == "char" {
			return l.g.Char(c), nil
		}
		return l.g.IgnoreCase(c), nil
	case "range":
		chars := []rune(value.Value)
		if value.Kind != yaml.ScalarNode || len(chars) != 3 || chars[1] != '-' || chars[0] > chars[2] {
			return Matcher{}, l.errorf(value, "expected a range like \"a-z\"")
		}
		return l.g.Range(chars[0], chars[2]), nil
	case "anyOf", "noneOf", "string", "ignoreCaseString":
		if value.Kind != yaml.ScalarNode {
			return Matcher{}, l.errorf(value, "expected a string")
		}
		switch key.Value {
		case "anyOf":
			return l.g.AnyOf(value.Value), nil
		case "noneOf":
			return l.g.NoneOf(value.Value), nil
		case "string":
			return l.g.String(value.Value), nil
		default:
			return l.g.IgnoreCaseString(value.Value), nil
		}
	case "action":
		fn, ok := l.actions[value.Value]
		if !ok {
			return Matcher{}, l.errorf(value, "unknown action %q", value.Value)
		}
		return l.g.Action(fn).Label(value.Value), nil
	default:
		return Matcher{}, l.errorf(key, "unknown expression %q", key.Value)
	}
}

// flag returns a function that applies the flag named key, if there is one.
func (l *loader) flag(key string) (func(Matcher, *yaml.Node) error, bool) {
	boolean := func(apply func(Matcher) Matcher) func(Matcher, *yaml.Node) error {
		return func(m Matcher, value *yaml.Node) error {
			var on bool
			if err := value.Decode(&on); err != nil {
				return l.errorf(value, "expected true or false")
			}
			if on {
				apply(m)
			}
			return nil
		}
	}

	switch key {
	case "label":
		return func(m Matcher, value *yaml.Node) error {
			if value.Kind != yaml.ScalarNode {
				return l.errorf(value, "expected a string")
			}
			m.Label(value.Value)
			return nil
		}, true
	case "suppressNode":
		return boolean(Matcher.SuppressNode), true
	case "suppressSubnodes":
		return boolean(Matcher.SuppressSubnodes), true
	case "skipNode":
		return boolean(Matcher.SkipNode), true
	case "runInPredicate":
		return func(m Matcher, value *yaml.Node) error {
			if m.Kind() != KindAction {
				return l.errorf(value, "runInPredicate only applies to actions")
			}
			return boolean(Matcher.RunInPredicate)(m, value)
		}, true
	default:
		return nil, false
	}
}

func (l *loader) char(n *yaml.Node) (rune, error) {
	chars := []rune(n.Value)
	if n.Kind != yaml.ScalarNode || len(chars) != 1 {
		return 0, l.errorf(n, "expected a single character, got %s", strconv.Quote(n.Value))
	}
	return chars[0], nil
}

func (*loader) errorf(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("grammar: %d:%d: %s", n.Line, n.Column, fmt.Sprintf(format, args...))
}
