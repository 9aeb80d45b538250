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

import "fmt"

// Visitor is a set of per-kind callbacks for [Visit].
//
// Kinds without a callback go to Default. If Default is also nil, [Visit]
// returns the zero value.
type Visitor[R any] struct {
	Sequence       func(Matcher) R
	FirstOf        func(Matcher) R
	OneOrMore      func(Matcher) R
	ZeroOrMore     func(Matcher) R
	Optional       func(Matcher) R
	Test           func(Matcher) R
	TestNot        func(Matcher) R
	Char           func(Matcher) R
	CharIgnoreCase func(Matcher) R
	CharRange      func(Matcher) R
	AnyOf          func(Matcher) R
	Any            func(Matcher) R
	EOI            func(Matcher) R
	String         func(Matcher) R
	Action         func(Matcher) R
	Empty          func(Matcher) R
	Nothing        func(Matcher) R

	Default func(Matcher) R
}

// Visit calls the callback in v for m's kind.
//
// Proxies are transparent: m is replaced with its target. Visiting an
// unresolved proxy panics.
func Visit[R any](m Matcher, v *Visitor[R]) R {
	var fn func(Matcher) R
	switch m.Kind() {
	case KindSequence:
		fn = v.Sequence
	case KindFirstOf:
		fn = v.FirstOf
	case KindOneOrMore:
		fn = v.OneOrMore
	case KindZeroOrMore:
		fn = v.ZeroOrMore
	case KindOptional:
		fn = v.Optional
	case KindTest:
		fn = v.Test
	case KindTestNot:
		fn = v.TestNot
	case KindChar:
		fn = v.Char
	case KindCharIgnoreCase:
		fn = v.CharIgnoreCase
	case KindCharRange:
		fn = v.CharRange
	case KindAnyOf:
		fn = v.AnyOf
	case KindAny:
		fn = v.Any
	case KindEOI:
		fn = v.EOI
	case KindString:
		fn = v.String
	case KindAction:
		fn = v.Action
	case KindEmpty:
		fn = v.Empty
	case KindNothing:
		fn = v.Nothing
	case KindProxy:
		target := m.Target()
		if target.IsZero() {
			panic(fmt.Sprintf("grammar: visited unresolved proxy %v", m))
		}
		return Visit(target, v)
	default:
		panic(fmt.Sprintf("grammar: unknown matcher kind %v", m.Kind()))
	}

	if fn == nil {
		fn = v.Default
	}
	if fn == nil {
		var zero R
		return zero
	}
	return fn(m)
}
