// Package model provides preprocessing of model-equation strings before they
// are handed to a parser, currently limited to named pattern substitution.
package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrUnknownSubstitution = errors.New("unknown substitution name")
	ErrCyclicSubstitution  = errors.New("cyclic substitution")
)

var subToken = regexp.MustCompile(`\$\((\w+)\)`)

// Substitutions maps a name to the text spliced in for every $(name) token.
// Definitions may reference each other.
type Substitutions map[string]string

// Expand replaces every $(name) token in eq from subs, iterating until no
// token remains. Tokens without a definition and definitions that reference
// each other in a cycle are errors.
func Expand(eq string, subs Substitutions) (string, error) {
	for range len(subs) + 1 {
		tokens := subToken.FindAllStringSubmatch(eq, -1)
		if len(tokens) == 0 {
			return eq, nil
		}
		for _, tok := range tokens {
			repl, ok := subs[tok[1]]
			if !ok {
				return "", fmt.Errorf("%q, %w", tok[1], ErrUnknownSubstitution)
			}
			eq = strings.ReplaceAll(eq, tok[0], repl)
		}
	}
	return "", fmt.Errorf("%q, %w", eq, ErrCyclicSubstitution)
}
