// Copyright © 2018 The ELPS authors

package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinCompleter(t *testing.T) {
	c := &builtinCompleter{}

	candidates, offset := c.Do([]rune("(he"), 3)
	assert.Equal(t, 2, offset)
	assert.Equal(t, [][]rune{[]rune("ad")}, candidates)

	// "mu" completes both multiplication aliases.
	candidates, offset = c.Do([]rune("{1 (mu"), 6)
	assert.Equal(t, 2, offset)
	assert.Equal(t, [][]rune{[]rune("l"), []rune("lt")}, candidates)

	candidates, offset = c.Do([]rune("(+ 1 "), 5)
	assert.Empty(t, candidates)
	assert.Equal(t, 0, offset)

	candidates, _ = c.Do([]rune("(zzz-nonexistent"), 16)
	assert.Empty(t, candidates)
}
