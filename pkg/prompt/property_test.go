package prompt_test

import (
	"strings"
	"testing"

	"github.com/jordanlanch/namereport/pkg/prompt"
	"github.com/jordanlanch/namereport/pkg/testdata"
	"github.com/stretchr/testify/assert"
)

func TestBuild_DeterministicOverGeneratedPreferences(t *testing.T) {
	for _, prefs := range testdata.GeneratePreferences(42, 200) {
		first := prompt.Build(prefs)
		second := prompt.Build(prefs)

		assert.Equal(t, first, second)
		assert.Equal(t, prompt.SystemInstruction, first.System)
		assert.Contains(t, first.User, prefs.Surname)

		directive := prompt.Style(strings.TrimSpace(prefs.Style)).Directive()
		assert.True(t, strings.Contains(first.User, directive), "style %q", prefs.Style)
	}
}
