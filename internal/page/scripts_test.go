package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSString_QuotesHostileInput(t *testing.T) {
	assert.Equal(t, `"a\"b\\c\n"`, jsString("a\"b\\c\n"))
	// HTML-significant characters come out as \u escapes, which JavaScript also accepts.
	assert.Equal(t, `"\u003c/script\u003e"`, jsString("</script>"))
	assert.Equal(t, `"මම"`, jsString("මම"))
}

func TestScripts_EmbedSelectorsAsLiterals(t *testing.T) {
	js := outputReadyJS(`div[data-x='1"]`)
	assert.Contains(t, js, `"div[data-x='1\"]"`)
	assert.Contains(t, js, "TEXTAREA")

	fill := fillJS("Input Your Singlish Text Here.", "mama\nheta")
	assert.Contains(t, fill, `"Input Your Singlish Text Here."`)
	assert.Contains(t, fill, `"mama\nheta"`)
	assert.Contains(t, fill, "dispatchEvent(new Event('input'")
}
