package htmllint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPage = `<!DOCTYPE html>
<html>
<head>
  <title>My page</title>
</head>
<body>
  <a href="https://example.com" title="don't">link</a>
  <img src="a.png" alt='pic' />
</body>
</html>`

func TestLintValidPage(t *testing.T) {
	assert.Empty(t, Lint(validPage))
}

func TestLintUnterminatedAttribute(t *testing.T) {
	issues := Lint(`<div class="x>`)
	blocking := Blocking(issues)
	require.NotEmpty(t, blocking)
	assert.Equal(t, TypeSyntaxError, blocking[0].Type)
	assert.Equal(t, 1, blocking[0].Line)
	assert.Equal(t, 1, blocking[0].Column)
}

func TestLintMissingClosingBracket(t *testing.T) {
	issues := Lint("<p>ok</p>\n<span class='a'")
	require.Len(t, issues, 1)
	assert.Equal(t, TypeSyntaxError, issues[0].Type)
	assert.Equal(t, 2, issues[0].Line)
	assert.Contains(t, issues[0].Message, "missing its closing '>'")
}

func TestLintNestedOpenBracket(t *testing.T) {
	issues := Lint(`<div <p>text</p></div>`)
	require.NotEmpty(t, issues)
	assert.Equal(t, TypeSyntaxError, issues[0].Type)
	assert.Equal(t, 6, issues[0].Column)
}

func TestLintUnclosedHTML(t *testing.T) {
	code := "<!DOCTYPE html>\n<html>\n<body>\n<p>hi</p>\n</body>"
	issues := Lint(code)
	require.Len(t, issues, 1)
	assert.Equal(t, TypeUnclosedTag, issues[0].Type)
	assert.Equal(t, 2, issues[0].Line)
	assert.Equal(t, 1, issues[0].Column)
	assert.Equal(t, "Missing closing tag </html>", issues[0].Message)
}

func TestLintHeaderIsNotHead(t *testing.T) {
	issues := Lint("<header>top</header>")
	assert.Empty(t, issues)
}

func TestLintTypoIsAdvisory(t *testing.T) {
	issues := Lint("<htlm></htlm>")
	require.Len(t, issues, 2)
	for _, is := range issues {
		assert.Equal(t, TypeTypo, is.Type)
		assert.Equal(t, SeverityWarning, is.Severity)
	}
	assert.Empty(t, Blocking(issues))
}

func TestLintOrdersByPosition(t *testing.T) {
	code := "<title>x\n<dvi>\n<p class=\"a>"
	issues := Lint(code)
	require.Len(t, issues, 3)
	assert.Equal(t, TypeUnclosedTag, issues[0].Type)
	assert.Equal(t, TypeTypo, issues[1].Type)
	assert.Equal(t, TypeSyntaxError, issues[2].Type)
}
