package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForContent(t *testing.T) {
	assert.IsType(t, PlainText{}, ForContent("just text"))
	assert.IsType(t, PlainText{}, ForContent("a < b and b > c"))
	assert.IsType(t, PlainText{}, ForContent("price <5 but >3"))
	assert.IsType(t, RichText{}, ForContent("<div>hi</div>"))
	assert.IsType(t, RichText{}, ForContent("line<br>break"))
}

func TestComparisonTextStaysIntact(t *testing.T) {
	content := "a < b and b > c"
	assert.Equal(t, content, ForContent(content).Plain(content))
	assert.Equal(t, Stats{Lines: 1, Words: 7, Chars: 15}, Count(content))
}

func TestRichTextPlain(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"line breaks", "one<br>two<br/>three", "one\ntwo\nthree"},
		{"block closers", "<div>one</div><p>two</p>", "one\ntwo\n"},
		{"nested tags", "<div><b>bold</b> and <i>italic</i></div>", "bold and italic\n"},
		{"entities", "a &amp; b &lt;c&gt;", "a & b <c>"},
		{"headings", "<h1>Title</h1>body", "Title\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RichText{}.Plain(tt.content))
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \n\t"))
	assert.True(t, IsBlank("<div><br></div>"))
	assert.False(t, IsBlank("x"))
	assert.False(t, IsBlank("<div>x</div>"))
}

func TestCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Stats
	}{
		{"empty", "", Stats{Lines: 1, Words: 0, Chars: 0}},
		{"single line", "hello world", Stats{Lines: 1, Words: 2, Chars: 11}},
		{"multi line", "a\nb\nc", Stats{Lines: 3, Words: 3, Chars: 5}},
		{"unicode chars", "héllo", Stats{Lines: 1, Words: 1, Chars: 5}},
		{"markup stripped", "<div>two words</div>", Stats{Lines: 2, Words: 2, Chars: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.content))
		})
	}
}

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"meeting-notes.txt", "Meeting Notes"},
		{"shopping_list.md", "Shopping List"},
		{"notes.txt", "Notes"},
		{"README", "Readme"},
		{".txt", ".txt"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayTitle(tt.in), "input %q", tt.in)
	}
}
