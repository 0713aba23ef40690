package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantJSX string
		wantCSS string
	}{
		{
			name:    "jsx and css blocks",
			text:    "Here you go:\n```jsx\n<div className=\"component-container\">X</div>\n```\n\n```css\n.component-container{color:red}\n```\n",
			wantJSX: `<div className="component-container">X</div>`,
			wantCSS: ".component-container{color:red}",
		},
		{
			name:    "missing css block",
			text:    "```jsx\nrender(<Component />);\n```",
			wantJSX: "render(<Component />);",
			wantCSS: "",
		},
		{
			name:    "missing jsx block",
			text:    "```css\n.component-container{}\n```",
			wantJSX: "",
			wantCSS: ".component-container{}",
		},
		{
			name:    "no fences",
			text:    "I cannot help with that.",
			wantJSX: "",
			wantCSS: "",
		},
		{
			name:    "uppercase tags",
			text:    "```JSX\n<p/>\n```\n```CSS\np{}\n```",
			wantJSX: "<p/>",
			wantCSS: "p{}",
		},
		{
			name:    "js tag",
			text:    "```js\nrender(<A />);\n```",
			wantJSX: "render(<A />);",
		},
		{
			name:    "javascript tag",
			text:    "```javascript\nrender(<A />);\n```",
			wantJSX: "render(<A />);",
		},
		{
			name:    "first matching block wins",
			text:    "```jsx\nfirst\n```\n```jsx\nsecond\n```\n```css\na{}\n```\n```css\nb{}\n```",
			wantJSX: "first",
			wantCSS: "a{}",
		},
		{
			name:    "untagged and foreign blocks skipped",
			text:    "```\nplain\n```\n```bash\nnpm i\n```\n```jsx\n<X/>\n```",
			wantJSX: "<X/>",
		},
		{
			name:    "unclosed fence ignored",
			text:    "```jsx\n<X/>\n```\n```css\n.a{}",
			wantJSX: "<X/>",
			wantCSS: "",
		},
		{
			name:    "interior trimmed",
			text:    "```css   \n\n  .a{}  \n\n```",
			wantCSS: ".a{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsx, css := extractCode(tt.text)
			assert.Equal(t, tt.wantJSX, jsx)
			assert.Equal(t, tt.wantCSS, css)
		})
	}
}

func TestFenceTagTables(t *testing.T) {
	assert.Equal(t, []string{"jsx", "js", "javascript"}, componentTags)
	assert.Equal(t, []string{"css"}, stylesheetTags)
}
