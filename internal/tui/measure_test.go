package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/shout/internal/banner"
)

func TestMeasurer_Measure(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    float64
		maxLines int
		want     banner.Size
	}{
		{name: "empty", text: "", width: 20, maxLines: 2, want: banner.Size{}},
		{name: "blank", text: "   ", width: 20, maxLines: 2, want: banner.Size{}},
		{name: "no width", text: "hello", width: 0, maxLines: 2, want: banner.Size{}},
		{name: "single line", text: "hello world", width: 20, maxLines: 2, want: banner.Size{Width: 11, Height: 1}},
		{name: "wraps", text: "hello world", width: 5, maxLines: 0, want: banner.Size{Width: 5, Height: 2}},
		{name: "limited", text: "one two three four", width: 5, maxLines: 2, want: banner.Size{Width: 4, Height: 2}},
		{name: "unlimited", text: "one two three four", width: 5, maxLines: 0, want: banner.Size{Width: 5, Height: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Measurer{}.Measure(tt.text, tt.width, tt.maxLines))
		})
	}
}

func TestWrap_MarksCutWithEllipsis(t *testing.T) {
	assert.Equal(t, []string{"one", "two…"}, wrap("one two three four", 5, 2))
	assert.Equal(t, []string{"one", "two", "three", "four"}, wrap("one two three four", 5, 0))
	assert.Equal(t, []string{"short"}, wrap("short", 10, 1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ab", truncate("ab ", 3))
	assert.Equal(t, "", truncate("abc", 0))
}
