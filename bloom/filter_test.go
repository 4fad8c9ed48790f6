package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/kbharvest/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Visit(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(100, 0.0001)

	assert.True(t, f.Visit("https://nilmamano.com/blog/category/dsa"))
	assert.True(t, f.Visit("https://nilmamano.com/blog/category/dsa/page/2/"))
	assert.False(t, f.Visit("https://nilmamano.com/blog/category/dsa"), "revisit must be detected")
}

func TestFilter_Visit_Normalizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		first  string
		second string
	}{
		{"trailing slash", "https://quill.co/blog", "https://quill.co/blog/"},
		{"fragment", "https://quill.co/blog?page=2", "https://quill.co/blog?page=2#top"},
		{"host case", "https://Quill.CO/blog", "https://quill.co/blog"},
		{"root path", "https://quill.co", "https://quill.co/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := bloom.NewFilter(100, 0.0001)

			assert.True(t, f.Visit(tt.first))
			assert.False(t, f.Visit(tt.second))
		})
	}
}

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(100, 0.0001)

	assert.False(t, f.Seen("https://interviewing.io/blog"))
	f.Visit("https://interviewing.io/blog")
	assert.True(t, f.Seen("https://interviewing.io/blog#posts"))
	assert.False(t, f.Seen("https://interviewing.io/blog?page=2"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	for i := range 50 {
		f.Visit(fmt.Sprintf("https://example.com/blog/page/%d", i))
	}

	count := f.EstimatedCount()
	assert.GreaterOrEqual(t, count, uint(45))
	assert.LessOrEqual(t, count, uint(55))
}
