package silver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realestate-pipeline/pipeline/internal/bronze"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

func TestTransformWikipedia(t *testing.T) {
	row := bronze.WikipediaRow{
		BronzeID:   "b1",
		SourceFile: "page_summaries",
		Article: model.WikipediaArticle{
			PageID:      42,
			Title:       "Mission District",
			LongSummary: "a short article",
		},
	}

	a := TransformWikipedia(row)

	assert.Equal(t, "WikipediaArticle:42", a.GraphNodeID)
	assert.False(t, a.Truncated)
	assert.Equal(t, "a short article", a.Source.LongSummary)
}

func TestTransformWikipediaTruncatesOversizedSummary(t *testing.T) {
	row := bronze.WikipediaRow{
		BronzeID: "b2",
		Article: model.WikipediaArticle{
			PageID:      7,
			LongSummary: strings.Repeat("x", MaxLongSummaryChars+500),
		},
	}

	a := TransformWikipedia(row)

	assert.True(t, a.Truncated)
	assert.Len(t, a.Source.LongSummary, MaxLongSummaryChars)
}
