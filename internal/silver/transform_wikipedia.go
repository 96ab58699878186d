package silver

import (
	"strconv"

	"github.com/realestate-pipeline/pipeline/internal/bronze"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// MaxLongSummaryChars is the hard safety cap on long_summary length
// (spec.md §4.3). Articles are stored with verbatim long_summary text — no
// chunking — since source summaries empirically run well under this cap;
// it exists only to bound the rare oversized row.
const MaxLongSummaryChars = 8000

// WikipediaArticle is the Silver-tier shape of a Wikipedia row.
type WikipediaArticle struct {
	BronzeID    string
	SourceFile  string
	Source      model.WikipediaArticle
	GraphNodeID string
	Truncated   bool
}

// TransformWikipedia is invoked by name from the Silver driver.
func TransformWikipedia(row bronze.WikipediaRow) WikipediaArticle {
	a := row.Article
	truncated := false
	if len(a.LongSummary) > MaxLongSummaryChars {
		a.LongSummary = a.LongSummary[:MaxLongSummaryChars]
		truncated = true
	}

	return WikipediaArticle{
		BronzeID:    row.BronzeID,
		SourceFile:  row.SourceFile,
		Source:      a,
		GraphNodeID: model.GraphNodeID(model.EntityWikipedia, strconv.FormatInt(a.PageID, 10)),
		Truncated:   truncated,
	}
}
