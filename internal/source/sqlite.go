package source

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/realestate-pipeline/pipeline/pkg/model"
	"github.com/realestate-pipeline/pipeline/pkg/pipelineerr"
)

// WikipediaRow is one row read from the page_summaries SQLite table, before
// Bronze assigns it a surrogate ID.
type WikipediaRow struct {
	SourceFile string
	RowIndex   int64
	Article    model.WikipediaArticle
}

// ReadWikipediaSummaries opens the SQLite database at path and streams every
// row of the page_summaries table to fn in ascending page_id order.
func ReadWikipediaSummaries(path string, fn func(WikipediaRow) error) error {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return pipelineerr.Source("read_wikipedia_summaries", fmt.Errorf("open %s: %w", path, err))
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT page_id, title, long_summary, short_summary
		FROM page_summaries
		ORDER BY page_id
	`)
	if err != nil {
		return pipelineerr.Source("read_wikipedia_summaries", fmt.Errorf("query %s: %w", path, err))
	}
	defer rows.Close()

	var idx int64
	for rows.Next() {
		var a model.WikipediaArticle
		if err := rows.Scan(&a.PageID, &a.Title, &a.LongSummary, &a.ShortSummary); err != nil {
			return pipelineerr.Source("read_wikipedia_summaries", fmt.Errorf("scan %s: %w", path, err))
		}
		if err := fn(WikipediaRow{SourceFile: path, RowIndex: idx, Article: a}); err != nil {
			return err
		}
		idx++
	}
	if err := rows.Err(); err != nil {
		return pipelineerr.Source("read_wikipedia_summaries", fmt.Errorf("iterate %s: %w", path, err))
	}
	return nil
}
