package source

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWikipediaDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wikipedia.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE page_summaries (
		page_id INTEGER PRIMARY KEY,
		title TEXT,
		long_summary TEXT,
		short_summary TEXT
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO page_summaries (page_id, title, long_summary, short_summary) VALUES
		(2, 'Second', 'long two', 'short two'),
		(1, 'First', 'long one', 'short one')`)
	require.NoError(t, err)
	return path
}

func TestReadWikipediaSummariesOrdersByPageID(t *testing.T) {
	path := newTestWikipediaDB(t)

	var rows []WikipediaRow
	err := ReadWikipediaSummaries(path, func(r WikipediaRow) error {
		rows = append(rows, r)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].Article.PageID)
	assert.Equal(t, "First", rows[0].Article.Title)
	assert.Equal(t, int64(2), rows[1].Article.PageID)
}

func TestReadWikipediaSummariesMissingFileErrors(t *testing.T) {
	err := ReadWikipediaSummaries(filepath.Join(t.TempDir(), "missing.db"), func(r WikipediaRow) error { return nil })
	assert.Error(t, err)
}
