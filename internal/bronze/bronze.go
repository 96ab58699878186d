// Package bronze ingests raw source records into the analytical engine,
// preserving source shape and assigning surrogate identifiers. Malformed
// JSON rows are quarantined rather than aborting the run (spec.md §4.1).
package bronze

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/realestate-pipeline/pipeline/internal/source"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// Row is one successfully parsed bronze row: the surrogate ID, the source
// file it came from, and the decoded JSON as a generic map so Silver can
// pull out whichever fields it needs without a second schema.
type Row struct {
	BronzeID   string
	SourceFile string
	Fields     map[string]interface{}
}

// QuarantinedRow is a row that failed to parse or failed minimal shape
// validation; it is preserved verbatim for the quarantine inspection report.
type QuarantinedRow struct {
	SourceFile string
	RowIndex   int64
	RawJSON    string
	Reason     string
}

// Quarantine collects every row a Bronze load rejected.
type Quarantine struct {
	Rows []QuarantinedRow
}

func (q *Quarantine) add(sourceFile string, rowIndex int64, raw []byte, reason string) {
	q.Rows = append(q.Rows, QuarantinedRow{
		SourceFile: sourceFile,
		RowIndex:   rowIndex,
		RawJSON:    string(raw),
		Reason:     reason,
	})
}

// LoadJSONRows ingests a newline-delimited (or array) JSON source file,
// parsing each row into a generic field map and assigning it a surrogate
// bronze_id. requiredFields lists the keys a row must contain to be accepted;
// a row missing any of them, or one that fails to parse as a JSON object, is
// quarantined instead of aborting the load.
func LoadJSONRows(path string, requiredFields []string, q *Quarantine) ([]Row, error) {
	var rows []Row
	err := source.ReadJSONLines(path, func(rec source.RawRecord) error {
		var fields map[string]interface{}
		if err := json.Unmarshal(rec.Raw, &fields); err != nil {
			q.add(rec.SourceFile, rec.RowIndex, rec.Raw, fmt.Sprintf("invalid JSON: %v", err))
			return nil
		}
		for _, f := range requiredFields {
			if _, ok := fields[f]; !ok {
				q.add(rec.SourceFile, rec.RowIndex, rec.Raw, fmt.Sprintf("missing required field %q", f))
				return nil
			}
		}
		rows = append(rows, Row{
			BronzeID:   uuid.NewString(),
			SourceFile: rec.SourceFile,
			Fields:     fields,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WikipediaRow is the Bronze shape for a Wikipedia summary read via a
// straight SQLite table copy: no row-level validation, since the source
// schema is enforced by the database itself (spec.md §4.1).
type WikipediaRow struct {
	BronzeID   string
	SourceFile string
	Article    model.WikipediaArticle
}

// LoadWikipediaRows reads every row of the page_summaries table and assigns
// each one a surrogate bronze_id.
func LoadWikipediaRows(path string) ([]WikipediaRow, error) {
	var rows []WikipediaRow
	err := source.ReadWikipediaSummaries(path, func(r source.WikipediaRow) error {
		rows = append(rows, WikipediaRow{
			BronzeID:   uuid.NewString(),
			SourceFile: r.SourceFile,
			Article:    r.Article,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
