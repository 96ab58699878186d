package bronze

import "github.com/realestate-pipeline/pipeline/internal/engine"

// Materialize registers the quarantine rows as an Arrow table named
// "bronze.quarantine" so the run summary and ad hoc inspection can query
// rejected rows the same way they query Gold tables.
func (q *Quarantine) Materialize(sess *engine.Session) *engine.Table {
	t := engine.NewTable("bronze.quarantine", engine.QuarantineSchema)
	if len(q.Rows) == 0 {
		sess.Register(t)
		return t
	}

	b := engine.NewBuilder(sess, engine.QuarantineSchema)
	defer b.Release()

	for _, r := range q.Rows {
		b.AppendString("source_file", r.SourceFile)
		b.AppendInt64("row_index", r.RowIndex)
		b.AppendString("raw_json", r.RawJSON)
		b.AppendString("reason", r.Reason)
	}

	rec := b.NewRecord()
	defer rec.Release()
	t.Append(rec)
	sess.Register(t)
	return t
}
