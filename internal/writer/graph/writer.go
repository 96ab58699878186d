// Package graph writes Gold nodes and edges to a Neo4j graph store: a
// unique constraint per node kind, bulk merge-on-primary-key node writes,
// and Cypher MERGE relationship writes carrying only (from, to, type,
// weight?) (spec.md §4.7).
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/realestate-pipeline/pipeline/internal/writer"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// Writer implements writer.Destination over a Neo4j driver session.
type Writer struct {
	driver   neo4j.DriverWithContext
	database string
}

// New creates a graph destination against the given Neo4j URI.
func New(uri, user, password, database string) (*Writer, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("graph: new driver: %w", err)
	}
	return &Writer{driver: driver, database: database}, nil
}

func (w *Writer) Name() string { return "graph" }

func (w *Writer) session(ctx context.Context) neo4j.SessionWithContext {
	return w.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: w.database,
	})
}

// Clear wipes every node and relationship in the target database so each
// run writes a clean snapshot (spec.md §3 lifecycle).
func (w *Writer) Clear(ctx context.Context) error {
	sess := w.session(ctx)
	defer sess.Close(ctx)

	_, err := sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("graph: clear database: %w", err)
	}
	return nil
}

// excludedFields are the denormalized fields invariant 4 forbids on
// Property graph nodes (no other node kind has excluded fields); they are
// represented instead by
// the dedicated classification/geographic nodes and the edges connecting
// to them (spec.md §4.1 invariant 4, scenario F). Matched against the
// flattened field names produced by flattenFields, not the nested
// address/location sub-documents SearchDocument nests them under.
var excludedFields = map[model.EntityKind]map[string]bool{
	model.EntityProperty: {"city": true, "state": true, "zip_code": true, "property_type": true},
}

// flattenFields projects a Gold SearchDocument's nested sub-documents
// (address, location) into scalar, Neo4j-property-safe top-level fields, so
// the excluded-fields check above can match on "city"/"state"/"zip_code"
// and so no nested map ever reaches a Cypher SET n += $props call (Neo4j
// rejects map-valued node properties).
func flattenFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		switch nested := v.(type) {
		case map[string]interface{}:
			for nk, nv := range nested {
				if nv == nil {
					continue
				}
				out[addressFieldName(nk)] = nv
			}
		case map[string]float64:
			for nk, nv := range nested {
				out[k+"_"+nk] = nv
			}
		default:
			out[k] = v
		}
	}
	return out
}

// addressFieldName maps an address sub-document key to the top-level name
// invariant 4 refers to (zip -> zip_code); other address fields (street,
// city, state) keep their own name.
func addressFieldName(key string) string {
	if key == "zip" {
		return "zip_code"
	}
	return key
}

func (w *Writer) WriteNodes(ctx context.Context, kind model.EntityKind, records []writer.NodeRecord) error {
	sess := w.session(ctx)
	defer sess.Close(ctx)

	label := string(kind)
	if err := ensureConstraint(ctx, sess, label); err != nil {
		return err
	}
	excluded := excludedFields[kind]

	_, err := sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		rows := make([]interface{}, 0, len(records))
		for _, r := range records {
			// Nodes are keyed by their full graph_node_id ("{kind}:{primary_id}")
			// so relationship endpoints, which carry the same form, resolve with
			// a plain property match instead of a label-scoped lookup.
			graphNodeID := model.GraphNodeID(kind, r.PrimaryID)
			props := map[string]interface{}{"primary_id": graphNodeID}
			for k, v := range flattenFields(r.Fields) {
				if excluded[k] {
					continue
				}
				props[k] = v
			}
			if len(r.Embedding) > 0 {
				props["embedding"] = r.Embedding
			}
			rows = append(rows, map[string]interface{}{"primary_id": graphNodeID, "props": props})
		}
		cypher := fmt.Sprintf("UNWIND $rows AS row MERGE (n:`%s` {primary_id: row.primary_id}) SET n += row.props", label)
		return tx.Run(ctx, cypher, map[string]interface{}{"rows": rows})
	})
	if err != nil {
		return fmt.Errorf("graph: write nodes %s: %w", label, err)
	}
	return nil
}

func (w *Writer) WriteEdges(ctx context.Context, kind model.EdgeKind, edges []model.Relationship) error {
	sess := w.session(ctx)
	defer sess.Close(ctx)

	relType := string(kind)
	_, err := sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, e := range edges {
			params := map[string]interface{}{
				"from_id": e.FromID,
				"to_id":   e.ToID,
			}
			cypher := fmt.Sprintf(`
				MATCH (a {primary_id: $from_id}), (b {primary_id: $to_id})
				MERGE (a)-[r:`+"`%s`"+`]->(b)
				%s
			`, relType, weightClause(e.Weight, params))
			if _, err := tx.Run(ctx, cypher, params); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("graph: write edges %s: %w", relType, err)
	}
	return nil
}

func weightClause(weight *float64, params map[string]interface{}) string {
	if weight == nil {
		return ""
	}
	params["weight"] = *weight
	return "SET r.weight = $weight"
}

func ensureConstraint(ctx context.Context, sess neo4j.SessionWithContext, label string) error {
	cypher := fmt.Sprintf(
		"CREATE CONSTRAINT IF NOT EXISTS FOR (n:`%s`) REQUIRE n.primary_id IS UNIQUE",
		label,
	)
	_, err := sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, cypher, nil)
	})
	if err != nil {
		return fmt.Errorf("graph: ensure constraint on %s: %w", label, err)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.driver.Close(context.Background())
}
