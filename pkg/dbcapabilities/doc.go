// Package dbcapabilities provides a small registry describing the write
// destinations this pipeline targets. Other internal packages import it to
// make decisions based on uniform metadata (paradigm, ANN support) instead of
// switching on destination name string literals.
//
// Minimal usage example:
//
//	import "github.com/realestate-pipeline/pipeline/pkg/dbcapabilities"
//
//	func supportsVectorSearch(dest string) bool {
//	    cap, ok := dbcapabilities.Get(dbcapabilities.DestinationID(dest))
//	    return ok && cap.SupportsANN
//	}
package dbcapabilities
