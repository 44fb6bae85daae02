package tree

import "fmt"

// Question is a split predicate: "feature Feature compares to Value".
// Numeric reference values compare with >=, categorical with equality.
// Questions are immutable once created.
type Question struct {
	Feature int
	Value   Value
}

// Match evaluates the predicate against a record. The compared cell must
// not be missing; missing cells are routed by the partitioner before Match
// is ever consulted.
func (q Question) Match(s Sample) bool {
	cell := s[q.Feature]
	if cell.IsNumeric() && q.Value.IsNumeric() {
		return cell.Float() >= q.Value.Float()
	}
	return cell.Equal(q.Value)
}

func (q Question) String() string {
	op := "=="
	if q.Value.IsNumeric() {
		op = ">="
	}
	return fmt.Sprintf("feature %d %s %s", q.Feature, op, q.Value)
}
