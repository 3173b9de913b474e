package progress

import "slices"

// OperationInfo names a known operation key.
type OperationInfo struct {
	Key   string
	Name  string
	Topic string
}

var operations = []OperationInfo{
	{Key: "algebra_solve", Name: "פתרון משוואות", Topic: "algebra"},
	{Key: "algebra_simplify", Name: "פישוט ביטויים", Topic: "algebra"},
	{Key: "algebra_factor", Name: "פירוק לגורמים", Topic: "algebra"},
	{Key: "calculus_derive", Name: "גזירה", Topic: "calculus"},
	{Key: "calculus_integrate", Name: "אינטגרציה", Topic: "calculus"},
	{Key: "coordinate_quadrant", Name: "רביעים במערכת צירים", Topic: "geometry"},
	{Key: "arithmetic_fractions", Name: "שברים", Topic: "arithmetic"},
}

// Operations returns the catalog of known operation keys.
// Keys outside the catalog are still accepted by the Tracker.
func Operations() []OperationInfo {
	return slices.Clone(operations)
}

// LookupOperation returns the catalog entry for key.
func LookupOperation(key string) (OperationInfo, bool) {
	i := slices.IndexFunc(operations, func(o OperationInfo) bool { return o.Key == key })
	if i < 0 {
		return OperationInfo{}, false
	}
	return operations[i], true
}

// DisplayName returns the catalog name for key, or key itself when unknown.
func DisplayName(key string) string {
	if o, ok := LookupOperation(key); ok {
		return o.Name
	}
	return key
}
