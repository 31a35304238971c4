package typemap

import "time"

// Value represents a typed constant produced by the host planner.
type Value struct {
	Type   LogicalType
	IsNull bool
	Data   any
}

// NullValue constructs a typed NULL constant.
func NullValue(t LogicalType) Value {
	return Value{Type: t, IsNull: true}
}

// BoolValue constructs a BOOLEAN constant.
func BoolValue(v bool) Value {
	return Value{Type: Logical(TypeIDBoolean), Data: v}
}

// IntValue constructs a BIGINT constant.
func IntValue(v int64) Value {
	return Value{Type: Logical(TypeIDBigInt), Data: v}
}

// UintValue constructs a UBIGINT constant.
func UintValue(v uint64) Value {
	return Value{Type: Logical(TypeIDUBigInt), Data: v}
}

// FloatValue constructs a DOUBLE constant.
func FloatValue(v float64) Value {
	return Value{Type: Logical(TypeIDDouble), Data: v}
}

// StringValue constructs a VARCHAR constant.
func StringValue(v string) Value {
	return Value{Type: Logical(TypeIDVarchar), Data: v}
}

// BlobValue constructs a BLOB constant.
func BlobValue(v []byte) Value {
	return Value{Type: Logical(TypeIDBlob), Data: v}
}

// TimestampValue constructs a TIMESTAMP constant.
func TimestampValue(v time.Time) Value {
	return Value{Type: Logical(TypeIDTimestamp), Data: v}
}

// DateValue constructs a DATE constant.
func DateValue(v time.Time) Value {
	return Value{Type: Logical(TypeIDDate), Data: v}
}
