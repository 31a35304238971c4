package typemap

import (
	"fmt"
	"strings"
)

// LogicalTypeID identifies host engine data types.
type LogicalTypeID string

const (
	TypeIDInvalid      LogicalTypeID = "INVALID"
	TypeIDBoolean      LogicalTypeID = "BOOLEAN"
	TypeIDTinyInt      LogicalTypeID = "TINYINT"
	TypeIDSmallInt     LogicalTypeID = "SMALLINT"
	TypeIDInteger      LogicalTypeID = "INTEGER"
	TypeIDBigInt       LogicalTypeID = "BIGINT"
	TypeIDUTinyInt     LogicalTypeID = "UTINYINT"
	TypeIDUSmallInt    LogicalTypeID = "USMALLINT"
	TypeIDUInteger     LogicalTypeID = "UINTEGER"
	TypeIDUBigInt      LogicalTypeID = "UBIGINT"
	TypeIDHugeInt      LogicalTypeID = "HUGEINT"
	TypeIDUHugeInt     LogicalTypeID = "UHUGEINT"
	TypeIDFloat        LogicalTypeID = "FLOAT"
	TypeIDDouble       LogicalTypeID = "DOUBLE"
	TypeIDDecimal      LogicalTypeID = "DECIMAL"
	TypeIDVarchar      LogicalTypeID = "VARCHAR"
	TypeIDBlob         LogicalTypeID = "BLOB"
	TypeIDDate         LogicalTypeID = "DATE"
	TypeIDTime         LogicalTypeID = "TIME"
	TypeIDTimestampSec LogicalTypeID = "TIMESTAMP_S"
	TypeIDTimestampMs  LogicalTypeID = "TIMESTAMP_MS"
	TypeIDTimestamp    LogicalTypeID = "TIMESTAMP"
	TypeIDTimestampNs  LogicalTypeID = "TIMESTAMP_NS"
	TypeIDTimestampTZ  LogicalTypeID = "TIMESTAMP_TZ"
	TypeIDInterval     LogicalTypeID = "INTERVAL"
	TypeIDUUID         LogicalTypeID = "UUID"
	TypeIDList         LogicalTypeID = "LIST"
	TypeIDArray        LogicalTypeID = "ARRAY"
	TypeIDStruct       LogicalTypeID = "STRUCT"
	TypeIDMap          LogicalTypeID = "MAP"
	TypeIDUnion        LogicalTypeID = "UNION"
	TypeIDEnum         LogicalTypeID = "ENUM"
)

// LogicalType represents a host engine logical type with optional extra
// type information (precision/scale, element types).
type LogicalType struct {
	ID       LogicalTypeID
	TypeInfo ExtraTypeInfo
}

// ExtraTypeInfo is the interface for additional type information.
type ExtraTypeInfo interface {
	extraTypeInfoMarker()
}

// DecimalTypeInfo contains precision and scale for DECIMAL types.
type DecimalTypeInfo struct {
	Width int // Total digits
	Scale int // Decimal places
}

func (d *DecimalTypeInfo) extraTypeInfoMarker() {}

// ListTypeInfo contains the element type for LIST types.
type ListTypeInfo struct {
	ChildType LogicalType
}

func (l *ListTypeInfo) extraTypeInfoMarker() {}

// StructTypeInfo contains field definitions for STRUCT types.
type StructTypeInfo struct {
	ChildTypes []StructField
}

func (s *StructTypeInfo) extraTypeInfoMarker() {}

// StructField represents a field in a STRUCT type.
type StructField struct {
	Name string
	Type LogicalType
}

// MapTypeInfo contains key and value types for MAP types.
type MapTypeInfo struct {
	KeyType   LogicalType
	ValueType LogicalType
}

func (m *MapTypeInfo) extraTypeInfoMarker() {}

// Logical is a convenience constructor for types without extra info.
func Logical(id LogicalTypeID) LogicalType {
	return LogicalType{ID: id}
}

// Decimal constructs a DECIMAL logical type with the given width and scale.
func Decimal(width, scale int) LogicalType {
	return LogicalType{ID: TypeIDDecimal, TypeInfo: &DecimalTypeInfo{Width: width, Scale: scale}}
}

// String renders the type as host engine SQL type text.
func (t LogicalType) String() string {
	switch t.ID {
	case TypeIDDecimal:
		if info, ok := t.TypeInfo.(*DecimalTypeInfo); ok {
			return fmt.Sprintf("DECIMAL(%d,%d)", info.Width, info.Scale)
		}
		return "DECIMAL"
	case TypeIDList:
		if info, ok := t.TypeInfo.(*ListTypeInfo); ok {
			return info.ChildType.String() + "[]"
		}
		return "LIST"
	case TypeIDStruct:
		if info, ok := t.TypeInfo.(*StructTypeInfo); ok {
			fields := make([]string, 0, len(info.ChildTypes))
			for _, f := range info.ChildTypes {
				fields = append(fields, f.Name+" "+f.Type.String())
			}
			return "STRUCT(" + strings.Join(fields, ", ") + ")"
		}
		return "STRUCT"
	case TypeIDMap:
		if info, ok := t.TypeInfo.(*MapTypeInfo); ok {
			return "MAP(" + info.KeyType.String() + ", " + info.ValueType.String() + ")"
		}
		return "MAP"
	case TypeIDTimestampTZ:
		return "TIMESTAMP WITH TIME ZONE"
	default:
		return string(t.ID)
	}
}

// IsInteger returns true if the type is a fixed-width integer type.
func (t LogicalTypeID) IsInteger() bool {
	switch t {
	case TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt,
		TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt,
		TypeIDHugeInt, TypeIDUHugeInt:
		return true
	}
	return false
}

// IsNumeric returns true if the type is a numeric type.
func (t LogicalTypeID) IsNumeric() bool {
	switch t {
	case TypeIDFloat, TypeIDDouble, TypeIDDecimal:
		return true
	}
	return t.IsInteger()
}

// IsUnsigned returns true if the type is an unsigned integer type.
func (t LogicalTypeID) IsUnsigned() bool {
	switch t {
	case TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt, TypeIDUHugeInt:
		return true
	}
	return false
}

// IsComplex returns true if the type is a container or composite type.
// Complex types have no remote equivalent and fail reverse mapping.
func (t LogicalTypeID) IsComplex() bool {
	switch t {
	case TypeIDList, TypeIDArray, TypeIDStruct, TypeIDMap, TypeIDUnion:
		return true
	}
	return false
}
