package typemap

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned by ToRemoteType for host types that have
// no safe MySQL equivalent.
var ErrUnsupportedType = errors.New("unsupported type")

// Annotation marks a conversion that is not purely structural. The scan
// layer uses it to decode raw remote values correctly; without it the
// produced type and the decoding logic would disagree silently.
type Annotation int

const (
	// AnnotationStandard marks a structural conversion.
	AnnotationStandard Annotation = iota

	// AnnotationCastToText marks a remote type read back as text
	// (time, json, enum, set, and unknown types).
	AnnotationCastToText

	// AnnotationNumericAsDouble marks a decimal widened to DOUBLE
	// because its precision exceeds the representable range.
	AnnotationNumericAsDouble

	// AnnotationTreatAsBoolean marks a tinyint(1) or bit(1) column
	// mapped to BOOLEAN by session configuration.
	AnnotationTreatAsBoolean

	// AnnotationFixedLengthChar marks a fixed-length char column whose
	// values arrive space-padded.
	AnnotationFixedLengthChar

	// AnnotationGeometry marks a spatial column whose values arrive as
	// an SRID prefix followed by WKB.
	AnnotationGeometry
)

func (a Annotation) String() string {
	switch a {
	case AnnotationStandard:
		return "standard"
	case AnnotationCastToText:
		return "cast_to_text"
	case AnnotationNumericAsDouble:
		return "numeric_as_double"
	case AnnotationTreatAsBoolean:
		return "treat_as_boolean"
	case AnnotationFixedLengthChar:
		return "fixed_length_char"
	case AnnotationGeometry:
		return "geometry"
	}
	return "unknown"
}

// maximum precision of the host DECIMAL type
const maxDecimalWidth = 38

func currentSetting(settings Settings, name string) bool {
	if settings == nil {
		return false
	}
	value, ok := settings.CurrentSetting(name)
	return ok && value
}

// ToHostType converts a remote column type descriptor to the host logical
// type. It is total: unrecognized type names fall back to text so scans
// stay usable for niche types. The settings are consulted on every call.
func ToHostType(settings Settings, t RemoteType) (LogicalType, Annotation) {
	switch t.TypeName {
	case "tinyint":
		if t.ColumnType == "tinyint(1)" && currentSetting(settings, SettingTinyInt1AsBoolean) {
			return Logical(TypeIDBoolean), AnnotationTreatAsBoolean
		}
		if t.Unsigned() {
			return Logical(TypeIDUTinyInt), AnnotationStandard
		}
		return Logical(TypeIDTinyInt), AnnotationStandard
	case "smallint":
		if t.Unsigned() {
			return Logical(TypeIDUSmallInt), AnnotationStandard
		}
		return Logical(TypeIDSmallInt), AnnotationStandard
	case "mediumint", "int":
		if t.Unsigned() {
			return Logical(TypeIDUInteger), AnnotationStandard
		}
		return Logical(TypeIDInteger), AnnotationStandard
	case "bigint":
		if t.Unsigned() {
			return Logical(TypeIDUBigInt), AnnotationStandard
		}
		return Logical(TypeIDBigInt), AnnotationStandard
	case "float":
		return Logical(TypeIDFloat), AnnotationStandard
	case "double":
		return Logical(TypeIDDouble), AnnotationStandard
	case "date":
		return Logical(TypeIDDate), AnnotationStandard
	case "time":
		// TIME in MySQL is closer to an interval and can store values
		// between -838:00:00 and 838:00:00, so it is read back as text.
		return Logical(TypeIDVarchar), AnnotationCastToText
	case "timestamp":
		// "timestamp" columns are timezone aware, "datetime" columns are
		// not. The two must map to distinct host timestamp variants.
		return Logical(TypeIDTimestampTZ), AnnotationStandard
	case "datetime":
		return Logical(TypeIDTimestamp), AnnotationStandard
	case "year":
		return Logical(TypeIDInteger), AnnotationStandard
	case "decimal":
		if t.Precision > 0 && t.Precision <= maxDecimalWidth {
			return Decimal(int(t.Precision), int(t.Scale)), AnnotationStandard
		}
		return Logical(TypeIDDouble), AnnotationNumericAsDouble
	case "json", "enum", "set":
		return Logical(TypeIDVarchar), AnnotationCastToText
	case "bit":
		if t.ColumnType == "bit(1)" && currentSetting(settings, SettingBit1AsBoolean) {
			return Logical(TypeIDBoolean), AnnotationTreatAsBoolean
		}
		return Logical(TypeIDBlob), AnnotationStandard
	case "geometry", "point", "linestring", "polygon",
		"multipoint", "multilinestring", "multipolygon", "geomcollection":
		return Logical(TypeIDBlob), AnnotationGeometry
	case "blob", "binary", "varbinary",
		"tinyblob", "mediumblob", "longblob":
		return Logical(TypeIDBlob), AnnotationStandard
	case "char":
		return Logical(TypeIDVarchar), AnnotationFixedLengthChar
	case "varchar", "text", "tinytext", "mediumtext", "longtext":
		return Logical(TypeIDVarchar), AnnotationStandard
	}
	// fallback for unknown types
	return Logical(TypeIDVarchar), AnnotationCastToText
}

// ToRemoteType converts a host logical type to the closest type MySQL can
// store. Structurally representable types pass through unchanged; narrow
// timestamp variants widen to the canonical timestamp; HUGEINT narrows to
// DOUBLE (accepted precision loss). Container and composite types have no
// safe remote equivalent and fail with ErrUnsupportedType.
func ToRemoteType(t LogicalType) (LogicalType, error) {
	switch t.ID {
	case TypeIDBoolean,
		TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt,
		TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt,
		TypeIDFloat, TypeIDDouble, TypeIDDecimal,
		TypeIDBlob, TypeIDDate,
		TypeIDTimestamp, TypeIDTimestampTZ,
		TypeIDVarchar:
		return t, nil
	case TypeIDList, TypeIDArray:
		return LogicalType{}, fmt.Errorf("%w: MySQL does not support arrays - %s", ErrUnsupportedType, t)
	case TypeIDStruct, TypeIDMap, TypeIDUnion:
		return LogicalType{}, fmt.Errorf("%w: MySQL does not support composite types - %s", ErrUnsupportedType, t)
	case TypeIDTimestampSec, TypeIDTimestampMs, TypeIDTimestampNs:
		return Logical(TypeIDTimestamp), nil
	case TypeIDHugeInt, TypeIDUHugeInt:
		return Logical(TypeIDDouble), nil
	default:
		return Logical(TypeIDVarchar), nil
	}
}

// RemoteTypeName renders a host logical type as MySQL DDL type text.
// The input must already be remote-representable (see ToRemoteType).
func RemoteTypeName(t LogicalType) string {
	switch t.ID {
	case TypeIDVarchar:
		return "TEXT"
	case TypeIDUTinyInt:
		return "TINYINT UNSIGNED"
	case TypeIDUSmallInt:
		return "SMALLINT UNSIGNED"
	case TypeIDUInteger:
		return "INTEGER UNSIGNED"
	case TypeIDUBigInt:
		return "BIGINT UNSIGNED"
	case TypeIDTimestamp:
		// zone-naive on both sides
		return "DATETIME"
	case TypeIDTimestampTZ:
		return "TIMESTAMP"
	default:
		return t.String()
	}
}
