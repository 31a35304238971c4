package typemap

import (
	"errors"
	"testing"
)

func TestToHostTypeIntegers(t *testing.T) {
	tests := []struct {
		typeName   string
		columnType string
		want       LogicalTypeID
	}{
		{"tinyint", "tinyint(4)", TypeIDTinyInt},
		{"tinyint", "tinyint(3) unsigned", TypeIDUTinyInt},
		{"smallint", "smallint(6)", TypeIDSmallInt},
		{"smallint", "smallint(5) unsigned", TypeIDUSmallInt},
		{"mediumint", "mediumint(9)", TypeIDInteger},
		{"mediumint", "mediumint(8) unsigned", TypeIDUInteger},
		{"int", "int(11)", TypeIDInteger},
		{"int", "int(10) unsigned", TypeIDUInteger},
		{"bigint", "bigint(20)", TypeIDBigInt},
		{"bigint", "bigint(20) unsigned", TypeIDUBigInt},
		{"year", "year(4)", TypeIDInteger},
	}

	for _, tt := range tests {
		t.Run(tt.columnType, func(t *testing.T) {
			got, ann := ToHostType(nil, RemoteType{TypeName: tt.typeName, ColumnType: tt.columnType})
			if got.ID != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.ID)
			}
			if ann != AnnotationStandard {
				t.Errorf("expected standard annotation, got %s", ann)
			}
		})
	}
}

func TestToHostTypeUnsignedMarker(t *testing.T) {
	// the unsigned marker lives in the full column spelling, not the
	// bare type name
	signed, _ := ToHostType(nil, RemoteType{TypeName: "int", ColumnType: "int(11)"})
	unsigned, _ := ToHostType(nil, RemoteType{TypeName: "int", ColumnType: "int(10) unsigned"})

	if signed.ID.IsUnsigned() {
		t.Errorf("signed column mapped to unsigned type %s", signed.ID)
	}
	if !unsigned.ID.IsUnsigned() {
		t.Errorf("unsigned column mapped to signed type %s", unsigned.ID)
	}
}

func TestToHostTypeBooleanSettings(t *testing.T) {
	tests := []struct {
		name       string
		setting    string
		typeName   string
		columnType string
		structural LogicalTypeID
	}{
		{"tinyint1", SettingTinyInt1AsBoolean, "tinyint", "tinyint(1)", TypeIDTinyInt},
		{"bit1", SettingBit1AsBoolean, "bit", "bit(1)", TypeIDBlob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := RemoteType{TypeName: tt.typeName, ColumnType: tt.columnType}
			settings := &SessionSettings{}

			for _, enabled := range []bool{false, true, false} {
				settings.Set(tt.setting, enabled)
				got, ann := ToHostType(settings, rt)
				if enabled {
					if got.ID != TypeIDBoolean {
						t.Errorf("flag on: expected BOOLEAN, got %s", got.ID)
					}
					if ann != AnnotationTreatAsBoolean {
						t.Errorf("flag on: expected treat_as_boolean, got %s", ann)
					}
				} else {
					if got.ID != tt.structural {
						t.Errorf("flag off: expected %s, got %s", tt.structural, got.ID)
					}
					if ann != AnnotationStandard {
						t.Errorf("flag off: expected standard, got %s", ann)
					}
				}
			}
		})
	}
}

func TestToHostTypeWiderColumnsIgnoreBooleanSettings(t *testing.T) {
	settings := &SessionSettings{}
	settings.Set(SettingTinyInt1AsBoolean, true)

	got, _ := ToHostType(settings, RemoteType{TypeName: "tinyint", ColumnType: "tinyint(4)"})
	if got.ID != TypeIDTinyInt {
		t.Errorf("expected TINYINT for tinyint(4), got %s", got.ID)
	}
}

func TestToHostTypeDecimal(t *testing.T) {
	tests := []struct {
		name      string
		precision int64
		scale     int64
		want      LogicalTypeID
		ann       Annotation
	}{
		{"small", 10, 2, TypeIDDecimal, AnnotationStandard},
		{"max width", 38, 10, TypeIDDecimal, AnnotationStandard},
		{"too wide", 65, 30, TypeIDDouble, AnnotationNumericAsDouble},
		{"zero precision", 0, 0, TypeIDDouble, AnnotationNumericAsDouble},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := RemoteType{TypeName: "decimal", ColumnType: "decimal", Precision: tt.precision, Scale: tt.scale}
			got, ann := ToHostType(nil, rt)
			if got.ID != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.ID)
			}
			if ann != tt.ann {
				t.Errorf("expected annotation %s, got %s", tt.ann, ann)
			}
			if tt.want == TypeIDDecimal {
				info, ok := got.TypeInfo.(*DecimalTypeInfo)
				if !ok {
					t.Fatal("missing decimal type info")
				}
				if int64(info.Width) != tt.precision || int64(info.Scale) != tt.scale {
					t.Errorf("expected (%d,%d), got (%d,%d)", tt.precision, tt.scale, info.Width, info.Scale)
				}
			}
		})
	}
}

func TestToHostTypeTemporal(t *testing.T) {
	// timestamp is zone aware, datetime is not; the distinction must
	// survive conversion
	ts, _ := ToHostType(nil, RemoteType{TypeName: "timestamp", ColumnType: "timestamp"})
	dt, _ := ToHostType(nil, RemoteType{TypeName: "datetime", ColumnType: "datetime"})
	if ts.ID != TypeIDTimestampTZ {
		t.Errorf("timestamp: expected TIMESTAMP_TZ, got %s", ts.ID)
	}
	if dt.ID != TypeIDTimestamp {
		t.Errorf("datetime: expected TIMESTAMP, got %s", dt.ID)
	}

	// time exceeds a day-bounded representation and reads back as text
	tm, ann := ToHostType(nil, RemoteType{TypeName: "time", ColumnType: "time"})
	if tm.ID != TypeIDVarchar || ann != AnnotationCastToText {
		t.Errorf("time: expected VARCHAR/cast_to_text, got %s/%s", tm.ID, ann)
	}
}

func TestToHostTypeTextAndBinary(t *testing.T) {
	tests := []struct {
		typeName string
		want     LogicalTypeID
		ann      Annotation
	}{
		{"varchar", TypeIDVarchar, AnnotationStandard},
		{"text", TypeIDVarchar, AnnotationStandard},
		{"char", TypeIDVarchar, AnnotationFixedLengthChar},
		{"json", TypeIDVarchar, AnnotationCastToText},
		{"enum", TypeIDVarchar, AnnotationCastToText},
		{"set", TypeIDVarchar, AnnotationCastToText},
		{"blob", TypeIDBlob, AnnotationStandard},
		{"varbinary", TypeIDBlob, AnnotationStandard},
		{"geometry", TypeIDBlob, AnnotationGeometry},
		{"point", TypeIDBlob, AnnotationGeometry},
		{"multipolygon", TypeIDBlob, AnnotationGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			got, ann := ToHostType(nil, RemoteType{TypeName: tt.typeName, ColumnType: tt.typeName})
			if got.ID != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.ID)
			}
			if ann != tt.ann {
				t.Errorf("expected annotation %s, got %s", tt.ann, ann)
			}
		})
	}
}

func TestToHostTypeUnknownFallsBackToText(t *testing.T) {
	got, ann := ToHostType(nil, RemoteType{TypeName: "vector", ColumnType: "vector(1536)"})
	if got.ID != TypeIDVarchar {
		t.Errorf("expected VARCHAR fallback, got %s", got.ID)
	}
	if ann != AnnotationCastToText {
		t.Errorf("expected cast_to_text, got %s", ann)
	}
}

func TestToRemoteTypePassThrough(t *testing.T) {
	passThrough := []LogicalType{
		Logical(TypeIDBoolean),
		Logical(TypeIDTinyInt),
		Logical(TypeIDUBigInt),
		Logical(TypeIDFloat),
		Logical(TypeIDDouble),
		Decimal(18, 4),
		Logical(TypeIDVarchar),
		Logical(TypeIDBlob),
		Logical(TypeIDDate),
		Logical(TypeIDTimestamp),
		Logical(TypeIDTimestampTZ),
	}
	for _, in := range passThrough {
		t.Run(in.String(), func(t *testing.T) {
			got, err := ToRemoteType(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != in.ID {
				t.Errorf("expected %s, got %s", in.ID, got.ID)
			}
		})
	}
}

func TestToRemoteTypeWidening(t *testing.T) {
	tests := []struct {
		in   LogicalTypeID
		want LogicalTypeID
	}{
		{TypeIDTimestampSec, TypeIDTimestamp},
		{TypeIDTimestampMs, TypeIDTimestamp},
		{TypeIDTimestampNs, TypeIDTimestamp},
		{TypeIDHugeInt, TypeIDDouble},
		{TypeIDUHugeInt, TypeIDDouble},
		{TypeIDUUID, TypeIDVarchar},
		{TypeIDInterval, TypeIDVarchar},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := ToRemoteType(Logical(tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.ID)
			}
		})
	}
}

func TestToRemoteTypeUnsupported(t *testing.T) {
	unsupported := []LogicalType{
		{ID: TypeIDList, TypeInfo: &ListTypeInfo{ChildType: Logical(TypeIDInteger)}},
		{ID: TypeIDArray},
		{ID: TypeIDStruct, TypeInfo: &StructTypeInfo{ChildTypes: []StructField{{Name: "a", Type: Logical(TypeIDInteger)}}}},
		{ID: TypeIDMap, TypeInfo: &MapTypeInfo{KeyType: Logical(TypeIDVarchar), ValueType: Logical(TypeIDInteger)}},
		{ID: TypeIDUnion},
	}
	for _, in := range unsupported {
		t.Run(string(in.ID), func(t *testing.T) {
			_, err := ToRemoteType(in)
			if !errors.Is(err, ErrUnsupportedType) {
				t.Errorf("expected ErrUnsupportedType, got %v", err)
			}
		})
	}
}

func TestRemoteTypeName(t *testing.T) {
	tests := []struct {
		in   LogicalType
		want string
	}{
		{Logical(TypeIDVarchar), "TEXT"},
		{Logical(TypeIDUTinyInt), "TINYINT UNSIGNED"},
		{Logical(TypeIDUSmallInt), "SMALLINT UNSIGNED"},
		{Logical(TypeIDUInteger), "INTEGER UNSIGNED"},
		{Logical(TypeIDUBigInt), "BIGINT UNSIGNED"},
		{Logical(TypeIDTimestamp), "DATETIME"},
		{Logical(TypeIDTimestampTZ), "TIMESTAMP"},
		{Logical(TypeIDBigInt), "BIGINT"},
		{Decimal(10, 2), "DECIMAL(10,2)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := RemoteTypeName(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

type fakeColumnMeta struct {
	typeName  string
	precision int64
	scale     int64
	hasPrec   bool
	length    int64
	hasLen    bool
}

func (f fakeColumnMeta) DatabaseTypeName() string { return f.typeName }

func (f fakeColumnMeta) DecimalSize() (int64, int64, bool) {
	return f.precision, f.scale, f.hasPrec
}

func (f fakeColumnMeta) Length() (int64, bool) { return f.length, f.hasLen }

func TestFromColumnMeta(t *testing.T) {
	tests := []struct {
		name string
		meta fakeColumnMeta
		want RemoteType
	}{
		{
			name: "plain int",
			meta: fakeColumnMeta{typeName: "INT"},
			want: RemoteType{TypeName: "int", ColumnType: "int"},
		},
		{
			name: "unsigned bigint",
			meta: fakeColumnMeta{typeName: "UNSIGNED BIGINT"},
			want: RemoteType{TypeName: "bigint", ColumnType: "bigint unsigned"},
		},
		{
			name: "tinyint with display width",
			meta: fakeColumnMeta{typeName: "TINYINT", length: 1, hasLen: true},
			want: RemoteType{TypeName: "tinyint", ColumnType: "tinyint(1)"},
		},
		{
			name: "decimal",
			meta: fakeColumnMeta{typeName: "DECIMAL", precision: 12, scale: 3, hasPrec: true},
			want: RemoteType{TypeName: "decimal", ColumnType: "decimal", Precision: 12, Scale: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromColumnMeta(tt.meta)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
