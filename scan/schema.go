package scan

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/mysqlcat-go/catalog"
	"github.com/hugr-lab/mysqlcat-go/typemap"
)

// ArrowSchema builds the Arrow schema of a projected table scan. The
// field order follows columnIDs; the rowid pseudo column becomes a
// nullable int64 field.
func ArrowSchema(table *catalog.TableEntry, columnIDs []int) (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(columnIDs))
	for i, id := range columnIDs {
		if id == RowIDColumn {
			fields[i] = arrow.Field{Name: "rowid", Type: arrow.PrimitiveTypes.Int64, Nullable: true}
			continue
		}
		col := table.Columns()[id]
		dt, err := arrowType(col.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		fields[i] = arrow.Field{Name: col.Name, Type: dt, Nullable: true}
	}
	return arrow.NewSchema(fields, nil), nil
}

func arrowType(t typemap.LogicalType) (arrow.DataType, error) {
	switch t.ID {
	case typemap.TypeIDBoolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case typemap.TypeIDTinyInt:
		return arrow.PrimitiveTypes.Int8, nil
	case typemap.TypeIDSmallInt:
		return arrow.PrimitiveTypes.Int16, nil
	case typemap.TypeIDInteger:
		return arrow.PrimitiveTypes.Int32, nil
	case typemap.TypeIDBigInt:
		return arrow.PrimitiveTypes.Int64, nil
	case typemap.TypeIDUTinyInt:
		return arrow.PrimitiveTypes.Uint8, nil
	case typemap.TypeIDUSmallInt:
		return arrow.PrimitiveTypes.Uint16, nil
	case typemap.TypeIDUInteger:
		return arrow.PrimitiveTypes.Uint32, nil
	case typemap.TypeIDUBigInt:
		return arrow.PrimitiveTypes.Uint64, nil
	case typemap.TypeIDFloat:
		return arrow.PrimitiveTypes.Float32, nil
	case typemap.TypeIDDouble:
		return arrow.PrimitiveTypes.Float64, nil
	case typemap.TypeIDDecimal:
		info, ok := t.TypeInfo.(*typemap.DecimalTypeInfo)
		if !ok {
			return nil, fmt.Errorf("decimal type without width and scale")
		}
		return &arrow.Decimal128Type{Precision: int32(info.Width), Scale: int32(info.Scale)}, nil
	case typemap.TypeIDVarchar:
		return arrow.BinaryTypes.String, nil
	case typemap.TypeIDBlob:
		return arrow.BinaryTypes.Binary, nil
	case typemap.TypeIDDate:
		return arrow.FixedWidthTypes.Date32, nil
	case typemap.TypeIDTimestamp:
		return &arrow.TimestampType{Unit: arrow.Microsecond}, nil
	case typemap.TypeIDTimestampTZ:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}, nil
	default:
		return nil, fmt.Errorf("type %s has no Arrow representation", t)
	}
}
