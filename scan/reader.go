package scan

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/mysqlcat-go/catalog"
	"github.com/hugr-lab/mysqlcat-go/mysql"
	"github.com/hugr-lab/mysqlcat-go/typemap"
)

const defaultBatchSize = 2048

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// Reader decodes a remote result set into Arrow records following the
// projected table schema. MySQL delivers every value in its text wire
// form; the reader parses each according to the column's host type.
//
// Not safe for concurrent use.
type Reader struct {
	schema  *arrow.Schema
	columns []catalog.Column
	ids     []int
	rows    mysql.Rows
	builder *array.RecordBuilder
	batch   int
	raw     [][]byte
	dest    []any
}

// NewReader creates a record reader over rows, which must be the result
// of the SELECT built for the same table and projection. batchSize <= 0
// selects the default.
func NewReader(table *catalog.TableEntry, columnIDs []int, rows mysql.Rows, batchSize int) (*Reader, error) {
	schema, err := ArrowSchema(table, columnIDs)
	if err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	columns := make([]catalog.Column, len(columnIDs))
	for i, id := range columnIDs {
		if id != RowIDColumn {
			columns[i] = table.Columns()[id]
		}
	}
	r := &Reader{
		schema:  schema,
		columns: columns,
		ids:     columnIDs,
		rows:    rows,
		builder: array.NewRecordBuilder(memory.DefaultAllocator, schema),
		batch:   batchSize,
		raw:     make([][]byte, len(columnIDs)),
		dest:    make([]any, len(columnIDs)),
	}
	for i := range r.raw {
		r.dest[i] = &r.raw[i]
	}
	return r, nil
}

// Schema returns the Arrow schema of the produced records.
func (r *Reader) Schema() *arrow.Schema { return r.schema }

// Next reads up to one batch of rows and returns them as a record.
// Returns io.EOF when the result set is exhausted. Caller must release
// the returned record.
func (r *Reader) Next() (arrow.Record, error) {
	count := 0
	for count < r.batch && r.rows.Next() {
		if err := r.rows.Scan(r.dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i := range r.ids {
			if err := r.append(i); err != nil {
				return nil, err
			}
		}
		count++
	}
	if err := r.rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if count == 0 {
		return nil, io.EOF
	}
	return r.builder.NewRecord(), nil
}

// Release frees the builder and closes the underlying result set.
func (r *Reader) Release() error {
	r.builder.Release()
	return r.rows.Close()
}

func (r *Reader) append(i int) error {
	raw := r.raw[i]
	b := r.builder.Field(i)
	if raw == nil || r.ids[i] == RowIDColumn {
		b.AppendNull()
		return nil
	}
	col := r.columns[i]
	if err := appendValue(b, col, raw); err != nil {
		return fmt.Errorf("column %q: %w", col.Name, err)
	}
	return nil
}

func appendValue(b array.Builder, col catalog.Column, raw []byte) error {
	s := string(raw)
	switch b := b.(type) {
	case *array.BooleanBuilder:
		v, err := parseWireBool(raw)
		if err != nil {
			return err
		}
		b.Append(v)
	case *array.Int8Builder:
		v, err := strconv.ParseInt(s, 10, 8)
		if err != nil {
			return err
		}
		b.Append(int8(v))
	case *array.Int16Builder:
		v, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return err
		}
		b.Append(int16(v))
	case *array.Int32Builder:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return err
		}
		b.Append(int32(v))
	case *array.Int64Builder:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		b.Append(v)
	case *array.Uint8Builder:
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return err
		}
		b.Append(uint8(v))
	case *array.Uint16Builder:
		v, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return err
		}
		b.Append(uint16(v))
	case *array.Uint32Builder:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return err
		}
		b.Append(uint32(v))
	case *array.Uint64Builder:
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		b.Append(v)
	case *array.Float32Builder:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return err
		}
		b.Append(float32(v))
	case *array.Float64Builder:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		b.Append(v)
	case *array.Decimal128Builder:
		dt := b.Type().(*arrow.Decimal128Type)
		v, err := decimal128.FromString(s, dt.Precision, dt.Scale)
		if err != nil {
			return err
		}
		b.Append(v)
	case *array.StringBuilder:
		b.Append(s)
	case *array.BinaryBuilder:
		if col.Annotation == typemap.AnnotationGeometry {
			_, payload, err := DecodeGeometry(raw)
			if err != nil {
				return err
			}
			b.Append(payload)
			return nil
		}
		b.Append(raw)
	case *array.Date32Builder:
		t, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return err
		}
		b.Append(arrow.Date32FromTime(t))
	case *array.TimestampBuilder:
		t, err := time.ParseInLocation(datetimeLayout, s, time.UTC)
		if err != nil {
			return err
		}
		ts, err := arrow.TimestampFromTime(t, arrow.Microsecond)
		if err != nil {
			return err
		}
		b.Append(ts)
	default:
		return fmt.Errorf("no decoder for builder %T", b)
	}
	return nil
}

// parseWireBool accepts both the textual and the binary spelling a
// boolean column arrives in, depending on whether it came from a
// TINYINT(1) or a BIT(1) column.
func parseWireBool(raw []byte) (bool, error) {
	if len(raw) != 1 {
		return false, fmt.Errorf("boolean value of %d bytes", len(raw))
	}
	switch raw[0] {
	case '0', 0x00:
		return false, nil
	case '1', 0x01:
		return true, nil
	}
	return false, fmt.Errorf("invalid boolean value %q", raw)
}
