package scan

import (
	"encoding/binary"
	"fmt"

	"github.com/paulmach/orb/encoding/wkb"
)

// DecodeGeometry splits a MySQL internal geometry value into its SRID
// and WKB payload. The payload is parsed to reject corrupt values
// before it is handed to the host.
func DecodeGeometry(data []byte) (srid uint32, payload []byte, err error) {
	if len(data) < 4 {
		return 0, nil, fmt.Errorf("geometry value of %d bytes is too short", len(data))
	}
	srid = binary.LittleEndian.Uint32(data[:4])
	payload = data[4:]
	if _, err := wkb.Unmarshal(payload); err != nil {
		return 0, nil, fmt.Errorf("failed to parse geometry value: %w", err)
	}
	return srid, payload, nil
}
