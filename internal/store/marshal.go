package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/projector/internal/projector"
)

// marshalData encodes the store as a single JSON document.
// Map keys come out sorted and HTML escaping is disabled so that paths and
// values are stored verbatim.
func marshalData(data projector.Data) ([]byte, error) {
	if data.Projector == nil {
		data = projector.NewData()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("marshal store: %w", err)
	}
	return buf.Bytes(), nil
}

// unmarshalData parses a JSON document produced by marshalData.
// A missing or null "projector" member, or a null directory map, decodes as
// empty rather than nil so the result is always safe to mutate.
func unmarshalData(raw []byte) (projector.Data, error) {
	var data projector.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return projector.Data{}, fmt.Errorf("unmarshal store: %w", err)
	}

	if data.Projector == nil {
		return projector.NewData(), nil
	}
	for dir, local := range data.Projector {
		if local == nil {
			data.Projector[dir] = projector.KeyValueMap{}
		}
	}
	return data, nil
}
