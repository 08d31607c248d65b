package timeline

import (
	"encoding/json"
	"fmt"

	"github.com/CrestNiraj12/openfeed/domain"
)

const snapshotVersion = 1

type snapshotFile struct {
	Version int           `json:"version"`
	Items   []domain.Item `json:"items"`
}

// EncodeSnapshot serializes a timeline into an opaque blob a host can persist
// and hand back to DecodeSnapshot in a later session.
func EncodeSnapshot(items []domain.Item) ([]byte, error) {
	if items == nil {
		items = []domain.Item{}
	}
	data, err := json.Marshal(snapshotFile{Version: snapshotVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot restores a timeline from a blob produced by EncodeSnapshot.
// An empty blob yields an empty timeline.
func DecodeSnapshot(data []byte) ([]domain.Item, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var f snapshotFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if f.Version != snapshotVersion {
		return nil, fmt.Errorf("decoding snapshot: unsupported version %d", f.Version)
	}
	if err := CheckOrder(f.Items); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return f.Items, nil
}
