package cache

import (
	"github.com/kelindar/binary"

	"github.com/jfrascon/gerona/pkg/geom"
)

// pathEntry is the on-disk shape of a cached path. A named wrapper struct
// rather than a bare []geom.Pose, so the encoding can grow a field (e.g. a
// cost or a timestamp) without an on-disk format break.
type pathEntry struct {
	Path []geom.Pose
}

func encodePath(path []geom.Pose) ([]byte, error) {
	encoded, err := binary.Marshal(pathEntry{Path: path})
	if err != nil {
		return nil, err
	}
	return compress(encoded)
}

func decodePath(raw []byte) ([]geom.Pose, error) {
	decoded, err := decompress(raw)
	if err != nil {
		return nil, err
	}

	var entry pathEntry
	if err := binary.Unmarshal(decoded, &entry); err != nil {
		return nil, err
	}
	return entry.Path, nil
}
