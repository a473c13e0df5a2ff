package cache

import "github.com/DataDog/zstd"

func compress(raw []byte) ([]byte, error) {
	var out []byte
	out, err := zstd.Compress(out, raw)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decompress(compressed []byte) ([]byte, error) {
	var out []byte
	out, err := zstd.Decompress(out, compressed)
	if err != nil {
		return nil, err
	}
	return out, nil
}
