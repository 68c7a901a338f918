package generator

import (
	"encoding/binary"
	"hash/fnv"
)

// picker chooses among phrasing variants. The choice depends only on the input text and a
// per-slot salt, so the same message always gets the same wording.
type picker struct {
	seed uint64
}

func newPicker(text string) picker {
	h := fnv.New64a()
	h.Write([]byte(normalize(text)))
	return picker{seed: h.Sum64()}
}

func (p picker) index(salt string, n int) int {
	if n <= 1 {
		return 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], p.seed)

	h := fnv.New64a()
	h.Write(buf[:])
	h.Write([]byte(salt))
	return int(h.Sum64() % uint64(n))
}

func (p picker) pick(salt string, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[p.index(salt, len(options))]
}
