package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/claimviz/pkg/voxel"
)

// WorldDigest returns a stable fingerprint of every non-air cell in g and
// its vertical bounds. Two grids with the same contents produce the same
// digest regardless of insertion order.
func WorldDigest(g *voxel.Grid) string {
	cells := make([]voxel.Voxel, 0, g.Len())
	g.Range(func(v voxel.Voxel) bool {
		cells = append(cells, v)
		return true
	})
	slices.SortFunc(cells, func(a, b voxel.Voxel) int { return a.Pos.Compare(b.Pos) })

	h := xxhash.New()
	var buf [8]byte
	writeInt := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(n)))
		_, _ = h.Write(buf[:])
	}

	writeInt(g.MinY())
	writeInt(g.MaxY())
	for _, c := range cells {
		writeInt(c.Pos.X)
		writeInt(c.Pos.Y)
		writeInt(c.Pos.Z)
		_, _ = h.WriteString(string(c.Material))
		_, _ = h.Write([]byte{0, byte(c.Shape.Kind), boolByte(c.Shape.Waterlogged)})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Hash returns the hex SHA-256 of data. Render results carry it so
// artifact keys follow the instructions, not the request.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "kind:" followed by the hash of the JSON encoding of parts.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
