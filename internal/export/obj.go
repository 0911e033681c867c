package export

import (
	"bufio"
	"io"
	"strconv"

	"procgen/internal/mesh"
)

// WriteOBJ writes m as a Wavefront OBJ with positions, normals and texture
// coordinates. OBJ indices are 1-based and every attribute shares the
// vertex index, so faces are written as i/i/i.
func WriteOBJ(w io.Writer, m mesh.Mesh, name string) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)

	b := m.Bounds()
	buf = append(buf, "# bounds center "...)
	buf = appendFloats(buf, b.Center[:]...)
	buf = append(buf, " size "...)
	buf = appendFloats(buf, b.Size[:]...)
	buf = append(buf, '\n')
	if name != "" {
		buf = append(buf, "o "...)
		buf = append(buf, name...)
		buf = append(buf, '\n')
	}
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	n := m.VertexCount()
	for _, attr := range []struct {
		prefix string
		get    func(mesh.Vertex) []float32
	}{
		{"v ", func(v mesh.Vertex) []float32 { return v.Position[:] }},
		{"vn ", func(v mesh.Vertex) []float32 { return v.Normal[:] }},
		{"vt ", func(v mesh.Vertex) []float32 { return v.TexCoord0[:] }},
	} {
		for i := 0; i < n; i++ {
			buf = append(buf[:0], attr.prefix...)
			buf = appendFloats(buf, attr.get(m.Vertex(i))...)
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	}

	for i := 0; i < m.IndexCount()/3; i++ {
		buf = append(buf[:0], 'f')
		for _, idx := range m.Triangle(i) {
			s := strconv.AppendInt(nil, int64(idx)+1, 10)
			buf = append(buf, ' ')
			buf = append(buf, s...)
			buf = append(buf, '/')
			buf = append(buf, s...)
			buf = append(buf, '/')
			buf = append(buf, s...)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func appendFloats(buf []byte, fs ...float32) []byte {
	for i, f := range fs {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendFloat(buf, float64(f), 'g', -1, 32)
	}
	return buf
}
