// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"encoding/binary"
	"io"
)

// GLB header.
type glbHeader [3]uint32

// Indices in glbHeader.
const (
	headerMagic   = 0
	headerVersion = 1
	headerLength  = 2
)

// GLB chunk.
type glbChunk [2]uint32

// Indices in glbChunk.
const (
	chunkLength = 0
	chunkType   = 1
	// Then payload.
)

const (
	// glbHeader[headerMagic].
	magic = 0x46546c67

	// glbChunk[chunkType].
	typeJSON = 0x4e4f534a
	typeBIN  = 0x004e4942

	headerSize = 12
	chunkSize  = 8
)

func isMagic(b []byte) bool {
	return len(b) >= 4 && binary.LittleEndian.Uint32(b) == magic
}

// readGLB reads a GLB blob from r and returns the
// payloads of its JSON and (optional) BIN chunks.
// Unknown chunks are skipped.
func readGLB(r io.Reader) (js, bin []byte, err error) {
	var h glbHeader
	if err = binary.Read(r, binary.LittleEndian, h[:]); err != nil {
		return nil, nil, newErr("truncated GLB header")
	}
	if h[headerMagic] != magic || h[headerVersion] != 2 {
		return nil, nil, newErr("not a GLB blob (version 2)")
	}
	rem := int64(h[headerLength]) - headerSize
	for rem > 0 {
		var c glbChunk
		if err = binary.Read(r, binary.LittleEndian, c[:]); err != nil {
			return nil, nil, newErr("truncated GLB chunk")
		}
		n := int64(c[chunkLength])
		if n > rem-chunkSize {
			return nil, nil, newErr("invalid GLB chunk length")
		}
		data := make([]byte, n)
		if _, err = io.ReadFull(r, data); err != nil {
			return nil, nil, newErr("truncated GLB chunk")
		}
		switch {
		case c[chunkType] == typeJSON && js == nil:
			js = data
		case c[chunkType] == typeBIN && js != nil && bin == nil:
			bin = data
		case js == nil:
			return nil, nil, newErr("GLB does not start with a JSON chunk")
		}
		rem -= chunkSize + n
	}
	if js == nil {
		return nil, nil, newErr("GLB has no JSON chunk")
	}
	return js, bin, nil
}

// appendGLB appends a GLB blob made of js and bin to
// b. Chunks are padded to 4-byte alignment.
func appendGLB(b, js, bin []byte) []byte {
	pad := func(p []byte, c byte) []byte {
		for len(p)%4 != 0 {
			p = append(p, c)
		}
		return p
	}
	js = pad(append([]byte(nil), js...), ' ')
	n := headerSize + chunkSize + len(js)
	if bin != nil {
		bin = pad(append([]byte(nil), bin...), 0)
		n += chunkSize + len(bin)
	}
	b = binary.LittleEndian.AppendUint32(b, magic)
	b = binary.LittleEndian.AppendUint32(b, 2)
	b = binary.LittleEndian.AppendUint32(b, uint32(n))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(js)))
	b = binary.LittleEndian.AppendUint32(b, typeJSON)
	b = append(b, js...)
	if bin != nil {
		b = binary.LittleEndian.AppendUint32(b, uint32(len(bin)))
		b = binary.LittleEndian.AppendUint32(b, typeBIN)
		b = append(b, bin...)
	}
	return b
}
