// Package nbt reads the binary named-tag trees the game persists item
// attributes in: nested compounds of named scalar, string, and list tags,
// big-endian, optionally gzip-compressed.
package nbt

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Tag type identifiers as they appear on the wire.
const (
	tagEnd byte = iota
	tagByte
	tagShort
	tagInt
	tagLong
	tagFloat
	tagDouble
	tagByteArray
	tagString
	tagList
	tagCompound
	tagIntArray
	tagLongArray
)

// Compound is a decoded compound tag: named children of any tag type.
// Scalar children decode to int64/float64, strings to string, lists to
// []any, nested compounds to Compound.
type Compound map[string]any

// At walks nested compounds along path and returns the final child.
// ok is false when any segment is missing or not a compound.
func (c Compound) At(path ...string) (any, bool) {
	cur := c
	for i, name := range path {
		v, ok := cur[name]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		cur, ok = v.(Compound)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// GetCompound returns the named child compound, or nil when absent.
func (c Compound) GetCompound(path ...string) Compound {
	v, ok := c.At(path...)
	if !ok {
		return nil
	}
	sub, _ := v.(Compound)
	return sub
}

// GetString returns the named string tag, or "" when absent.
func (c Compound) GetString(path ...string) string {
	v, ok := c.At(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetStringList returns the named list tag's string elements. Absent or
// non-list tags yield an empty slice, never nil.
func (c Compound) GetStringList(path ...string) []string {
	out := []string{}
	v, ok := c.At(path...)
	if !ok {
		return out
	}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// GetInt returns the named integral tag widened to int64.
func (c Compound) GetInt(path ...string) (int64, bool) {
	v, ok := c.At(path...)
	if !ok {
		return 0, false
	}
	n, ok := v.(int64)
	return n, ok
}

const gzipMagic = 0x1f

// Decode reads one named root compound from r, transparently decompressing
// gzip input.
func Decode(r io.Reader) (Compound, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(1); err == nil && head[0] == gzipMagic {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("nbt: gzip: %w", err)
		}
		defer gz.Close()
		return decodeRoot(bufio.NewReader(gz))
	}
	return decodeRoot(br)
}

func decodeRoot(r *bufio.Reader) (Compound, error) {
	typ, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("nbt: root type: %w", err)
	}
	if typ != tagCompound {
		return nil, fmt.Errorf("nbt: root tag type %d, want compound", typ)
	}
	if _, err := readString(r); err != nil { // root name, usually empty
		return nil, err
	}
	v, err := readPayload(r, tagCompound)
	if err != nil {
		return nil, err
	}
	return v.(Compound), nil
}

func readPayload(r *bufio.Reader, typ byte) (any, error) {
	switch typ {
	case tagByte:
		b, err := r.ReadByte()
		return int64(int8(b)), err
	case tagShort:
		var v int16
		err := binary.Read(r, binary.BigEndian, &v)
		return int64(v), err
	case tagInt:
		var v int32
		err := binary.Read(r, binary.BigEndian, &v)
		return int64(v), err
	case tagLong:
		var v int64
		err := binary.Read(r, binary.BigEndian, &v)
		return v, err
	case tagFloat:
		var v uint32
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return nil, err
		}
		return float64(math.Float32frombits(v)), nil
	case tagDouble:
		var v uint64
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return nil, err
		}
		return math.Float64frombits(v), nil
	case tagByteArray:
		var n int32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("nbt: negative byte array length %d", n)
		}
		buf := make([]byte, n)
		_, err := io.ReadFull(r, buf)
		return buf, err
	case tagString:
		return readString(r)
	case tagList:
		elemType, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		var n int32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, err
		}
		if n < 0 {
			n = 0
		}
		list := make([]any, 0, n)
		for i := int32(0); i < n; i++ {
			v, err := readPayload(r, elemType)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case tagCompound:
		c := Compound{}
		for {
			childType, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			if childType == tagEnd {
				return c, nil
			}
			name, err := readString(r)
			if err != nil {
				return nil, err
			}
			v, err := readPayload(r, childType)
			if err != nil {
				return nil, err
			}
			c[name] = v
		}
	case tagIntArray:
		var n int32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("nbt: negative int array length %d", n)
		}
		arr := make([]int64, n)
		for i := range arr {
			var v int32
			if err := binary.Read(r, binary.BigEndian, &v); err != nil {
				return nil, err
			}
			arr[i] = int64(v)
		}
		return arr, nil
	case tagLongArray:
		var n int32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("nbt: negative long array length %d", n)
		}
		arr := make([]int64, n)
		for i := range arr {
			if err := binary.Read(r, binary.BigEndian, &arr[i]); err != nil {
				return nil, err
			}
		}
		return arr, nil
	}
	return nil, fmt.Errorf("nbt: unknown tag type %d", typ)
}

func readString(r *bufio.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
