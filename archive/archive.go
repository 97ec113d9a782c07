package archive

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/codec"
	"github.com/hupe1980/kmeans/internal/hash"
	"github.com/hupe1980/kmeans/model"
)

const (
	// Version is the current archive format version.
	Version uint16 = 1

	headerFixedSize = 4 + 2 + 1 + 1
	checksumSize    = 4
)

var magic = [4]byte{'K', 'M', 'R', 'A'}

var (
	// ErrBadMagic is returned when the data is not an archive.
	ErrBadMagic = errors.New("archive: bad magic")
	// ErrUnsupportedVersion is returned for archives written by a newer format version.
	ErrUnsupportedVersion = errors.New("archive: unsupported version")
	// ErrUnknownCodec is returned when the codec named in the header is not built in.
	ErrUnknownCodec = errors.New("archive: unknown codec")
	// ErrUnknownCompression is returned for an unknown compression type.
	ErrUnknownCompression = errors.New("archive: unknown compression")
	// ErrChecksum is returned when the stored checksum does not match the content.
	ErrChecksum = errors.New("archive: checksum mismatch")
	// ErrCorrupt is returned when the archive is truncated or its document is inconsistent.
	ErrCorrupt = errors.New("archive: corrupt")
)

// Header describes how an archive body is encoded.
type Header struct {
	Version     uint16
	Codec       string
	Compression Compression
}

type options struct {
	codec       codec.Codec
	compression Compression
}

// Option configures Encode and Save.
type Option func(*options)

// WithCodec selects the document codec. Default: codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithCompression selects the body compression. Default: CompressionNone.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// Encode serializes a run.
func Encode(res *kmeans.Result, optFns ...Option) ([]byte, error) {
	o := options{codec: codec.Default, compression: CompressionNone}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.codec == nil {
		o.codec = codec.Default
	}
	name := o.codec.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("%w: name %q too long", ErrUnknownCodec, name)
	}

	body, err := o.codec.Marshal(newDocument(res))
	if err != nil {
		return nil, fmt.Errorf("archive: encode document: %w", err)
	}
	block, err := compressBlock(body, o.compression)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerFixedSize+len(name)+len(block)+checksumSize)
	out = append(out, magic[:]...)
	out = binary.LittleEndian.AppendUint16(out, Version)
	out = append(out, byte(o.compression), byte(len(name)))
	out = append(out, name...)
	out = append(out, block...)
	out = binary.LittleEndian.AppendUint32(out, hash.CRC32C(out))
	return out, nil
}

// ReadHeader parses the archive header without decoding the body.
func ReadHeader(data []byte) (Header, error) {
	h, _, err := readHeader(data)
	return h, err
}

func readHeader(data []byte) (Header, int, error) {
	if len(data) < 4 || [4]byte(data[:4]) != magic {
		return Header{}, 0, ErrBadMagic
	}
	if len(data) < headerFixedSize {
		return Header{}, 0, fmt.Errorf("%w: header truncated", ErrCorrupt)
	}

	h := Header{
		Version:     binary.LittleEndian.Uint16(data[4:]),
		Compression: Compression(data[6]),
	}
	if h.Version == 0 || h.Version > Version {
		return Header{}, 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	end := headerFixedSize + int(data[7])
	if len(data) < end {
		return Header{}, 0, fmt.Errorf("%w: header truncated", ErrCorrupt)
	}
	h.Codec = string(data[headerFixedSize:end])
	return h, end, nil
}

// Decode parses an archive and rebuilds the run it holds.
func Decode(data []byte) (*kmeans.Result, error) {
	h, off, err := readHeader(data)
	if err != nil {
		return nil, err
	}
	if len(data) < off+checksumSize {
		return nil, fmt.Errorf("%w: missing checksum", ErrCorrupt)
	}

	content := data[:len(data)-checksumSize]
	if !hash.Verify(content, binary.LittleEndian.Uint32(data[len(content):])) {
		return nil, ErrChecksum
	}

	c, ok := codec.ByName(h.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, h.Codec)
	}

	body, n, err := decompressBlock(content[off:], h.Compression)
	if err != nil {
		if errors.Is(err, ErrUnknownCompression) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if off+n != len(content) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(content)-off-n)
	}

	var doc document
	if err := c.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return doc.result()
}

// document is the codec-level representation of a run.
type document struct {
	K       int         `json:"k"`
	NDim    int         `json:"ndim"`
	Seed    uint64      `json:"seed"`
	Reason  string      `json:"reason"`
	Data    [][]float64 `json:"data"`
	Initial [][]float64 `json:"initial"`
	History []stateDoc  `json:"history"`
}

type stateDoc struct {
	Iteration int         `json:"iteration"`
	Centroids [][]float64 `json:"centroids"`
	Labels    []int       `json:"labels"`
	Shift     float64     `json:"shift"`
	Inertia   float64     `json:"inertia"`
}

func newDocument(res *kmeans.Result) document {
	doc := document{
		K:       res.K,
		NDim:    res.NDim,
		Seed:    res.Seed,
		Reason:  res.Reason.String(),
		Data:    rows(res.Data()),
		Initial: rows(res.Initial),
		History: make([]stateDoc, len(res.History)),
	}
	for i, s := range res.History {
		doc.History[i] = stateDoc{
			Iteration: s.Iteration,
			Centroids: rows(s.Centroids),
			Labels:    s.Labels,
			Shift:     s.Shift,
			Inertia:   s.Inertia,
		}
	}
	return doc
}

func rows[T ~[]model.Point](points T) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = p
	}
	return out
}

func (d document) result() (*kmeans.Result, error) {
	reason, ok := parsePhase(d.Reason)
	if !ok {
		return nil, fmt.Errorf("%w: unknown reason %q", ErrCorrupt, d.Reason)
	}

	data := model.FromRows(d.Data)
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := data.CheckNDim(d.NDim); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	initial, err := d.centroids(d.Initial)
	if err != nil {
		return nil, err
	}

	history := make([]kmeans.State, len(d.History))
	for i, s := range d.History {
		centroids, err := d.centroids(s.Centroids)
		if err != nil {
			return nil, err
		}
		if len(s.Labels) != len(data) {
			return nil, fmt.Errorf("%w: state %d has %d labels for %d points", ErrCorrupt, i, len(s.Labels), len(data))
		}
		for _, label := range s.Labels {
			if label < 0 || label >= d.K {
				return nil, fmt.Errorf("%w: state %d: label %d out of range", ErrCorrupt, i, label)
			}
		}
		history[i] = kmeans.State{
			Iteration: s.Iteration,
			Centroids: centroids,
			Labels:    model.Labels(s.Labels),
			Shift:     s.Shift,
			Inertia:   s.Inertia,
		}
	}

	return kmeans.NewResult(data, d.K, d.NDim, d.Seed, initial, history, reason), nil
}

func (d document) centroids(points [][]float64) (model.Centroids, error) {
	if len(points) != d.K {
		return nil, fmt.Errorf("%w: %d centroids for k=%d", ErrCorrupt, len(points), d.K)
	}
	out := make(model.Centroids, len(points))
	for i, p := range points {
		if len(p) != d.NDim {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt,
				&model.ErrDimensionMismatch{Context: "centroid", Index: i, Expected: d.NDim, Actual: len(p)})
		}
		out[i] = p
	}
	return out, nil
}

func parsePhase(s string) (kmeans.Phase, bool) {
	for _, p := range []kmeans.Phase{
		kmeans.PhaseInitializing,
		kmeans.PhaseIterating,
		kmeans.PhaseConverged,
		kmeans.PhaseMaxIterReached,
	} {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}
