// Package archive persists clustering runs so they can be replayed later.
//
// An archive holds the dataset, the starting centroids and every recorded
// iteration of a run. Loading it back yields a *kmeans.Result that behaves
// like the original: Frames, Groups and Members work without re-running the
// algorithm.
//
// # Format
//
//	[magic "KMRA"][version uint16][compression uint8][codec len uint8][codec name]
//	[uncompressed size uint32][compressed size uint32][body]
//	[crc32c uint32]
//
// All integers are little-endian. The body is the run document encoded with
// the named codec (see package codec) and compressed with the given
// algorithm. A compressed size of 0 means the body is stored uncompressed.
//
// # Usage
//
//	store := blobstore.NewLocalStore("./runs")
//	err := archive.Save(ctx, store, "palette.kmr", res, archive.WithCompression(archive.CompressionZSTD))
//	...
//	res, err := archive.Load(ctx, store, "palette.kmr")
package archive
