// Package hash provides the checksum used to detect corrupted archives.
//
// All checksums use CRC32-Castagnoli (CRC32C), which is hardware accelerated
// on x86 (SSE4.2) and ARM (CRC extension).
//
//	sum := hash.CRC32C(body)
//	if !hash.Verify(body, sum) { ... }
package hash
