// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// etagSize is the digest length in bytes; the tag is its hex form in quotes.
const etagSize = 12

// ETag derives a version tag from a row's version number and its encoded
// payload. The same payload at a different version yields a different tag.
func ETag(version int64, payload []byte) string {
	h, err := blake2b.New(etagSize, nil)
	if err != nil {
		// only an out-of-range size or oversized key fails
		panic(err)
	}
	h.Write([]byte(strconv.FormatInt(version, 10)))
	h.Write([]byte{0})
	h.Write(payload)
	return `"` + hex.EncodeToString(h.Sum(nil)) + `"`
}
