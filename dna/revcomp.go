// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dna

// revComp8Table maps 'A'/'a' to 'T', 'C'/'c' to 'G', 'G'/'g' to 'C', 'T'/'t'
// to 'A', and every other byte to 'N'.
var revComp8Table [256]byte

func init() {
	for i := range revComp8Table {
		revComp8Table[i] = 'N'
	}
	for _, p := range [...][2]byte{{'A', 'T'}, {'C', 'G'}, {'G', 'C'}, {'T', 'A'}} {
		revComp8Table[p[0]] = p[1]
		revComp8Table[p[0]+'a'-'A'] = p[1]
	}
}

// ReverseComp8 writes the reverse-complement of src[] to dst[].
// It panics if len(dst) != len(src).
func ReverseComp8(dst, src []byte) {
	nByte := len(src)
	if len(dst) != nByte {
		panic("ReverseComp8 requires len(dst) == len(src).")
	}
	for idx, invIdx := 0, nByte-1; idx != nByte; idx, invIdx = idx+1, invIdx-1 {
		dst[idx] = revComp8Table[src[invIdx]]
	}
}

// ReverseComplement returns the reverse complement of seq. Lower-case bases
// are upper-cased and anything outside ACGT becomes 'N', so the function is
// an involution over {A,C,G,T,N}.
func ReverseComplement(seq string) string {
	dst := make([]byte, len(seq))
	ReverseComp8(dst, []byte(seq))
	return string(dst)
}

// IsACGTN reports whether every byte of seq is one of 'A', 'C', 'G', 'T', 'N'.
func IsACGTN(seq string) bool {
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'C', 'G', 'T', 'N':
		default:
			return false
		}
	}
	return true
}
