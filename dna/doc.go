// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package dna provides small operations on ASCII nucleotide sequences that
// are shared by the barcode layout, adapter reconstruction, and trimming code.
package dna
