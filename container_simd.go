// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"github.com/kelindar/simd"
	"github.com/klauspost/cpuid/v2"
)

// hasAVX2 is resolved once at init and gates every SIMD-accelerated path in
// this package. Every accelerated path has a scalar fallback that computes
// the identical result, so platforms without AVX2 (or any non-x86 target)
// behave correctly, just without the speedup.
var hasAVX2 = cpuid.CPU.Supports(cpuid.AVX2)

// simdMinWidth is the smallest array size for which the fixed overhead of a
// vectorized scan pays for itself over a scalar one.
const simdMinWidth = 32

// arrContainsAccel reports whether value is present in the sorted slice
// data, using an AVX2 membership scan when available and worthwhile,
// falling back to the binary search used everywhere else in this package.
func arrContainsAccel(data []uint16, value uint16) bool {
	if hasAVX2 && len(data) >= simdMinWidth {
		return simd.Contains(data, value)
	}
	_, found := find16(data, value)
	return found
}

// arrIntersectCount counts the values common to two sorted arrays. Small
// arrays route the membership test for each element of the shorter array
// through the AVX2 contains check; larger arrays use the merge-based two
// pointer scan used by arrAndArr, which is already linear and cache
// friendly regardless of CPU features.
func arrIntersectCount(a, b []uint16) int {
	if len(a) > len(b) {
		a, b = b, a
	}

	if hasAVX2 && len(b) >= simdMinWidth && len(a) <= 64 {
		count := 0
		for _, v := range a {
			if simd.Contains(b, v) {
				count++
			}
		}
		return count
	}

	i, j, count := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			count++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return count
}
