// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

// Package roaring implements a compressed bitmap for uint32 values, using
// array, bitset and run-length containers selected automatically by density.
package roaring
