/*
 * Copyright 2026 Adrià Giménez Pastor.
 *
 * This file is part of adriagipas/pkgcp.
 *
 * adriagipas/pkgcp is free software: you can redistribute it and/or
 * modify it under the terms of the GNU General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * adriagipas/pkgcp is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with adriagipas/pkgcp.  If not, see <https://www.gnu.org/licenses/>.
 */
/*
 *  align_test.go - Tests del càlcul de regions alineades.
 */

package ps3

import "testing"


func TestAlignRegionValues(t *testing.T) {

  tests := []struct{
    offset,size                   int64
    aligned_offset,aligned_size   int64
    offset_delta,size_delta       int64
  }{
    { 0, 0, 0, 0, 0, 0 },
    { 0, 16, 0, 16, 0, 0 },
    { 0, 17, 0, 32, 0, 15 },
    { 1, 15, 0, 16, 1, 1 },
    { 15, 1, 0, 16, 15, 15 },
    { 16, 16, 16, 16, 0, 0 },
    { 17, 31, 16, 48, 1, 17 },
    { 100, 53, 96, 64, 4, 11 },
    { 4096, 0, 4096, 0, 0, 0 },
  }
  for _,tt := range tests {
    r := AlignRegion ( tt.offset, tt.size )
    if r.AlignedOffset != tt.aligned_offset ||
      r.AlignedSize != tt.aligned_size ||
      r.OffsetDelta != tt.offset_delta ||
      r.SizeDelta != tt.size_delta {
      t.Errorf ( "AlignRegion(%d,%d) = %+v", tt.offset, tt.size, r )
    }
  }

} // end TestAlignRegionValues


// Propietats: la regió alineada sempre conté la finestra, sempre està
// alineada a 16 i el càlcul és idempotent.
func TestAlignRegionProperties(t *testing.T) {

  for offset := int64(0); offset < 64; offset++ {
    for size := int64(0); size < 64; size++ {

      r := AlignRegion ( offset, size )
      if r.AlignedOffset > offset {
        t.Fatalf ( "AlignRegion(%d,%d): aligned offset (%d) > offset",
          offset, size, r.AlignedOffset )
      }
      if r.AlignedOffset+r.AlignedSize < offset+size {
        t.Fatalf ( "AlignRegion(%d,%d): region too small (%+v)",
          offset, size, r )
      }
      if r.AlignedOffset%16 != 0 || r.AlignedSize%16 != 0 {
        t.Fatalf ( "AlignRegion(%d,%d): region not aligned (%+v)",
          offset, size, r )
      }

      // Idempotència
      r2 := AlignRegion ( r.AlignedOffset, r.AlignedSize )
      if r2.AlignedOffset != r.AlignedOffset ||
        r2.AlignedSize != r.AlignedSize ||
        r2.OffsetDelta != 0 || r2.SizeDelta != 0 {
        t.Fatalf ( "AlignRegion(%d,%d) is not idempotent: %+v -> %+v",
          offset, size, r, r2 )
      }

    }
  }

} // end TestAlignRegionProperties
