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
 *  align.go - Càlcul de regions alineades a 16 bytes.
 */

package ps3


/*********/
/* TIPUS */
/*********/

// Regió alineada al bloc AES que conté una finestra (offset,size)
// arbitrària. OffsetDelta i SizeDelta són les distàncies per a
// retallar la finestra original després de desencriptar. Sempre es
// recalcula, mai s'emmagatzema.
type Region struct {

  OffsetDelta   int64
  AlignedOffset int64
  SizeDelta     int64
  AlignedSize   int64

}


/************/
/* FUNCIONS */
/************/

const _AES_BLOCK_SIZE = 16

// Torna la regió alineada a 16 bytes més xicoteta que conté la
// finestra demanada. Amb entrades no negatives sempre té èxit.
func AlignRegion( offset int64, size int64 ) Region {

  offset_delta := offset%_AES_BLOCK_SIZE
  tail := (offset_delta + size)%_AES_BLOCK_SIZE
  size_delta := offset_delta
  if tail > 0 {
    size_delta+= _AES_BLOCK_SIZE - tail
  }

  return Region{
    OffsetDelta: offset_delta,
    AlignedOffset: offset - offset_delta,
    SizeDelta: size_delta,
    AlignedSize: size + size_delta,
  }

} // end AlignRegion
