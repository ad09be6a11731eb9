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
 *  keys.go - Taula fixa de claus de contingut.
 */

package ps3


/*************/
/* CONSTANTS */
/*************/

const KEY_MODE_DIRECT = 0
const KEY_MODE_DERIVE = 1

const NUM_CONTENT_KEYS = 5

type contentKey struct {

  mode int
  key  [16]byte

}

// Taula fixa de claus conegudes, immutable i compartida per tot el
// procés. Les claus en mode DERIVE no s'usen directament: el RIV del
// paquet s'encripta en mode ECB amb la clau per a obtindre la clau
// efectiva d'eixe paquet.
var content_keys = [NUM_CONTENT_KEYS]contentKey{

  // 0 - PS3
  { mode: KEY_MODE_DIRECT,
    key: [16]byte{
      0x2e,0x7b,0x71,0xd7,0xc9,0xc9,0xa1,0x4e,
      0xa3,0x22,0x1f,0x18,0x88,0x28,0xb8,0xf8} },

  // 1 - PSP
  { mode: KEY_MODE_DIRECT,
    key: [16]byte{
      0x07,0xf2,0xc6,0x82,0x90,0xb5,0x0d,0x2c,
      0x33,0x81,0x8d,0x70,0x9b,0x60,0xe6,0x2b} },

  // 2
  { mode: KEY_MODE_DERIVE,
    key: [16]byte{
      0xe3,0x1a,0x70,0xc9,0xce,0x1d,0xd7,0x2b,
      0xf3,0xc0,0x62,0x29,0x63,0xf2,0xec,0xcb} },

  // 3
  { mode: KEY_MODE_DERIVE,
    key: [16]byte{
      0x42,0x3a,0xca,0x3a,0x2b,0xd5,0x64,0x9f,
      0x96,0x86,0xab,0xad,0x6f,0xd8,0x80,0x1f} },

  // 4
  { mode: KEY_MODE_DERIVE,
    key: [16]byte{
      0xaf,0x07,0xfd,0x59,0x65,0x25,0x27,0xba,
      0xf1,0x33,0x89,0x66,0x8b,0x17,0xd9,0xea} },

}
