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
 *  detect.go - Funció per a detectar el tipus d'un contenidor.
 *
 */

package files

import (
  "fmt"
  "os"
)

/*********/
/* TIPUS */
/*********/

const TYPE_UNK  = 0
const TYPE_PKG  = 1
const TYPE_STFS = 2


/************/
/* FUNCIONS */
/************/

// Sols empra els primers 4 bytes per prendre la decisió. Torna
// TYPE_UNK si no es sap.
func Detect(file_name string) (int,error) {

  // Obté informació del fitxer
  f,err := os.Open ( file_name )
  if err != nil { return -1,err }
  defer f.Close ()
  info,err := f.Stat ()
  if err != nil { return -1,err }

  // Llig primers 4 bytes
  nbytes := info.Size ()
  if nbytes < 4 { return TYPE_UNK,nil }
  var mem [4]byte
  head := mem[:]
  n,err := f.Read ( head )
  if err != nil { return -1,err }
  if n != 4 {
    return -1,fmt.Errorf ( "Unexpected error while reading header from '%s'",
      file_name )
  }

  // Comprova
  if head[0]==0x7f && head[1]=='P' && head[2]=='K' && head[3]=='G' {
    return TYPE_PKG,nil
  } else if head[0]=='C' && head[1]=='O' && head[2]=='N' && head[3]==' ' {
    return TYPE_STFS,nil
  } else if head[0]=='P' && head[1]=='I' && head[2]=='R' && head[3]=='S' {
    return TYPE_STFS,nil
  } else if head[0]=='L' && head[1]=='I' && head[2]=='V' && head[3]=='E' {
    return TYPE_STFS,nil
  } else {
    return TYPE_UNK,nil
  }

} // end Detect
