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
 *  header_test.go - Tests de la descodificació de metadades.
 */

package ps3

import (
  "bytes"
  "testing"
)


func TestDecodeMetadata(t *testing.T) {

  // Registres enters
  rec := decode_metadata ( METADATA_CONTENT_TYPE, []byte{0,0,0,9} )
  if v,ok := rec.(IntegerRecord); !ok || v.Value != 9 ||
    v.TypeCode () != METADATA_CONTENT_TYPE {
    t.Errorf ( "wrong content type record: %+v", rec )
  }

  // Grandària del paquet
  rec= decode_metadata ( METADATA_PKG_SIZE, []byte{0,0,0,0,0,1,0,0} )
  if v,ok := rec.(PackageSizeRecord); !ok || v.Size != 65536 {
    t.Errorf ( "wrong package size record: %+v", rec )
  }

  // El directori d'instal·lació salta els 8 bytes reservats
  raw := append(make([]byte,8),[]byte("contentdir\000\000")...)
  rec= decode_metadata ( METADATA_INSTALL_DIR, raw )
  if v,ok := rec.(InstallDirRecord); !ok || v.Value != "contentdir" {
    t.Errorf ( "wrong install dir record: %+v", rec )
  }

  // Codi desconegut o registre massa curt: blob genèric
  rec= decode_metadata ( 0xdead, []byte{1,2,3} )
  if v,ok := rec.(BlobRecord); !ok || v.TypeCode () != 0xdead ||
    !bytes.Equal ( v.Data, []byte{1,2,3} ) {
    t.Errorf ( "wrong blob record: %+v", rec )
  }
  rec= decode_metadata ( METADATA_PKG_SIZE, []byte{1,2,3} )
  if _,ok := rec.(BlobRecord); !ok {
    t.Errorf ( "short record not decoded as blob: %+v", rec )
  }

} // end TestDecodeMetadata


func TestItemBaseName(t *testing.T) {

  it := Item{ Name: "USRDIR/PACKFOLDER/songs.dta" }
  if v := it.BaseName (); v != "songs.dta" {
    t.Errorf ( "wrong base name: %q", v )
  }
  it.Name= "PARAM.SFO"
  if v := it.BaseName (); v != "PARAM.SFO" {
    t.Errorf ( "wrong base name: %q", v )
  }

} // end TestItemBaseName
