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
 *  sfo_test.go - Tests del document SFO.
 */

package ps3

import (
  "encoding/binary"
  "strings"
  "testing"
)


type sfo_test_entry struct {

  key    string
  format uint8
  value  []byte // Contingut del slot en la taula de dades
  length uint32 // param_length
  max    uint32 // param_max_length, grandària del slot

}


// Construeix un document SFO sintètic amb la versió 1.1.
func build_test_sfo( entries []sfo_test_entry ) []byte {

  le := binary.LittleEndian

  // Offsets
  key_size := uint32(0)
  data_size := uint32(0)
  for i := range entries {
    key_size+= uint32(len(entries[i].key))+1
    data_size+= entries[i].max
  }
  key_table := uint32(20 + 16*len(entries))
  data_table := key_table + key_size

  ret := make([]byte,data_table+data_size)
  copy ( ret, []byte{0x00,'P','S','F'} )
  ret[4]= 1 // minor
  ret[5]= 1 // major
  le.PutUint32 ( ret[8:], key_table )
  le.PutUint32 ( ret[12:], data_table )
  le.PutUint32 ( ret[16:], uint32(len(entries)) )

  // Índex i taules
  key_offset := uint32(0)
  data_offset := uint32(0)
  for i := range entries {
    e := &entries[i]
    v := ret[20+16*i:]
    le.PutUint16 ( v, uint16(key_offset) )
    v[3]= e.format
    le.PutUint32 ( v[4:], e.length )
    le.PutUint32 ( v[8:], e.max )
    le.PutUint32 ( v[12:], data_offset )
    copy ( ret[key_table+key_offset:], e.key )
    copy ( ret[data_table+data_offset:], e.value )
    key_offset+= uint32(len(e.key))+1
    data_offset+= e.max
  }

  return ret

} // end build_test_sfo


func default_test_sfo() []byte {

  return build_test_sfo ( []sfo_test_entry{
    { key: "APP_VER", format: SFO_FORMAT_UTF8,
      value: []byte("01.00"), length: 5, max: 8 },
    { key: "PARENTAL_LEVEL", format: SFO_FORMAT_UINT32,
      value: []byte{42,0,0,0}, length: 4, max: 4 },
    { key: "TITLE_ID", format: SFO_FORMAT_UTF8_TERM,
      value: []byte("BLUS99999\000"), length: 10, max: 12 },
  } )

} // end default_test_sfo


func TestSFOParse(t *testing.T) {

  sfo,err := NewSFO ( default_test_sfo () )
  if err != nil {
    t.Fatalf ( "NewSFO: %s", err )
  }
  if sfo.Version != "1.1" {
    t.Errorf ( "wrong version: %s", sfo.Version )
  }
  if len(sfo.Entries) != 3 {
    t.Fatalf ( "wrong number of entries: %d", len(sfo.Entries) )
  }
  if v,ok := sfo.Get ( "TITLE_ID" ); !ok || v != "BLUS99999" {
    t.Errorf ( "TITLE_ID = (%q,%v)", v, ok )
  }
  if v,ok := sfo.Get ( "APP_VER" ); !ok || v != "01.00" {
    t.Errorf ( "APP_VER = (%q,%v)", v, ok )
  }
  if v,ok := sfo.Get ( "PARENTAL_LEVEL" ); !ok || v != "0x0000002a" {
    t.Errorf ( "PARENTAL_LEVEL = (%q,%v)", v, ok )
  }
  if _,ok := sfo.Get ( "CATEGORY" ); ok {
    t.Errorf ( "unexpected CATEGORY entry" )
  }
  if sfo.Entries[1].Format != SFO_FORMAT_UINT32 {
    t.Errorf ( "wrong format code: %02x", sfo.Entries[1].Format )
  }

} // end TestSFOParse


func TestSFOBadMagic(t *testing.T) {

  data := default_test_sfo ()
  data[1]= 'X'
  if _,err := NewSFO ( data ); err == nil ||
    !strings.Contains ( err.Error (), "magic" ) {
    t.Errorf ( "expected magic error, got: %v", err )
  }

} // end TestSFOBadMagic


func TestSFOUnknownFormat(t *testing.T) {

  data := build_test_sfo ( []sfo_test_entry{
    { key: "BOGUS", format: 0x99, value: []byte{0}, length: 1, max: 4 },
  } )
  if _,err := NewSFO ( data ); err == nil ||
    !strings.Contains ( err.Error (), "format" ) {
    t.Errorf ( "expected format error, got: %v", err )
  }

} // end TestSFOUnknownFormat


func TestSFOTruncated(t *testing.T) {

  data := default_test_sfo ()
  if _,err := NewSFO ( data[:10] ); err == nil {
    t.Errorf ( "expected error on truncated document" )
  }

} // end TestSFOTruncated
