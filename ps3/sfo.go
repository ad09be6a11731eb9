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
 *  sfo.go - Document de metadades SFO incrustat en el paquet.
 */

package ps3

import (
  "bytes"
  "encoding/binary"
  "fmt"
  "io"

  "github.com/vazrupe/endibuf"
)


/*********/
/* TIPUS */
/*********/

// Codis de format dels valors.
const (
  SFO_FORMAT_UTF8      = 0x00
  SFO_FORMAT_UTF8_TERM = 0x02
  SFO_FORMAT_UINT32    = 0x04
)

const _SFO_INDEX_ENTRY_SIZE = 16

type SFOEntry struct {

  Key    string
  Value  string
  Format uint8

}

type SFO struct {

  Version        string
  KeyTableStart  uint32
  DataTableStart uint32
  Entries        []SFOEntry

}


/************/
/* FUNCIONS */
/************/

type sfo_index_entry struct {

  key_offset       uint16
  format           uint8
  param_length     uint32
  param_max_length uint32
  data_offset      uint32

}


func (self *SFO) Get( key string ) (string,bool) {

  for i := range self.Entries {
    if self.Entries[i].Key == key {
      return self.Entries[i].Value,true
    }
  }

  return "",false

} // end SFO.Get


// Descodifica un document SFO a partir d'un buffer completament
// desencriptat. L'illa little-endian dins d'un contenidor big-endian.
func NewSFO( data []byte ) (*SFO,error) {

  base := bytes.NewReader ( data )
  r := endibuf.NewReader ( io.NewSectionReader ( base, 0, base.Size () ) )
  r.Endian= binary.LittleEndian

  // Magic
  magic,err := r.ReadBytes ( 4 )
  if err != nil {
    return nil,fmt.Errorf ( "Error while reading SFO document: %s", err )
  }
  if magic[0]!=0x00 || magic[1]!='P' || magic[2]!='S' || magic[3]!='F' {
    return nil,fmt.Errorf ( "Not a SFO document: wrong magic number"+
      " (%02x %02x %02x %02x)", magic[0], magic[1], magic[2], magic[3] )
  }

  // Capçalera
  ret := SFO{}
  version,err := r.ReadBytes ( 4 ) // minor, major i 2 bytes reservats
  if err != nil {
    return nil,fmt.Errorf ( "Error while reading SFO document: %s", err )
  }
  ret.Version= fmt.Sprintf ( "%d.%d", version[1], version[0] )
  if ret.KeyTableStart,err= r.ReadUint32 (); err != nil {
    return nil,fmt.Errorf ( "Error while reading SFO document: %s", err )
  }
  if ret.DataTableStart,err= r.ReadUint32 (); err != nil {
    return nil,fmt.Errorf ( "Error while reading SFO document: %s", err )
  }
  entry_count,err := r.ReadUint32 ()
  if err != nil {
    return nil,fmt.Errorf ( "Error while reading SFO document: %s", err )
  }
  if int64(ret.KeyTableStart) > int64(len(data)) ||
    int64(ret.DataTableStart) > int64(len(data)) ||
    ret.KeyTableStart > ret.DataTableStart {
    return nil,fmt.Errorf ( "Error while reading SFO document: table"+
      " offsets (key:%d, data:%d) are out of bounds (size:%d)",
      ret.KeyTableStart, ret.DataTableStart, len(data) )
  }

  // Primera passada: entrades de l'índex.
  index := make([]sfo_index_entry,entry_count)
  for i := uint32(0); i < entry_count; i++ {
    e := &index[i]
    if e.key_offset,err= r.ReadUint16 (); err != nil {
      return nil,fmt.Errorf ( "Error while reading SFO index entry %d: %s",
        i, err )
    }
    aux,err := r.ReadBytes ( 2 ) // Byte reservat i codi de format
    if err != nil {
      return nil,fmt.Errorf ( "Error while reading SFO index entry %d: %s",
        i, err )
    }
    e.format= aux[1]
    if e.param_length,err= r.ReadUint32 (); err != nil {
      return nil,fmt.Errorf ( "Error while reading SFO index entry %d: %s",
        i, err )
    }
    if e.param_max_length,err= r.ReadUint32 (); err != nil {
      return nil,fmt.Errorf ( "Error while reading SFO index entry %d: %s",
        i, err )
    }
    if e.data_offset,err= r.ReadUint32 (); err != nil {
      return nil,fmt.Errorf ( "Error while reading SFO index entry %d: %s",
        i, err )
    }
  }

  // Segona passada: resol claus i valors a partir dels offsets de
  // l'entrada següent o, per a l'última, de les fronteres de les
  // taules.
  ret.Entries= make([]SFOEntry,entry_count)
  dec := new_str_decoder ()
  for i := uint32(0); i < entry_count; i++ {

    e := &index[i]
    out := &ret.Entries[i]
    out.Format= e.format

    // Clau
    key_end := int64(ret.DataTableStart) - int64(ret.KeyTableStart)
    if i+1 < entry_count {
      key_end= int64(index[i+1].key_offset)
    }
    key_begin := int64(e.key_offset)
    if key_begin > key_end ||
      int64(ret.KeyTableStart)+key_end > int64(len(data)) {
      return nil,fmt.Errorf ( "Error while reading SFO entry %d: key"+
        " range (%d,%d) is out of bounds", i, key_begin, key_end )
    }
    key := data[int64(ret.KeyTableStart)+key_begin:
      int64(ret.KeyTableStart)+key_end]
    out.Key= _str ( dec, key )

    // Valor
    value_end := int64(len(data)) - int64(ret.DataTableStart)
    if i+1 < entry_count {
      value_end= int64(index[i+1].data_offset)
    }
    value_begin := int64(e.data_offset)
    value_len := int64(e.param_length)
    if value_begin+value_len > value_end ||
      int64(ret.DataTableStart)+value_end > int64(len(data)) {
      return nil,fmt.Errorf ( "Error while reading SFO entry %d ('%s'):"+
        " value range (%d,%d) is out of bounds", i, out.Key,
        value_begin, value_end )
    }
    value := data[int64(ret.DataTableStart)+value_begin:
      int64(ret.DataTableStart)+value_begin+value_len]
    switch e.format {
    case SFO_FORMAT_UTF8,SFO_FORMAT_UTF8_TERM:
      out.Value= _str ( dec, value ) // _str retalla el terminador
    case SFO_FORMAT_UINT32:
      if value_len < 4 {
        return nil,fmt.Errorf ( "Error while reading SFO entry %d ('%s'):"+
          " integer value is too small (%d B)", i, out.Key, value_len )
      }
      out.Value= fmt.Sprintf ( "0x%08x", binary.LittleEndian.Uint32 ( value ) )
    default:
      return nil,fmt.Errorf ( "Error while reading SFO entry %d ('%s'):"+
        " unknown format code (%02x)", i, out.Key, e.format )
    }

  }

  return &ret,nil

} // end NewSFO
