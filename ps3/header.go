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
 *  header.go - Capçalera i registres de metadades del contenidor PKG.
 */

package ps3

import (
  "bytes"
  "fmt"
  "io"
  "unicode/utf8"

  "golang.org/x/text/encoding"
  "golang.org/x/text/encoding/unicode"

  "github.com/adriagipas/pkgcp/utils"
)


/*********/
/* TIPUS */
/*********/

const (
  PKG_PLATFORM_PS3 = 0
  PKG_PLATFORM_UNK = -1
)

const _PKG_HEADER_SIZE = 0x80

// Codis de tipus dels registres de metadades.
const (
  METADATA_DRM_TYPE     = 0x1
  METADATA_CONTENT_TYPE = 0x2
  METADATA_PKG_FLAGS    = 0x3
  METADATA_PKG_SIZE     = 0x4
  METADATA_PKG_REVISION = 0x5
  METADATA_TITLE_ID     = 0x6
  METADATA_INSTALL_DIR  = 0xA
)

// Variant tancada: cada codi conegut té la seua descodificació i la
// resta cau en el blob genèric.
type MetadataRecord interface {

  // Codi de tipus del registre.
  TypeCode() uint32

}

type IntegerRecord struct {
  type_code uint32
  Value     uint32
}

type PackageSizeRecord struct {
  Size uint64
}

type TitleIDRecord struct {
  Value string
}

type InstallDirRecord struct {
  Value string
}

type BlobRecord struct {
  type_code uint32
  Data      []byte
}

func (self IntegerRecord) TypeCode() uint32 { return self.type_code }
func (self PackageSizeRecord) TypeCode() uint32 { return METADATA_PKG_SIZE }
func (self TitleIDRecord) TypeCode() uint32 { return METADATA_TITLE_ID }
func (self InstallDirRecord) TypeCode() uint32 { return METADATA_INSTALL_DIR }
func (self BlobRecord) TypeCode() uint32 { return self.type_code }

type Header struct {

  Magic          [4]byte
  Revision       uint16
  TypeCode       uint16
  Platform       int
  MetadataOffset uint32
  MetadataCount  uint32
  HeaderSize     uint32
  ItemCount      uint32
  TotalSize      uint64
  DataOffset     uint64
  DataSize       uint64
  ContentID      [48]byte
  Digest         [16]byte
  DataRIV        [16]byte
  Metadata       []MetadataRecord

}


/************/
/* FUNCIONS */
/************/

func _u16( v []byte ) uint16 {
  return (uint16(v[0])<<8) | uint16(v[1])
} // end _u16


func _u32( v []byte ) uint32 {
  return (uint32(v[0])<<24) |
    (uint32(v[1])<<16) |
    (uint32(v[2])<<8) |
    uint32(v[3])
} // end _u32


func _u64( v []byte ) uint64 {
  return (uint64(v[0])<<56) |
    (uint64(v[1])<<48) |
    (uint64(v[2])<<40) |
    (uint64(v[3])<<32) |
    (uint64(v[4])<<24) |
    (uint64(v[5])<<16) |
    (uint64(v[6])<<8) |
    uint64(v[7])
} // end _u64


func _str( dec *encoding.Decoder, data []byte ) (ret string) {

  data= bytes.TrimRight ( data, "\000" )
  if !utf8.Valid ( data ) {
    utils.Warning ( "invalid UTF-8 sequence in '%v'", data )
  }
  if aux,err := dec.Bytes ( data ); err == nil {
    ret= string(aux)
  } else {
    ret= string(data)
  }

  return

} // end _str


func new_str_decoder() *encoding.Decoder {
  return unicode.UTF8.NewDecoder ()
} // end new_str_decoder


// Descodifica un registre de metadades segons el seu codi de
// tipus. Els codis desconeguts o amb grandària inesperada tornen el
// blob genèric.
func decode_metadata( type_code uint32, raw []byte ) MetadataRecord {

  dec := new_str_decoder ()
  switch type_code {

  case METADATA_DRM_TYPE, METADATA_CONTENT_TYPE,
    METADATA_PKG_FLAGS, METADATA_PKG_REVISION:
    if len(raw) >= 4 {
      return IntegerRecord{ type_code: type_code, Value: _u32(raw) }
    }

  case METADATA_PKG_SIZE:
    if len(raw) >= 8 {
      return PackageSizeRecord{ Size: _u64(raw) }
    }

  case METADATA_TITLE_ID:
    return TitleIDRecord{ Value: _str ( dec, raw ) }

  case METADATA_INSTALL_DIR:
    // Els primers 8 bytes del registre són camps reservats.
    if len(raw) > 8 {
      return InstallDirRecord{ Value: _str ( dec, raw[8:] ) }
    }
    return InstallDirRecord{ Value: _str ( dec, raw ) }

  }

  return BlobRecord{ type_code: type_code, Data: raw }

} // end decode_metadata


func (self *Header) IsDebug() bool {
  return self.Revision == 0
} // end Header.IsDebug


// Identificador de títol, tros de l'identificador de contingut.
func (self *Header) TitleID() string {
  return _str ( new_str_decoder (), self.ContentID[7:16] )
} // end Header.TitleID


func (self *Header) ContentName() string {
  return _str ( new_str_decoder (), self.ContentID[20:] )
} // end Header.ContentName


func (self *Header) ContentIDString() string {
  return _str ( new_str_decoder (), self.ContentID[:] )
} // end Header.ContentIDString


// Llig la capçalera fixa i els registres de metadades. Si el magic o
// la plataforma no són vàlids falla abans de llegir res més: mai
// s'han de derivar claus d'una capçalera no fiable.
func (self *Header) Read( f io.ReaderAt, file_size int64 ) error {

  // Llig capçalera fixa.
  var buf [_PKG_HEADER_SIZE]byte
  if file_size < _PKG_HEADER_SIZE {
    return fmt.Errorf ( "Error while reading PKG header: file is too"+
      " small (%d B)", file_size )
  }
  if err := utils.ReadBytes ( f, file_size, buf[:], 0 ); err != nil {
    return fmt.Errorf ( "Error while reading PKG header: %s", err )
  }

  // Comprovacions
  if buf[0]!=0x7f || buf[1]!='P' || buf[2]!='K' || buf[3]!='G' {
    return fmt.Errorf ( "Not a PKG file: wrong magic number"+
      " (%02x %02x %02x %02x)", buf[0], buf[1], buf[2], buf[3] )
  }
  copy ( self.Magic[:], buf[:4] )
  self.Revision= _u16(buf[0x04:])
  self.TypeCode= _u16(buf[0x06:])
  switch self.TypeCode {
  case 1:
    self.Platform= PKG_PLATFORM_PS3
  default:
    self.Platform= PKG_PLATFORM_UNK
  }
  if self.Platform != PKG_PLATFORM_PS3 {
    return fmt.Errorf ( "Error while reading PKG header: unsupported"+
      " platform type (%04x)", self.TypeCode )
  }

  // Llig valors
  self.MetadataOffset= _u32(buf[0x08:])
  self.MetadataCount= _u32(buf[0x0c:])
  self.HeaderSize= _u32(buf[0x10:])
  self.ItemCount= _u32(buf[0x14:])
  self.TotalSize= _u64(buf[0x18:])
  self.DataOffset= _u64(buf[0x20:])
  self.DataSize= _u64(buf[0x28:])
  copy ( self.ContentID[:], buf[0x30:0x60] )
  copy ( self.Digest[:], buf[0x60:0x70] )
  copy ( self.DataRIV[:], buf[0x70:0x80] )
  if int64(self.DataOffset)+int64(self.DataSize) > file_size {
    return fmt.Errorf ( "Error while reading PKG header: data region"+
      " (offset:%d, size:%d) is out of bounds (file size:%d)",
      self.DataOffset, self.DataSize, file_size )
  }

  // Llig registres de metadades
  return self.read_metadata ( f, file_size )

} // end Header.Read


func (self *Header) read_metadata( f io.ReaderAt, file_size int64 ) error {

  self.Metadata= make([]MetadataRecord,0,self.MetadataCount)
  offset := int64(self.MetadataOffset)
  for i := uint32(0); i < self.MetadataCount; i++ {

    // Llig tipus i grandària
    var head [8]byte
    if err := utils.ReadBytes ( f, file_size, head[:], offset ); err != nil {
      return fmt.Errorf ( "Error while reading PKG metadata record %d: %s",
        i, err )
    }
    type_code := _u32(head[:])
    size := _u32(head[4:])
    if int64(size) > file_size-(offset+8) {
      return fmt.Errorf ( "Error while reading PKG metadata record %d:"+
        " record size (%d) is out of bounds", i, size )
    }

    // Llig contingut
    raw := make([]byte,size)
    if size > 0 {
      if err := utils.ReadBytes ( f, file_size, raw, offset+8 ); err != nil {
        return fmt.Errorf ( "Error while reading PKG metadata record %d: %s",
          i, err )
      }
    }
    self.Metadata= append(self.Metadata,decode_metadata ( type_code, raw ))
    offset+= 8 + int64(size)

  }

  return nil

} // end Header.read_metadata


// Torna la grandària declarada del paquet si hi ha registre de
// metadades amb ella.
func (self *Header) DeclaredPackageSize() (uint64,bool) {

  for _,md := range self.Metadata {
    if rec,ok := md.(PackageSizeRecord); ok {
      return rec.Size,true
    }
  }

  return 0,false

} // end Header.DeclaredPackageSize
