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
 *  entries.go - Taula d'items del contenidor.
 */

package ps3

import (
  "crypto/sha256"
  "encoding/hex"
  "fmt"
  "strings"
)


/*********/
/* TIPUS */
/*********/

const (
  ITEM_KIND_FILE = 0
  ITEM_KIND_DIR  = 1
)

const ITEM_RECORD_SIZE = 32

// Marcador de directori de primer nivell. El segment que el segueix
// en qualsevol nom d'item és el nom de la carpeta d'instal·lació.
const INSTALL_DIR_MARKER = "USRDIR"

// Valors del byte baix de flags que marquen directoris.
const _ITEM_FLAG_DIR     = 0x04
const _ITEM_FLAG_DIR_PFS = 0x12

type Item struct {

  Index      int
  KeyIndex   int
  NameOffset uint32
  NameSize   uint32
  DataOffset uint64
  DataSize   uint64
  Flags      uint32
  Kind       int
  Name       string // Resolt en la fase de noms

}


func (self *Item) IsDir() bool {
  return self.Kind == ITEM_KIND_DIR
} // end Item.IsDir


// Últim segment del nom de l'item.
func (self *Item) BaseName() string {

  name := self.Name
  if ind := strings.LastIndex ( name, "/" ); ind != -1 {
    name= name[ind+1:]
  }

  return name

} // end Item.BaseName


// Estats de la resolució de la taula. La taula de noms es descobreix
// desencriptant els registres, per això el buffer desencriptat creix
// en dues fases i mai es torna a desencriptar un tros ja
// desencriptat.
const (
  _TABLE_ENTRIES_PENDING = 0
  _TABLE_NAMES_PENDING   = 1
  _TABLE_RESOLVED        = 2
)

type ItemTable struct {

  Items             []Item
  NamesOffset       int64
  NamesSize         int64
  Fingerprint       string
  InstallFolderName string

  state int
  buf   []byte // Registres + taula de noms, desencriptats amb la clau 0

}


/************/
/* FUNCIONS */
/************/

// Fase 1: desencripta i descodifica els registres fixos amb la clau
// 0, i descobreix el rang de la taula de noms.
func (self *ItemTable) read_entries( src *source, h *Header,
  ciphers *[NUM_CONTENT_KEYS]Cipher ) error {

  entries_size := int64(h.ItemCount)*ITEM_RECORD_SIZE
  region := AlignRegion ( 0, entries_size )
  if region.OffsetDelta != 0 {
    return fmt.Errorf ( "Error while resolving PKG item records:"+
      " misaligned record table (delta:%d)", region.OffsetDelta )
  }
  raw,err := src.read ( int64(h.DataOffset), region.AlignedSize )
  if err != nil {
    return fmt.Errorf ( "Error while resolving PKG item records: %s", err )
  }
  self.buf= ciphers[0].Decrypt ( 0, raw )

  // Descodifica registres
  self.Items= make([]Item,h.ItemCount)
  names_offset := int64(-1)
  names_end := int64(0)
  for i := uint32(0); i < h.ItemCount; i++ {
    v := self.buf[i*ITEM_RECORD_SIZE:(i+1)*ITEM_RECORD_SIZE]
    it := &self.Items[i]
    it.Index= int(i)
    it.NameOffset= _u32(v[0:])
    it.NameSize= _u32(v[4:])
    it.DataOffset= _u64(v[8:])
    it.DataSize= _u64(v[16:])
    it.Flags= _u32(v[24:])
    it.KeyIndex= int((it.Flags>>28)&0x7)
    if it.KeyIndex >= NUM_CONTENT_KEYS {
      return fmt.Errorf ( "Error while resolving PKG item records: item %d"+
        " references unknown key index %d", i, it.KeyIndex )
    }
    switch it.Flags&0xff {
    case _ITEM_FLAG_DIR,_ITEM_FLAG_DIR_PFS:
      it.Kind= ITEM_KIND_DIR
    default:
      it.Kind= ITEM_KIND_FILE
    }
    if it.NameSize > 0 {
      if names_offset == -1 || int64(it.NameOffset) < names_offset {
        names_offset= int64(it.NameOffset)
      }
      if end := int64(it.NameOffset)+int64(it.NameSize); end > names_end {
        names_end= end
      }
    }
  }
  if names_offset == -1 { // Paquet sense noms
    names_offset= entries_size
    names_end= entries_size
  }

  // La taula de noms ha de començar just després dels registres.
  if names_offset < entries_size {
    return fmt.Errorf ( "Error while resolving PKG item records: name"+
      " table (offset:%d) interleaves with the item records (size:%d)",
      names_offset, entries_size )
  } else if names_offset > entries_size {
    return fmt.Errorf ( "Error while resolving PKG item records: gap"+
      " between the item records (size:%d) and the name table (offset:%d)",
      entries_size, names_offset )
  }
  self.NamesOffset= names_offset
  self.NamesSize= names_end - names_offset
  self.state= _TABLE_NAMES_PENDING

  return nil

} // end ItemTable.read_entries


// Fase 2: amplia el buffer desencriptat fins a cobrir la taula de
// noms. Sols es desencripta la cua que falta.
func (self *ItemTable) read_names( src *source, h *Header,
  ciphers *[NUM_CONTENT_KEYS]Cipher ) error {

  total := self.NamesOffset + self.NamesSize
  if total > int64(len(self.buf)) {
    region := AlignRegion ( 0, total )
    done := int64(len(self.buf))
    raw,err := src.read ( int64(h.DataOffset)+done, region.AlignedSize-done )
    if err != nil {
      return fmt.Errorf ( "Error while resolving PKG name table: %s", err )
    }
    self.buf= append(self.buf,ciphers[0].Decrypt ( done, raw )...)
  }

  // Empremta de tot el contingut desencriptat de la taula.
  hash := sha256.Sum256 ( self.buf[:total] )
  self.Fingerprint= hex.EncodeToString ( hash[:] )
  self.state= _TABLE_RESOLVED

  return nil

} // end ItemTable.read_names


// Fase 3: resol el nom de cada item desencriptant el seu tros de la
// taula de noms amb la clau pròpia de l'item, que no té per què ser
// la clau 0 de la resta de la taula.
func (self *ItemTable) resolve_names( src *source, h *Header,
  ciphers *[NUM_CONTENT_KEYS]Cipher ) error {

  dec := new_str_decoder ()
  for i := range self.Items {

    it := &self.Items[i]
    if it.NameSize == 0 { continue }

    // Desencripta el nom fora d'ordre amb la seua clau
    region := AlignRegion ( int64(it.NameOffset), int64(it.NameSize) )
    raw,err := src.read ( int64(h.DataOffset)+region.AlignedOffset,
      region.AlignedSize )
    if err != nil {
      return fmt.Errorf ( "Error while resolving PKG name table: item %d:"+
        " %s", i, err )
    }
    plain := ciphers[it.KeyIndex].Decrypt ( region.AlignedOffset, raw )
    name := plain[region.OffsetDelta:region.OffsetDelta+int64(it.NameSize)]
    it.Name= _str ( dec, name )

    // Nom de la carpeta d'instal·lació: primer segment que seguisca
    // el marcador, sols es queda la primera ocurrència.
    if self.InstallFolderName == "" {
      segments := strings.Split ( it.Name, "/" )
      for j := 0; j+1 < len(segments); j++ {
        if segments[j] == INSTALL_DIR_MARKER {
          self.InstallFolderName= segments[j+1]
          break
        }
      }
    }

  }

  return nil

} // end ItemTable.resolve_names


func newItemTable( src *source, h *Header,
  ciphers *[NUM_CONTENT_KEYS]Cipher ) (*ItemTable,error) {

  ret := ItemTable{
    state: _TABLE_ENTRIES_PENDING,
  }
  if err := ret.read_entries ( src, h, ciphers ); err != nil {
    return nil,err
  }
  if err := ret.read_names ( src, h, ciphers ); err != nil {
    return nil,err
  }
  if err := ret.resolve_names ( src, h, ciphers ); err != nil {
    return nil,err
  }

  return &ret,nil

} // end newItemTable
