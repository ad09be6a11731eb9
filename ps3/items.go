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
 *  items.go - Desencriptació dels continguts dels items.
 */

package ps3

import (
  "fmt"
  "io"
)


/*************/
/* CONSTANTS */
/*************/

// Els continguts grans es desencripten en trossos fitats per a no
// carregar tot l'item en memòria. Múltiple de 16: les fronteres dels
// trossos no poden afectar el resultat.
const _ITEM_CHUNK_SIZE = 256*1024


/************/
/* FUNCIONS */
/************/

// Desencripta el contingut sencer d'un item, per trossos alineats, i
// el retalla a la finestra original.
func (self *PKG) decrypt_item_data( it *Item ) ([]byte,error) {

  region := AlignRegion ( int64(it.DataOffset), int64(it.DataSize) )
  cipher := self.ciphers[it.KeyIndex]
  buf := make([]byte,0,region.AlignedSize)
  for pos := int64(0); pos < region.AlignedSize; {
    n := region.AlignedSize - pos
    if n > _ITEM_CHUNK_SIZE { n= _ITEM_CHUNK_SIZE }
    raw,err := self.src.read ( int64(self.Header.DataOffset)+
      region.AlignedOffset+pos, n )
    if err != nil {
      return nil,fmt.Errorf ( "Error while decrypting PKG item '%s': %s",
        it.Name, err )
    }
    buf= append(buf,cipher.Decrypt ( region.AlignedOffset+pos, raw )...)
    pos+= n
  }

  return buf[region.OffsetDelta:region.OffsetDelta+int64(it.DataSize)],nil

} // end PKG.decrypt_item_data


// Desencripta, en l'ordre de la taula, el contingut de tots els items
// que accepta el predicat. Si cap item l'accepta torna una llista
// buida.
func (self *PKG) DecryptItems( match func(it *Item) bool ) ([][]byte,error) {

  ret := make([][]byte,0)
  for i := range self.Table.Items {
    it := &self.Table.Items[i]
    if !match ( it ) { continue }
    data,err := self.decrypt_item_data ( it )
    if err != nil { return nil,err }
    ret= append(ret,data)
  }

  return ret,nil

} // end PKG.DecryptItems


/***************/
/* ITEM READER */
/***************/

// Lector seqüencial d'un item, desencriptant tros a tros.
type ItemReader struct {

  pkg  *PKG
  item *Item
  pos  int64  // Bytes de la finestra original ja consumits
  buf  []byte // Tros desencriptat pendent de consumir

}


func (self *ItemReader) Read( buf []byte ) (int,error) {

  // Reompli el buffer si cal
  if len(self.buf) == 0 {
    remain := int64(self.item.DataSize) - self.pos
    if remain <= 0 { return 0,io.EOF }
    window := remain
    if window > _ITEM_CHUNK_SIZE { window= _ITEM_CHUNK_SIZE }
    region := AlignRegion ( int64(self.item.DataOffset)+self.pos, window )
    raw,err := self.pkg.src.read ( int64(self.pkg.Header.DataOffset)+
      region.AlignedOffset, region.AlignedSize )
    if err != nil { return -1,err }
    plain := self.pkg.ciphers[self.item.KeyIndex].Decrypt (
      region.AlignedOffset, raw )
    self.buf= plain[region.OffsetDelta:region.OffsetDelta+window]
    self.pos+= window
  }

  // Copia
  n := copy ( buf, self.buf )
  self.buf= self.buf[n:]

  return n,nil

} // end ItemReader.Read


func (self *ItemReader) Close() error {
  self.buf= nil
  return nil
} // end ItemReader.Close


func (self *PKG) OpenItem( it *Item ) *ItemReader {
  return &ItemReader{
    pkg: self,
    item: it,
  }
} // end PKG.OpenItem
