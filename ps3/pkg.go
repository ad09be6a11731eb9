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
 *  pkg.go - Vista composta del contenidor PKG.
 */

package ps3

import (
  "fmt"
  "io"
  "os"
  "path"
  "strings"

  "github.com/adriagipas/pkgcp/utils"
)


/*********/
/* TIPUS */
/*********/

// Nom de l'item de metadades que tot paquet vàlid ha de contindre.
const SFO_ITEM_NAME = "PARAM.SFO"

// Font d'accés aleatori al contenidor: fitxer o buffer en memòria.
type source struct {

  f    io.ReaderAt
  size int64

}


func (self *source) read( offset int64, size int64 ) ([]byte,error) {

  buf := make([]byte,size)
  if err := utils.ReadBytes ( self.f, self.size, buf, offset ); err != nil {
    return nil,err
  }

  return buf,nil

} // end source.read


// Vista estructurada del contenidor. Es construeix una vegada per
// anàlisi i és immutable: tornar a analitzar produeix una instància
// nova.
type PKG struct {

  Header   Header
  Table    *ItemTable
  Sfo      *SFO
  FileSize int64
  FileName string // Buit si s'ha analitzat des de memòria

  src     source
  ciphers [NUM_CONTENT_KEYS]Cipher
  file    *os.File

}


/************/
/* FUNCIONS */
/************/

// Comprova el magic del contenidor. Totes les altres operacions
// assumeixen que esta comprovació ha passat.
func CheckIntegrity( f io.ReaderAt, size int64 ) error {

  var buf [4]byte
  if size < 4 {
    return fmt.Errorf ( "Not a PKG file: file is too small (%d B)", size )
  }
  if err := utils.ReadBytes ( f, size, buf[:], 0 ); err != nil {
    return err
  }
  if buf[0]!=0x7f || buf[1]!='P' || buf[2]!='K' || buf[3]!='G' {
    return fmt.Errorf ( "Not a PKG file: wrong magic number"+
      " (%02x %02x %02x %02x)", buf[0], buf[1], buf[2], buf[3] )
  }

  return nil

} // end CheckIntegrity


// Construeix les cinc instàncies de xifrador, una per clau de la
// taula. En paquets no finalitzats tots els índexs comparteixen el
// xifrador de depuració. És una variable per a poder instrumentar-la
// en els tests.
var build_ciphers = func( h *Header ) ([NUM_CONTENT_KEYS]Cipher,error) {

  var ret [NUM_CONTENT_KEYS]Cipher

  if h.IsDebug () {
    c := newDebugCipher ( &h.Digest )
    for i := 0; i < NUM_CONTENT_KEYS; i++ {
      ret[i]= c
    }
  } else {
    for i := 0; i < NUM_CONTENT_KEYS; i++ {
      c,err := newCTRCipher ( &content_keys[i], &h.DataRIV )
      if err != nil { return ret,err }
      ret[i]= c
    }
  }

  return ret,nil

} // end build_ciphers


func (self *PKG) parse() error {

  // Capçalera. Cap clau es deriva fins que la capçalera no és vàlida.
  if err := CheckIntegrity ( self.src.f, self.src.size ); err != nil {
    return err
  }
  if err := self.Header.Read ( self.src.f, self.src.size ); err != nil {
    return err
  }
  ciphers,err := build_ciphers ( &self.Header )
  if err != nil { return err }
  self.ciphers= ciphers

  // Taula d'items
  if self.Table,err= newItemTable ( &self.src, &self.Header,
    &self.ciphers ); err != nil {
    return err
  }

  // Document SFO. Tot paquet vàlid en conté exactament un.
  sfos,err := self.DecryptItems ( func(it *Item) bool {
    return !it.IsDir () && it.BaseName () == SFO_ITEM_NAME
  } )
  if err != nil { return err }
  if len(sfos) == 0 {
    return fmt.Errorf ( "Error while parsing PKG file: no metadata item"+
      " ('%s') found", SFO_ITEM_NAME )
  }
  if self.Sfo,err= NewSFO ( sfos[0] ); err != nil {
    return err
  }

  return nil

} // end PKG.parse


// Analitza un contenidor PKG des de qualsevol font d'accés aleatori.
func NewPKGFromReader( f io.ReaderAt, size int64 ) (*PKG,error) {

  ret := PKG{
    FileSize: size,
    src: source{ f: f, size: size },
  }
  if err := ret.parse (); err != nil {
    return nil,err
  }

  return &ret,nil

} // end NewPKGFromReader


func NewPKG( file_name string ) (*PKG,error) {

  // Obri fitxer
  fd,err := os.Open ( file_name )
  if err != nil { return nil,err }
  info,err := fd.Stat ()
  if err != nil {
    fd.Close ()
    return nil,err
  }

  // Analitza
  ret := PKG{
    FileSize: info.Size (),
    FileName: file_name,
    src: source{ f: fd, size: info.Size () },
    file: fd,
  }
  if err := ret.parse (); err != nil {
    fd.Close ()
    return nil,err
  }

  return &ret,nil

} // end NewPKG


func (self *PKG) Close() error {

  if self.file != nil {
    return self.file.Close ()
  }

  return nil

} // end PKG.Close


func has_glob( pattern string ) bool {
  return strings.ContainsAny ( pattern, "*?[" )
} // end has_glob


// Torna, en l'ordre de la taula, els items amb un nom (complet o
// últim segment) igual al patró o que hi encaixa si és un glob.
func (self *PKG) MatchItems( pattern string ) []*Item {

  ret := make([]*Item,0)
  glob := has_glob ( pattern )
  for i := range self.Table.Items {
    it := &self.Table.Items[i]
    var ok bool
    if glob {
      m1,err1 := path.Match ( pattern, it.Name )
      m2,err2 := path.Match ( pattern, it.BaseName () )
      ok= (err1 == nil && m1) || (err2 == nil && m2)
    } else {
      ok= it.Name == pattern || it.BaseName () == pattern
    }
    if ok {
      ret= append(ret,it)
    }
  }

  return ret

} // end PKG.MatchItems


// Desencripta el primer item de tipus fitxer amb el nom indicat.
func (self *PKG) DecryptItem( name string ) ([]byte,error) {

  for _,it := range self.MatchItems ( name ) {
    if it.IsDir () { continue }
    return self.decrypt_item_data ( it )
  }

  return nil,fmt.Errorf ( "Item not found: %s", name )

} // end PKG.DecryptItem
