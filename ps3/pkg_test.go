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
 *  pkg_test.go - Tests d'anàlisi de contenidors sintètics complets.
 */

package ps3

import (
  "bytes"
  "crypto/sha256"
  "encoding/binary"
  "encoding/hex"
  "io"
  "strings"
  "testing"
)


const _TEST_DATA_OFFSET = 0x100


func test_songs_data() []byte {
  return bytes.Repeat ( []byte("(song \"gameplay\" (pans -1.0 1.0))\n"), 40 )
} // end test_songs_data


func test_banner_data() []byte {

  ret := make([]byte,777)
  for i := range ret {
    ret[i]= byte(i^0x5a)
  }

  return ret

} // end test_banner_data


type test_pkg_build struct {

  file      []byte
  plain     []byte // Regió de dades en clar
  names_end int

}


// Construeix un contenidor PKG sintètic complet: dos directoris, el
// PARAM.SFO i dos fitxers, un d'ells amb la clau 2. El mutador, si es
// passa, altera la regió de dades en clar abans d'encriptar-la.
func build_test_pkg( t *testing.T, debug bool,
  mutate func(region []byte) ) test_pkg_build {

  type titem struct {
    name  string
    flags uint32
    data  []byte
  }
  items := []titem{
    { name: "USRDIR", flags: _ITEM_FLAG_DIR },
    { name: "USRDIR/PACKFOLDER", flags: _ITEM_FLAG_DIR },
    { name: "PARAM.SFO", data: default_test_sfo () },
    { name: "USRDIR/PACKFOLDER/songs.dta", data: test_songs_data () },
    { name: "USRDIR/PACKFOLDER/banner.png", flags: 2<<28,
      data: test_banner_data () },
  }

  // Offsets dins de la regió de dades. Els continguts es desalineen a
  // propòsit.
  entries_size := len(items)*ITEM_RECORD_SIZE
  name_offsets := make([]int,len(items))
  cursor := entries_size
  for i := range items {
    name_offsets[i]= cursor
    cursor+= len(items[i].name)
  }
  names_end := cursor
  data_offsets := make([]int,len(items))
  cursor= (cursor+15)&^15
  for i := range items {
    if items[i].data == nil { continue }
    cursor+= 5
    data_offsets[i]= cursor
    cursor+= len(items[i].data)
  }

  // Regió de dades en clar
  be := binary.BigEndian
  region := make([]byte,cursor)
  for i := range items {
    v := region[i*ITEM_RECORD_SIZE:]
    be.PutUint32 ( v[0:], uint32(name_offsets[i]) )
    be.PutUint32 ( v[4:], uint32(len(items[i].name)) )
    be.PutUint64 ( v[8:], uint64(data_offsets[i]) )
    be.PutUint64 ( v[16:], uint64(len(items[i].data)) )
    be.PutUint32 ( v[24:], items[i].flags )
    copy ( region[name_offsets[i]:], items[i].name )
    copy ( region[data_offsets[i]:], items[i].data )
  }
  if mutate != nil {
    mutate ( region )
  }

  // Encripta. La taula i els continguts van amb la clau 0 i després
  // se sobreescriuen els trossos dels items amb claus pròpies.
  var h Header
  h.Digest= test_digest ()
  h.DataRIV= test_riv ()
  if !debug {
    h.Revision= 0x8000
  }
  ciphers,err := build_ciphers ( &h )
  if err != nil {
    t.Fatalf ( "build_ciphers: %s", err )
  }
  ct := ciphers[0].Decrypt ( 0, region )
  for i := range items {
    k := int((items[i].flags>>28)&0x7)
    if k == 0 { continue }
    no := name_offsets[i]
    copy ( ct[no:], ciphers[k].Decrypt ( int64(no),
      region[no:no+len(items[i].name)] ) )
    if len(items[i].data) > 0 {
      do := data_offsets[i]
      copy ( ct[do:], ciphers[k].Decrypt ( int64(do),
        region[do:do+len(items[i].data)] ) )
    }
  }

  // Capçalera i metadades
  file := make([]byte,_TEST_DATA_OFFSET+len(ct))
  copy ( file[_TEST_DATA_OFFSET:], ct )
  copy ( file, []byte{0x7f,'P','K','G'} )
  be.PutUint16 ( file[0x04:], h.Revision )
  be.PutUint16 ( file[0x06:], 1 )
  be.PutUint32 ( file[0x08:], 0x80 ) // offset metadades
  be.PutUint32 ( file[0x0c:], 3 )    // número de registres
  be.PutUint32 ( file[0x10:], 0xc0 )
  be.PutUint32 ( file[0x14:], uint32(len(items)) )
  be.PutUint64 ( file[0x18:], uint64(len(file)) )
  be.PutUint64 ( file[0x20:], _TEST_DATA_OFFSET )
  be.PutUint64 ( file[0x28:], uint64(len(ct)) )
  copy ( file[0x30:], "UP0006-BLUS99999_00-RBHARMONIXLIVE0" )
  copy ( file[0x60:], h.Digest[:] )
  copy ( file[0x70:], h.DataRIV[:] )
  md := file[0x80:]
  be.PutUint32 ( md[0:], METADATA_DRM_TYPE )
  be.PutUint32 ( md[4:], 4 )
  be.PutUint32 ( md[8:], 3 )
  be.PutUint32 ( md[12:], METADATA_TITLE_ID )
  be.PutUint32 ( md[16:], 12 )
  copy ( md[20:], "BLUS99999" )
  be.PutUint32 ( md[32:], METADATA_INSTALL_DIR )
  be.PutUint32 ( md[36:], 18 ) // 8 bytes reservats + nom
  copy ( md[48:], "PACKFOLDER" )

  return test_pkg_build{ file: file, plain: region, names_end: names_end }

} // end build_test_pkg


func parse_test_pkg( t *testing.T, b test_pkg_build ) *PKG {

  pkg,err := NewPKGFromReader ( bytes.NewReader ( b.file ),
    int64(len(b.file)) )
  if err != nil {
    t.Fatalf ( "NewPKGFromReader: %s", err )
  }

  return pkg

} // end parse_test_pkg


func TestPKGParse(t *testing.T) {

  b := build_test_pkg ( t, false, nil )
  pkg := parse_test_pkg ( t, b )
  defer pkg.Close ()

  // Capçalera
  h := &pkg.Header
  if h.IsDebug () {
    t.Errorf ( "finalized package reported as debug" )
  }
  if h.Platform != PKG_PLATFORM_PS3 {
    t.Errorf ( "wrong platform: %d", h.Platform )
  }
  if h.ItemCount != 5 {
    t.Errorf ( "wrong item count: %d", h.ItemCount )
  }
  if v := h.TitleID (); v != "BLUS99999" {
    t.Errorf ( "wrong title id: %q", v )
  }
  if v := h.ContentName (); v != "RBHARMONIXLIVE0" {
    t.Errorf ( "wrong content name: %q", v )
  }

  // Metadades
  if len(h.Metadata) != 3 {
    t.Fatalf ( "wrong number of metadata records: %d", len(h.Metadata) )
  }
  if rec,ok := h.Metadata[0].(IntegerRecord); !ok || rec.Value != 3 ||
    rec.TypeCode () != METADATA_DRM_TYPE {
    t.Errorf ( "wrong DRM record: %+v", h.Metadata[0] )
  }
  if rec,ok := h.Metadata[1].(TitleIDRecord); !ok || rec.Value != "BLUS99999" {
    t.Errorf ( "wrong title id record: %+v", h.Metadata[1] )
  }
  if rec,ok := h.Metadata[2].(InstallDirRecord); !ok ||
    rec.Value != "PACKFOLDER" {
    t.Errorf ( "wrong install dir record: %+v", h.Metadata[2] )
  }
  if _,ok := h.DeclaredPackageSize (); ok {
    t.Errorf ( "unexpected package size record" )
  }

  // Taula d'items
  tbl := pkg.Table
  if len(tbl.Items) != 5 {
    t.Fatalf ( "wrong number of items: %d", len(tbl.Items) )
  }
  if tbl.NamesOffset != 5*ITEM_RECORD_SIZE {
    t.Errorf ( "wrong name table offset: %d", tbl.NamesOffset )
  }
  if tbl.InstallFolderName != "PACKFOLDER" {
    t.Errorf ( "wrong install folder: %q", tbl.InstallFolderName )
  }
  want_names := []string{
    "USRDIR",
    "USRDIR/PACKFOLDER",
    "PARAM.SFO",
    "USRDIR/PACKFOLDER/songs.dta",
    "USRDIR/PACKFOLDER/banner.png",
  }
  for i := range tbl.Items {
    if tbl.Items[i].Name != want_names[i] {
      t.Errorf ( "item %d: wrong name %q", i, tbl.Items[i].Name )
    }
  }
  if !tbl.Items[0].IsDir () || !tbl.Items[1].IsDir () ||
    tbl.Items[2].IsDir () || tbl.Items[3].IsDir () {
    t.Errorf ( "wrong item kinds" )
  }
  if tbl.Items[4].KeyIndex != 2 {
    t.Errorf ( "wrong key index: %d", tbl.Items[4].KeyIndex )
  }
  if len(tbl.Fingerprint) != 64 ||
    strings.ToLower ( tbl.Fingerprint ) != tbl.Fingerprint {
    t.Errorf ( "malformed fingerprint: %q", tbl.Fingerprint )
  }

  // SFO
  if v,ok := pkg.Sfo.Get ( "TITLE_ID" ); !ok || v != "BLUS99999" {
    t.Errorf ( "SFO TITLE_ID = (%q,%v)", v, ok )
  }

  // Desencriptació d'items, amb la clau 0 i amb la clau 2
  data,err := pkg.DecryptItem ( "songs.dta" )
  if err != nil {
    t.Fatalf ( "DecryptItem(songs.dta): %s", err )
  }
  if !bytes.Equal ( data, test_songs_data () ) {
    t.Errorf ( "songs.dta content mismatch" )
  }
  data,err= pkg.DecryptItem ( "USRDIR/PACKFOLDER/banner.png" )
  if err != nil {
    t.Fatalf ( "DecryptItem(banner.png): %s", err )
  }
  if !bytes.Equal ( data, test_banner_data () ) {
    t.Errorf ( "banner.png content mismatch" )
  }

  // Patrons
  if items := pkg.MatchItems ( "*.dta" ); len(items) != 1 ||
    items[0].Index != 3 {
    t.Errorf ( "MatchItems(*.dta) = %v", items )
  }
  if items := pkg.MatchItems ( "USRDIR/*" ); len(items) != 1 {
    t.Errorf ( "MatchItems(USRDIR/*) matched %d items", len(items) )
  }
  if items := pkg.MatchItems ( "nope" ); len(items) != 0 {
    t.Errorf ( "MatchItems(nope) matched %d items", len(items) )
  }

} // end TestPKGParse


// Llegir un item amb el lector seqüencial ha de donar el mateix que
// desencriptar-lo d'una vegada, independentment del buffer.
func TestPKGItemReader(t *testing.T) {

  b := build_test_pkg ( t, false, nil )
  pkg := parse_test_pkg ( t, b )
  defer pkg.Close ()

  want := test_songs_data ()
  for _,size := range []int{1,7,16,100,10000} {
    items := pkg.MatchItems ( "songs.dta" )
    if len(items) != 1 {
      t.Fatalf ( "songs.dta not found" )
    }
    f := pkg.OpenItem ( items[0] )
    got := make([]byte,0,len(want))
    buf := make([]byte,size)
    n,err := f.Read ( buf )
    for ; err == nil; {
      got= append(got,buf[:n]...)
      n,err= f.Read ( buf )
    }
    f.Close ()
    if err != io.EOF {
      t.Fatalf ( "ItemReader.Read: %s", err )
    }
    if !bytes.Equal ( got, want ) {
      t.Errorf ( "streamed content mismatch (buffer:%d)", size )
    }
  }

} // end TestPKGItemReader


func TestPKGParseDebug(t *testing.T) {

  b := build_test_pkg ( t, true, nil )
  pkg := parse_test_pkg ( t, b )
  defer pkg.Close ()

  if !pkg.Header.IsDebug () {
    t.Errorf ( "debug package not reported as debug" )
  }

  // En un paquet no finalitzat totes les claus comparteixen el
  // xifrador, així que l'empremta és la del contingut en clar.
  hash := sha256.Sum256 ( b.plain[:b.names_end] )
  if want := hex.EncodeToString ( hash[:] ); pkg.Table.Fingerprint != want {
    t.Errorf ( "wrong fingerprint: %q", pkg.Table.Fingerprint )
  }

  data,err := pkg.DecryptItem ( "songs.dta" )
  if err != nil {
    t.Fatalf ( "DecryptItem(songs.dta): %s", err )
  }
  if !bytes.Equal ( data, test_songs_data () ) {
    t.Errorf ( "songs.dta content mismatch" )
  }
  data,err= pkg.DecryptItem ( "banner.png" )
  if err != nil {
    t.Fatalf ( "DecryptItem(banner.png): %s", err )
  }
  if !bytes.Equal ( data, test_banner_data () ) {
    t.Errorf ( "banner.png content mismatch" )
  }

} // end TestPKGParseDebug


// Amb una plataforma no suportada l'anàlisi falla abans de construir
// cap xifrador.
func TestPKGUnsupportedPlatform(t *testing.T) {

  b := build_test_pkg ( t, false, nil )
  binary.BigEndian.PutUint16 ( b.file[0x06:], 2 )

  old := build_ciphers
  count := 0
  build_ciphers= func( h *Header ) ([NUM_CONTENT_KEYS]Cipher,error) {
    count++
    return old ( h )
  }
  defer func(){ build_ciphers= old }()

  _,err := NewPKGFromReader ( bytes.NewReader ( b.file ),
    int64(len(b.file)) )
  if err == nil || !strings.Contains ( err.Error (), "platform" ) {
    t.Errorf ( "expected platform error, got: %v", err )
  }
  if count != 0 {
    t.Errorf ( "ciphers were built %d times for an unsupported platform",
      count )
  }

} // end TestPKGUnsupportedPlatform


func TestPKGBadMagic(t *testing.T) {

  b := build_test_pkg ( t, false, nil )
  b.file[0]= 0x7e
  _,err := NewPKGFromReader ( bytes.NewReader ( b.file ),
    int64(len(b.file)) )
  if err == nil || !strings.Contains ( err.Error (), "magic" ) {
    t.Errorf ( "expected magic error, got: %v", err )
  }

} // end TestPKGBadMagic


// La taula de noms ha de començar just després dels registres: tant
// un buit com un solapament són fatals.
func TestPKGNameTableGap(t *testing.T) {

  be := binary.BigEndian
  b := build_test_pkg ( t, false, func(region []byte) {
    for i := 0; i < 5; i++ {
      v := region[i*ITEM_RECORD_SIZE:]
      be.PutUint32 ( v, be.Uint32 ( v )+16 )
    }
  } )
  _,err := NewPKGFromReader ( bytes.NewReader ( b.file ),
    int64(len(b.file)) )
  if err == nil || !strings.Contains ( err.Error (), "gap" ) {
    t.Errorf ( "expected gap error, got: %v", err )
  }

} // end TestPKGNameTableGap


func TestPKGNameTableInterleave(t *testing.T) {

  be := binary.BigEndian
  b := build_test_pkg ( t, false, func(region []byte) {
    be.PutUint32 ( region[ITEM_RECORD_SIZE:], 0 )
  } )
  _,err := NewPKGFromReader ( bytes.NewReader ( b.file ),
    int64(len(b.file)) )
  if err == nil || !strings.Contains ( err.Error (), "interleaves" ) {
    t.Errorf ( "expected interleave error, got: %v", err )
  }

} // end TestPKGNameTableInterleave


func TestPKGBadKeyIndex(t *testing.T) {

  b := build_test_pkg ( t, false, func(region []byte) {
    region[24]= 0x70 // item 0, índex de clau 7
  } )
  _,err := NewPKGFromReader ( bytes.NewReader ( b.file ),
    int64(len(b.file)) )
  if err == nil || !strings.Contains ( err.Error (), "key index" ) {
    t.Errorf ( "expected key index error, got: %v", err )
  }

} // end TestPKGBadKeyIndex


func TestPKGMissingSfo(t *testing.T) {

  b := build_test_pkg ( t, false, func(region []byte) {
    ind := bytes.Index ( region, []byte("PARAM.SFO") )
    copy ( region[ind:], "PARAM.XXX" )
  } )
  _,err := NewPKGFromReader ( bytes.NewReader ( b.file ),
    int64(len(b.file)) )
  if err == nil || !strings.Contains ( err.Error (), "no metadata item" ) {
    t.Errorf ( "expected missing SFO error, got: %v", err )
  }

} // end TestPKGMissingSfo
