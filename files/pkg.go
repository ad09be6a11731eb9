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
 *  pkg.go - Vista dels contenidors PKG per a les operacions.
 *
 */

package files

import (
  "errors"
  "fmt"
  "io"

  "github.com/adriagipas/pkgcp/ps3"
  "github.com/adriagipas/pkgcp/utils"
)


/***********/
/* PACKAGE */
/***********/

// Com que és sols lectura la vista es construeix una vegada en obrir
// el paquet.
type Package struct {
  State *ps3.PKG
}


// Obri un contenidor pel nom de fitxer, despatxant pel magic. Els
// contenidors de la família Xbox es reconeixen però no es consumeixen
// ací.
func OpenPackage( file_name string ) (*Package,error) {

  ftype,err := Detect ( file_name )
  if err != nil { return nil,err }
  switch ftype {

  case TYPE_PKG:
    state,err := ps3.NewPKG ( file_name )
    if err != nil { return nil,err }
    return &Package{ State: state },nil

  case TYPE_STFS:
    return nil,errors.New ( "Xbox-family containers (STFS) are not"+
      " supported by pkgcp" )

  default:
    return nil,fmt.Errorf ( "Unable to detect the container type for"+
      " file '%s'", file_name )
  }

} // end OpenPackage


func (self *Package) Close() error {
  return self.State.Close ()
} // end Package.Close


func metadata_type_str( type_code uint32 ) string {

  switch type_code {
  case ps3.METADATA_DRM_TYPE:
    return "DRM Type"
  case ps3.METADATA_CONTENT_TYPE:
    return "Content Type"
  case ps3.METADATA_PKG_FLAGS:
    return "Package Flags"
  case ps3.METADATA_PKG_SIZE:
    return "Package Size"
  case ps3.METADATA_PKG_REVISION:
    return "Package Revision"
  case ps3.METADATA_TITLE_ID:
    return "Title ID"
  case ps3.METADATA_INSTALL_DIR:
    return "Install Directory"
  default:
    return "Unknown"
  }

} // end metadata_type_str


func (self *Package) PrintInfo( file io.Writer, prefix string ) error {

  // Preparació
  P:= func(args... any) {
    fmt.Fprint ( file, prefix )
    fmt.Fprintln ( file, args... )
  }
  F:= func(format string,args... any) {
    fmt.Fprint ( file, prefix )
    fmt.Fprintf ( file, format, args... )
  }
  PrintBytes:= func(title string, data []byte) {
    F("%s ",title)
    for i,v:= range data {
      if i%16 == 0 && i > 0 {
        fmt.Fprint ( file, "\n" )
        fmt.Fprint ( file, prefix )
        for i= 0; i < len(title)+1; i++ {
          fmt.Fprint ( file, " " )
        }
      }
      fmt.Fprintf ( file, "%02x ", uint8(v) )
    }
    fmt.Fprint ( file, "\n" )
  }

  h := &self.State.Header
  P("PlayStation 3 Package (PKG)")
  P("")
  F("Content ID:          %s\n",h.ContentIDString ())
  F("Title ID:            %s\n",h.TitleID ())
  F("Content Name:        %s\n",h.ContentName ())
  if h.IsDebug () {
    F("Revision:            %04x (debug, non-finalized)\n",h.Revision)
  } else {
    F("Revision:            %04x\n",h.Revision)
  }
  F("Item Count:          %d\n",h.ItemCount)
  F("Total Size:          %s\n",utils.NumBytesToStr ( h.TotalSize ))
  F("Data Offset:         %d\n",h.DataOffset)
  F("Data Size:           %s\n",utils.NumBytesToStr ( h.DataSize ))
  if size,ok := h.DeclaredPackageSize (); ok {
    F("Declared Pkg. Size:  %s\n",utils.NumBytesToStr ( size ))
  }
  PrintBytes("Digest:             ",h.Digest[:])
  PrintBytes("Data RIV:           ",h.DataRIV[:])
  P("")

  // Registres de metadades
  P("Metadata Records:")
  for _,md := range h.Metadata {
    switch rec := md.(type) {
    case ps3.IntegerRecord:
      F(" - %-18s %#x\n",metadata_type_str ( rec.TypeCode () ),rec.Value)
    case ps3.PackageSizeRecord:
      F(" - %-18s %s\n",metadata_type_str ( rec.TypeCode () ),
        utils.NumBytesToStr ( rec.Size ))
    case ps3.TitleIDRecord:
      F(" - %-18s %s\n",metadata_type_str ( rec.TypeCode () ),rec.Value)
    case ps3.InstallDirRecord:
      F(" - %-18s %s\n",metadata_type_str ( rec.TypeCode () ),rec.Value)
    case ps3.BlobRecord:
      F(" - %-18s (type:%#x) %d B\n",metadata_type_str ( rec.TypeCode () ),
        rec.TypeCode (),len(rec.Data))
    }
  }
  P("")

  // Taula d'items
  if self.State.Table.InstallFolderName != "" {
    F("Install Folder:      %s\n",self.State.Table.InstallFolderName)
  }
  F("Table Fingerprint:   %s\n",self.State.Table.Fingerprint)
  P("")

  // Document SFO
  P("SFO Document:")
  F(" - Version: %s\n",self.State.Sfo.Version)
  for _,e := range self.State.Sfo.Entries {
    F(" - %-20s %s\n",e.Key,e.Value)
  }
  P("")

  return nil

} // end Package.PrintInfo


// Imprimeix la línia d'un item en l'estil del comandament ls.
func (self *Package) ListItem( file io.Writer, it *ps3.Item ) error {

  P:= func(args... any) {
    fmt.Fprint ( file, args... )
  }

  // Directori
  if it.IsDir () { P("d") } else { P("-") }
  P("  ")

  // Índex de clau
  fmt.Fprintf ( file, "k%d  ", it.KeyIndex )

  // Grandària
  var size string
  if it.IsDir () {
    size= ""
  } else {
    size= utils.NumBytesToStr ( it.DataSize )
  }
  for i := 0; i < 10-len(size); i++ {
    P(" ")
  }
  P(size,"  ")

  // Nom
  P(it.Name)

  P("\n")

  return nil

} // end Package.ListItem


// Llista els items que encaixen amb el patró; amb el patró buit els
// llista tots.
func (self *Package) ListItems( file io.Writer, pattern string ) error {

  if pattern == "" {
    for i := range self.State.Table.Items {
      if err := self.ListItem ( file,
        &self.State.Table.Items[i] ); err != nil {
        return err
      }
    }
  } else {
    for _,it := range self.State.MatchItems ( pattern ) {
      if err := self.ListItem ( file, it ); err != nil {
        return err
      }
    }
  }

  return nil

} // end Package.ListItems
