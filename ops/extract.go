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
 *  extract.go - Implementa l'operació EXTRACT. Desencripta items i
 *               els escriu en un directori.
 *
 */

package ops

import (
  "errors"
  "fmt"
  "io"
  "os"
  "path/filepath"
  "strings"

  "github.com/adriagipas/pkgcp/files"
  "github.com/adriagipas/pkgcp/ps3"
  "github.com/adriagipas/pkgcp/utils"
)


/*********************/
/* FUNCIONS PRIVADES */
/*********************/

// Política de mapat dels noms d'item a camins de destinació: es lleva
// el prefix fix USRDIR i, en mode flat, tota la jerarquia.
func dst_item_path( it *ps3.Item, flat bool ) string {

  name := it.Name
  if flat {
    return it.BaseName ()
  }
  if name == ps3.INSTALL_DIR_MARKER {
    return ""
  }
  if strings.HasPrefix ( name, ps3.INSTALL_DIR_MARKER+"/" ) {
    name= name[len(ps3.INSTALL_DIR_MARKER)+1:]
  }

  return name

} // end dst_item_path


func extract_item( pkg *files.Package, it *ps3.Item,
  dir string, flat bool ) error {

  // Mapa el destí
  name := dst_item_path ( it, flat )
  if name == "" { return nil }
  dst := filepath.Join ( dir, filepath.FromSlash ( name ) )

  // Directoris
  if it.IsDir () {
    if flat { return nil }
    return os.MkdirAll ( dst, 0755 )
  }
  if err := os.MkdirAll ( filepath.Dir ( dst ), 0755 ); err != nil {
    return err
  }

  // Desencripta en trossos
  f := pkg.State.OpenItem ( it )
  defer f.Close ()
  out,err := os.Create ( dst )
  if err != nil { return err }
  var mem [CAT_BUF_SIZE]byte
  buf := mem[:]
  nbytes,err := f.Read ( buf )
  for ; err == nil && nbytes > 0; {
    n,werr := out.Write ( buf[:nbytes] )
    if werr != nil {
      out.Close ()
      return werr
    }
    if n != nbytes {
      out.Close ()
      return errors.New ( "Unexpected error while writing '"+dst+"'" )
    }
    nbytes,err= f.Read ( buf )
  }
  if err != nil && err != io.EOF {
    out.Close ()
    return err
  }

  return out.Close ()

} // end extract_item


func extract_matching( pkg *files.Package, pattern string,
  dir string, flat bool ) (int,error) {

  var items []*ps3.Item
  if pattern == "" {
    items= make([]*ps3.Item,0,len(pkg.State.Table.Items))
    for i := range pkg.State.Table.Items {
      items= append(items,&pkg.State.Table.Items[i])
    }
  } else {
    items= pkg.State.MatchItems ( pattern )
  }

  count := 0
  for _,it := range items {
    if err := extract_item ( pkg, it, dir, flat ); err != nil {
      return count,err
    }
    if !it.IsDir () { count++ }
  }

  return count,nil

} // end extract_matching


/************/
/* OPERACIÓ */
/************/

func Extract ( args *utils.Args ) error {

  // Processa flags
  op_args := args.OpArgs
  flat := false
  for len(op_args) > 0 && strings.HasPrefix ( op_args[0], "-" ) {
    switch op_args[0] {
    case "-flat":
      flat= true
    default:
      return fmt.Errorf ( "(EXTRACT) unknown flag: %s", op_args[0] )
    }
    op_args= op_args[1:]
  }

  // Comprova que hi ha directori destí
  if len(op_args) == 0 {
    return errors.New ( "no destination directory provided to extract"+
      " command" )
  }
  dir := op_args[0]
  op_args= op_args[1:]

  // Sense patrons extrau tots els items de tots els paquets
  if len(op_args) == 0 {
    for _,file := range args.Files {
      pkg,err := files.OpenPackage ( file )
      if err != nil { return err }
      if _,err := extract_matching ( pkg, "", dir, flat ); err != nil {
        pkg.Close ()
        return err
      }
      pkg.Close ()
    }
    return nil
  }

  // Processa patrons
  for _,arg := range op_args {

    // Obté target
    target,err := args.GetTarget ( arg )
    if err != nil { return err }

    // Obri paquet
    pkg,err := files.OpenPackage ( target.FileName )
    if err != nil { return err }

    // Extrau
    count,err := extract_matching ( pkg, target.Pattern, dir, flat )
    pkg.Close ()
    if err != nil { return err }
    if count == 0 {
      return fmt.Errorf ( "Item not found: %s", target.Pattern )
    }

  }

  return nil

} // end Extract
