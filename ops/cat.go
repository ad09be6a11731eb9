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
 *  cat.go - Implementa l'operació CAT. Desencripta items i els
 *           imprimeix per pantalla.
 *
 */

package ops

import (
  "errors"
  "fmt"
  "io"
  "os"

  "github.com/adriagipas/pkgcp/files"
  "github.com/adriagipas/pkgcp/utils"
)


/************/
/* OPERACIÓ */
/************/

const CAT_BUF_SIZE = 1024

func Cat ( args *utils.Args ) error {

  // Comprova que hi han ITEMs
  if len(args.OpArgs) == 0 {
    return errors.New ( "no items provided to cat command" )
  }

  // Buffer
  var mem [CAT_BUF_SIZE]byte
  buf := mem[:]

  // Processa args
  for _,arg := range args.OpArgs {

    // Obté target
    target,err := args.GetTarget ( arg )
    if err != nil { return err }

    // Obri paquet
    pkg,err := files.OpenPackage ( target.FileName )
    if err != nil { return err }

    // Busca items
    items := pkg.State.MatchItems ( target.Pattern )
    found := false
    for _,it := range items {

      if it.IsDir () { continue }
      found= true

      // Desencripta i imprimeix
      f := pkg.State.OpenItem ( it )
      nbytes,err := f.Read ( buf )
      for ; err == nil && nbytes > 0; {
        n,werr := os.Stdout.Write ( buf[:nbytes] )
        if werr != nil {
          pkg.Close ()
          return werr
        }
        if n != nbytes {
          pkg.Close ()
          return errors.New ( "Unexpected error while writing to"+
            " standard output" )
        }
        nbytes,err= f.Read ( buf )
      }
      f.Close ()
      if err != nil && err != io.EOF {
        pkg.Close ()
        return err
      }

    }
    pkg.Close ()
    if !found {
      return fmt.Errorf ( "Item not found: %s", target.Pattern )
    }

  }

  return nil

} // end Cat
