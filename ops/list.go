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
 *  list.go - Implementa l'operació LIST. Mostra per pantalla els
 *            items del paquet.
 *
 */

package ops

import (
  "os"

  "github.com/adriagipas/pkgcp/files"
  "github.com/adriagipas/pkgcp/utils"
)


/************/
/* OPERACIÓ */
/************/

func List ( args *utils.Args ) error {

  // Sense patrons llista tots els items de tots els paquets
  if len(args.OpArgs) == 0 {
    for _,file := range args.Files {
      pkg,err := files.OpenPackage ( file )
      if err != nil { return err }
      if err := pkg.ListItems ( os.Stdout, "" ); err != nil {
        pkg.Close ()
        return err
      }
      pkg.Close ()
    }
    return nil
  }

  // Processa args
  for _,arg := range args.OpArgs {

    // Obté target
    target,err := args.GetTarget ( arg )
    if err != nil { return err }

    // Obri paquet
    pkg,err := files.OpenPackage ( target.FileName )
    if err != nil { return err }

    // Llista
    if err := pkg.ListItems ( os.Stdout, target.Pattern ); err != nil {
      pkg.Close ()
      return err
    }
    pkg.Close ()

  }

  return nil

} // end List
