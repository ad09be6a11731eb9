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
 *  sfo.go - Implementa l'operació SFO. Mostra per pantalla el
 *           document SFO del paquet.
 *
 */

package ops

import (
  "fmt"

  "github.com/adriagipas/pkgcp/files"
  "github.com/adriagipas/pkgcp/utils"
)


/************/
/* OPERACIÓ */
/************/

func Sfo ( args *utils.Args ) error {

  // No es suporten arguments
  if len(args.OpArgs) != 0 {
    return fmt.Errorf ( "(SFO) invalid arguments: %v", args.OpArgs )
  }

  // Executa operació
  print_name := len(args.Files)>1
  for name,file := range args.Files {
    if print_name {
      fmt.Printf("%s) \"%s\"\n",name,file)
    }
    pkg,err := files.OpenPackage ( file )
    if err != nil { return err }
    fmt.Printf("version: %s\n",pkg.State.Sfo.Version)
    for _,e := range pkg.State.Sfo.Entries {
      fmt.Printf("%s=%s\n",e.Key,e.Value)
    }
    pkg.Close ()
  }

  return nil

} // end Sfo
