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
 *  args.go - Processament de la línia de comandaments.
 *
 */

package utils;

import (
  "errors"
  "fmt"
  "os"
  "strconv"
  "strings"
)


/*********/
/* TIPUS */
/*********/

type Args struct {

  // Diccionari amb els fitxers
  Files map[string]string

  // Operador i arguments
  Op     int
  OpArgs []string

  // Estat ocult
  no_names int // Compta quants fitxers hi han sense nom

}


/*************/
/* CONSTANTS */
/*************/

const OP_NONE    = 0
const OP_SHOW    = 1
const OP_LIST    = 2
const OP_SFO     = 3
const OP_CAT     = 4
const OP_EXTRACT = 5


/*********************/
/* FUNCIONS PRIVADES */
/*********************/

func print_usage() {
  P := fmt.Println
  PrintVersion ()
  P("USAGE:\n")
  P("  pkgcp <PKGs> [<OP>]\n")
  P("    <PKGs>: <PKG> [<PKG>]*")
  P("    <PKG>:  <package file name> | <NAME>=<package file name>")
  P("    <NAME>: [A-Z]+")
  P("    <ITEM>: <ITEM_NONAME> | <NAME>=<ITEM_NONAME>")
  P("    <ITEM_NONAME>: An item name or glob pattern")
  P("")
  P("    <OP>: <OP_SHOW> | <OP_LIST> | <OP_SFO> | <OP_CAT> | <OP_EXTRACT>")
  P("")
  P("    <OP_CAT> : cat <ITEM> [<ITEM>]*")
  P("")
  P("    <OP_EXTRACT> : (extract | x) [-flat] <DIR> [<ITEM>]*")
  P("")
  P("    <OP_LIST> : (list | ls) [<ITEM>]*")
  P("")
  P("    <OP_SFO> : sfo")
  P("")
  P("    <OP_SHOW>: show | sh")
  P("")
  P("OPERATIONS:\n")
  P("  cat: Decrypts the selected items and prints them on the standard")
  P("       output")
  P("")
  P("  extract: Decrypts the selected items (all the items if no pattern")
  P("           is provided) into the provided directory. The fixed USRDIR")
  P("           prefix is stripped from the destination paths; with -flat")
  P("           every item is written directly into the directory.")
  P("")
  P("  list: Similar to the UNIX ls command, shows the item entries of")
  P("        the package. Patterns restrict the listed items.")
  P("")
  P("  sfo: Shows the key/value pairs of the embedded SFO document.")
  P("")
  P("  show: This is the default operation. Shows the information")
  P("        of the current packages.")
  P("")
}


func check_name(name string) bool {
  for i := 0; i < len(name); i++ {
    if name[i] < 'A' || name[i] > 'Z' {
      return false
    }
  }
  return true
}


func (self *Args) register_filename(file_name string) error {

  var name string

  // Obté el nom
  ind := strings.Index ( file_name, "=" )
  if ind == -1 {
    name= strconv.FormatInt ( int64(self.no_names+1), 10 )
    self.no_names++
  } else if ind == 0 || ind == len(file_name)-1 {
    return errors.New("wrong file name syntax: "+file_name)
  } else {
    aux := strings.SplitN ( file_name, "=", 2 )
    if len(aux) != 2 || !check_name ( aux[0] ) {
      return errors.New("wrong file name syntax: "+file_name)
    }
    name,file_name= aux[0],aux[1]
  }

  // Intenta registrar
  if _,ok := self.Files[name]; ok {
    return errors.New("repeated file name: "+name)
  }
  self.Files[name]= file_name

  return nil

} // register_filename


/**********************/
/* FUNCIONS PÚBLIQUES */
/**********************/

func NewArgs() (*Args,error) {

  // Crea arguments
  args := Args {
    Op     : OP_NONE,
    Files  : make(map[string]string),
    OpArgs : os.Args[:0],
  }

  // Processa arguments
  for i := 1; i < len(os.Args); i++ {
    if os.Args[i]=="show" || os.Args[i]=="sh" { // Operació show
      args.Op= OP_SHOW
      args.OpArgs= os.Args[i+1:]
      break
    } else if os.Args[i]=="list" || os.Args[i]=="ls" { // Operació list
      args.Op= OP_LIST
      args.OpArgs= os.Args[i+1:]
      break
    } else if os.Args[i]=="sfo" { // Operació sfo
      args.Op= OP_SFO
      args.OpArgs= os.Args[i+1:]
      break
    } else if os.Args[i]=="cat" { // Operació cat
      args.Op= OP_CAT
      args.OpArgs= os.Args[i+1:]
      break
    } else if os.Args[i]=="extract" || os.Args[i]=="x" { // Operació extract
      args.Op= OP_EXTRACT
      args.OpArgs= os.Args[i+1:]
      break
    } else { // Filename
      if err := args.register_filename ( os.Args[i] ); err != nil {
        return nil,err
      }
    }
  }

  // Si no té fitxers mostra usage
  if len(args.Files) == 0 {
    print_usage ()
  }

  return &args,nil

} // end NewArgs


// Aquesta funció processa un 'string' representant un item dins d'un
// paquet i torna un objecte Target.
func (self *Args) GetTarget (target string) (*Target,error) {

  // Trim string
  target= strings.TrimSpace ( target )
  if len(target) == 0 {
    return nil,errors.New ( "Empty item pattern" )
  }

  // Obté el nom del fitxer
  var name string
  ind := strings.Index ( target, "=" )
  if ind == -1 {
    name= strconv.FormatInt ( 1, 10 )
  } else if ind == 0 || ind == len(target)-1 {
    return nil,errors.New("wrong syntax for item: "+target)
  } else {
    aux := strings.SplitN ( target, "=", 2 )
    if len(aux) != 2 || !check_name ( aux[0] ) {
      return nil,errors.New("wrong syntax for item: "+target)
    }
    name,target= aux[0],strings.TrimSpace ( aux[1] )
  }

  // Obté el nom del fitxer real
  file_name,ok := self.Files[name]
  if !ok {
    return nil,fmt.Errorf ( "Unknown file name: %s", name )
  }

  ret := Target{
    FileName: file_name,
    Pattern: target,
  }

  return &ret,nil

} // end GetTarget


/**********/
/* TARGET */
/**********/

type Target struct {
  FileName string // Nom del fitxer on estem buscant
  Pattern  string // Nom o patró de l'item que busquem
}
