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
 *  cipher.go - Xifradors de flux de la regió de dades.
 */

package ps3

import (
  "crypto/aes"
  "crypto/cipher"
  "crypto/sha1"
  "encoding/binary"
)


/***********/
/* CIPHER  */
/***********/

// Desencripta un tros de la regió de dades. L'offset és absolut dins
// de la regió de dades i el resultat té la mateixa grandària que
// l'entrada. Ha de ser una funció pura de (offset,data): les taules
// de noms es desencripten fora d'ordre i diverses desencriptacions
// poden compartir la mateixa instància.
type Cipher interface {

  Decrypt( offset int64, data []byte ) []byte

}


/**************/
/* CTR CIPHER */
/**************/

type ctrCipher struct {

  block cipher.Block
  iv    [16]byte

}


// Suma el comptador de bloc al IV, en big-endian.
func add_ctr_counter( iv *[16]byte, value int64 ) [16]byte {

  var ret [16]byte= *iv
  n := 16
  for {
    n--
    value+= int64(ret[n])
    ret[n]= byte(value)
    value>>= 8
    if n == 0 {
      break
    }
  }

  return ret

} // end add_ctr_counter


func (self *ctrCipher) Decrypt( offset int64, data []byte ) []byte {

  // Prepara el flux en el bloc que conté l'offset
  civ := add_ctr_counter ( &self.iv, offset/_AES_BLOCK_SIZE )
  stream := cipher.NewCTR ( self.block, civ[:] )

  // Descarta el tros de keystream anterior a l'offset
  if delta := int(offset%_AES_BLOCK_SIZE); delta > 0 {
    var scratch [16]byte
    stream.XORKeyStream ( scratch[:delta], scratch[:delta] )
  }

  // Desencripta
  ret := make([]byte,len(data))
  stream.XORKeyStream ( ret, data )

  return ret

} // end ctrCipher.Decrypt


// Crea un xifrador AES-CTR per a una clau de contingut. En mode
// DERIVE la clau efectiva és l'encriptació ECB del RIV del paquet amb
// la clau de la taula.
func newCTRCipher( ck *contentKey, riv *[16]byte ) (Cipher,error) {

  // Obté clau efectiva
  var key [16]byte
  if ck.mode == KEY_MODE_DERIVE {
    ecb,err := aes.NewCipher ( ck.key[:] )
    if err != nil { return nil,err }
    ecb.Encrypt ( key[:], riv[:] )
  } else {
    key= ck.key
  }

  // Crea
  block,err := aes.NewCipher ( key[:] )
  if err != nil { return nil,err }
  ret := ctrCipher{
    block: block,
    iv: *riv,
  }

  return &ret,nil

} // end newCTRCipher


/****************/
/* DEBUG CIPHER */
/****************/

// Xifrador dels paquets no finalitzats (revisió 0). El keystream de
// cada bloc de 16 bytes és el SHA-1 d'un buffer de 64 bytes derivat
// del digest de la capçalera, amb el comptador de bloc en l'offset
// 0x38.
type debugCipher struct {

  seed [64]byte

}


func (self *debugCipher) Decrypt( offset int64, data []byte ) []byte {

  ret := make([]byte,len(data))
  seed := self.seed
  block := offset/_AES_BLOCK_SIZE
  delta := int(offset%_AES_BLOCK_SIZE)
  pos := 0
  for pos < len(data) {
    binary.BigEndian.PutUint64 ( seed[0x38:], uint64(block) )
    hash := sha1.Sum ( seed[:] )
    for i := delta; i < _AES_BLOCK_SIZE && pos < len(data); i++ {
      ret[pos]= data[pos]^hash[i]
      pos++
    }
    delta= 0
    block++
  }

  return ret

} // end debugCipher.Decrypt


func newDebugCipher( digest *[16]byte ) Cipher {

  ret := debugCipher{}

  // Expansió fixa: els primers 8 bytes del digest dues vegades, els
  // segons 8 bytes dues vegades, la resta a zero.
  copy ( ret.seed[0x00:], digest[0:8] )
  copy ( ret.seed[0x08:], digest[0:8] )
  copy ( ret.seed[0x10:], digest[8:16] )
  copy ( ret.seed[0x18:], digest[8:16] )

  return &ret

} // end newDebugCipher
