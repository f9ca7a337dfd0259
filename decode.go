package fat32

import (
	"encoding/binary"
	"reflect"

	"github.com/dsoprea/go-logging"
	"github.com/go-restruct/restruct"
)

// defaultEncoding is threaded through every restruct/binary decode call in
// this package. FAT32's on-disk structures are always little-endian.
var defaultEncoding = binary.LittleEndian

// unpackStruct decodes raw into x using restruct, following the
// recover-into-wrapped-error idiom used throughout this package: callers
// that would otherwise manually propagate a decode error instead let
// restruct panic on malformed input and recover it here.
func unpackStruct(raw []byte, x interface{}) (err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	err = restruct.Unpack(raw, defaultEncoding, x)
	log.PanicIf(err)

	return nil
}
