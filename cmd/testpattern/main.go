// Command testpattern builds the test pattern core as a libretro shared
// library:
//
//	go build -buildmode=c-shared -o goretro_testpattern_libretro.so ./cmd/testpattern
package main

import (
	"github.com/user-none/goretro/libretro"
	"github.com/user-none/goretro/testpattern"
)

func init() {
	libretro.Register(&testpattern.Factory{})
}

func main() {}
