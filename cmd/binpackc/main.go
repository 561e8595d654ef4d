// Command binpackc trains context-sensitive probability models over a
// corpus of schema-typed script trees and entropy-codes scripts against
// them, following the External Interfaces surface of the research
// compressor it implements.
package main

import "github.com/binast/binpack/cmd/binpackc/cmd"

func main() {
	cmd.Execute()
}
