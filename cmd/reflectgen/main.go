// Command reflectgen generates field registries for the types named in a
// YAML config. See reflectgen --help.
package main

import "reflect-registry/internal/cli"

func main() {
	cli.Execute()
}
