// Command sanityschema inspects content types declared in a YAML schema file:
// it prints their descriptors, generates deterministic sample documents and
// validates documents against them.
package main

func main() {
	Execute()
}
