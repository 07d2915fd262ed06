// Command g1sim drives the region-based collector simulator.
package main

func main() {
	execute()
}
