// Command qrlens decodes a single QR symbol from an image file,
// writing debug and decoded SVG renderings alongside the staged
// input, and printing the recovered payload to stdout.
package main

func main() {
	Execute()
}
