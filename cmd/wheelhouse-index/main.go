package main

import "github.com/oshokin/wheelhouse/cmd/wheelhouse-index/cmd"

func main() {
	cmd.Execute()
}
