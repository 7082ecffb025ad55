package main

import "github.com/oshokin/wheelhouse/cmd/wheelhouse-publish/cmd"

func main() {
	cmd.Execute()
}
