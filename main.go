package main

import (
	"github.com/queryd-io/queryd/cmd"
)

func main() {
	cmd.Execute()
}
