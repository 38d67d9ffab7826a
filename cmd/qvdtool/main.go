package main

import "github.com/arloliu/qvd/cmd/qvdtool/cmd"

func main() {
	cmd.Execute()
}
