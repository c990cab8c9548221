package main

import "github.com/jpclemente97/MCT4052FinalProject/cmd"

func main() {
	cmd.Execute()
}
