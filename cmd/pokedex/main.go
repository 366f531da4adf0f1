package main

import "github.com/RamiAldahir/Pokedex-Tracker/cmd/pokedex/cmd"

func main() {
	cmd.Execute()
}
