package main

import (
	"os"

	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
