package main

import (
	"os"

	"storefront-catalog-miner/cmd/etl/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
