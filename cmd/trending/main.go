// cmd/trending/main.go
package main

import "github-trending-api/internal/cli"

func main() {
	cli.Execute()
}
