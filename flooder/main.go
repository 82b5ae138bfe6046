package main

import "github.com/nodemetrics/statsd-go/flooder/cmd/flood"

func main() {
	flood.Execute()
}
