package main

import "github.com/ranorsolutions/barber-booking-web/pkg/cli"

func main() {
	cli.Execute()
}
