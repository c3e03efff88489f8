package main

import "nusacrm/internal/app"

func main() {
	app.Run()
}
