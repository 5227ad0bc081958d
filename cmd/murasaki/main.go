package main

import "murasaki/internal/app"

func main() {
	app.RunDesktop()
}
