package main

import (
	"citypark/app"
)

func main() {
	app.Run()
}
