package main

import "github.com/DS-LIT/hrba-forms/cmd/app"

func main() {
	app.Run()
}
