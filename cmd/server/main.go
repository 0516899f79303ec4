package main

import "taqyim/internal/app/server"

func main() {
	server.Run()
}
