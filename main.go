package main

import "github.com/thereayou/study-hours/cmd/server"

func main() {
	s := server.NewServer()
	s.Run()
}
