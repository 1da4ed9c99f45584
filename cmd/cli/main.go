package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/dsemenov/accountd/internal/client/api"
	"github.com/dsemenov/accountd/internal/client/cli"
)

func main() {

	serverURL := flag.String("s", "http://localhost:8080", "account server base URL")
	flag.Parse()

	app := cli.NewApp(api.NewClient(*serverURL), os.Stdin, os.Stdout)

	if err := app.Run(context.Background()); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
