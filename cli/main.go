package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SyreCollins/img-metadata/core"
	"github.com/SyreCollins/img-metadata/core/extract"
	"github.com/SyreCollins/img-metadata/server"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		core.PrintError(err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: img-metadata extract [--json] [--top-k N] <file>...")
	fmt.Fprintln(os.Stderr, "       img-metadata serve [--addr :8080] [--max-upload BYTES]")
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	jsonMode := fs.Bool("json", false, "print the record as indented JSON")
	topK := fs.Int("top-k", 0, "dominant color palette size")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Parse(args)

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("no input files")
	}

	p := core.NewPrinter(*jsonMode)
	var failed bool
	for _, path := range fs.Args() {
		rec, err := extract.ExtractFile(path, extract.Options{TopK: *topK})
		if err != nil {
			core.PrintError(path + ": " + err.Error())
			failed = true
			continue
		}
		p.PrintRecord(rec)
	}
	if failed {
		return fmt.Errorf("some files could not be processed")
	}
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "listen address (default :8080, or $PORT)")
	maxUpload := fs.Int64("max-upload", server.DefaultMaxUpload, "multipart upload cap in bytes")
	topK := fs.Int("top-k", 0, "dominant color palette size")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Parse(args)

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	listen := *addr
	if listen == "" {
		listen = ":8080"
		if port := os.Getenv("PORT"); port != "" {
			listen = ":" + port
		}
	}

	handler := server.Handler(server.Options{MaxUpload: *maxUpload, TopK: *topK})
	log.Info().Str("addr", listen).Msg("listening")
	return http.ListenAndServe(listen, handler)
}
