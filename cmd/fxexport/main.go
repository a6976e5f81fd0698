package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog/log"

	"github.com/DaniPopes/tracy/internal/convert"
	"github.com/DaniPopes/tracy/internal/logutil"
	"github.com/DaniPopes/tracy/internal/tracejson"
)

type options struct {
	Pretty   bool   `env:"FXEXPORT_PRETTY" env-default:"false"`
	LogLevel string `env:"FXEXPORT_LOG_LEVEL" env-default:"info"`
}

func main() {
	logutil.ConfigureLogger()

	var opts options
	if err := cleanenv.ReadEnv(&opts); err != nil {
		log.Fatal().Err(err).Msg("error reading environment")
	}
	logutil.SetLevel(opts.LogLevel)

	output := flag.String("o", "", "output path (default stdout; a .gz suffix compresses)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-o output] <trace dump>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	start := time.Now()
	r, err := tracejson.Open(input)
	if err != nil {
		log.Fatal().Err(err).Str("path", input).Msg("error reading trace dump")
	}
	log.Debug().Str("path", input).Dur("duration", time.Since(start)).Msg("trace dump read")

	p := convert.Profile(r)
	log.Info().
		Int("threads", len(p.Threads)).
		Int("counters", len(p.Counters)).
		Int("libs", len(p.Libs)).
		Msg("profile assembled")

	if err := writeProfile(*output, p, opts.Pretty); err != nil {
		log.Fatal().Err(err).Str("path", *output).Msg("error writing profile")
	}
	dest := *output
	if dest == "" {
		dest = "stdout"
	}
	log.Info().Str("path", dest).Dur("duration", time.Since(start)).Msg("done")
}

// writeProfile encodes p to path, or to stdout when path is empty.
func writeProfile(path string, p interface{}, pretty bool) error {
	if path == "" {
		return encodeProfile(os.Stdout, p, pretty)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var w io.Writer = f
	var zw *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}

	if err := encodeProfile(w, p, pretty); err != nil {
		f.Close()
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

func encodeProfile(w io.Writer, p interface{}, pretty bool) error {
	enc := gojson.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(p)
}
