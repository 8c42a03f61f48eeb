package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/mmadfox/geocontains"
	"github.com/mmadfox/geocontains/internal/config"
	"github.com/mmadfox/geocontains/internal/geojson"
	"github.com/mmadfox/geocontains/internal/locate"
)

type pointsFlag []geocontains.Point

func (f *pointsFlag) String() string {
	parts := make([]string, len(*f))
	for i, p := range *f {
		parts[i] = formatPoint(p)
	}
	return strings.Join(parts, " ")
}

func (f *pointsFlag) Set(s string) error {
	p, err := parsePoint(s)
	if err != nil {
		return err
	}
	*f = append(*f, p)
	return nil
}

func main() {
	fs := flag.NewFlagSet("geocontains", flag.ExitOnError)
	var (
		confFilename = fs.String("config", "", "Sets configuration filename. Defaults are used when empty.")
		dataFilename = fs.String("data", "", "GeoJSON file with the geometries to query.")
		points       pointsFlag
	)
	fs.Var(&points, "point", "Query point as lon,lat. Repeatable. Reads points from stdin when not set.")
	fs.Usage = usageFor(fs, os.Args[0]+" [flags]")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Printf("[ERROR] fs.Parse(%v) => %v\n", os.Args[1:], err)
		os.Exit(1)
	}

	envConfFilename := os.Getenv("CONFIG")
	if len(envConfFilename) > 0 {
		*confFilename = envConfFilename
	}
	conf := config.Default()
	if len(*confFilename) > 0 {
		var err error
		conf, err = config.FromFile(*confFilename)
		if err != nil {
			fmt.Printf("[ERROR] config.FromFile(%s) => %v\n", *confFilename, err)
			os.Exit(1)
		}
	}

	logger, err := conf.BuildLogger()
	if err != nil {
		fmt.Printf("[ERROR] conf.BuildLogger() => %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugarLogger := logger.Sugar()

	if len(*dataFilename) == 0 {
		fs.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	index, err := loadIndex(ctx, conf, logger, *dataFilename)
	if err != nil {
		sugarLogger.Errorf("failed to load %s: %v", *dataFilename, err)
		os.Exit(1)
	}
	sugarLogger.Infof("loaded %d geometries from %s", index.Len(), *dataFilename)

	var source io.Reader
	if len(points) == 0 {
		source = os.Stdin
	}
	if err := run(ctx, index, points, source, os.Stdout); err != nil {
		sugarLogger.Errorf("exit: %v", err)
		os.Exit(1)
	}
}

func loadIndex(ctx context.Context, conf *config.Config, logger *zap.Logger, filename string) (*locate.Index, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	g, err := geojson.Parse(string(data), &geojson.Options{Rewind: conf.Rewind()})
	if err != nil {
		return nil, err
	}
	index, err := locate.New(
		locate.WithLogger(logger),
		locate.WithWorkers(conf.Workers()),
		locate.WithOptions(conf.Options()),
	)
	if err != nil {
		return nil, err
	}
	switch geom := g.(type) {
	case geocontains.FeatureCollection:
		err = index.AddFeatures(ctx, geom)
	case geocontains.Feature:
		err = index.AddFeatures(ctx, geocontains.FeatureCollection{geom})
	default:
		err = index.Add(ctx, "0", g)
	}
	if err != nil {
		return nil, err
	}
	return index, nil
}

// run answers every point from points, then every line of source when it
// is not nil.
func run(ctx context.Context, index *locate.Index, points []geocontains.Point, source io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)
	defer out.Flush()
	for _, p := range points {
		if err := answer(ctx, index, p, out); err != nil {
			return err
		}
	}
	if source == nil {
		return nil
	}
	scanner := bufio.NewScanner(source)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := parsePoint(line)
		if err != nil {
			return err
		}
		if err := answer(ctx, index, p, out); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func answer(ctx context.Context, index *locate.Index, p geocontains.Point, w io.Writer) error {
	ids, err := index.Locate(ctx, p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\t%t\t%s\n", formatPoint(p), len(ids) > 0, strings.Join(ids, " "))
	return err
}

func parsePoint(s string) (geocontains.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geocontains.Point{}, fmt.Errorf("invalid point %q, want lon,lat", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geocontains.Point{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geocontains.Point{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	return geocontains.Pt(lon, lat), nil
}

func formatPoint(p geocontains.Point) string {
	return strconv.FormatFloat(p.Lon, 'g', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'g', -1, 64)
}

func usageFor(fs *flag.FlagSet, short string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "USAGE\n")
		fmt.Fprintf(os.Stderr, "  %s\n", short)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		w := tabwriter.NewWriter(os.Stderr, 0, 2, 2, ' ', 0)
		fs.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(w, "\t-%s %s\t%s\n", f.Name, f.DefValue, f.Usage)
		})
		w.Flush()
		fmt.Fprintf(os.Stderr, "\n")
	}
}
