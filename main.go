package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/plandes/rend/internal/browser"
	"github.com/plandes/rend/internal/config"
	"github.com/plandes/rend/internal/model"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	var (
		configPath = flag.String("config", "", "config file path (default: under the user config dir)")
		width      = flag.Int("width", 0, "window width override, requires -height")
		height     = flag.Int("height", 0, "window height override, requires -width")
		typeName   = flag.String("type", "", "coerce locators to a type: file or url")
		delimiter  = flag.String("delimiter", "", "locator list delimiter (default from config)")
		showConfig = flag.Bool("show-config", false, "print the display configuration and exit")
	)
	flag.Usage = usage
	flag.Parse()

	opts := options{
		configPath: *configPath,
		width:      *width,
		height:     *height,
		typeName:   *typeName,
		delimiter:  *delimiter,
		showConfig: *showConfig,
		args:       flag.Args(),
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "rend: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "rend v%s: display files and URLs on configured screen extents\n\n", version)
	fmt.Fprintf(out, "usage: rend [options] <locator>[,<locator>...]\n\noptions:\n")
	flag.PrintDefaults()
}

type options struct {
	configPath string
	width      int
	height     int
	typeName   string
	delimiter  string
	showConfig bool
	args       []string
}

func run(opts options) error {
	configPath := opts.configPath
	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = path
	}
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	manager := browser.NewManager(settings)
	if opts.showConfig {
		return manager.WriteConfig(os.Stdout)
	}

	if len(opts.args) == 0 {
		usage()
		return fmt.Errorf("no locators given")
	}

	extent, err := extentFromFlags(opts.width, opts.height)
	if err != nil {
		return err
	}

	delimiter := opts.delimiter
	if delimiter == "" {
		delimiter = settings.Delimiter
	}
	pres := model.PresentationFromString(
		strings.Join(opts.args, delimiter), delimiter, extent)

	if opts.typeName != "" {
		typ, err := model.ParseLocatorType(opts.typeName)
		if err != nil {
			return err
		}
		for _, loc := range pres.Locators {
			loc.Coerce(typ)
		}
	}

	return manager.Show(pres, extent)
}

// extentFromFlags converts the width/height overrides to an extent at the
// origin; both or neither must be given.
func extentFromFlags(width, height int) (*model.Extent, error) {
	if width == 0 && height == 0 {
		return nil, nil
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("both -width and -height are expected when either is given")
	}
	return &model.Extent{Size: model.Size{Width: width, Height: height}}, nil
}
