package main

import (
	"context"
	"flag"
	"log"
	"os"

	platformcmd "github.com/louisbranch/sheetkeeper/internal/platform/cmd"
	"github.com/louisbranch/sheetkeeper/internal/platform/config"
	"github.com/louisbranch/sheetkeeper/internal/services/catalog/importer"
)

func main() {
	log.SetPrefix(platformcmd.LogPrefix(platformcmd.ServiceCatalogImport))

	cfg, err := importer.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	err = platformcmd.RunWithTelemetry(context.Background(), platformcmd.ServiceCatalogImport, func(ctx context.Context) error {
		return importer.Run(ctx, cfg, os.Stdout)
	})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}
