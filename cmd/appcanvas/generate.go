package main

import (
	"context"
	"fmt"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/appcanvas-dev/appcanvas/internal/config"
	"github.com/appcanvas-dev/appcanvas/internal/errors"
	"github.com/appcanvas-dev/appcanvas/internal/generate"
	"github.com/appcanvas-dev/appcanvas/internal/page"
	"github.com/appcanvas-dev/appcanvas/internal/registry/kinds"
	"github.com/appcanvas-dev/appcanvas/internal/storage"
	"github.com/appcanvas-dev/appcanvas/internal/storage/memory"
	"github.com/appcanvas-dev/appcanvas/internal/storage/postgres"
)

func generateCmd() *cobra.Command {
	var (
		out     string
		appName string
		upload  bool
	)

	cmd := &cobra.Command{
		Use:   "generate <appKey|pageId>",
		Short: "Generate a React Native project from a saved page",
		Long: `Generate a React Native project tree from a saved page.

The argument is an app key (the current page is used: the preview
slug first, then the most recently saved page) or a specific page
id. Kinds the generator has no fragment for degrade to an empty
container; the run still succeeds.

Examples:
  appcanvas generate shop-1
  appcanvas generate shop-1 --out ./build/shop-1
  appcanvas generate 4f1c... --name "Acme Store" --upload`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args[0], out, appName, upload)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (default <outputRoot>/<appKey>)")
	cmd.Flags().StringVarP(&appName, "name", "n", "", "App display name (default the page name)")
	cmd.Flags().BoolVarP(&upload, "upload", "u", false, "Upload the generated tree as a zip bundle to S3")

	return cmd
}

func runGenerate(appKeyOrID, out, appName string, upload bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	reg := kinds.Default()

	var store storage.PageStore
	if cfg.Database.URL != "" {
		pg, err := postgres.Open(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer pg.Close()
		store = pg
	} else {
		store = memory.New()
	}
	gateway := storage.NewGateway(store, reg)

	ctx := context.Background()
	p, appKey, err := resolvePage(ctx, gateway, appKeyOrID)
	if err != nil {
		return err
	}

	if appName == "" {
		appName = p.Name
	}
	if out == "" {
		out = filepath.Join(cfg.Generate.OutputRoot, appKey)
	}

	printBanner()
	fmt.Println("  generate")
	fmt.Println()
	info("page:       %s (%s)", p.Name, p.ID)
	info("components: %d", len(p.Instances))

	gen := generate.New(log)
	if err := gen.Generate(p, generate.Meta{AppName: appName, AppKey: appKey}, out); err != nil {
		return err
	}
	success("project tree written to %s", out)

	if upload {
		if cfg.Generate.S3Bucket == "" {
			warn("--upload set but no s3Bucket configured, skipping")
			return nil
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return errors.New(errors.CodeUploadFailed).Wrap(err)
		}
		uploader := generate.NewBundleUploader(s3.NewFromConfig(awsCfg), cfg.Generate.S3Bucket, cfg.Generate.S3Prefix)
		key, err := uploader.Upload(ctx, appKey, out)
		if err != nil {
			return err
		}
		success("bundle uploaded to s3://%s/%s", cfg.Generate.S3Bucket, key)
	}

	return nil
}

// resolvePage treats the argument as an app key first, then as a page
// id, and reports which app the page belongs to.
func resolvePage(ctx context.Context, gateway *storage.Gateway, appKeyOrID string) (*page.Page, string, error) {
	p, err := gateway.LoadCurrentPage(ctx, appKeyOrID)
	if err == nil {
		return p, appKeyOrID, nil
	}
	if !errors.HasCode(err, errors.CodePageNotFound) {
		return nil, "", err
	}

	p, err = gateway.LoadPage(ctx, appKeyOrID)
	if err != nil {
		if errors.HasCode(err, errors.CodePageNotFound) {
			return nil, "", errors.New(errors.CodeAppNotFound).
				WithDetail(fmt.Sprintf("%q matches no app key or page id", appKeyOrID))
		}
		return nil, "", err
	}
	return p, p.AppKey, nil
}
