package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/totegamma/foodgram/internal/config"
	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/infra/database"
	"github.com/totegamma/foodgram/internal/infra/repository"
	"github.com/totegamma/foodgram/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	ingredientsPath := flag.String("ingredients", "", "ingredients file (.csv or .json)")
	tagsPath := flag.String("tags", "", "tags csv file")
	flag.Parse()

	if *ingredientsPath == "" && *tagsPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to load: pass -ingredients and/or -tags")
		os.Exit(2)
	}

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(conf.Server.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewPostgres(conf.Server.PostgresDsn, log)
	if err != nil {
		log.Fatal("failed to connect database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", "error", err)
	}

	ctx := context.Background()
	catalog := repository.NewCatalogRepository(db)

	if *ingredientsPath != "" {
		if err := loadIngredients(ctx, catalog, log, *ingredientsPath); err != nil {
			log.Fatal("failed to load ingredients", "file", *ingredientsPath, "error", err)
		}
	}
	if *tagsPath != "" {
		if err := loadTags(ctx, catalog, log, *tagsPath); err != nil {
			log.Fatal("failed to load tags", "file", *tagsPath, "error", err)
		}
	}
}

type catalogWriter interface {
	BulkCreateIngredients(ctx context.Context, ingredients []domain.Ingredient) (int64, error)
	BulkCreateTags(ctx context.Context, tags []domain.Tag) (int64, error)
}

func loadIngredients(ctx context.Context, catalog catalogWriter, log *logger.Logger, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open ingredients file")
	}
	defer file.Close()

	var ingredients []domain.Ingredient
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		ingredients, err = parseIngredientsJSON(file)
	} else {
		ingredients, err = parseIngredientsCSV(file)
	}
	if err != nil {
		return err
	}

	log.Info("loading ingredients", "file", path, "rows", len(ingredients))
	inserted, err := catalog.BulkCreateIngredients(ctx, ingredients)
	if err != nil {
		return err
	}
	log.Info("ingredients loaded", "inserted", inserted, "skipped", int64(len(ingredients))-inserted)
	return nil
}

func loadTags(ctx context.Context, catalog catalogWriter, log *logger.Logger, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open tags file")
	}
	defer file.Close()

	tags, err := parseTagsCSV(file)
	if err != nil {
		return err
	}

	log.Info("loading tags", "file", path, "rows", len(tags))
	inserted, err := catalog.BulkCreateTags(ctx, tags)
	if err != nil {
		return err
	}
	log.Info("tags loaded", "inserted", inserted, "skipped", int64(len(tags))-inserted)
	return nil
}
