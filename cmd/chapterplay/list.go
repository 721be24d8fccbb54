package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-chapterplay/internal/catalog"
	"github.com/hazadus/go-chapterplay/internal/config"
	"github.com/hazadus/go-chapterplay/internal/metadata"
	"github.com/hazadus/go-chapterplay/internal/search"
	"github.com/hazadus/go-chapterplay/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand(ctx context.Context) *cobra.Command {
	var (
		query    string
		withTags bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chapters and tracks",
		Long:  `Display chapters and their tracks, optionally filtered by a search query.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.listTracks(ctx, query, withTags)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter tracks by key, e.g. \"2-0\"")
	cmd.Flags().BoolVar(&withTags, "tags", false, "show tags, duration and size of every track")
	return cmd
}

func (app *Application) listTracks(ctx context.Context, query string, withTags bool) error {
	var (
		cat *catalog.Catalog
		err error
	)
	if withTags {
		// Для тегов нужны сами файлы
		cat, err = app.loadCatalog(ctx)
	} else {
		cat, err = app.catalogNames(ctx)
	}
	if err != nil {
		return err
	}

	if cat.Len() == 0 {
		fmt.Println("📚 Треков нет. Добавьте их с помощью команды 'add'.")
		return nil
	}

	res := search.Apply(query, cat.Chapters(), nil)
	if res.ShowEmptyState {
		fmt.Printf("🔍 %s\n", search.EmptyStateText)
		return nil
	}

	extractor := metadata.NewExtractor()
	for _, ch := range cat.Chapters() {
		sec, _ := res.Section(ch.Number)
		if !sec.Visible {
			continue
		}
		fmt.Printf("📖 %s   %s\n", ch.Title(), ch.CountLabel())

		for _, t := range ch.Tracks {
			if !res.TrackVisible(t.Key()) {
				continue
			}
			if !withTags {
				fmt.Printf("   %-10s %s\n", t.Name(), t.FileLabel())
				continue
			}
			fmt.Printf("   %-10s %-10s %s\n", t.Name(), t.FileLabel(),
				describeFile(extractor, filepath.Join(app.Config.PlaybackDir(), t.SourceID)))
		}
	}

	fmt.Println()
	fmt.Println("💡 Используйте 'chapterplay play [ключ]' для воспроизведения трека")
	return nil
}

// catalogNames строит каталог без скачивания: для s3 по списку объектов бакета
func (app *Application) catalogNames(ctx context.Context) (*catalog.Catalog, error) {
	if app.Config.Source != config.SourceS3 {
		return catalog.Load(app.Config.PlaybackDir())
	}
	bucket, err := app.newBucket()
	if err != nil {
		return nil, err
	}
	names, err := bucket.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(names), nil
}

// describeFile возвращает строку с тегами, длительностью и размером файла
func describeFile(extractor *metadata.Extractor, path string) string {
	info, err := extractor.Read(path)

	parts := make([]string, 0, 3)
	if label := info.Tags.Label(); label != "" {
		parts = append(parts, utils.TruncateString(label, 40))
	}
	if err != nil {
		parts = append(parts, "N/A")
	} else {
		parts = append(parts, utils.FormatDuration(info.Duration))
	}
	if info.Size > 0 {
		parts = append(parts, utils.FormatFileSize(info.Size))
	}
	return strings.Join(parts, " | ")
}
