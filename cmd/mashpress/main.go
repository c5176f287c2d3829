package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fortes/mashpress/internal/cache"
	"github.com/fortes/mashpress/internal/compose"
	"github.com/fortes/mashpress/internal/domain/config"
	"github.com/fortes/mashpress/internal/domain/content"
	"github.com/fortes/mashpress/internal/ingest"
	"github.com/fortes/mashpress/internal/pages"
	"github.com/fortes/mashpress/internal/publish"
	"github.com/fortes/mashpress/internal/render"
	"github.com/fortes/mashpress/internal/store"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "mashpress",
		Short: "Markdown blog engine with a publication lifecycle",
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "mashpress.yaml", "config file path")

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(setCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(trashCmd())
	rootCmd.AddCommand(purgeCmd())
	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(pagesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg   config.Config
	store *store.Store
	cache *cache.Coordinator
	svc   *publish.Service
}

func newApp() (*app, error) {
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(store.OpenOptions{Path: cfg.Store.Path})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	co := cache.NewCoordinator(cache.NewMemory(), st, log)

	proc := compose.NewProcessor(render.NewMarkdownRenderer())
	if cfg.Content.TitleLimit > 0 {
		proc.TitleLimit = cfg.Content.TitleLimit
	}
	if cfg.Content.Ellipsis != "" {
		proc.Ellipsis = cfg.Content.Ellipsis
	}

	svc := publish.New(publish.Options{
		Store:      st,
		Cache:      co,
		Processor:  proc,
		Log:        log,
		TitleLimit: cfg.Content.TitleLimit,
	})

	return &app{cfg: cfg, store: st, cache: co, svc: svc}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the root page and seed the site settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			root, created, err := a.svc.EnsureRoot(a.cfg.Site.Title)
			if err != nil {
				return err
			}
			if created {
				fmt.Printf("Created root page %q\n", root.Title)
			} else {
				fmt.Printf("Root page already exists: %q\n", root.Title)
			}
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import markdown sources into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			log := slog.New(slog.NewTextHandler(os.Stderr, nil))
			im := ingest.New(a.cfg.Import.SourceDir, a.svc, log)

			if watch || a.cfg.Import.Watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				if err := im.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			}

			res, err := im.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d files: %d created, %d updated, %d warnings\n",
				res.Files, res.Created, res.Updated, len(res.Warns))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and re-import on changes")
	return cmd
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [name] [value]",
		Short: "Write a site setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.svc.PutSetting(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func settingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "List all site settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := a.cache.Settings()
			if err != nil {
				return err
			}
			if len(m) == 0 {
				fmt.Println("No settings yet. Use 'mashpress set' to create one.")
				return nil
			}

			names := make([]string, 0, len(m))
			for name := range m {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s = %s\n", name, m[name])
			}
			return nil
		},
	}
}

func trashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trash [slug]",
		Short: "Move the item holding a slug to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			it, err := a.store.FindBySlug(args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("item not found: %s", args[0])
			}
			if err != nil {
				return err
			}
			if err := a.svc.Trash(&it); err != nil {
				return err
			}
			fmt.Printf("Trashed %s\n", it.Slug)
			return nil
		},
	}
}

func purgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge [slug]",
		Short: "Permanently delete a trashed item and its aliases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			it, err := a.store.FindBySlug(args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("item not found: %s", args[0])
			}
			if err != nil {
				return err
			}
			if !it.IsTrash() {
				return fmt.Errorf("%s is not in the trash; trash it first", it.Slug)
			}
			if err := a.svc.Purge(&it); err != nil {
				return err
			}
			fmt.Printf("Purged %s\n", it.Slug)
			return nil
		},
	}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [slug]",
		Short: "Resolve a historical slug to its current live item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			it, err := a.svc.ResolveAlias(args[0])
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no live item behind %s", args[0])
				}
				return err
			}
			fmt.Printf("%s -> %s (%s)\n", args[0], it.Slug, it.Title)
			return nil
		},
	}
}

func pagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages [root|archive]",
		Short: "Print a composed page body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			b := pages.NewBuilder(a.store, a.cache, plainRenderer{})

			var body []byte
			switch args[0] {
			case "root":
				body, err = b.Root()
			case "archive":
				body, err = b.Archive()
			default:
				return fmt.Errorf("unknown page: %s", args[0])
			}
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(body)
			return err
		},
	}
}

// plainRenderer is the built-in unthemed page renderer.
type plainRenderer struct{}

func (plainRenderer) RenderRoot(root content.Item, posts []content.Item) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<h1>%s</h1>\n%s\n<ul>\n", root.Title, root.HTML)
	for _, p := range posts {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`+"\n", p.Slug, p.Title)
	}
	b.WriteString("</ul>\n")
	return b.Bytes(), nil
}

func (plainRenderer) RenderArchive(posts []content.Item) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("<ul>\n")
	for _, p := range posts {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a> %s</li>`+"\n",
			p.Slug, p.Title, p.ArchiveLink())
	}
	b.WriteString("</ul>\n")
	return b.Bytes(), nil
}
