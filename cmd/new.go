package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/denysvitali/webtree/internal/models"
	"github.com/denysvitali/webtree/pkg/page"
	"github.com/denysvitali/webtree/pkg/telemetry"
)

const newUsage = `Usage: webtree new "Page Title" path/to/file.html

Examples:
  webtree new "My Blog Post" posts/my-post.html
  webtree new "About Me" about.html
  webtree new "Deep Page" projects/web/deep/page.html`

// clock dates new pages.
var clock = time.Now

func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `new "<title>" <path>`,
		Short: "Create a new HTML page from the page template",
		Long: `Create a page below the content root. ".html" is appended to the path when
missing and parent directories are created as needed. An existing file at the
same path is overwritten.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				fmt.Fprintln(cmd.OutOrStdout(), newUsage)
				return errUsage
			}
			return nil
		},
		RunE: runNewPage,
	}

	cmd.Flags().String("content-root", "", "Directory pages are created in (default html)")
	cmd.Flags().String("editor", "", "Editor suggested after creation (default $EDITOR or nano)")
	cmd.Flags().String("markdown", "", "Markdown file rendered as the page body")

	_ = viper.BindPFlag("page.content_root", cmd.Flags().Lookup("content-root"))
	_ = viper.BindPFlag("page.editor", cmd.Flags().Lookup("editor"))

	return cmd
}

func runNewPage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cleanup := startTelemetry(cfg)
	defer cleanup()

	req := models.PageRequest{Title: args[0], Path: args[1]}

	mdPath, err := cmd.Flags().GetString("markdown")
	if err != nil {
		return err
	}
	if mdPath != "" {
		src, err := os.ReadFile(mdPath)
		if err != nil {
			return fmt.Errorf("failed to read markdown body: %w", err)
		}
		if req.BodyHTML, err = page.RenderMarkdown(src); err != nil {
			return err
		}
	}

	result, err := page.New(cfg.Page.ContentRoot, logger).WithClock(clock).Create(cmd.Context(), req)
	if err != nil {
		return err
	}
	telemetry.ReportJSON(cmd.Context(), logger, "create_page", result)

	printCreated(cmd.OutOrStdout(), result, cfg.Page.Editor)
	return nil
}

func printCreated(w io.Writer, result models.PageResult, editor string) {
	fmt.Fprintf(w, "✓ Created: %s\n", result.Path)
	fmt.Fprintf(w, "  Title: %s\n", result.Title)
	fmt.Fprintf(w, "  Date: %s\n", result.Date)
	fmt.Fprintf(w, "\nEdit with: %s %s\n", editor, result.Path)
}
