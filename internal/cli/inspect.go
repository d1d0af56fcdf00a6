package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mkessler/deckplan/pkg/deck"
	"github.com/mkessler/deckplan/pkg/deck/classify"
	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/deck/safearea"
	"github.com/mkessler/deckplan/pkg/deck/tuning"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/geometry"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	layout      int    // layout index to inspect
	tuning      string // tuning TOML file
	list        bool   // list every layout instead of inspecting one
	interactive bool   // pick the layout interactively
}

// newInspectCmd creates the inspect command: it classifies a template
// layout's elements and reports the content-safe area.
func newInspectCmd() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [template]",
		Short: "Classify a template layout and show its safe area",
		Long: `Inspect loads a template JSON file, classifies each element of the
selected layout as branding, content, or decoration, and computes the
rectangle where generated content can be placed without colliding with
preserved branding.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.layout, "layout", 0, "template layout index")
	cmd.Flags().StringVar(&opts.tuning, "tuning", "", "tuning TOML file overriding the classification heuristics")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list every layout with its classification summary")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the layout from a list")

	return cmd
}

func runInspect(cmd *cobra.Command, path string, opts *inspectOpts) error {
	logger := loggerFromContext(cmd.Context())

	tmpl, err := deck.LoadTemplate(path)
	if err != nil {
		return err
	}

	cfg := tuning.Default()
	if opts.tuning != "" {
		cfg, err = tuning.Load(opts.tuning)
		if err != nil {
			return err
		}
	}

	if opts.list {
		return listLayouts(tmpl, cfg, path)
	}

	layoutIndex := opts.layout
	if opts.interactive {
		layoutIndex, err = selectLayout(tmpl, cfg)
		if err != nil {
			return err
		}
	}

	comp, err := compose.New(compose.Options{
		Template:    tmpl,
		LayoutIndex: layoutIndex,
		Tuning:      cfg,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	tl, err := tmpl.Layout(layoutIndex)
	if err != nil {
		return err
	}

	cls := comp.Classify()
	sa := comp.SafeArea()

	printKeyValue("Template", templateName(tmpl, path))
	printKeyValue("Canvas", fmt.Sprintf("%.2f x %.2f in", tmpl.Width, tmpl.Height))
	printKeyValue("Layout", layoutLabel(tl))
	printNewline()

	printInfo("Classified %d elements", len(cls.Elements))
	printKeyValue("Branding", fmt.Sprintf("%d", cls.Count(deck.ClassBranding)))
	printKeyValue("Content", fmt.Sprintf("%d", cls.Count(deck.ClassContent)))
	printKeyValue("Decoration", fmt.Sprintf("%d", cls.Count(deck.ClassDecoration)))
	for _, e := range comp.Branding() {
		printDetail("%s %s at %s", e.Kind, elementName(e), formatRect(e.Bounds))
	}
	printNewline()

	if !sa.Usable {
		printWarning("No usable safe area: branding leaves too little room")
		printNextStep("Plan on a blank canvas instead", fmt.Sprintf("%s plan --fallback-to-blank ...", appName))
		return nil
	}

	printSuccess("Safe area %s", formatRect(sa.Area))
	used := sa.Area.Area() / comp.Canvas().Area() * 100
	printDetail("%.0f%% of the canvas is available for content", used)
	return nil
}

// listLayouts prints one line per template layout with its classification
// summary and safe area.
func listLayouts(tmpl *deck.Template, cfg tuning.Config, path string) error {
	printKeyValue("Template", templateName(tmpl, path))
	printKeyValue("Layouts", fmt.Sprintf("%d", len(tmpl.Layouts)))
	printNewline()

	for _, c := range buildLayoutChoices(tmpl, cfg) {
		name := c.Name
		if name == "" {
			name = "—"
		}
		printInfo("%d  %s", c.Index, name)
		printDetail("%d elements, %d branding, safe area %s", c.Elements, c.Branding, c.SafeArea)
	}
	return nil
}

// selectLayout runs the interactive layout picker and returns the chosen
// layout index.
func selectLayout(tmpl *deck.Template, cfg tuning.Config) (int, error) {
	choices := buildLayoutChoices(tmpl, cfg)
	if len(choices) == 0 {
		return 0, errors.New(errors.ErrCodeInvalidTemplate, "template has no layouts")
	}

	model := NewLayoutListModel(tmpl.Name, choices)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "run layout picker")
	}

	result, ok := final.(LayoutListModel)
	if !ok || result.Selected == nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "no layout selected")
	}
	return result.Selected.Index, nil
}

// buildLayoutChoices classifies every layout of the template so the picker
// can show branding counts and safe areas up front.
func buildLayoutChoices(tmpl *deck.Template, cfg tuning.Config) []LayoutChoice {
	canvas := tmpl.Canvas()

	choices := make([]LayoutChoice, 0, len(tmpl.Layouts))
	for _, tl := range tmpl.Layouts {
		cls := classify.Classify(canvas, tl.Elements, cfg.Classify)
		sa := safearea.Compute(canvas, cls.Obstacles(), cfg.SafeArea)

		area := "blocked"
		if sa.Usable {
			area = fmt.Sprintf("%.1f x %.1f in", sa.Area.Width, sa.Area.Height)
		}

		choices = append(choices, LayoutChoice{
			Index:    tl.Index,
			Name:     tl.Name,
			Elements: len(tl.Elements),
			Branding: cls.Count(deck.ClassBranding),
			SafeArea: area,
			Usable:   sa.Usable,
		})
	}
	return choices
}

func templateName(tmpl *deck.Template, path string) string {
	if tmpl.Name != "" {
		return tmpl.Name
	}
	return path
}

func layoutLabel(tl deck.Layout) string {
	if tl.Name != "" {
		return fmt.Sprintf("%d (%s)", tl.Index, tl.Name)
	}
	return fmt.Sprintf("%d", tl.Index)
}

func elementName(e deck.Element) string {
	if e.Name != "" {
		return fmt.Sprintf("%q", e.Name)
	}
	return fmt.Sprintf("#%d", e.ID)
}

// formatRect renders a rectangle as position plus size in inches.
func formatRect(r geometry.Rect) string {
	return fmt.Sprintf("%.2f,%.2f %.2f x %.2f in", r.Left, r.Top, r.Width, r.Height)
}
