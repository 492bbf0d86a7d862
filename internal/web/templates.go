package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/justestif/go-mood-to-music/internal/mood"
	"github.com/justestif/go-mood-to-music/internal/trends"
)

// Templates holds one parsed template set per page.
type Templates struct {
	pages map[string]*template.Template
	funcs template.FuncMap
}

// NewTemplates parses pages/*.html, each together with every file in
// layouts/ and partials/.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	if templatesFS == nil {
		return nil, fmt.Errorf("no templates filesystem")
	}

	t := &Templates{
		pages: make(map[string]*template.Template),
		funcs: defaultFuncs(),
	}
	if err := t.load(templatesFS); err != nil {
		return nil, err
	}
	return t, nil
}

// Render executes the "base" layout for page.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

func (t *Templates) load(templatesFS fs.FS) error {
	var common []string
	for _, pattern := range []string{"layouts/*.html", "partials/*.html"} {
		matches, err := fs.Glob(templatesFS, pattern)
		if err != nil {
			return fmt.Errorf("finding %s: %w", pattern, err)
		}
		common = append(common, matches...)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates found")
	}

	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")
		files := append([]string{page}, common...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		t.pages[name] = tmpl
	}
	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// moodColor returns an HSL color string based on energy and valence.
		// Energy maps to hue (cool indigo to warm orange)
		// Valence affects saturation and lightness
		"moodColor": func(energy, valence float64) template.CSS {
			hue := 264 - (energy * 229)
			if hue < 0 {
				hue += 360
			}
			saturation := 60 + (valence * 40)
			lightness := 40 + (valence * 20)
			return template.CSS(fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", hue, saturation, lightness)) //nolint:gosec // built from numbers
		},

		"title": func(s string) string {
			return titleCase.String(s)
		},

		// add adds two integers (for 1-based indexing in loops)
		"add": func(a, b int) int {
			return a + b
		},
	}
}

var titleCase = cases.Title(language.English)

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	CurrentPath string
	Moods       []MoodButton
}

// MoodButton is one selectable mood on the button page.
type MoodButton struct {
	Label       string
	Description string
	Energy      float64
	Valence     float64
}

func newPageData(title string, r *http.Request) PageData {
	profiles := mood.Profiles()
	labels := mood.Labels()

	buttons := make([]MoodButton, 0, len(labels))
	for _, label := range labels {
		p := profiles[label]
		coords := trends.Coordinates(p)
		buttons = append(buttons, MoodButton{
			Label:       label,
			Description: p.Description,
			Energy:      coords[0],
			Valence:     coords[1],
		})
	}

	return PageData{
		Title:       title,
		CurrentPath: r.URL.Path,
		Moods:       buttons,
	}
}
