package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/hlzx-cpu/VEX-rankings/internal/rating"
)

// beijing is the timezone shown on the published page
var beijing = time.FixedZone("UTC+8", 8*60*60)

// Generator renders the static rankings page. The output is a single
// self-contained HTML file suitable for GitHub Pages.
type Generator struct {
	dir        string
	seasonYear int
	now        func() time.Time
}

// NewGenerator creates a generator that writes index.html into dir
func NewGenerator(dir string, seasonYear int) *Generator {
	return &Generator{dir: dir, seasonYear: seasonYear, now: time.Now}
}

// pageData feeds the page template
type pageData struct {
	Title      string
	Years      string
	UpdateTime string
	Plot       string
	TeamData   string
}

// Write renders rows into index.html, replacing the page in one rename
func (g *Generator) Write(rows []rating.Row) error {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create rankings directory: %w", err)
	}

	years := fmt.Sprintf("%d-%d", g.seasonYear, g.seasonYear+1)

	plotJSON, err := json.Marshal(buildPlot(rows, chartTitle(years)))
	if err != nil {
		return fmt.Errorf("failed to encode plot: %w", err)
	}
	teamJSON, err := json.Marshal(buildTeamLookup(rows))
	if err != nil {
		return fmt.Errorf("failed to encode team lookup: %w", err)
	}

	data := pageData{
		Title:      fmt.Sprintf("VURC %s Rankings", years),
		Years:      years,
		UpdateTime: g.now().In(beijing).Format("2006-01-02 15:04:05"),
		Plot:       string(plotJSON),
		TeamData:   string(teamJSON),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render rankings page: %w", err)
	}

	tmp, err := os.CreateTemp(g.dir, ".index-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp page: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write rankings page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close rankings page: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(g.dir, "index.html")); err != nil {
		return fmt.Errorf("failed to publish rankings page: %w", err)
	}

	return nil
}

func chartTitle(years string) string {
	return "Elo vs Strength of Schedule vs Skills Scores (Color = Driver, Size = Programming) ---VURC--- " + years
}

// buildPlot assembles the Plotly figure. Teams with recorded skills get
// the bubble treatment, the rest are drawn as small fixed dots.
func buildPlot(rows []rating.Row, title string) map[string]interface{} {
	var withSkills, noSkills []rating.Row
	for _, r := range rows {
		if r.ProgrammingSkills > 0 {
			withSkills = append(withSkills, r)
		} else {
			noSkills = append(noSkills, r)
		}
	}

	traces := make([]map[string]interface{}, 0, 2)

	if len(withSkills) > 0 {
		x := make([]float64, len(withSkills))
		y := make([]float64, len(withSkills))
		names := make([]string, len(withSkills))
		sizes := make([]float64, len(withSkills))
		colors := make([]int, len(withSkills))
		custom := make([][]int, len(withSkills))
		for i, r := range withSkills {
			x[i] = r.ScheduleStrength
			y[i] = r.Rating
			names[i] = r.Team
			sizes[i] = math.Sqrt(float64(r.ProgrammingSkills)) * 2
			colors[i] = r.DriverSkills
			custom[i] = []int{r.DriverSkills, r.ProgrammingSkills}
		}

		traces = append(traces, map[string]interface{}{
			"type":         "scatter",
			"x":            x,
			"y":            y,
			"mode":         "markers+text",
			"text":         names,
			"textposition": "top center",
			"textfont":     map[string]interface{}{"size": 9, "color": "#c9d1d9"},
			"marker": map[string]interface{}{
				"size":       sizes,
				"color":      colors,
				"colorscale": "Plasma",
				"colorbar": map[string]interface{}{
					"title": map[string]interface{}{
						"text": "Driver Skills",
						"side": "top",
						"font": map[string]interface{}{"color": "#c9d1d9"},
					},
					"tickvals":  []int{0, 20, 40, 60, 80, 100, 120, 140},
					"tickfont":  map[string]interface{}{"color": "#8b949e"},
					"x":         1.01,
					"xanchor":   "left",
					"yanchor":   "middle",
					"y":         0.5,
					"len":       0.75,
					"thickness": 16,
				},
				"line":      map[string]interface{}{"width": 0.5, "color": "rgba(255,255,255,0.25)"},
				"opacity":   0.82,
				"showscale": true,
			},
			"hovertemplate": "<b>%{text}</b><br>SoS: %{x:.4f}<br>Elo: %{y:.1f}<br>Driver: %{customdata[0]}<br>Programming: %{customdata[1]}<extra></extra>",
			"customdata":    custom,
		})
	}

	if len(noSkills) > 0 {
		x := make([]float64, len(noSkills))
		y := make([]float64, len(noSkills))
		names := make([]string, len(noSkills))
		for i, r := range noSkills {
			x[i] = r.ScheduleStrength
			y[i] = r.Rating
			names[i] = r.Team
		}

		traces = append(traces, map[string]interface{}{
			"type":         "scatter",
			"x":            x,
			"y":            y,
			"mode":         "markers+text",
			"text":         names,
			"textposition": "top center",
			"textfont":     map[string]interface{}{"size": 9, "color": "#8b949e"},
			"marker": map[string]interface{}{
				"size":    3,
				"color":   "#484f58",
				"symbol":  "circle",
				"opacity": 0.7,
				"line":    map[string]interface{}{"width": 0.5, "color": "rgba(255,255,255,0.1)"},
			},
			"hovertemplate": "<b>%{text}</b><br>SoS: %{x:.4f}<br>Elo: %{y:.1f}<br>Skills: N/A<extra></extra>",
			"showlegend":    false,
		})
	}

	yMin, yMax := 1400.0, 1600.0
	if len(rows) > 0 {
		yMin, yMax = rows[0].Rating, rows[0].Rating
		for _, r := range rows[1:] {
			if r.Rating < yMin {
				yMin = r.Rating
			}
			if r.Rating > yMax {
				yMax = r.Rating
			}
		}
	}
	pad := (yMax - yMin) * 0.05
	if pad < 10 {
		pad = 10
	}

	layout := map[string]interface{}{
		"title": map[string]interface{}{
			"text":    title,
			"x":       0,
			"xanchor": "left",
			"font":    map[string]interface{}{"size": 13, "color": "#e6edf3"},
		},
		"paper_bgcolor": "#0d1117",
		"plot_bgcolor":  "#161b22",
		"height":        800,
		"margin":        map[string]interface{}{"l": 60, "r": 130, "t": 55, "b": 55},
		"font":          map[string]interface{}{"family": "'Segoe UI', Arial, sans-serif", "color": "#c9d1d9"},
		"showlegend":    false,
		"xaxis": map[string]interface{}{
			"title":      map[string]interface{}{"text": "Strength of Schedule", "font": map[string]interface{}{"color": "#c9d1d9"}},
			"range":      []float64{0.28, 0.82},
			"dtick":      0.05,
			"showgrid":   true,
			"gridcolor":  "#21262d",
			"gridwidth":  1,
			"zeroline":   false,
			"showline":   false,
			"tickformat": ".2f",
			"tickfont":   map[string]interface{}{"color": "#8b949e"},
		},
		"yaxis": map[string]interface{}{
			"title":     map[string]interface{}{"text": "Elo", "font": map[string]interface{}{"color": "#c9d1d9"}},
			"range":     []float64{yMin - pad, yMax + pad},
			"dtick":     50,
			"showgrid":  true,
			"gridcolor": "#21262d",
			"gridwidth": 1,
			"zeroline":  false,
			"showline":  false,
			"tickfont":  map[string]interface{}{"color": "#8b949e"},
		},
	}

	return map[string]interface{}{"data": traces, "layout": layout}
}

// teamEntry is one row of the search lookup embedded in the page
type teamEntry struct {
	Team   string  `json:"team"`
	Elo    float64 `json:"elo"`
	Sos    float64 `json:"sos"`
	Driver int     `json:"driver"`
	Prog   int     `json:"prog"`
}

// buildTeamLookup keys entries by uppercased team number so the page
// search can match case-insensitively
func buildTeamLookup(rows []rating.Row) map[string]teamEntry {
	lookup := make(map[string]teamEntry, len(rows))
	for _, r := range rows {
		lookup[strings.ToUpper(r.Team)] = teamEntry{
			Team:   r.Team,
			Elo:    math.Round(r.Rating*10) / 10,
			Sos:    r.ScheduleStrength,
			Driver: r.DriverSkills,
			Prog:   r.ProgrammingSkills,
		}
	}
	return lookup
}

var pageTemplate = template.Must(template.New("rankings").Parse(rankingsPage))
