package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Supported output formats.
const (
	formatCSV     = "csv"
	formatJSON    = "json"
	formatGeoJSON = "geojson"
)

func main() {
	var (
		outDir     string
		formatsCSV string
		rows       int
		seed       int64
	)

	flag.StringVar(&outDir, "out", "sampledata", "Output directory for the generated files")
	flag.StringVar(&formatsCSV, "formats", "csv,json,geojson", "Comma-separated list: csv,json,geojson")
	flag.IntVar(&rows, "rows", 100, "Rows per file (features for geojson)")
	flag.Int64Var(&seed, "seed", 42, "Random seed; the same seed reproduces the same files")
	flag.Parse()

	if rows <= 0 {
		fmt.Fprintln(os.Stderr, "rows must be positive")
		os.Exit(2)
	}
	formats := splitFormats(formatsCSV)
	if len(formats) == 0 {
		fmt.Fprintln(os.Stderr, "no valid formats provided")
		os.Exit(2)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", outDir, err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(seed))
	for _, f := range formats {
		path := filepath.Join(outDir, "sample."+f)
		var err error
		switch f {
		case formatCSV:
			err = writeCSV(path, rows, rng)
		case formatJSON:
			err = writeJSON(path, rows, rng)
		case formatGeoJSON:
			err = writeGeoJSON(path, rows, rng)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d rows)\n", path, rows)
	}
}

func splitFormats(csv string) []string {
	parts := strings.Split(csv, ",")
	var out []string
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		switch p {
		case formatCSV, formatJSON, formatGeoJSON:
			out = append(out, p)
		case "":
			continue
		default:
			fmt.Fprintf(os.Stderr, "skipping unsupported format: %s\n", p)
		}
	}
	return out
}

func writeCSV(path string, rows int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "name", "category", "value", "quantity", "active", "created_at"}); err != nil {
		return err
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		// Leave some values empty so null counts have something to find.
		value := ""
		if rng.Float64() < 0.9 {
			value = strconv.FormatFloat(round2(randFloat(rng, 1, 500)), 'f', 2, 64)
		}
		rec := []string{
			strconv.Itoa(i + 1),
			randomName(rng),
			randomCategory(rng),
			value,
			strconv.Itoa(randInt(rng, 1, 50)),
			strconv.FormatBool(rng.Float64() < 0.7),
			base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, rows int, rng *rand.Rand) error {
	type item struct {
		ID       int      `json:"id"`
		Name     string   `json:"name"`
		Category string   `json:"category"`
		Value    float64  `json:"value"`
		Tags     []string `json:"tags"`
	}
	doc := struct {
		Generated string `json:"generated"`
		Source    string `json:"source"`
		Count     int    `json:"count"`
		Items     []item `json:"items"`
	}{
		Generated: "2024-01-01T00:00:00Z",
		Source:    "datagen",
		Count:     rows,
		Items:     make([]item, 0, rows),
	}
	for i := 0; i < rows; i++ {
		doc.Items = append(doc.Items, item{
			ID:       i + 1,
			Name:     randomName(rng),
			Category: randomCategory(rng),
			Value:    round2(randFloat(rng, 1, 500)),
			Tags:     randomTags(rng),
		})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func writeGeoJSON(path string, rows int, rng *rand.Rand) error {
	type geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	type properties struct {
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Value    float64 `json:"value"`
	}
	type feature struct {
		Type       string     `json:"type"`
		Geometry   geometry   `json:"geometry"`
		Properties properties `json:"properties"`
	}
	fc := struct {
		Type     string    `json:"type"`
		Features []feature `json:"features"`
	}{
		Type:     "FeatureCollection",
		Features: make([]feature, 0, rows),
	}
	for i := 0; i < rows; i++ {
		fc.Features = append(fc.Features, feature{
			Type: "Feature",
			Geometry: geometry{
				Type:        "Point",
				Coordinates: []float64{round6(randFloat(rng, -122.52, -122.35)), round6(randFloat(rng, 37.70, 37.83))},
			},
			Properties: properties{
				Name:     randomName(rng),
				Category: randomCategory(rng),
				Value:    round2(randFloat(rng, 1, 500)),
			},
		})
	}
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func randInt(rng *rand.Rand, min, max int) int           { return rng.Intn(max-min+1) + min }
func randFloat(rng *rand.Rand, min, max float64) float64 { return min + rng.Float64()*(max-min) }

func randomName(rng *rand.Rand) string {
	adjectives := []string{"amber", "bold", "calm", "dusty", "eager", "faded", "green", "heavy"}
	nouns := []string{"river", "stone", "harbor", "meadow", "summit", "valley", "forest", "island"}
	return adjectives[rng.Intn(len(adjectives))] + "-" + nouns[rng.Intn(len(nouns))]
}

func randomCategory(rng *rand.Rand) string {
	cats := []string{"alpha", "beta", "gamma", "delta"}
	return cats[rng.Intn(len(cats))]
}

func randomTags(rng *rand.Rand) []string {
	all := []string{"new", "staged", "verified", "legacy", "external"}
	n := randInt(rng, 0, 2)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, all[rng.Intn(len(all))])
	}
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
