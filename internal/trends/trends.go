// Package trends groups past mood analyses into clusters with k-means.
package trends

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-mood-to-music/internal/history"
	"github.com/justestif/go-mood-to-music/internal/mood"
)

// Config holds clustering parameters.
type Config struct {
	NumClusters    int // Number of clusters to create (default: 3)
	MinClusterSize int // Smaller clusters are dropped (default: 1)
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumClusters:    3,
		MinClusterSize: 1,
	}
}

// Centroid is the average position of a cluster.
type Centroid struct {
	Energy  float64 `json:"energy"`
	Valence float64 `json:"valence"`
	Tempo   float64 `json:"tempo"`
}

// Cluster is a group of similar analyses.
type Cluster struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Size         int            `json:"size"`
	DominantMood string         `json:"dominant_mood"`
	Moods        map[string]int `json:"moods"`
	Centroid     Centroid       `json:"centroid"`
	From         time.Time      `json:"from"`
	To           time.Time      `json:"to"`
}

// Result is the outcome of Detect.
type Result struct {
	Total    int       `json:"total"`
	Clusters []Cluster `json:"clusters"`
}

// entryObservation wraps an Entry to implement clusters.Observation.
type entryObservation struct {
	entry  *history.Entry
	coords clusters.Coordinates
}

func (o entryObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o entryObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// Detect clusters entries by energy, valence and tempo. With fewer entries
// than clusters the result has no clusters. Clusters are ordered largest first.
func Detect(entries []history.Entry, cfg Config) (Result, error) {
	if cfg.NumClusters <= 0 {
		cfg.NumClusters = DefaultConfig().NumClusters
	}
	if cfg.MinClusterSize <= 0 {
		cfg.MinClusterSize = DefaultConfig().MinClusterSize
	}

	result := Result{Total: len(entries), Clusters: []Cluster{}}
	if len(entries) < cfg.NumClusters {
		return result, nil
	}

	var obs clusters.Observations
	for i := range entries {
		obs = append(obs, entryObservation{
			entry:  &entries[i],
			coords: Coordinates(entries[i].Analysis),
		})
	}

	km := kmeans.New()
	partition, err := km.Partition(obs, cfg.NumClusters)
	if err != nil {
		return result, fmt.Errorf("partitioning analyses: %w", err)
	}

	for _, c := range partition {
		if len(c.Observations) < cfg.MinClusterSize || len(c.Observations) == 0 {
			continue
		}
		result.Clusters = append(result.Clusters, buildCluster(c))
	}

	slices.SortFunc(result.Clusters, func(a, b Cluster) int {
		if a.Size != b.Size {
			return b.Size - a.Size
		}
		return b.To.Compare(a.To)
	})
	return result, nil
}

func buildCluster(c clusters.Cluster) Cluster {
	out := Cluster{
		Size:  len(c.Observations),
		Moods: make(map[string]int),
		Centroid: Centroid{
			Energy:  c.Center[0],
			Valence: c.Center[1],
			Tempo:   c.Center[2],
		},
	}

	for _, o := range c.Observations {
		eo, ok := o.(entryObservation)
		if !ok {
			continue
		}
		out.Moods[eo.entry.Analysis.PrimaryMood]++

		at := eo.entry.CreatedAt
		if out.From.IsZero() || at.Before(out.From) {
			out.From = at
		}
		if at.After(out.To) {
			out.To = at
		}
	}

	for m, n := range out.Moods {
		if n > out.Moods[out.DominantMood] || (n == out.Moods[out.DominantMood] && m < out.DominantMood) {
			out.DominantMood = m
		}
	}

	category := Categorize(out.Centroid)
	out.Name = category.Name
	out.Description = category.Description
	return out
}

// Coordinates projects an analysis onto (energy, valence, tempo), each in [0, 1].
func Coordinates(a mood.Analysis) clusters.Coordinates {
	return clusters.Coordinates{
		levelScore(a.EnergyLevel),
		valenceScore(a.PrimaryMood),
		levelScore(a.TempoPreference),
	}
}

// levelScore maps low/slow, medium and high/fast onto [0, 1].
func levelScore(level string) float64 {
	switch level {
	case mood.EnergyLow, mood.TempoSlow:
		return 0.2
	case mood.EnergyHigh, mood.TempoFast:
		return 0.8
	default:
		return 0.5
	}
}

var valences = map[string]float64{
	mood.Happy:    0.9,
	mood.Excited:  0.8,
	mood.Calm:     0.65,
	mood.Stressed: 0.3,
	mood.Sad:      0.1,
}

func valenceScore(primaryMood string) float64 {
	if v, ok := valences[strings.ToLower(primaryMood)]; ok {
		return v
	}
	return 0.5
}
