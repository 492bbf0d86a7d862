package trends

// Category is a display name and blurb for a centroid.
type Category struct {
	Name        string
	Description string
}

// Categorize names a centroid with a 2x2 energy/valence quadrant and a
// tempo modifier.
//
// Quadrants:
//   - High Energy + High Valence = "Upbeat Party"
//   - High Energy + Low Valence  = "Intense & Dark"
//   - Low Energy  + High Valence = "Chill & Happy"
//   - Low Energy  + Low Valence  = "Reflective & Melancholy"
//
// Tempo above 0.6 appends "(Fast)", below 0.3 appends "(Slow)".
func Categorize(c Centroid) Category {
	highEnergy := c.Energy > 0.6
	highValence := c.Valence > 0.5

	var cat Category
	switch {
	case highEnergy && highValence:
		cat = Category{"Upbeat Party", "High-energy, positive vibes - perfect for dancing and celebrations"}
	case highEnergy && !highValence:
		cat = Category{"Intense & Dark", "Intense, driving energy with darker emotional tones"}
	case !highEnergy && highValence:
		cat = Category{"Chill & Happy", "Relaxed and uplifting - great for unwinding"}
	default:
		cat = Category{"Reflective & Melancholy", "Contemplative and introspective - ideal for quiet moments"}
	}

	switch {
	case c.Tempo > 0.6:
		cat.Name += " (Fast)"
	case c.Tempo < 0.3:
		cat.Name += " (Slow)"
	}
	return cat
}
