package domain

// galleryImages maps the static analysis charts to their image paths.
var galleryImages = map[string]string{
	"precipitation_trend":        "output/precipitation_trend.png",
	"annual_variation_rate":      "output/annual_variation_rate.png",
	"precipitation_distribution": "output/precipitation_distribution.png",
	"extreme_years":              "output/extreme_years.png",
	"precipitation_variability":  "output/precipitation_variability.png",
}

// GalleryImage returns the image source for id, or "" when id is unknown.
func GalleryImage(id string) string {
	return galleryImages[id]
}

// GalleryIDs returns the known gallery identifiers in display order.
func GalleryIDs() []string {
	return []string{
		"precipitation_trend",
		"annual_variation_rate",
		"precipitation_distribution",
		"extreme_years",
		"precipitation_variability",
	}
}
