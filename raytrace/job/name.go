package job

import (
	"math/rand/v2"
	"time"
)

var (
	adjectives = []string{
		"amber", "hazy", "bright", "misty", "silent", "glassy", "dim", "dark",
		"golden", "icy", "delicate", "polished", "white", "cool", "clear", "frosted",
		"mirrored", "twilight", "dawn", "crimson", "pale", "velvet", "blue",
		"glowing", "broken", "cold", "tinted", "falling", "gleaming", "green",
		"long", "late", "lingering", "bold", "little", "morning", "smoky", "old",
		"red", "rough", "still", "small", "sparkling", "shimmering", "soft",
		"wandering", "faded", "wild", "black", "young", "liquid", "solitary",
		"prismatic", "burnished", "snowy", "lucid", "opal", "restless", "radiant",
		"silvered", "purple", "lively", "nameless", "lucky", "oddball", "crystal",
	}

	nouns = []string{
		"prism", "lens", "mirror", "moon", "rain", "glint", "sea", "morning",
		"snow", "lake", "sunset", "pearl", "shadow", "marble", "dawn", "glitter",
		"window", "beam", "cloud", "horizon", "sun", "glade", "bubble", "brook",
		"droplet", "caustic", "dew", "dust", "halo", "fire", "flare", "firefly",
		"facet", "glass", "haze", "mountain", "night", "pond", "darkness",
		"snowflake", "spectrum", "sheen", "sky", "sphere", "surf", "rainbow",
		"violet", "water", "lantern", "wave", "ripple", "reflection", "spark",
		"gem", "dream", "ember", "quartz", "fog", "frost", "candle", "ray",
		"ice", "smoke", "star", "silver", "brass", "gold", "copper", "aurora",
	}
)

// GenerateRenderName creates a memorable render identifier in the format
// "adjective-noun".
func GenerateRenderName() string {
	return adjectives[rand.IntN(len(adjectives))] + "-" + nouns[rand.IntN(len(nouns))]
}

// GenerateRenderID combines a memorable name with a timestamp.
func GenerateRenderID() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return GenerateRenderName() + "-" + timestamp
}
