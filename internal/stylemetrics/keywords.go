package stylemetrics

// metricRule is the keyword set and bonus table for one sub-score.
type metricRule struct {
	keywords []string
	// bonus is added when any keyword matches; otherwise rand[0,randomMax).
	bonus     int
	randomMax int
	// inStyle also searches the style label, not just the description.
	inStyle bool
}

var (
	fitRule = metricRule{
		keywords:  []string{"fit", "fitting", "tailored", "proportions", "silhouette"},
		bonus:     10,
		randomMax: 15,
	}
	colorMatchRule = metricRule{
		keywords:  []string{"color", "colours", "palette", "matching", "complement"},
		bonus:     10,
		randomMax: 20,
	}
	trendinessRule = metricRule{
		keywords:  []string{"trendy", "fashionable", "modern", "contemporary", "current", "up-to-date"},
		bonus:     15,
		randomMax: 25,
		inStyle:   true,
	}
	creativityRule = metricRule{
		keywords:  []string{"unique", "creative", "original", "innovative", "artistic", "expressive"},
		bonus:     12,
		randomMax: 20,
		inStyle:   true,
	}
	eraVibeRule = metricRule{
		keywords:  []string{"classic", "vintage", "retro", "timeless", "traditional", "contemporary"},
		bonus:     8,
		randomMax: 15,
		inStyle:   true,
	}
)

// colorMentionBonus is added to colorMatch when a named color appears.
const colorMentionBonus = 5

// namedColors is searched in this order; the first hit is the dominant color.
var namedColors = []string{
	"red", "blue", "green", "yellow", "orange", "purple", "pink", "black", "white", "gray", "grey",
	"brown", "beige", "navy", "maroon", "teal", "coral", "gold", "silver", "cream", "tan", "khaki",
}

type category struct {
	name     string
	keywords []string
}

var categories = []category{
	{"casual", []string{"casual", "relaxed", "comfortable", "everyday", "laid-back"}},
	{"formal", []string{"formal", "elegant", "sophisticated", "professional", "classy"}},
	{"trendy", []string{"trendy", "fashionable", "modern", "contemporary", "stylish"}},
	{"vintage", []string{"vintage", "retro", "classic", "timeless", "old-school"}},
	{"sporty", []string{"sporty", "athletic", "active", "gym", "workout"}},
	{"bohemian", []string{"boho", "bohemian", "free-spirited", "artistic", "eclectic"}},
	{"minimalist", []string{"minimal", "simple", "clean", "understated", "basic"}},
	{"edgy", []string{"edgy", "bold", "daring", "rebellious", "alternative"}},
}

var (
	positiveWords = []string{"great", "excellent", "perfect", "amazing", "stunning", "beautiful", "stylish"}
	negativeWords = []string{"poor", "bad", "awful", "terrible", "ugly", "messy"}
)
