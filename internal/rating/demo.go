package rating

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/your-org/fitcheck/internal/models"
)

var demoStyles = []models.Style{
	models.StyleCasual, models.StyleElegant, models.StyleSporty,
	models.StyleStreetwear, models.StyleBusiness, models.StyleTrendy,
}

var demoDescriptions = []string{
	"A stylish look with a well-judged color combination. The silhouette flatters the figure and the accessories finish it off. A modern, current choice.",
	"Great coordination between pieces. The palette is harmonious and the cut fits well. The look comes across confident and polished.",
	"An excellent choice of fabrics and textures. Proportions are balanced and the details complement each other. A very fashionable, attractive look.",
	"An elegant blend of classic pieces and current trends. The color brings out personality and the cut sits just right.",
	"A bright, memorable look. Accessories work in harmony with the main pieces. Modern, stylish and full of character.",
}

// Demo produces a plausible random rating. It never fails and never looks at the image.
type Demo struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewDemo uses rnd for every choice; nil seeds from the clock.
func NewDemo(rnd *rand.Rand) *Demo {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Demo{rnd: rnd}
}

func (d *Demo) Rate(context.Context, []byte, string) (models.AnalysisResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return models.AnalysisResult{
		Rating:      7 + d.rnd.Intn(4),
		Style:       demoStyles[d.rnd.Intn(len(demoStyles))],
		Description: demoDescriptions[d.rnd.Intn(len(demoDescriptions))],
	}, nil
}
