// Package recommend maps a skin tone and quiz answers to static product suggestions.
package recommend

import (
	"github.com/kozaktomas/skintone-advisor/internal/config"
)

// Product is one recommended item
type Product struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Link string `json:"link"`
}

// Quiz holds the user's questionnaire answers. Empty fields take catalog defaults.
type Quiz struct {
	MakeupStyle string `json:"makeupStyle"`
	SkinType    string `json:"skinType"`
	Finish      string `json:"finish"`
}

// Recommendation is the resolved answer set plus the products picked for it
type Recommendation struct {
	SkinTone string    `json:"skin_tone"`
	Quiz     *Quiz     `json:"quiz,omitempty"`
	Products []Product `json:"recommendations"`

	// Fallbacks lists the inputs that were unknown and replaced by defaults
	Fallbacks []string `json:"fallbacks,omitempty"`
}

// Catalog answers recommendation lookups from a static product table
type Catalog struct {
	cfg config.CatalogConfig
}

// NewCatalog creates a catalog over cfg.
func NewCatalog(cfg config.CatalogConfig) *Catalog {
	return &Catalog{cfg: cfg}
}

// lookup returns table[key], or table[def] when key is unknown.
func lookup(table map[string]string, key, def string) (string, string, bool) {
	if v, ok := table[key]; ok {
		return v, key, false
	}
	return table[def], def, true
}

// ResolveTone normalizes tone and substitutes the default for anything the catalog
// does not know, including the analysis failure labels.
func (c *Catalog) ResolveTone(tone string) (string, bool) {
	key := NormalizeAnswer(tone)
	if _, ok := c.cfg.Foundations[key]; ok {
		return key, false
	}
	return c.cfg.Defaults.SkinTone, true
}

// Foundations returns the foundation shortlist for a skin tone.
func (c *Catalog) Foundations(tone string) Recommendation {
	resolved, fallback := c.ResolveTone(tone)

	rec := Recommendation{SkinTone: resolved}
	if fallback {
		rec.Fallbacks = append(rec.Fallbacks, "skin_tone")
	}
	for _, p := range c.cfg.Foundations[resolved] {
		rec.Products = append(rec.Products, Product{ID: p.ID, Name: p.Name, Link: p.Link})
	}
	return rec
}

// Full returns the six-step makeup routine for a skin tone and quiz answers:
// foundation, blush, lipstick, lip balm, contour and setting spray.
func (c *Catalog) Full(tone string, quiz Quiz) Recommendation {
	full := c.cfg.Full
	defaults := c.cfg.Defaults

	resolved, toneFallback := c.ResolveTone(tone)
	rec := Recommendation{SkinTone: resolved}
	if toneFallback {
		rec.Fallbacks = append(rec.Fallbacks, "skin_tone")
	}

	lipstick, style, fb := lookup(full.Lipstick, NormalizeAnswer(quiz.MakeupStyle), defaults.MakeupStyle)
	if fb {
		rec.Fallbacks = append(rec.Fallbacks, "makeupStyle")
	}
	spray, skinType, fb := lookup(full.SettingSpray, NormalizeAnswer(quiz.SkinType), defaults.SkinType)
	if fb {
		rec.Fallbacks = append(rec.Fallbacks, "skinType")
	}
	finishName, finish, fb := lookup(full.Finish, NormalizeAnswer(quiz.Finish), defaults.Finish)
	if fb {
		rec.Fallbacks = append(rec.Fallbacks, "finish")
	}
	rec.Quiz = &Quiz{MakeupStyle: style, SkinType: skinType, Finish: finish}

	names := []string{
		full.Foundation[resolved] + " - " + finishName,
		full.Blush[resolved],
		lipstick,
		full.LipBalm,
		full.Contour[resolved],
		spray,
	}
	for i, name := range names {
		rec.Products = append(rec.Products, Product{ID: i + 1, Name: name, Link: full.Link})
	}
	return rec
}
