package entity

// SkipColor marks a colour mapping entry that must not be applied.
const SkipColor = "placeholder"

type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ColorMapping blends the whole backdrop toward Target. Source is kept for
// reference only; the blend is not masked by it.
type ColorMapping struct {
	Key    string `json:"key"`
	Source RGB    `json:"source"`
	Target RGB    `json:"target"`
	Skip   bool   `json:"skip"`
}

type Ratio struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type TextRole struct {
	Name      string  `json:"name"`
	Content   string  `json:"content"`
	SizeRatio float64 `json:"size_ratio"`
	Position  Ratio   `json:"position"`
}

// Placement anchors the product: Center.X is the horizontal centre and
// Center.Y the bottom edge, both as canvas fractions. Scale is the share of
// canvas height the product should occupy.
type Placement struct {
	Center Ratio   `json:"center"`
	Scale  float64 `json:"scale"`
}

type CampaignConfig struct {
	ColorMappings []ColorMapping `json:"color_mappings"`
	TextColor     string         `json:"text_color"`
	MainTitle     TextRole       `json:"main_title"`
	SubTitle      TextRole       `json:"sub_title"`
	Placement     Placement      `json:"placement"`
}

// TextRoles returns the roles in draw order.
func (c *CampaignConfig) TextRoles() []TextRole {
	return []TextRole{c.MainTitle, c.SubTitle}
}

const (
	DefaultTextColor    = "white"
	DefaultTextSize     = 0.05
	DefaultProductScale = 0.35
)

var (
	DefaultTextPosition  = Ratio{X: 0.5, Y: 0.1}
	DefaultProductCenter = Ratio{X: 0.5, Y: 0.78}
)

// NewCampaignConfig returns a config with every default applied.
func NewCampaignConfig() *CampaignConfig {
	return &CampaignConfig{
		TextColor: DefaultTextColor,
		MainTitle: TextRole{Name: "main_title", SizeRatio: DefaultTextSize, Position: DefaultTextPosition},
		SubTitle:  TextRole{Name: "sub_title", SizeRatio: DefaultTextSize, Position: DefaultTextPosition},
		Placement: Placement{Center: DefaultProductCenter, Scale: DefaultProductScale},
	}
}
